package forum

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/forumvote/internal/core/domain"
)

const (
	loginPath  = "/login/"
	logoutPath = "/logout/"
)

// Login obtains a backend session. The login form is fetched first so that
// the backend issues the anti-forgery cookie the POST must carry.
func (c *Client) Login(ctx context.Context, username, password string) error {
	resp, err := c.get(ctx, loginPath)
	if err != nil {
		return fmt.Errorf("login page request failed: %w", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if !strings.HasPrefix(resp.Request.URL.Path, loginPath) {
		c.logger.Debug("session already authenticated")
		return nil
	}

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	form.Set("csrfmiddlewaretoken", c.CSRFToken())
	form.Set("next", "/")

	resp, err = c.postForm(ctx, loginPath, form)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	// a successful login redirects away from the form
	if strings.HasPrefix(resp.Request.URL.Path, loginPath) {
		return domain.ErrInvalidCredentials
	}

	c.logger.Info("session established", zap.String("username", username))
	return nil
}

func (c *Client) Logout(ctx context.Context) error {
	form := url.Values{}
	form.Set("current_page", "/")

	resp, err := c.postForm(ctx, logoutPath, form)
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	return nil
}
