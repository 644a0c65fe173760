package forum

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/vncsmyrnk/forumvote/internal/adapters/htmlpage"
	"github.com/vncsmyrnk/forumvote/internal/core/domain"
	"github.com/vncsmyrnk/forumvote/internal/core/ports"
)

const (
	commentPath = "/blog/post/comment/"
	threadPath  = "/blog/comments/"
)

type commentResponse struct {
	Msg string `json:"msg"`
}

func (c *Client) PostComment(ctx context.Context, input ports.CommentInput) (string, error) {
	form := url.Values{}
	form.Set("parentType", string(input.ParentType))
	form.Set("parentId", input.ParentID)
	form.Set("commentContent", input.Content)

	resp, err := c.postForm(ctx, commentPath, form)
	if err != nil {
		return "", fmt.Errorf("comment request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError(resp)
	}

	var body commentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode comment response: %w", err)
	}
	return body.Msg, nil
}

func (c *Client) FetchThread(ctx context.Context, threadID string) (*domain.Thread, error) {
	resp, err := c.get(ctx, threadPath+url.PathEscape(threadID))
	if err != nil {
		return nil, fmt.Errorf("thread request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", domain.ErrThreadNotFound, threadID)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp)
	}
	// the thread view requires a session and redirects anonymous users
	if strings.HasPrefix(resp.Request.URL.Path, loginPath) {
		return nil, domain.ErrUnauthorized
	}

	thread, err := htmlpage.ParseThread(resp.Body)
	if err != nil {
		return nil, err
	}
	if thread.ID == "" {
		thread.ID = threadID
	}
	return thread, nil
}
