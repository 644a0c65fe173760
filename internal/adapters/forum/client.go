// Package forum is the HTTP adapter for the forum backend. It keeps the
// backend session in a cookie jar and attaches the anti-forgery token to
// every state-mutating request.
package forum

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"

	"github.com/vncsmyrnk/forumvote/internal/core/domain"
)

const (
	CSRFCookieName = "csrftoken"
	CSRFHeaderName = "X-CSRFToken"
)

var safeMethod = regexp.MustCompile(`^(GET|HEAD|OPTIONS|TRACE)$`)

// CSRFSafeMethod reports whether method is exempt from the anti-forgery check.
func CSRFSafeMethod(method string) bool {
	return safeMethod.MatchString(method)
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
	jar     http.CookieJar
	logger  *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(cl *Client) {
		cl.logger = logger
	}
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid forum url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid forum url: %q", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	c.jar = c.http.Jar

	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http.Transport = &csrfTransport{base: base, client: c}
	c.logger = c.logger.Named("forum")

	return c, nil
}

// CSRFToken returns the current anti-forgery token, or "" when the backend
// has not issued one yet.
func (c *Client) CSRFToken() string {
	for _, cookie := range c.jar.Cookies(c.baseURL) {
		if cookie.Name == CSRFCookieName {
			if v, err := url.QueryUnescape(cookie.Value); err == nil {
				return v
			}
			return cookie.Value
		}
	}
	return ""
}

func (c *Client) sameOrigin(u *url.URL) bool {
	return strings.EqualFold(u.Scheme, c.baseURL.Scheme) && strings.EqualFold(u.Host, c.baseURL.Host)
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.ResolveReference(&url.URL{Path: path}).String()
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Referer", c.baseURL.String())
	return c.http.Do(req)
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path), nil)
	if err != nil {
		return nil, err
	}
	return c.http.Do(req)
}

// statusError maps a non-2xx backend answer to a domain error.
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	text := strings.TrimSpace(string(body))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrUnauthorized
	case http.StatusBadRequest:
		if text == "" {
			return domain.ErrBadRequest
		}
		return fmt.Errorf("%w: %s", domain.ErrBadRequest, text)
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnexpectedStatus, resp.Status)
	}
}

type csrfTransport struct {
	base   http.RoundTripper
	client *Client
}

func (t *csrfTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !CSRFSafeMethod(req.Method) && t.client.sameOrigin(req.URL) {
		if token := t.client.CSRFToken(); token != "" {
			req = req.Clone(req.Context())
			req.Header.Set(CSRFHeaderName, token)
		}
	}
	return t.base.RoundTrip(req)
}
