package placeholder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jsonbrowse/internal/domain"
	"jsonbrowse/internal/ports"
)

// Ensure Client implements RemoteClient at compile time.
var _ ports.RemoteClient = (*Client)(nil)

const (
	DefaultBaseURL   = "https://jsonplaceholder.typicode.com"
	DefaultTimeout   = 5 * time.Second
	defaultUserAgent = "jsonbrowse/0.1"
)

// Client talks to a JSONPlaceholder-shaped REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// NewClient builds a Client for baseURL. A zero timeout uses DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized API root
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchUsers retrieves every remote user.
func (c *Client) FetchUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.fetch(ctx, "users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FetchTodos retrieves the todos of one user.
func (c *Client) FetchTodos(ctx context.Context, userID int64) ([]domain.Todo, error) {
	var todos []domain.Todo
	if err := c.fetch(ctx, "todos", filter("userId", userID), &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// FetchPosts retrieves the posts of one user.
func (c *Client) FetchPosts(ctx context.Context, userID int64) ([]domain.Post, error) {
	var posts []domain.Post
	if err := c.fetch(ctx, "posts", filter("userId", userID), &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// FetchComments retrieves the comments under one post.
func (c *Client) FetchComments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	var comments []domain.Comment
	if err := c.fetch(ctx, "comments", filter("postId", postID), &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func filter(key string, id int64) url.Values {
	return url.Values{key: []string{strconv.FormatInt(id, 10)}}
}

func (c *Client) fetch(ctx context.Context, collection string, query url.Values, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	reqURL := c.baseURL.JoinPath(collection)
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", collection, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api base %q: missing host", raw)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
