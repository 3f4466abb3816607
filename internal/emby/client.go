// Package emby is a small client for the Emby server REST API.
package emby

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const userCacheTTL = time.Hour

var (
	// ErrNotConfigured is returned when host or API key are missing.
	ErrNotConfigured = errors.New("emby is not configured")
	// ErrUnauthorized is returned when Emby rejects the API key.
	ErrUnauthorized = errors.New("emby rejected the api key")
	// ErrNotFound is returned when an item or user doesn't exist.
	ErrNotFound = errors.New("emby item not found")
	// ErrNoUser is returned when no user can be resolved.
	ErrNoUser = errors.New("no emby user")
)

// Client is an Emby API client.
type Client struct {
	host       string
	apiKey     string
	user       string
	httpClient *http.Client
	cache      *cache
}

// Option configures a Client.
type Option func(*Client)

// WithUser sets the user (id or name) item queries run as.
func WithUser(user string) Option {
	return func(c *Client) {
		c.user = user
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates an Emby client. host may omit the scheme, http is assumed.
func New(host, apiKey string, opts ...Option) *Client {
	c := &Client{
		host:   normalizeHost(host),
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: newCache(userCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func normalizeHost(host string) string {
	host = strings.TrimSpace(host)
	if host == "" {
		return ""
	}
	if !strings.HasPrefix(host, "http") {
		host = "http://" + host
	}
	if !strings.HasSuffix(host, "/") {
		host += "/"
	}
	return host
}

// Host returns the normalized server address.
func (c *Client) Host() string { return c.host }

// Configured reports whether host and API key are set.
func (c *Client) Configured() bool {
	return c.host != "" && c.apiKey != ""
}

func (c *Client) endpoint(path string, q url.Values) string {
	if q == nil {
		q = url.Values{}
	}
	q.Set("api_key", c.apiKey)
	return c.host + path + "?" + q.Encode()
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, want int, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != want:
		return fmt.Errorf("emby API error: %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Users lists the server's users.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, c.endpoint("emby/Users", nil), nil, http.StatusOK, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ResolveUser returns the id queries run as: the configured user (matched
// by id or name), else the first administrator, else the first user.
func (c *Client) ResolveUser(ctx context.Context) (string, error) {
	if id, ok := c.cache.get(c.user); ok {
		return id, nil
	}

	users, err := c.Users(ctx)
	if err != nil {
		return "", err
	}
	id, err := pickUser(users, c.user)
	if err != nil {
		return "", err
	}
	c.cache.set(c.user, id)
	return id, nil
}

func pickUser(users []User, want string) (string, error) {
	if want != "" {
		for _, u := range users {
			if u.ID == want || strings.EqualFold(u.Name, want) {
				return u.ID, nil
			}
		}
		return "", fmt.Errorf("%w: %q", ErrNoUser, want)
	}
	for _, u := range users {
		if u.Policy.IsAdministrator && !u.Policy.IsDisabled {
			return u.ID, nil
		}
	}
	if len(users) > 0 {
		return users[0].ID, nil
	}
	return "", ErrNoUser
}

// Items lists the children of parentID.
func (c *Client) Items(ctx context.Context, parentID string) ([]Item, error) {
	user, err := c.ResolveUser(ctx)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("ParentId", parentID)

	var resp itemsResponse
	endpoint := c.endpoint("emby/Users/"+url.PathEscape(user)+"/Items", q)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, http.StatusOK, &resp); err != nil {
		return nil, fmt.Errorf("list items of %s: %w", parentID, err)
	}
	return resp.Items, nil
}

// ItemInfo fetches the full document of one item.
func (c *Client) ItemInfo(ctx context.Context, id string) (ItemInfo, error) {
	user, err := c.ResolveUser(ctx)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("fields", "ShareLevel")
	q.Set("ExcludeFields", "Chapters,Overview,People,MediaStreams,Subviews")

	info := ItemInfo{}
	endpoint := c.endpoint("emby/Users/"+url.PathEscape(user)+"/Items/"+url.PathEscape(id), q)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, http.StatusOK, &info); err != nil {
		return nil, fmt.Errorf("get item %s: %w", id, err)
	}
	// A null body decodes to a nil map.
	if info == nil {
		return nil, fmt.Errorf("get item %s: %w", id, ErrNotFound)
	}
	return info, nil
}

// UpdateItem posts info back to Emby. Emby answers 204 on success.
func (c *Client) UpdateItem(ctx context.Context, id string, info ItemInfo) error {
	endpoint := c.endpoint("emby/Items/"+url.PathEscape(id), nil)
	if err := c.do(ctx, http.MethodPost, endpoint, info, http.StatusNoContent, nil); err != nil {
		return fmt.Errorf("update item %s: %w", id, err)
	}
	return nil
}
