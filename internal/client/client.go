package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/mcoot/clubroster/internal/api/request"
	"github.com/mcoot/clubroster/internal/api/response"
)

// DefaultTimeout bounds every request made by a Client
const DefaultTimeout = 30 * time.Second

// Client is an HTTP client for the club roster API
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a new API client
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken updates the client's token
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the token sent with requests
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Login exchanges credentials for a session token. The client's own token is
// not changed.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp response.LoginResponse
	body := request.LoginRequest{Email: email, Password: password}
	if err := c.doRequest(ctx, "", http.MethodPost, "/api/login", body, &resp); err != nil {
		return "", fmt.Errorf("client.Login: %w", err)
	}
	return resp.Token, nil
}

// Revoke invalidates the given token on the server
func (c *Client) Revoke(ctx context.Context, token string) error {
	if err := c.doRequest(ctx, token, http.MethodPost, "/api/logout", nil, nil); err != nil {
		return fmt.Errorf("client.Revoke: %w", err)
	}
	return nil
}

// SearchPlayers returns players whose name contains query
func (c *Client) SearchPlayers(ctx context.Context, query string) ([]response.Player, error) {
	params := url.Values{}
	params.Set("search", query)

	players := []response.Player{}
	if err := c.doRequest(ctx, c.Token(), http.MethodGet, "/api/players?"+params.Encode(), nil, &players); err != nil {
		return nil, fmt.Errorf("client.SearchPlayers: %w", err)
	}
	return players, nil
}

// Me returns the signed-in account
func (c *Client) Me(ctx context.Context) (*response.Me, error) {
	var me response.Me
	if err := c.doRequest(ctx, c.Token(), http.MethodGet, "/api/me", nil, &me); err != nil {
		return nil, fmt.Errorf("client.Me: %w", err)
	}
	return &me, nil
}

// Health checks the server is up
func (c *Client) Health(ctx context.Context) (*response.Health, error) {
	var health response.Health
	if err := c.doRequest(ctx, "", http.MethodGet, "/api/health", nil, &health); err != nil {
		return nil, fmt.Errorf("client.Health: %w", err)
	}
	return &health, nil
}

func (c *Client) doRequest(ctx context.Context, token, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Code: apiErr.Code, Message: apiErr.Error}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
