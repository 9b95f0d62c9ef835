// Package authclient is the Go client for the catalog's auth endpoints plus
// the route guard used by front ends. Credentials are attached explicitly
// per request from the session store value — there is no ambient default
// header shared between requests.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/soundstash/media-catalog/pkg/session"
)

var (
	// ErrUnauthorized means the server rejected the credentials or token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the identity is valid but lacks the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrUnavailable wraps transport-level failures (no response reached),
	// kept distinct from authorization failures so callers can show a
	// connectivity message instead of "access denied".
	ErrUnavailable = errors.New("auth service unreachable")
)

// Client talks to the auth endpoints and keeps the session store in sync
// with server truth.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *session.Store
}

func NewClient(baseURL string, store *session.Store) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		store: store,
	}
}

// Store exposes the bound session store.
func (c *Client) Store() *session.Store {
	return c.store
}

type apiEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		User  *session.Identity `json:"user"`
		Token string            `json:"token"`
	} `json:"data"`
}

// Login authenticates and persists {identity, token} on success.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Identity, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	env, status, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK || !env.Success {
		if status == http.StatusUnauthorized {
			return nil, fmt.Errorf("%w: %s", ErrUnauthorized, env.Message)
		}
		return nil, fmt.Errorf("login failed: %s", env.Message)
	}
	if env.Data.User == nil || env.Data.Token == "" {
		return nil, fmt.Errorf("login response missing user or token")
	}

	if err := c.store.Save(env.Data.User, env.Data.Token); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return env.Data.User, nil
}

// Profile fetches the current identity using the stored token. A 401 means
// the token is missing, expired or revoked — ErrUnauthorized.
func (c *Client) Profile(ctx context.Context) (*session.Identity, error) {
	sess, ok := c.store.Load()
	if !ok {
		return nil, ErrUnauthorized
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/profile", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+sess.Token)

	env, status, err := c.do(req)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, env.Message)
	case status == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrForbidden, env.Message)
	case status != http.StatusOK || !env.Success || env.Data.User == nil:
		return nil, fmt.Errorf("profile failed: %s", env.Message)
	}
	return env.Data.User, nil
}

// Logout clears the local session. There is no server call: tokens are
// stateless and expire on their own.
func (c *Client) Logout() error {
	return c.store.Clear()
}

func (c *Client) do(req *http.Request) (apiEnvelope, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apiEnvelope{}, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return apiEnvelope{}, resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return env, resp.StatusCode, nil
}
