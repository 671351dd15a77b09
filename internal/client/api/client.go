// Package api is a typed HTTP client for the sessiondesk server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client calls the sessiondesk API. The zero value is not usable; use New.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New creates a client for baseURL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// WithToken returns a copy that sends "Authorization: Bearer <token>".
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// --- Auth library ---

// SignUp creates an account. Errors are FriendlyErrors.
func (c *Client) SignUp(ctx context.Context, params SignUpParams) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/sign-up", params, &out); err != nil {
		return nil, friendly(err, MsgSignUpFailed)
	}
	return &out, nil
}

// SignIn exchanges credentials for a session. Errors are FriendlyErrors.
func (c *Client) SignIn(ctx context.Context, params SignInParams) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/sign-in", params, &out); err != nil {
		return nil, friendly(err, MsgSignInFailed)
	}
	return &out, nil
}

// SignOut invalidates token. Errors are FriendlyErrors.
func (c *Client) SignOut(ctx context.Context, token string) error {
	var out successResponse
	if err := c.do(ctx, http.MethodPost, "/auth/sign-out", signOutParams{Token: token}, &out); err != nil {
		return friendly(err, MsgSignOutFailed)
	}
	return nil
}

// --- Application endpoints ---

// CurrentUser returns the signed-in user.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/current-user", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateName changes the signed-in user's display name.
func (c *Client) UpdateName(ctx context.Context, name string) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPut, "/update", updateParams{Name: name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Sessions lists the signed-in user's sessions.
func (c *Client) Sessions(ctx context.Context) ([]Session, error) {
	var out sessionsResponse
	if err := c.do(ctx, http.MethodGet, "/sessions", nil, &out); err != nil {
		return nil, err
	}
	return out.Sessions, nil
}

// RevokeSession signs out the session with the given id.
func (c *Client) RevokeSession(ctx context.Context, id string) error {
	var out successResponse
	return c.do(ctx, http.MethodDelete, "/sessions/"+url.PathEscape(id), nil, &out)
}

// Todos lists all todos. No token needed.
func (c *Client) Todos(ctx context.Context) ([]Todo, error) {
	var out todosResponse
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &out); err != nil {
		return nil, err
	}
	return out.Todos, nil
}

// do sends a JSON request and decodes a JSON response into out. Non-2xx
// responses become *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		// Best effort: a proxy may answer with a non-JSON body.
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(apiErr)
		if apiErr.Code == "" {
			apiErr.Code = strings.ReplaceAll(strings.ToLower(http.StatusText(resp.StatusCode)), " ", "_")
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}
