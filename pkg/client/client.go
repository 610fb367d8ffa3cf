// Package client is a Go consumer of the user administration API. It wraps
// the HTTP surface and keeps the authentication lifecycle in an explicit
// session state machine, optionally persisted between runs.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// User mirrors the sanitized user projection the API returns.
type User struct {
	ID        int64     `json:"id"`
	Nombre    string    `json:"nombre"`
	Apellido  string    `json:"apellido"`
	Usuario   string    `json:"usuario"`
	DNI       int64     `json:"dni"`
	Fecha     time.Time `json:"fecha"`
	Estado    string    `json:"estado"`
	Rol       string    `json:"rol"`
	Domicilio string    `json:"domicilio"`
	Activo    bool      `json:"activo"`
}

// CreateUser is the payload for registering a new usuario.
type CreateUser struct {
	Nombre    string `json:"nombre,omitempty"`
	Apellido  string `json:"apellido,omitempty"`
	Usuario   string `json:"usuario"`
	Clave     string `json:"clave"`
	DNI       int64  `json:"dni,omitempty"`
	Estado    string `json:"estado,omitempty"`
	Rol       string `json:"rol"`
	Domicilio string `json:"domicilio,omitempty"`
	Activo    bool   `json:"activo"`
}

// UserPatch is a partial update: nil fields are left untouched by the server.
type UserPatch struct {
	Nombre      *string `json:"nombre,omitempty"`
	Apellido    *string `json:"apellido,omitempty"`
	DNI         *int64  `json:"dni,omitempty"`
	Estado      *string `json:"estado,omitempty"`
	Domicilio   *string `json:"domicilio,omitempty"`
	Usuario     *string `json:"usuario,omitempty"`
	Rol         *string `json:"rol,omitempty"`
	Activo      *bool   `json:"activo,omitempty"`
	NewPassword *string `json:"newPassword,omitempty"`
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithStore persists the session snapshot through the given store. The
// constructor restores any saved session synchronously before returning.
func WithStore(store Store) Option {
	return func(c *Client) { c.store = store }
}

// Client talks to one API server on behalf of at most one logged-in user.
type Client struct {
	baseURL string
	http    *http.Client
	store   Store
	session *Session
}

// New builds a client against baseURL and restores a persisted session if the
// configured store holds one.
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   &memoryStore{},
		session: NewSession(),
	}
	for _, opt := range opts {
		opt(c)
	}

	snap, ok, err := c.store.Load()
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if ok {
		if err := c.session.Restore(snap); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Session exposes the state machine for inspection.
func (c *Client) Session() *Session {
	return c.session
}

type loginResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// Login authenticates and moves the session to authenticated. A second login
// without an intervening Logout is an ErrInvalidTransition.
func (c *Client) Login(ctx context.Context, usuario, clave string) (*User, error) {
	if err := c.session.Begin(); err != nil {
		return nil, err
	}

	body := map[string]string{"usuario": usuario, "clave": clave}
	var result loginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &result, false); err != nil {
		_ = c.session.Fail()
		return nil, err
	}

	if err := c.session.Succeed(result.Token, result.User); err != nil {
		return nil, err
	}
	if err := c.store.Save(Snapshot{Token: result.Token, User: result.User, SavedAt: time.Now().UTC()}); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	user := result.User
	return &user, nil
}

// Logout drops the session locally and clears the persisted snapshot. The
// server keeps no session state, so there is nothing to call remotely.
func (c *Client) Logout() error {
	if err := c.session.Logout(); err != nil {
		return err
	}
	return c.store.Clear()
}

// Profile fetches the live row behind the session's token.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every usuario row. Requires an admin session.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &users, true); err != nil {
		return nil, err
	}
	return users, nil
}

type userResult struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// CreateUser registers a new usuario. Requires an admin session.
func (c *Client) CreateUser(ctx context.Context, input CreateUser) (*User, error) {
	var result userResult
	if err := c.do(ctx, http.MethodPost, "/api/users", input, &result, true); err != nil {
		return nil, err
	}
	user := result.User
	return &user, nil
}

// UpdateUser applies a partial update to the target usuario.
func (c *Client) UpdateUser(ctx context.Context, id int64, patch UserPatch) (*User, error) {
	var result userResult
	path := fmt.Sprintf("/api/users/%d", id)
	if err := c.do(ctx, http.MethodPut, path, patch, &result, true); err != nil {
		return nil, err
	}
	user := result.User
	return &user, nil
}

// ChangePassword rotates the target usuario's secret. currentPassword may be
// empty for admin sessions.
func (c *Client) ChangePassword(ctx context.Context, id int64, currentPassword, newPassword string) error {
	body := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	path := fmt.Sprintf("/api/users/%d/change-password", id)
	return c.do(ctx, http.MethodPut, path, body, nil, true)
}

// do runs one request. When authed is set the session token is attached, and
// a 401 response expires the session and clears the store before returning.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token := c.session.Token()
		if token == "" {
			return &APIError{Status: http.StatusUnauthorized, Message: "no active session"}
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if authed && resp.StatusCode == http.StatusUnauthorized {
			if c.session.State() == StateAuthenticated {
				_ = c.session.Expire()
				_ = c.store.Clear()
			}
		}
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func errorMessage(raw []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return strings.TrimSpace(string(raw))
}
