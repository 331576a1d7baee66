// Package client is a Go client for the food-ordering API. It keeps the
// authenticated session in memory, persists it through a pluggable
// SessionStore, and surfaces operation outcomes through a Notifier so a
// frontend can render toasts without inspecting errors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"github.com/quickplate/food-ordering-api/internal/core/domain"
)

const defaultRequestTimeout = 30 * time.Second

// ErrOperationPending is returned when a call is made while a previous call
// of the same operation is still in flight. It protects against accidental
// double submits; callers should simply drop the duplicate.
var ErrOperationPending = errors.New("client: operation already in progress")

// Notifier receives user-facing outcome messages. Both methods may be called
// from the goroutine running the operation.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Session is the persisted authentication state.
type Session struct {
	User          *domain.User `json:"user"`
	Authenticated bool         `json:"isAuthenticated"`
}

// SessionStore persists the session across client restarts.
type SessionStore interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

// Options configures a Client. BaseURL is required; everything else has a
// usable default.
type Options struct {
	BaseURL  string
	Store    SessionStore
	Notifier Notifier
	// HTTPClient overrides the default client. A cookie jar is installed
	// when it has none, since the server session rides on a cookie.
	HTTPClient *http.Client
}

// Client talks to the food-ordering API on behalf of one user session.
type Client struct {
	baseURL  string
	http     *http.Client
	store    SessionStore
	notifier Notifier

	mu      sync.Mutex
	session Session
	pending map[string]bool
}

func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("client: BaseURL is required")
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: defaultRequestTimeout}
	}
	if hc.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("client: cookie jar: %w", err)
		}
		hc.Jar = jar
	}

	c := &Client{
		baseURL:  opts.BaseURL,
		http:     hc,
		store:    opts.Store,
		notifier: opts.Notifier,
		pending:  make(map[string]bool),
	}

	if c.store != nil {
		if session, err := c.store.Load(); err == nil {
			c.session = session
		}
	}
	return c, nil
}

// Session returns a copy of the current session state.
func (c *Client) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// apiEnvelope is the server's uniform response shape.
type apiEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

// Signup creates an account and opens a session.
func (c *Client) Signup(ctx context.Context, fullName, email, password, contact string, admin bool) error {
	if !c.begin("signup") {
		return ErrOperationPending
	}
	defer c.end("signup")

	env, err := c.post(ctx, "/api/v1/user/signup", map[string]any{
		"fullname": fullName,
		"email":    email,
		"password": password,
		"contact":  contact,
		"admin":    admin,
	})
	if err != nil {
		return c.fail(err)
	}

	c.setSession(Session{User: env.User, Authenticated: true})
	c.notifySuccess(env.Message, "Account created")
	return nil
}

// Login verifies credentials and opens a session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	if !c.begin("login") {
		return ErrOperationPending
	}
	defer c.end("login")

	env, err := c.post(ctx, "/api/v1/user/login", map[string]any{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return c.fail(err)
	}

	c.setSession(Session{User: env.User, Authenticated: true})
	c.notifySuccess(env.Message, "Logged in")
	return nil
}

// Logout ends the session server-side and clears local state. Local state is
// cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	if !c.begin("logout") {
		return ErrOperationPending
	}
	defer c.end("logout")

	env, err := c.post(ctx, "/api/v1/user/logout", nil)

	c.setSession(Session{})
	if c.store != nil {
		_ = c.store.Clear()
	}
	if err != nil {
		return c.fail(err)
	}
	c.notifySuccess(env.Message, "Logged out")
	return nil
}

// CheckAuthentication refreshes the session from the server. A 401 is not an
// error: it resolves the session to unauthenticated.
func (c *Client) CheckAuthentication(ctx context.Context) (bool, error) {
	if !c.begin("check-auth") {
		return false, ErrOperationPending
	}
	defer c.end("check-auth")

	env, err := c.do(ctx, http.MethodGet, "/api/v1/user/check-auth", nil)
	if err != nil {
		var se *serverError
		if errors.As(err, &se) && se.status == http.StatusUnauthorized {
			c.setSession(Session{})
			return false, nil
		}
		return false, c.fail(err)
	}

	c.setSession(Session{User: env.User, Authenticated: true})
	return true, nil
}

// ForgotPassword requests a reset link for the given email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	if !c.begin("forgot-password") {
		return ErrOperationPending
	}
	defer c.end("forgot-password")

	env, err := c.post(ctx, "/api/v1/user/forgot-password", map[string]any{"email": email})
	if err != nil {
		return c.fail(err)
	}
	c.notifySuccess(env.Message, "Reset link sent")
	return nil
}

// ResetPassword completes the reset flow with the token from the email link.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	if !c.begin("reset-password") {
		return ErrOperationPending
	}
	defer c.end("reset-password")

	env, err := c.post(ctx, "/api/v1/user/reset-password/"+token, map[string]any{
		"newPassword": newPassword,
	})
	if err != nil {
		return c.fail(err)
	}
	c.notifySuccess(env.Message, "Password updated")
	return nil
}

// ProfileUpdate carries the full replacement profile.
type ProfileUpdate struct {
	FullName       string `json:"fullname"`
	Email          string `json:"email"`
	Contact        string `json:"contact"`
	Address        string `json:"address"`
	City           string `json:"city"`
	Country        string `json:"country"`
	ProfilePicture string `json:"profilePicture"`
}

// UpdateProfile replaces the profile fields and refreshes the session user.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	if !c.begin("update-profile") {
		return ErrOperationPending
	}
	defer c.end("update-profile")

	env, err := c.do(ctx, http.MethodPut, "/api/v1/user/profile/update", update)
	if err != nil {
		return c.fail(err)
	}

	c.setSession(Session{User: env.User, Authenticated: true})
	c.notifySuccess(env.Message, "Profile updated")
	return nil
}

// serverError is a non-2xx response carrying the server's message.
type serverError struct {
	status  int
	message string
}

func (e *serverError) Error() string {
	if e.message != "" {
		return e.message
	}
	return http.StatusText(e.status)
}

func (c *Client) post(ctx context.Context, path string, body any) (*apiEnvelope, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*apiEnvelope, error) {
	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("client: encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: %w", err)
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && resp.StatusCode < 300 {
		return nil, fmt.Errorf("client: decode response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return nil, &serverError{status: resp.StatusCode, message: env.Message}
	}
	return &env, nil
}

func (c *Client) begin(op string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending[op] {
		return false
	}
	c.pending[op] = true
	return true
}

func (c *Client) end(op string) {
	c.mu.Lock()
	delete(c.pending, op)
	c.mu.Unlock()
}

func (c *Client) setSession(s Session) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()

	if c.store != nil {
		_ = c.store.Save(s)
	}
}

// fail routes the error text to the notifier and returns the error.
func (c *Client) fail(err error) error {
	if c.notifier != nil {
		c.notifier.Error(err.Error())
	}
	return err
}

func (c *Client) notifySuccess(serverMsg, fallback string) {
	if c.notifier == nil {
		return
	}
	if serverMsg == "" {
		serverMsg = fallback
	}
	c.notifier.Success(serverMsg)
}
