package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// authResponse is the body shape shared by all of the service's auth
// endpoints. Message is only populated on rejections, Token only in token
// mode.
type authResponse struct {
	User    *User  `json:"user"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Client runs the session state machine against the remote service. All
// network and protocol failures are absorbed here: callers see booleans,
// errors with displayable messages, and a mutated Store. Nothing panics past
// this boundary.
type Client struct {
	store    *Store
	strategy CredentialStrategy
	baseURL  string
}

// NewClient builds a session client. In token mode the in-memory token is
// pre-populated from durable storage so a previous run's session can be
// silently re-validated.
func NewClient(baseURL string, store *Store, strategy CredentialStrategy) *Client {
	if token, ok := strategy.Restore(); ok && token != "" {
		store.SetToken(token)
	}
	return &Client{
		store:    store,
		strategy: strategy,
		baseURL:  baseURL,
	}
}

// State returns a snapshot of the current session state.
func (c *Client) State() State {
	return c.store.State()
}

// Bootstrap runs the startup silent re-authentication and then settles the
// Loading flag. It is meant to be called exactly once, when the process
// starts.
func (c *Client) Bootstrap(ctx context.Context) bool {
	ok := c.CheckAuthStatus(ctx)
	c.store.SetLoading(false)
	return ok
}

// CheckAuthStatus asks the service whether the current session is still
// valid. It never returns an error: this is the silent background check, and
// every failure path - missing credential, transport error, rejection,
// unusable body - collapses into a cleared store and false. Repeat calls
// against an unchanged remote session are idempotent and never touch the
// Loading flag.
func (c *Client) CheckAuthStatus(ctx context.Context) bool {
	token, ok := c.credential()
	if !ok {
		c.invalidate()
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth", nil)
	if err != nil {
		c.invalidate()
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	c.strategy.Attach(req, token)

	resp, err := c.strategy.HTTPClient().Do(req)
	if err != nil {
		log.Printf("auth check: %v", err)
		c.invalidate()
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		c.invalidate()
		return false
	}

	var body authResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.User == nil {
		c.invalidate()
		return false
	}

	if token != "" {
		c.store.SetToken(token)
	}
	c.store.SetUser(*body.User)
	return true
}

// Login authenticates with the service. Success is exactly HTTP 200. On
// rejection the returned error is an *AuthError carrying the service's
// message, and the store is left untouched.
func (c *Client) Login(ctx context.Context, username, password string) error {
	return c.authenticate(ctx, "/auth/login", http.StatusOK, "Login failed", username, password)
}

// Register creates an account and signs it in. Success is exactly HTTP 201;
// a 200 here is a contract violation and counts as failure.
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.authenticate(ctx, "/auth/register", http.StatusCreated, "Registration failed", username, password)
}

func (c *Client) authenticate(ctx context.Context, path string, wantStatus int, defaultMsg, username, password string) error {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.strategy.HTTPClient().Do(req)
	if err != nil {
		log.Printf("%s: %v", path, err)
		return fmt.Errorf("reaching service: %w", err)
	}
	defer resp.Body.Close()

	var body authResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode != wantStatus {
		if decodeErr == nil && body.Message != "" {
			return &AuthError{Message: body.Message}
		}
		return &AuthError{Message: defaultMsg}
	}
	if decodeErr != nil || body.User == nil {
		// Success status with a body we cannot use. Same treatment as a
		// rejection; the store stays untouched.
		return &AuthError{Message: defaultMsg}
	}

	// The credential must be durably retrievable before the store ever
	// reports the session authenticated.
	if err := c.strategy.Persist(body.Token); err != nil {
		log.Printf("persisting credential: %v", err)
		return fmt.Errorf("persisting credential: %w", err)
	}
	if body.Token != "" {
		c.store.SetToken(body.Token)
	}
	c.store.SetUser(*body.User)
	return nil
}

// Logout signs out locally first - the cleared state is visible with zero
// latency and is never rolled back - then asks the service to invalidate its
// side of the session on a detached best-effort call whose outcome is only
// logged.
func (c *Client) Logout() {
	token := c.store.Token()
	c.store.Clear()
	if err := c.strategy.Discard(); err != nil {
		log.Printf("discarding credential: %v", err)
	}

	go func() {
		timeout := c.strategy.HTTPClient().Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/logout", nil)
		if err != nil {
			return
		}
		c.strategy.Attach(req, token)

		resp, err := c.strategy.HTTPClient().Do(req)
		if err != nil {
			log.Printf("logout: %v", err)
			return
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()
}

// credential resolves the proof to send with a status check: the in-memory
// token first, then whatever a previous run left in durable storage.
func (c *Client) credential() (string, bool) {
	if token := c.store.Token(); token != "" {
		return token, true
	}
	return c.strategy.Restore()
}

// invalidate treats the session as revoked: local state cleared, durable
// credential removed.
func (c *Client) invalidate() {
	c.store.Clear()
	if err := c.strategy.Discard(); err != nil {
		log.Printf("discarding credential: %v", err)
	}
}
