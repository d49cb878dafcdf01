package session

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/memoriq/memoriq-tui/internal/credstore"
)

// CredentialStrategy abstracts how a session is proven to the service and
// how the proof survives a process restart. The state machine in Client is
// shared; only credential attachment and storage differ between the two
// variants.
type CredentialStrategy interface {
	// HTTPClient returns the client all session requests go through.
	HTTPClient() *http.Client

	// Restore returns the credential left behind by a previous run. ok
	// reports whether a session could plausibly exist: a bearer strategy
	// with no stored token returns false so the status check can skip the
	// network round trip entirely.
	Restore() (token string, ok bool)

	// Attach adds the credential to an outgoing request. The jar-backed
	// variant has nothing to do here.
	Attach(req *http.Request, token string)

	// Persist durably records a freshly issued credential. It must succeed
	// before the store ever reports the session authenticated.
	Persist(token string) error

	// Discard removes the durable credential. Called on logout and whenever
	// the service rejects a verification (revoked or expired session).
	Discard() error
}

// BearerStrategy carries an opaque token in the Authorization header and
// keeps it in the credential store between runs.
type BearerStrategy struct {
	creds *credstore.Store
	http  *http.Client
}

// NewBearerStrategy builds the token-mode strategy on top of the given
// credential store.
func NewBearerStrategy(creds *credstore.Store, timeout time.Duration) *BearerStrategy {
	return &BearerStrategy{
		creds: creds,
		http:  &http.Client{Timeout: timeout},
	}
}

func (b *BearerStrategy) HTTPClient() *http.Client {
	return b.http
}

func (b *BearerStrategy) Restore() (string, bool) {
	token, found, err := b.creds.Get(credstore.TokenKey)
	if err != nil || !found {
		return "", false
	}
	return token, true
}

func (b *BearerStrategy) Persist(token string) error {
	if token == "" {
		return fmt.Errorf("service issued no token")
	}
	return b.creds.Put(credstore.TokenKey, token)
}

func (b *BearerStrategy) Discard() error {
	return b.creds.Delete(credstore.TokenKey)
}

func (b *BearerStrategy) Attach(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// CookieStrategy lets the cookie jar carry the session. The service owns the
// credential; the client never reads cookie values, it only serializes the
// jar to disk so a terminal process gets the durability a browser's jar
// provides for free.
type CookieStrategy struct {
	serviceURL  *url.URL
	sessionPath string
	jar         http.CookieJar
	http        *http.Client
}

// NewCookieStrategy builds the cookie-mode strategy. sessionPath is where
// the jar is persisted between runs.
func NewCookieStrategy(serviceURL, sessionPath string, timeout time.Duration) (*CookieStrategy, error) {
	u, err := url.Parse(serviceURL)
	if err != nil {
		return nil, fmt.Errorf("parsing service URL: %w", err)
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	return &CookieStrategy{
		serviceURL:  u,
		sessionPath: sessionPath,
		jar:         jar,
		http:        &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

func (c *CookieStrategy) HTTPClient() *http.Client {
	return c.http
}

// Attach is a no-op: the jar on the HTTP client carries the cookies.
func (c *CookieStrategy) Attach(*http.Request, string) {}

// savedSession is the JSON structure written to disk.
type savedSession struct {
	Cookies []savedCookie `json:"cookies"`
	SavedAt time.Time     `json:"saved_at"`
}

type savedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Domain   string    `json:"domain"`
	Path     string    `json:"path"`
	Expires  time.Time `json:"expires"`
	Secure   bool      `json:"secure"`
	HttpOnly bool      `json:"http_only"`
}

// Restore loads any persisted cookies into the jar. ok is always true: the
// client cannot tell whether an ambient cookie session exists without asking
// the service, so the status check must always go to the network.
func (c *CookieStrategy) Restore() (string, bool) {
	data, err := os.ReadFile(c.sessionPath)
	if err != nil {
		return "", true
	}

	var saved savedSession
	if err := json.Unmarshal(data, &saved); err != nil {
		return "", true
	}

	cookies := make([]*http.Cookie, len(saved.Cookies))
	for i, sc := range saved.Cookies {
		cookies[i] = &http.Cookie{
			Name:     sc.Name,
			Value:    sc.Value,
			Domain:   sc.Domain,
			Path:     sc.Path,
			Expires:  sc.Expires,
			Secure:   sc.Secure,
			HttpOnly: sc.HttpOnly,
		}
	}
	c.jar.SetCookies(c.serviceURL, cookies)
	return "", true
}

// Persist writes the jar's cookies for the service to disk. The token
// argument is unused: in cookie mode the response's Set-Cookie already
// landed in the jar.
func (c *CookieStrategy) Persist(string) error {
	cookies := c.jar.Cookies(c.serviceURL)

	sc := make([]savedCookie, len(cookies))
	for i, ck := range cookies {
		sc[i] = savedCookie{
			Name:     ck.Name,
			Value:    ck.Value,
			Domain:   ck.Domain,
			Path:     ck.Path,
			Expires:  ck.Expires,
			Secure:   ck.Secure,
			HttpOnly: ck.HttpOnly,
		}
	}

	data, err := json.MarshalIndent(savedSession{
		Cookies: sc,
		SavedAt: time.Now(),
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.sessionPath, data, 0o600)
}

// Discard removes the persisted jar. The in-memory jar is left alone: the
// best-effort logout request still needs the cookie to name the session it
// is asking the service to invalidate, and the service's Set-Cookie response
// (or the next failed status check) retires it.
func (c *CookieStrategy) Discard() error {
	err := os.Remove(c.sessionPath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
