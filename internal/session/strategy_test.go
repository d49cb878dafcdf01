package session

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/memoriq/memoriq-tui/internal/credstore"
)

// ---- bearer ----

func newBearerForTest(t *testing.T) *BearerStrategy {
	t.Helper()
	creds, err := credstore.Open(filepath.Join(t.TempDir(), "credentials.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = creds.Close() })
	return NewBearerStrategy(creds, time.Second)
}

func TestBearerRestoreWithoutTokenReportsNoSession(t *testing.T) {
	b := newBearerForTest(t)

	token, ok := b.Restore()
	require.False(t, ok)
	require.Empty(t, token)
}

func TestBearerPersistRestoreDiscard(t *testing.T) {
	b := newBearerForTest(t)

	require.NoError(t, b.Persist("tok-123"))
	token, ok := b.Restore()
	require.True(t, ok)
	require.Equal(t, "tok-123", token)

	require.NoError(t, b.Discard())
	_, ok = b.Restore()
	require.False(t, ok)
}

func TestBearerPersistRejectsEmptyToken(t *testing.T) {
	b := newBearerForTest(t)
	require.Error(t, b.Persist(""))
}

func TestBearerAttachSetsAuthorizationHeader(t *testing.T) {
	b := newBearerForTest(t)

	req, err := http.NewRequest(http.MethodGet, "http://localhost:8001/auth", nil)
	require.NoError(t, err)

	b.Attach(req, "tok-123")
	require.Equal(t, "Bearer tok-123", req.Header.Get("Authorization"))

	bare, err := http.NewRequest(http.MethodGet, "http://localhost:8001/auth", nil)
	require.NoError(t, err)
	b.Attach(bare, "")
	require.Empty(t, bare.Header.Get("Authorization"))
}

// ---- cookie ----

func TestCookieStrategyPersistRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := NewCookieStrategy("http://localhost:8001", path, time.Second)
	require.NoError(t, err)

	u, err := url.Parse("http://localhost:8001")
	require.NoError(t, err)
	s.jar.SetCookies(u, []*http.Cookie{{Name: "memoriq_session", Value: "abc", Path: "/"}})
	require.NoError(t, s.Persist(""))

	// A fresh strategy over the same file stands in for a restarted process.
	fresh, err := NewCookieStrategy("http://localhost:8001", path, time.Second)
	require.NoError(t, err)
	_, ok := fresh.Restore()
	require.True(t, ok)

	cookies := fresh.jar.Cookies(u)
	require.Len(t, cookies, 1)
	require.Equal(t, "memoriq_session", cookies[0].Name)
	require.Equal(t, "abc", cookies[0].Value)
}

func TestCookieRestoreAlwaysAllowsNetworkCheck(t *testing.T) {
	s, err := NewCookieStrategy("http://localhost:8001", filepath.Join(t.TempDir(), "session.json"), time.Second)
	require.NoError(t, err)

	// No persisted file: the client cannot rule out an ambient session, so
	// the status check must still go to the service.
	token, ok := s.Restore()
	require.True(t, ok)
	require.Empty(t, token)
}

func TestCookieDiscardRemovesPersistedJar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := NewCookieStrategy("http://localhost:8001", path, time.Second)
	require.NoError(t, err)

	u, err := url.Parse("http://localhost:8001")
	require.NoError(t, err)
	s.jar.SetCookies(u, []*http.Cookie{{Name: "memoriq_session", Value: "abc", Path: "/"}})
	require.NoError(t, s.Persist(""))
	_, statErr := os.Stat(path)
	require.NoError(t, statErr)

	require.NoError(t, s.Discard())
	_, statErr = os.Stat(path)
	require.True(t, os.IsNotExist(statErr))

	// Discarding again is fine.
	require.NoError(t, s.Discard())
}
