package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// requireInvariant asserts the store's core invariant:
// Authenticated exactly when a user is set.
func requireInvariant(t *testing.T, st State) {
	t.Helper()
	require.Equal(t, st.User != nil, st.Authenticated)
}

func TestStoreInitialState(t *testing.T) {
	s := NewStore()
	st := s.State()

	require.True(t, st.Loading)
	require.False(t, st.Authenticated)
	require.Nil(t, st.User)
	require.Empty(t, st.Token)
	requireInvariant(t, st)
}

func TestStoreSetUserAndClear(t *testing.T) {
	s := NewStore()

	s.SetToken("tok")
	s.SetUser(User{ID: 1, Username: "alice"})
	st := s.State()
	require.True(t, st.Authenticated)
	require.Equal(t, "alice", st.User.Username)
	require.Equal(t, "tok", st.Token)
	requireInvariant(t, st)

	s.Clear()
	st = s.State()
	require.False(t, st.Authenticated)
	require.Nil(t, st.User)
	require.Empty(t, st.Token)
	requireInvariant(t, st)
}

func TestStoreUserReplacedWholesale(t *testing.T) {
	s := NewStore()
	s.SetUser(User{ID: 1, Username: "alice"})
	s.SetUser(User{ID: 2, Username: "bob"})

	st := s.State()
	require.Equal(t, 2, st.User.ID)
	require.Equal(t, "bob", st.User.Username)
	requireInvariant(t, st)
}

func TestStoreSnapshotIsIsolated(t *testing.T) {
	s := NewStore()
	s.SetUser(User{ID: 1, Username: "alice"})

	st := s.State()
	st.User.Username = "mallory"

	require.Equal(t, "alice", s.State().User.Username)
}

func TestStoreSetLoading(t *testing.T) {
	s := NewStore()
	s.SetLoading(false)
	require.False(t, s.State().Loading)
	s.SetLoading(true)
	require.True(t, s.State().Loading)
}
