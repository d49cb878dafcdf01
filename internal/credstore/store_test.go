package credstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutGetDelete(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "credentials.db"))

	_, found, err := s.Get(TokenKey)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, s.Put(TokenKey, "tok-1"))
	value, found, err := s.Get(TokenKey)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "tok-1", value)

	// Put replaces.
	require.NoError(t, s.Put(TokenKey, "tok-2"))
	value, _, err = s.Get(TokenKey)
	require.NoError(t, err)
	require.Equal(t, "tok-2", value)

	require.NoError(t, s.Delete(TokenKey))
	_, found, err = s.Get(TokenKey)
	require.NoError(t, err)
	require.False(t, found)

	// Deleting an absent key is not an error.
	require.NoError(t, s.Delete(TokenKey))
}

func TestValuesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")

	s := openStore(t, path)
	require.NoError(t, s.Put(TokenKey, "tok-1"))
	require.NoError(t, s.Close())

	reopened := openStore(t, path)
	value, found, err := reopened.Get(TokenKey)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "tok-1", value)
}
