package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetMissingKey(t *testing.T) {
	s := openTestStore(t)

	v, err := s.Get("absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSetGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Set("k", []byte("hello")))
	v, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), v)
}

func TestSetOverwrites(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Set("k", []byte("one")))
	require.NoError(t, s.Set("k", []byte("two")))

	v, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), v)
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Set("k", []byte("v")))
	require.NoError(t, s.Delete("k"))

	v, err := s.Get("k")
	require.NoError(t, err)
	assert.Nil(t, v)

	// Deleting an absent key is fine.
	require.NoError(t, s.Delete("k"))
}

func TestQuota(t *testing.T) {
	s := openTestStore(t, WithMaxValueBytes(8))

	require.NoError(t, s.Set("small", []byte("12345678")))

	err := s.Set("big", []byte("123456789"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrQuotaExceeded))

	// Nothing was written for the rejected key.
	v, err := s.Get("big")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestQuotaDisabled(t *testing.T) {
	s := openTestStore(t, WithMaxValueBytes(0))

	big := make([]byte, DefaultMaxValueBytes+1)
	require.NoError(t, s.Set("big", big))
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("k", []byte("durable")))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	v, err := s2.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("durable"), v)
}
