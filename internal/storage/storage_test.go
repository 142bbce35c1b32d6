package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetMissingKey(t *testing.T) {
	s := newTestStore(t)

	_, ok, err := s.Get(context.Background(), KeySessions)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeySettings, `{"urlInputVisible":false}`))

	got, ok, err := s.Get(ctx, KeySettings)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"urlInputVisible":false}`, got)
}

func TestSetReplacesValue(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeySessions, "[]"))
	require.NoError(t, s.Set(ctx, KeySessions, `[{"timestamp":1}]`))

	got, ok, err := s.Get(ctx, KeySessions)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"timestamp":1}]`, got)
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, KeySessions, "[]"))
	require.NoError(t, s.Close())

	s2, err := New(dir)
	require.NoError(t, err)
	defer s2.Close()

	_, ok, err := s2.Get(ctx, KeySessions)
	require.NoError(t, err)
	assert.True(t, ok)
}
