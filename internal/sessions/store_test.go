package sessions

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mv/tabctl/internal/domain"
	"github.com/mv/tabctl/internal/host"
)

type memKV struct {
	data map[string]string
	sets int
}

func newMemKV() *memKV {
	return &memKV{data: map[string]string{}}
}

func (m *memKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(ctx context.Context, key, value string) error {
	m.data[key] = value
	m.sets++
	return nil
}

func newTestStore() (*Store, *memKV) {
	kv := newMemKV()
	s := New(kv).WithClock(func() time.Time {
		return time.UnixMilli(1700000000000)
	})
	return s, kv
}

func tabs(urls ...string) []domain.TabSnapshot {
	out := make([]domain.TabSnapshot, len(urls))
	for i, u := range urls {
		out[i] = domain.TabSnapshot{ID: domain.TabID(string(rune('a' + i))), URL: u}
	}
	return out
}

func TestSaveBuildsSession(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	sess, err := s.Save(ctx, tabs("https://a.com/", "https://b.com/"))
	require.NoError(t, err)

	assert.Equal(t, int64(1700000000000), sess.Timestamp)
	assert.Equal(t, 2, sess.TabCount)
	assert.Equal(t, []string{"https://a.com/", "https://b.com/"}, sess.URLs)
	assert.Nil(t, sess.CustomName)
	assert.Equal(t, "2 tabs", sess.DisplayName())
}

func TestSavePrependsNewestFirst(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	_, err := s.Save(ctx, tabs("https://old.example.com/"))
	require.NoError(t, err)
	_, err = s.Save(ctx, tabs("https://new.example.com/"))
	require.NoError(t, err)

	col, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, col, 2)
	assert.Equal(t, "https://new.example.com/", col[0].URLs[0])
	assert.Equal(t, "https://old.example.com/", col[1].URLs[0])
}

func TestListEmptyStore(t *testing.T) {
	s, _ := newTestStore()
	col, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, col)
}

func TestRenameSetsCustomName(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	_, err := s.Save(ctx, tabs("https://a.com/"))
	require.NoError(t, err)

	sess, err := s.Rename(ctx, 0, "  research  ")
	require.NoError(t, err)
	require.NotNil(t, sess.CustomName)
	assert.Equal(t, "research", *sess.CustomName)
	assert.Equal(t, "research", sess.DisplayName())
}

func TestRenameTruncatesLongName(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	_, err := s.Save(ctx, tabs("https://a.com/"))
	require.NoError(t, err)

	long := strings.Repeat("x", 40)
	sess, err := s.Rename(ctx, 0, long)
	require.NoError(t, err)
	require.NotNil(t, sess.CustomName)
	assert.Equal(t, strings.Repeat("x", 25)+"...", *sess.CustomName)
	assert.Len(t, *sess.CustomName, 28)
}

func TestRenameEmptyRevertsToDefault(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	_, err := s.Save(ctx, tabs("https://a.com/"))
	require.NoError(t, err)

	_, err = s.Rename(ctx, 0, "keep")
	require.NoError(t, err)

	sess, err := s.Rename(ctx, 0, "   ")
	require.NoError(t, err)
	assert.Nil(t, sess.CustomName)
	assert.Equal(t, "1 tabs", sess.DisplayName())
}

func TestRenameDefaultLabelRevertsToDefault(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	_, err := s.Save(ctx, tabs("https://a.com/", "https://b.com/"))
	require.NoError(t, err)

	sess, err := s.Rename(ctx, 0, "2 tabs")
	require.NoError(t, err)
	assert.Nil(t, sess.CustomName)
}

func TestRenameOutOfRange(t *testing.T) {
	s, _ := newTestStore()
	_, err := s.Rename(context.Background(), 3, "x")
	assert.True(t, domain.IsValidation(err))
}

func TestRemoveRequiresConfirmation(t *testing.T) {
	s, kv := newTestStore()
	ctx := context.Background()
	_, err := s.Save(ctx, tabs("https://a.com/"))
	require.NoError(t, err)
	writes := kv.sets

	err = s.Remove(ctx, 0, Confirmation{})
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Equal(t, writes, kv.sets, "unarmed remove must not write")

	require.NoError(t, s.Remove(ctx, 0, Confirmed()))
	col, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, col)
}

func TestClearRequiresConfirmation(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	_, err := s.Save(ctx, tabs("https://a.com/"))
	require.NoError(t, err)

	assert.ErrorIs(t, s.Clear(ctx, Confirmation{}), ErrNotConfirmed)

	require.NoError(t, s.Clear(ctx, Confirmed()))
	col, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, col)
}

func TestRestoreIsOneWindowCall(t *testing.T) {
	s, _ := newTestStore()
	m := host.NewMem()

	sess := domain.Session{
		Timestamp: 100,
		TabCount:  2,
		URLs:      []string{"https://a.com/", "https://b.com/"},
	}
	require.NoError(t, s.Restore(context.Background(), m, sess))

	// One createwindow op, no per-tab calls.
	require.Len(t, m.Ops, 1)
	assert.Contains(t, m.Ops[0], "createwindow")

	wins, err := m.ListWindows(context.Background())
	require.NoError(t, err)
	last := wins[len(wins)-1]
	assert.Equal(t, []string{"https://a.com/", "https://b.com/"}, last.URLs())
}

func TestMergeSkipsExistingKeys(t *testing.T) {
	existing := domain.Collection{
		{Timestamp: 100, TabCount: 1, URLs: []string{"u1"}},
	}
	incoming := domain.Collection{
		{Timestamp: 100, TabCount: 1, URLs: []string{"u1"}},
		{Timestamp: 200, TabCount: 1, URLs: []string{"u2"}},
	}

	res := Merge(incoming, existing)
	assert.Len(t, res.Merged, 2)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, int64(200), res.Merged[0].Timestamp, "survivors are prepended")
}

func TestMergeCountInvariant(t *testing.T) {
	incoming := domain.Collection{
		{Timestamp: 1, URLs: []string{"a"}},
		{Timestamp: 2, URLs: []string{"b"}},
		{Timestamp: 2, URLs: []string{"b", "extra"}}, // same weak key as above
	}
	res := Merge(incoming, nil)
	assert.Equal(t, len(incoming), res.Added+res.Skipped)
}

func TestMergeIdempotentReimport(t *testing.T) {
	col := domain.Collection{
		{Timestamp: 10, URLs: []string{"x"}},
		{Timestamp: 20, URLs: []string{"y"}},
	}
	res := Merge(col, col)
	assert.Equal(t, 0, res.Added)
	assert.Equal(t, len(col), res.Skipped)
	assert.Len(t, res.Merged, len(col))
}

func TestImportPersistsMerge(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	_, err := s.Save(ctx, tabs("https://a.com/"))
	require.NoError(t, err)

	res, err := s.Import(ctx, domain.Collection{
		{Timestamp: 42, TabCount: 1, URLs: []string{"https://b.com/"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Added)

	col, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, col, 2)
	assert.Equal(t, int64(42), col[0].Timestamp)
}
