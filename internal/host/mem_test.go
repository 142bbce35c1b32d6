package host

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mv/tabctl/internal/domain"
)

func urlsOf(tabs []domain.TabSnapshot) []string {
	out := make([]string, len(tabs))
	for i, t := range tabs {
		out[i] = t.URL
	}
	return out
}

func TestNewMemSeedsOneWindow(t *testing.T) {
	m := NewMem("https://a.com/", "https://b.com/")

	tabs, err := m.ListTabs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.com/", "https://b.com/"}, urlsOf(tabs))
	assert.Empty(t, m.Ops, "seeding must not count as a mutation")
	assert.True(t, tabs[0].Active)
}

func TestMoveTabIsPositional(t *testing.T) {
	ctx := context.Background()
	m := NewMem("https://a.com/", "https://b.com/", "https://c.com/")

	// Moving the last tab to the front shifts the others right.
	require.NoError(t, m.MoveTab(ctx, "tab-3", 0))

	tabs, err := m.ListTabs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://c.com/", "https://a.com/", "https://b.com/"}, urlsOf(tabs))
	assert.Equal(t, []string{"move:tab-3:0"}, m.Ops)
}

func TestMoveTabClampsIndex(t *testing.T) {
	ctx := context.Background()
	m := NewMem("https://a.com/", "https://b.com/")

	require.NoError(t, m.MoveTab(ctx, "tab-1", 99))

	tabs, _ := m.ListTabs(ctx)
	assert.Equal(t, []string{"https://b.com/", "https://a.com/"}, urlsOf(tabs))
}

func TestRemoveTabsIgnoresUnknownIDs(t *testing.T) {
	ctx := context.Background()
	m := NewMem("https://a.com/", "https://b.com/")

	require.NoError(t, m.RemoveTabs(ctx, []domain.TabID{"tab-2", "tab-99"}))

	tabs, _ := m.ListTabs(ctx)
	assert.Equal(t, []string{"https://a.com/"}, urlsOf(tabs))
}

func TestUpdateTabPinAndActivate(t *testing.T) {
	ctx := context.Background()
	m := NewMem("https://a.com/", "https://b.com/")

	require.NoError(t, m.UpdateTab(ctx, "tab-2", TabUpdate{Pinned: BoolPtr(true), Active: true}))

	active, err := m.ActiveTab(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.TabID("tab-2"), active.ID)
	assert.True(t, active.Pinned)
}

func TestCreateWindowFocusSwitchesCurrent(t *testing.T) {
	ctx := context.Background()
	m := NewMem("https://a.com/")

	id, err := m.CreateWindow(ctx, []string{"https://b.com/"}, true)
	require.NoError(t, err)
	assert.Equal(t, WindowID("win-2"), id)

	tabs, _ := m.ListTabs(ctx)
	assert.Equal(t, []string{"https://b.com/"}, urlsOf(tabs))
}

func TestUpdateWindowState(t *testing.T) {
	ctx := context.Background()
	m := NewMem("https://a.com/")

	require.NoError(t, m.UpdateWindow(ctx, m.Windows[0].ID, domain.WindowMinimized))
	assert.Equal(t, domain.WindowMinimized, m.Windows[0].State)

	assert.Error(t, m.UpdateWindow(ctx, "win-99", domain.WindowNormal))
}

func TestFailInjection(t *testing.T) {
	ctx := context.Background()
	m := NewMem("https://a.com/", "https://b.com/")
	boom := errors.New("boom")
	m.Fail["move:tab-1:1"] = boom

	err := m.MoveTab(ctx, "tab-1", 1)
	assert.ErrorIs(t, err, boom)
	// The failed op is still recorded.
	assert.Equal(t, []string{"move:tab-1:1"}, m.Ops)
}

func TestNewMemFromPreservesIdentity(t *testing.T) {
	tabs := []domain.TabSnapshot{
		{ID: "x-1", URL: "https://a.com/", Pinned: true},
		{ID: "x-2", URL: "https://b.com/", Active: true},
	}
	m := NewMemFrom(tabs)

	got, err := m.ListTabs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.TabID("x-1"), got[0].ID)
	assert.True(t, got[0].Pinned)
	assert.True(t, got[1].Active)

	// IDs survive mutation too.
	require.NoError(t, m.MoveTab(context.Background(), "x-2", 0))
	got, _ = m.ListTabs(context.Background())
	assert.Equal(t, domain.TabID("x-2"), got[0].ID)
}

func TestSequentialSerializesMutations(t *testing.T) {
	ctx := context.Background()
	s := Sequential(NewMem("https://a.com/", "https://b.com/", "https://c.com/"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.MoveTab(ctx, "tab-2", 0)
			_, _ = s.ListTabs(ctx)
		}()
	}
	wg.Wait()

	tabs, err := s.ListTabs(ctx)
	require.NoError(t, err)
	assert.Len(t, tabs, 3)
	assert.Equal(t, "https://b.com/", tabs[0].URL)
}
