package host

import (
	"context"
	"sync"

	"github.com/mv/tabctl/internal/domain"
)

// Sequential wraps a surface so that at most one host call is in flight
// at a time. Positional-move and window-creation semantics are defined
// relative to the host's current arrangement, so every mutation must be
// acknowledged before the next is issued.
func Sequential(s Surface) Surface {
	return &sequential{inner: s}
}

type sequential struct {
	mu    sync.Mutex
	inner Surface
}

func (q *sequential) ListTabs(ctx context.Context) ([]domain.TabSnapshot, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.inner.ListTabs(ctx)
}

func (q *sequential) ListWindows(ctx context.Context) ([]domain.WindowSnapshot, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.inner.ListWindows(ctx)
}

func (q *sequential) WindowTabs(ctx context.Context, id WindowID) ([]domain.TabSnapshot, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.inner.WindowTabs(ctx, id)
}

func (q *sequential) ActiveTab(ctx context.Context) (domain.TabSnapshot, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.inner.ActiveTab(ctx)
}

func (q *sequential) HighlightedTabs(ctx context.Context) ([]domain.TabSnapshot, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.inner.HighlightedTabs(ctx)
}

func (q *sequential) MoveTab(ctx context.Context, id domain.TabID, index int) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.inner.MoveTab(ctx, id, index)
}

func (q *sequential) RemoveTabs(ctx context.Context, ids []domain.TabID) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.inner.RemoveTabs(ctx, ids)
}

func (q *sequential) UpdateTab(ctx context.Context, id domain.TabID, upd TabUpdate) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.inner.UpdateTab(ctx, id, upd)
}

func (q *sequential) CreateWindow(ctx context.Context, urls []string, focused bool) (WindowID, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.inner.CreateWindow(ctx, urls, focused)
}

func (q *sequential) UpdateWindow(ctx context.Context, id WindowID, state domain.WindowState) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.inner.UpdateWindow(ctx, id, state)
}
