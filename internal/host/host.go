// Package host defines the browser surface tabctl talks to: querying
// tabs and windows, and issuing mutations back. The core packages never
// hold live host objects; they exchange snapshots and IDs.
package host

import (
	"context"
	"errors"

	"github.com/mv/tabctl/internal/domain"
)

// ErrUnsupported is returned by a surface for operations its transport
// cannot express. Callers degrade to a logged partial result instead of
// failing the whole batch.
var ErrUnsupported = errors.New("operation not supported by this host")

// WindowID is the host-assigned identity of a window.
type WindowID string

// TabUpdate describes a mutation of a single tab. Nil fields are left
// untouched.
type TabUpdate struct {
	Pinned *bool
	Active bool
}

// Surface is the host tab/window query and mutation interface.
type Surface interface {
	// ListTabs returns the tabs of the current window in strip order.
	ListTabs(ctx context.Context) ([]domain.TabSnapshot, error)
	// ListWindows returns all open windows and their tabs.
	ListWindows(ctx context.Context) ([]domain.WindowSnapshot, error)
	// WindowTabs returns the tabs of one window in strip order.
	WindowTabs(ctx context.Context, id WindowID) ([]domain.TabSnapshot, error)
	// ActiveTab returns the active tab of the current window.
	ActiveTab(ctx context.Context) (domain.TabSnapshot, error)
	// HighlightedTabs returns the user-selected tabs, possibly empty.
	HighlightedTabs(ctx context.Context) ([]domain.TabSnapshot, error)
	// MoveTab moves a tab to index, relative to the current arrangement.
	MoveTab(ctx context.Context, id domain.TabID, index int) error
	// RemoveTabs closes the given tabs.
	RemoveTabs(ctx context.Context, ids []domain.TabID) error
	// UpdateTab applies pinned/active changes to one tab.
	UpdateTab(ctx context.Context, id domain.TabID, upd TabUpdate) error
	// CreateWindow opens one new window containing urls, in order.
	CreateWindow(ctx context.Context, urls []string, focused bool) (WindowID, error)
	// UpdateWindow applies a presentation state to a window.
	UpdateWindow(ctx context.Context, id WindowID, state domain.WindowState) error
}

// BoolPtr is a convenience for TabUpdate fields.
func BoolPtr(b bool) *bool { return &b }
