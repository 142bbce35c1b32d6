// Package domain defines the core entities for tabctl.
// Everything here is a copied snapshot: no type holds a live reference
// to a host tab or window object.
package domain

import "strings"

// TabID is the host-assigned identity of an open tab. It is an opaque
// handle used only to issue mutation commands back to the host; content
// identity is always the URL, never the ID.
type TabID string

// TabSnapshot is a read-only copy of one open tab at query time.
type TabSnapshot struct {
	ID          TabID  `json:"id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Pinned      bool   `json:"pinned"`
	Active      bool   `json:"active"`
	WindowIndex int    `json:"windowIndex"`
}

// WindowState is the persisted presentation state of a window.
type WindowState string

const (
	WindowNormal    WindowState = "normal"
	WindowMinimized WindowState = "minimized"
	WindowMaximized WindowState = "maximized"
)

// ParseWindowState matches s against the three recognized states,
// case-insensitively. Anything else returns ok=false; callers skip
// applying the state rather than failing.
func ParseWindowState(s string) (WindowState, bool) {
	switch strings.ToLower(s) {
	case "normal":
		return WindowNormal, true
	case "minimized":
		return WindowMinimized, true
	case "maximized":
		return WindowMaximized, true
	}
	return "", false
}

// WindowSnapshot is a read-only copy of one window and its tabs, in
// tab-strip order.
type WindowSnapshot struct {
	Focused bool          `json:"focused"`
	State   string        `json:"state"`
	Tabs    []TabSnapshot `json:"tabs"`
}

// URLs returns the window's tab URLs in order.
func (w WindowSnapshot) URLs() []string {
	urls := make([]string, len(w.Tabs))
	for i, t := range w.Tabs {
		urls[i] = t.URL
	}
	return urls
}
