package host

import (
	"context"
	"fmt"

	"github.com/mv/tabctl/internal/domain"
)

// Mem is an in-memory surface backing tests and --dry-run. It supports
// every operation, including the ones a CDP transport cannot express,
// and records the order of mutations it receives.
type Mem struct {
	Windows []MemWindow
	Current int // index of the "current" window

	nextTab     int
	nextWin     int
	highlighted []domain.TabID

	// Ops records each mutation in issue order, e.g. "move:tab-3:0".
	Ops []string

	// Fail maps an op-log entry to an error injected for that call.
	Fail map[string]error
}

// MemWindow is the mutable window state behind the snapshots.
type MemWindow struct {
	ID      WindowID
	Focused bool
	State   domain.WindowState
	Tabs    []domain.TabSnapshot
	Active  domain.TabID
}

// NewMem builds a surface with a single window holding tabs for urls.
func NewMem(urls ...string) *Mem {
	m := &Mem{Fail: map[string]error{}}
	if _, err := m.CreateWindow(context.Background(), urls, true); err != nil {
		panic(err) // cannot happen: Fail is empty
	}
	m.Ops = nil
	return m
}

// NewMemFrom builds a surface mirroring an existing window, preserving
// tab IDs. Used to preview mutations without touching the real browser.
func NewMemFrom(tabs []domain.TabSnapshot) *Mem {
	w := MemWindow{ID: "win-1", Focused: true, State: domain.WindowNormal}
	for _, t := range tabs {
		w.Tabs = append(w.Tabs, t)
		if t.Active {
			w.Active = t.ID
		}
	}
	return &Mem{Windows: []MemWindow{w}, nextWin: 1, Fail: map[string]error{}}
}

func (m *Mem) op(s string) error {
	m.Ops = append(m.Ops, s)
	if err, ok := m.Fail[s]; ok {
		return err
	}
	return nil
}

func (m *Mem) current() *MemWindow {
	return &m.Windows[m.Current]
}

func (m *Mem) find(id domain.TabID) (wi, ti int, ok bool) {
	for wi := range m.Windows {
		for ti := range m.Windows[wi].Tabs {
			if m.Windows[wi].Tabs[ti].ID == id {
				return wi, ti, true
			}
		}
	}
	return 0, 0, false
}

func (m *Mem) snapshot(w *MemWindow) []domain.TabSnapshot {
	out := make([]domain.TabSnapshot, len(w.Tabs))
	for i, t := range w.Tabs {
		t.Active = t.ID == w.Active
		t.WindowIndex = i
		out[i] = t
	}
	return out
}

func (m *Mem) ListTabs(ctx context.Context) ([]domain.TabSnapshot, error) {
	return m.snapshot(m.current()), nil
}

func (m *Mem) ListWindows(ctx context.Context) ([]domain.WindowSnapshot, error) {
	out := make([]domain.WindowSnapshot, len(m.Windows))
	for i := range m.Windows {
		w := &m.Windows[i]
		out[i] = domain.WindowSnapshot{
			Focused: w.Focused,
			State:   string(w.State),
			Tabs:    m.snapshot(w),
		}
	}
	return out, nil
}

func (m *Mem) WindowTabs(ctx context.Context, id WindowID) ([]domain.TabSnapshot, error) {
	for i := range m.Windows {
		if m.Windows[i].ID == id {
			return m.snapshot(&m.Windows[i]), nil
		}
	}
	return nil, fmt.Errorf("window %s not found", id)
}

func (m *Mem) ActiveTab(ctx context.Context) (domain.TabSnapshot, error) {
	w := m.current()
	for _, t := range m.snapshot(w) {
		if t.Active {
			return t, nil
		}
	}
	return domain.TabSnapshot{}, fmt.Errorf("no active tab")
}

// Highlight marks tabs as user-selected in the current window.
func (m *Mem) Highlight(ids ...domain.TabID) {
	m.highlighted = ids
}

func (m *Mem) HighlightedTabs(ctx context.Context) ([]domain.TabSnapshot, error) {
	var out []domain.TabSnapshot
	for _, t := range m.snapshot(m.current()) {
		for _, id := range m.highlighted {
			if t.ID == id {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func (m *Mem) MoveTab(ctx context.Context, id domain.TabID, index int) error {
	if err := m.op(fmt.Sprintf("move:%s:%d", id, index)); err != nil {
		return err
	}
	wi, ti, ok := m.find(id)
	if !ok {
		return fmt.Errorf("tab %s not found", id)
	}
	w := &m.Windows[wi]
	tab := w.Tabs[ti]
	w.Tabs = append(w.Tabs[:ti], w.Tabs[ti+1:]...)
	if index > len(w.Tabs) {
		index = len(w.Tabs)
	}
	w.Tabs = append(w.Tabs[:index], append([]domain.TabSnapshot{tab}, w.Tabs[index:]...)...)
	return nil
}

func (m *Mem) RemoveTabs(ctx context.Context, ids []domain.TabID) error {
	for _, id := range ids {
		if err := m.op(fmt.Sprintf("remove:%s", id)); err != nil {
			return err
		}
		wi, ti, ok := m.find(id)
		if !ok {
			continue
		}
		w := &m.Windows[wi]
		w.Tabs = append(w.Tabs[:ti], w.Tabs[ti+1:]...)
	}
	return nil
}

func (m *Mem) UpdateTab(ctx context.Context, id domain.TabID, upd TabUpdate) error {
	if err := m.op(fmt.Sprintf("update:%s", id)); err != nil {
		return err
	}
	wi, ti, ok := m.find(id)
	if !ok {
		return fmt.Errorf("tab %s not found", id)
	}
	w := &m.Windows[wi]
	if upd.Pinned != nil {
		w.Tabs[ti].Pinned = *upd.Pinned
	}
	if upd.Active {
		w.Active = id
	}
	return nil
}

func (m *Mem) CreateWindow(ctx context.Context, urls []string, focused bool) (WindowID, error) {
	m.nextWin++
	id := WindowID(fmt.Sprintf("win-%d", m.nextWin))
	if err := m.op(fmt.Sprintf("createwindow:%s", id)); err != nil {
		return "", err
	}
	w := MemWindow{ID: id, Focused: focused, State: domain.WindowNormal}
	for _, u := range urls {
		m.nextTab++
		w.Tabs = append(w.Tabs, domain.TabSnapshot{
			ID:  domain.TabID(fmt.Sprintf("tab-%d", m.nextTab)),
			URL: u,
		})
	}
	if len(w.Tabs) > 0 {
		w.Active = w.Tabs[0].ID
	}
	m.Windows = append(m.Windows, w)
	if focused {
		m.Current = len(m.Windows) - 1
	}
	return id, nil
}

func (m *Mem) UpdateWindow(ctx context.Context, id WindowID, state domain.WindowState) error {
	if err := m.op(fmt.Sprintf("updatewindow:%s:%s", id, state)); err != nil {
		return err
	}
	for i := range m.Windows {
		if m.Windows[i].ID == id {
			m.Windows[i].State = state
			return nil
		}
	}
	return fmt.Errorf("window %s not found", id)
}

var _ Surface = (*Mem)(nil)
