// Package tui provides the interactive Bubble Tea session browser.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mv/tabctl/internal/domain"
	"github.com/mv/tabctl/internal/host"
	"github.com/mv/tabctl/internal/sessions"
)

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// sessionItem implements list.Item for a saved session.
type sessionItem struct {
	sess domain.Session
}

func (i sessionItem) Title() string { return i.sess.DisplayName() }

func (i sessionItem) Description() string {
	when := time.UnixMilli(i.sess.Timestamp).Format("2006-01-02 15:04")
	return fmt.Sprintf("%s · %d urls", when, len(i.sess.URLs))
}

func (i sessionItem) FilterValue() string { return i.sess.DisplayName() }

type restoredMsg struct {
	name string
	err  error
}

type deletedMsg struct {
	col domain.Collection
	err error
}

// Model is the session browser state.
type Model struct {
	ctx     context.Context
	store   *sessions.Store
	surface host.Surface // nil when no browser is connected

	list       list.Model
	confirming bool // a delete is pending a y/n answer
	status     string
}

// NewModel builds the browser over an already-loaded collection.
func NewModel(ctx context.Context, store *sessions.Store, surface host.Surface, col domain.Collection) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("205")).
		BorderForeground(lipgloss.Color("205"))

	l := list.New(toItems(col), delegate, 0, 0)
	l.Title = "Saved Sessions"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	return Model{ctx: ctx, store: store, surface: surface, list: l}
}

func toItems(col domain.Collection) []list.Item {
	items := make([]list.Item, len(col))
	for i, s := range col {
		items[i] = sessionItem{sess: s}
	}
	return items
}

func (m Model) Init() tea.Cmd { return nil }

// Update handles key and window events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case restoredMsg:
		if msg.err != nil {
			m.status = warnStyle.Render(fmt.Sprintf("restore failed: %v", msg.err))
		} else {
			m.status = statusStyle.Render(fmt.Sprintf("restored %q", msg.name))
		}
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			m.status = warnStyle.Render(fmt.Sprintf("delete failed: %v", msg.err))
		} else {
			m.list.SetItems(toItems(msg.col))
			m.status = statusStyle.Render("deleted")
		}
		return m, nil

	case tea.KeyMsg:
		// While the user is typing a filter, every key belongs to the
		// list; shortcuts resume once the filter is applied or cleared.
		if m.list.FilterState() == list.Filtering {
			break
		}

		// A pending delete swallows the next keypress.
		if m.confirming {
			m.confirming = false
			if msg.String() == "y" {
				return m, m.deleteSelected()
			}
			m.status = ""
			return m, nil
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			return m, m.restoreSelected()
		case "d":
			if _, ok := m.selected(); ok {
				m.confirming = true
				m.status = warnStyle.Render("delete this session? (y/n)")
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) selected() (domain.Session, bool) {
	it, ok := m.list.SelectedItem().(sessionItem)
	if !ok {
		return domain.Session{}, false
	}
	return it.sess, true
}

func (m Model) restoreSelected() tea.Cmd {
	sess, ok := m.selected()
	if !ok {
		return nil
	}
	if m.surface == nil {
		return func() tea.Msg {
			return restoredMsg{err: fmt.Errorf("no browser connected")}
		}
	}
	ctx, store, surface := m.ctx, m.store, m.surface
	return func() tea.Msg {
		err := store.Restore(ctx, surface, sess)
		return restoredMsg{name: sess.DisplayName(), err: err}
	}
}

func (m Model) deleteSelected() tea.Cmd {
	sess, ok := m.selected()
	if !ok {
		return nil
	}
	ctx, store := m.ctx, m.store
	key := sess.Key()
	return func() tea.Msg {
		// With a filter applied the list's index counts visible items
		// only, so resolve the target by identity against the stored
		// collection instead.
		col, err := store.List(ctx)
		if err != nil {
			return deletedMsg{err: err}
		}
		idx := -1
		for i, s := range col {
			if s.Key() == key {
				idx = i
				break
			}
		}
		if idx < 0 {
			return deletedMsg{err: fmt.Errorf("session no longer exists")}
		}
		// The y keypress above is the user's confirmation.
		if err := store.Remove(ctx, idx, sessions.Confirmed()); err != nil {
			return deletedMsg{err: err}
		}
		col, err = store.List(ctx)
		return deletedMsg{col: col, err: err}
	}
}

// View renders the list plus a one-line status/help footer.
func (m Model) View() string {
	footer := m.status
	if footer == "" {
		footer = helpStyle.Render("enter restore · d delete · q quit")
	}
	return m.list.View() + "\n" + footer
}

// Browse loads the saved sessions and runs the interactive browser
// until the user quits. surface may be nil; restore is then disabled.
func Browse(ctx context.Context, store *sessions.Store, surface host.Surface) error {
	col, err := store.List(ctx)
	if err != nil {
		return err
	}

	p := tea.NewProgram(NewModel(ctx, store, surface, col), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("session browser: %w", err)
	}
	return nil
}
