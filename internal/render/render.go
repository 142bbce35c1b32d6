// Package render provides terminal output formatting for tabctl.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/mv/tabctl/internal/domain"
	xstrings "github.com/mv/tabctl/internal/strings"
)

// Renderer handles output formatting.
type Renderer struct {
	pretty bool
}

// New creates a new renderer.
func New(pretty bool) *Renderer {
	return &Renderer{pretty: pretty}
}

// Tabs formats a tab list in its current order.
func (r *Renderer) Tabs(tabs []domain.TabSnapshot) string {
	if len(tabs) == 0 {
		return "No open tabs"
	}

	var sb strings.Builder
	for i, t := range tabs {
		title := t.Title
		if title == "" {
			title = "(untitled)"
		}
		marker := " "
		if t.Active {
			marker = "*"
		}
		if t.Pinned {
			marker = "!"
		}

		if r.pretty {
			fmt.Fprintf(&sb, "%s %2d  %s  %s\n", marker, i,
				xstrings.Truncate(title, 40),
				color.HiBlackString(xstrings.Truncate(t.URL, 60)))
		} else {
			fmt.Fprintf(&sb, "%s\t%d\t%s\t%s\n", marker, i, title, t.URL)
		}
	}
	return sb.String()
}

// Sessions formats the persisted session collection, newest first.
func (r *Renderer) Sessions(col domain.Collection) string {
	if len(col) == 0 {
		return "No saved sessions"
	}

	var sb strings.Builder
	if r.pretty {
		sb.WriteString(color.CyanString("Saved Sessions\n"))
		sb.WriteString(strings.Repeat("─", 60) + "\n")
	}

	for i, sess := range col {
		when := time.UnixMilli(sess.Timestamp).Format("2006-01-02 15:04")
		if r.pretty {
			fmt.Fprintf(&sb, "%2d  %-28s %s %s\n", i,
				sess.DisplayName(),
				color.HiBlackString(when),
				color.HiBlackString(fmt.Sprintf("(%d urls)", len(sess.URLs))))
		} else {
			fmt.Fprintf(&sb, "%d\t%s\t%s\t%d\n", i, sess.DisplayName(), when, len(sess.URLs))
		}
	}
	return sb.String()
}

// Count formats a batch outcome as counts, the partial-failure policy:
// "4 closed" or "3 moved, 1 failed".
func (r *Renderer) Count(pf domain.PartialFailure, verb string) string {
	if pf.Ok() {
		if r.pretty {
			return fmt.Sprintf("%s %d %s", color.GreenString("✓"), pf.Done, verb)
		}
		return fmt.Sprintf("%d %s", pf.Done, verb)
	}
	if r.pretty {
		return fmt.Sprintf("%s %d %s, %d failed", color.YellowString("!"), pf.Done, verb, pf.Failed)
	}
	return fmt.Sprintf("%d %s, %d failed", pf.Done, verb, pf.Failed)
}

// Imported formats a merge-on-import outcome.
func (r *Renderer) Imported(added, skipped int) string {
	if r.pretty {
		return fmt.Sprintf("%s imported %d, skipped %d", color.GreenString("✓"), added, skipped)
	}
	return fmt.Sprintf("imported %d, skipped %d", added, skipped)
}
