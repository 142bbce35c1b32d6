package snapshot

import (
	"context"

	"github.com/mv/tabctl/internal/domain"
	"github.com/mv/tabctl/internal/host"
	"github.com/mv/tabctl/internal/logging"
)

var log = logging.New("snapshot")

// Replay recreates the bundle's windows one at a time. Windows are
// strictly sequential: host window creation must be acknowledged before
// the next window is issued so the resulting ordering is deterministic.
//
// Per window, after creation: the persisted state is applied only when
// it is one of the three recognized literals (case-insensitive);
// anything else is silently ignored. Tabs flagged pinned are pinned by
// position, and the tab flagged active is activated. A failure inside one
// window is caught and logged so the remaining windows still replay.
func Replay(ctx context.Context, h host.Surface, bundle WindowBundle) domain.PartialFailure {
	var pf domain.PartialFailure
	for wi, win := range bundle.Windows {
		if err := replayWindow(ctx, h, win); err != nil {
			log.Error("replay.window", map[string]any{"window": wi}, err)
			pf.Failed++
			continue
		}
		pf.Done++
	}
	return pf
}

func replayWindow(ctx context.Context, h host.Surface, win domain.WindowSnapshot) error {
	id, err := h.CreateWindow(ctx, win.URLs(), win.Focused)
	if err != nil {
		return domain.NewHostCallError("CreateWindow", err)
	}

	if state, ok := domain.ParseWindowState(win.State); ok {
		if err := h.UpdateWindow(ctx, id, state); err != nil {
			log.Warn("replay.state", map[string]any{"state": string(state)},
				domain.NewHostCallError("UpdateWindow", err))
		}
	}

	// Pin and activate by position against the freshly created window;
	// the bundle's tab IDs belong to the installation it came from.
	created, err := h.WindowTabs(ctx, id)
	if err != nil {
		return domain.NewHostCallError("WindowTabs", err)
	}

	for i, tab := range win.Tabs {
		if i >= len(created) {
			break
		}
		if tab.Pinned {
			upd := host.TabUpdate{Pinned: host.BoolPtr(true)}
			if err := h.UpdateTab(ctx, created[i].ID, upd); err != nil {
				log.Warn("replay.pin", map[string]any{"index": i},
					domain.NewHostCallError("UpdateTab", err))
			}
		}
	}
	for i, tab := range win.Tabs {
		if !tab.Active || i >= len(created) {
			continue
		}
		if err := h.UpdateTab(ctx, created[i].ID, host.TabUpdate{Active: true}); err != nil {
			log.Warn("replay.activate", map[string]any{"index": i},
				domain.NewHostCallError("UpdateTab", err))
		}
		break
	}
	return nil
}
