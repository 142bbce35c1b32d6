package organize

import (
	"context"
	"errors"

	"github.com/mv/tabctl/internal/domain"
	"github.com/mv/tabctl/internal/host"
	"github.com/mv/tabctl/internal/logging"
)

var log = logging.New("organize")

// Apply realizes a computed tab order against the host. Moves are
// issued strictly in final target-index order, one at a time, each
// acknowledged before the next: the host's positional-move semantics
// are relative to the current arrangement, and an out-of-order batch
// would scramble intermediate state.
//
// A host that cannot reorder at all (host.ErrUnsupported) aborts with
// that error; a failure on a single tab is logged and the batch
// continues, reported as a partial result.
func Apply(ctx context.Context, s host.Surface, target []domain.TabSnapshot) (domain.PartialFailure, error) {
	var pf domain.PartialFailure
	for i, t := range target {
		if err := s.MoveTab(ctx, t.ID, i); err != nil {
			if errors.Is(err, host.ErrUnsupported) {
				return pf, err
			}
			log.Warn("move.failed", map[string]any{"tab": string(t.ID), "index": i},
				domain.NewHostCallError("MoveTab", err))
			pf.Failed++
			continue
		}
		pf.Done++
	}
	return pf, nil
}

// Selection resolves the user's working set from the surface: the
// highlighted tabs when more than one is highlighted, else the active
// tab. A host that cannot report highlighting (host.ErrUnsupported) is
// treated as having none highlighted, so the active-tab fallback still
// applies.
func Selection(ctx context.Context, s host.Surface) ([]domain.TabSnapshot, error) {
	highlighted, err := s.HighlightedTabs(ctx)
	if err != nil && !errors.Is(err, host.ErrUnsupported) {
		return nil, err
	}
	active, err := s.ActiveTab(ctx)
	if err != nil {
		return nil, err
	}
	return SelectedOrActive(highlighted, active), nil
}

// CloseTabs removes the given tabs one at a time, reporting per-item
// outcomes as counts.
func CloseTabs(ctx context.Context, s host.Surface, ids []domain.TabID) domain.PartialFailure {
	var pf domain.PartialFailure
	for _, id := range ids {
		if err := s.RemoveTabs(ctx, []domain.TabID{id}); err != nil {
			log.Warn("close.failed", map[string]any{"tab": string(id)},
				domain.NewHostCallError("RemoveTabs", err))
			pf.Failed++
			continue
		}
		pf.Done++
	}
	return pf
}
