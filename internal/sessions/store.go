// Package sessions implements CRUD over the persisted, ordered list of
// named tab snapshots, with merge semantics on import.
//
// Every operation is a full read, an in-memory mutation, and a full
// write of the collection. There is no optimistic-concurrency check;
// two simultaneous user actions are last-writer-wins. That is accepted
// for a single-user, single-surface tool.
package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mv/tabctl/internal/domain"
	"github.com/mv/tabctl/internal/host"
	"github.com/mv/tabctl/internal/logging"
	"github.com/mv/tabctl/internal/storage"
	xstrings "github.com/mv/tabctl/internal/strings"
)

// MaxNameLen caps a custom session name; longer names are truncated to
// TruncNameLen visible characters plus an ellipsis.
const (
	MaxNameLen   = 28
	TruncNameLen = 25
)

// KV is the persistence surface the store needs. *storage.Store
// satisfies it.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Store owns the persisted session collection.
type Store struct {
	kv  KV
	now func() time.Time
	log *logging.Logger
}

// New creates a session store over kv.
func New(kv KV) *Store {
	return &Store{kv: kv, now: time.Now, log: logging.New("sessions")}
}

// WithClock overrides the timestamp source. Used by tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) load(ctx context.Context) (domain.Collection, error) {
	raw, ok, err := s.kv.Get(ctx, storage.KeySessions)
	if err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	if !ok {
		return domain.Collection{}, nil
	}
	var col domain.Collection
	if err := json.Unmarshal([]byte(raw), &col); err != nil {
		return nil, domain.NewValidationError("sessions", err.Error())
	}
	return col, nil
}

func (s *Store) write(ctx context.Context, col domain.Collection) error {
	data, err := json.Marshal(col)
	if err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	return s.kv.Set(ctx, storage.KeySessions, string(data))
}

// List returns the collection in stored order, newest first by
// convention.
func (s *Store) List(ctx context.Context) (domain.Collection, error) {
	return s.load(ctx)
}

// Save builds a session from a tab snapshot list and prepends it to the
// collection.
func (s *Store) Save(ctx context.Context, tabs []domain.TabSnapshot) (domain.Session, error) {
	sess := domain.NewSession(tabs, s.now())

	col, err := s.load(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	col = append(domain.Collection{sess}, col...)
	if err := s.write(ctx, col); err != nil {
		return domain.Session{}, err
	}
	s.log.Info("session.saved", map[string]any{"tabs": sess.TabCount})
	return sess, nil
}

// Rename sets or clears a session's custom name. The name is trimmed
// and capped at MaxNameLen visible characters; an empty name, or one
// equal to the synthetic "<n> tabs" label, reverts to the synthetic
// label.
func (s *Store) Rename(ctx context.Context, index int, name string) (domain.Session, error) {
	col, err := s.load(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	if index < 0 || index >= len(col) {
		return domain.Session{}, domain.NewValidationError("index", fmt.Sprintf("no session at %d", index))
	}

	name = strings.TrimSpace(name)
	name = xstrings.TruncateRunes(name, MaxNameLen)

	sess := col[index]
	if name == "" || name == sess.DefaultLabel() {
		sess.CustomName = nil
	} else {
		sess.CustomName = &name
	}
	col[index] = sess

	if err := s.write(ctx, col); err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}

// Remove deletes one session. It requires an armed confirmation token;
// the mutation is unreachable without one.
func (s *Store) Remove(ctx context.Context, index int, confirm Confirmation) error {
	if !confirm.Armed() {
		return ErrNotConfirmed
	}
	col, err := s.load(ctx)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(col) {
		return domain.NewValidationError("index", fmt.Sprintf("no session at %d", index))
	}
	col = append(col[:index], col[index+1:]...)
	return s.write(ctx, col)
}

// Clear empties the whole collection, under the same confirmation
// contract as Remove.
func (s *Store) Clear(ctx context.Context, confirm Confirmation) error {
	if !confirm.Armed() {
		return ErrNotConfirmed
	}
	return s.write(ctx, domain.Collection{})
}

// Restore asks the host to open one new window containing the session's
// URLs in order. Window creation is a single batched host call, never
// per-tab.
func (s *Store) Restore(ctx context.Context, h host.Surface, sess domain.Session) error {
	if _, err := h.CreateWindow(ctx, sess.URLs, true); err != nil {
		return domain.NewHostCallError("CreateWindow", err)
	}
	s.log.Info("session.restored", map[string]any{"tabs": len(sess.URLs)})
	return nil
}

// MergeResult reports an import: added + skipped == len(incoming).
type MergeResult struct {
	Merged  domain.Collection
	Added   int
	Skipped int
}

// Merge resolves an import against the existing collection. Identity is
// the (timestamp, first URL) key: incoming sessions whose key already
// exists are skipped, which makes re-importing the same backup a no-op.
// Survivors are prepended, in their original relative order, ahead of
// the existing collection.
func Merge(incoming, existing domain.Collection) MergeResult {
	seen := make(map[domain.SessionKey]bool, len(existing))
	for _, sess := range existing {
		seen[sess.Key()] = true
	}

	res := MergeResult{}
	var fresh domain.Collection
	for _, sess := range incoming {
		if seen[sess.Key()] {
			res.Skipped++
			continue
		}
		fresh = append(fresh, sess)
		res.Added++
	}
	res.Merged = append(fresh, existing...)
	return res
}

// Import merges incoming into the persisted collection and reports the
// added/skipped counts.
func (s *Store) Import(ctx context.Context, incoming domain.Collection) (MergeResult, error) {
	existing, err := s.load(ctx)
	if err != nil {
		return MergeResult{}, err
	}
	res := Merge(incoming, existing)
	if err := s.write(ctx, res.Merged); err != nil {
		return MergeResult{}, err
	}
	s.log.Info("sessions.imported", map[string]any{"added": res.Added, "skipped": res.Skipped})
	return res, nil
}
