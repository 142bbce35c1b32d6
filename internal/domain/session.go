package domain

import (
	"fmt"
	"time"
)

// Session is one persisted set of tab URLs. TabCount equals len(URLs)
// at creation time; the field is stored separately and not re-checked
// if the URL list is edited out-of-band.
type Session struct {
	Timestamp  int64    `json:"timestamp"` // ms since epoch
	TabCount   int      `json:"tabCount"`
	URLs       []string `json:"urls"`
	CustomName *string  `json:"customName"`
}

// NewSession builds a session from a tab snapshot list, stamped now.
func NewSession(tabs []TabSnapshot, now time.Time) Session {
	urls := make([]string, len(tabs))
	for i, t := range tabs {
		urls[i] = t.URL
	}
	return Session{
		Timestamp: now.UnixMilli(),
		TabCount:  len(urls),
		URLs:      urls,
	}
}

// DefaultLabel is the synthetic label shown when no custom name is set.
func (s Session) DefaultLabel() string {
	return fmt.Sprintf("%d tabs", s.TabCount)
}

// DisplayName returns the custom name when present, else the synthetic label.
func (s Session) DisplayName() string {
	if s.CustomName != nil {
		return *s.CustomName
	}
	return s.DefaultLabel()
}

// Key is the identity used for merge-on-import: creation timestamp plus
// first URL. Two sessions created in the same millisecond with the same
// first URL collide even if the remaining tabs differ; the weak scheme
// is kept deliberately so that re-importing an old backup stays a no-op.
func (s Session) Key() SessionKey {
	first := ""
	if len(s.URLs) > 0 {
		first = s.URLs[0]
	}
	return SessionKey{Timestamp: s.Timestamp, FirstURL: first}
}

// SessionKey identifies a session for import deduplication.
type SessionKey struct {
	Timestamp int64
	FirstURL  string
}

// Collection is the ordered list of persisted sessions, newest first by
// convention. Insertion order is authoritative; nothing re-sorts it.
type Collection []Session
