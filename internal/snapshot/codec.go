// Package snapshot serializes whole-browser snapshots (windows and
// tabs) and session collections to a portable, versioned JSON form used
// for backup and restore across installations.
package snapshot

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mv/tabctl/internal/domain"
)

// Version is the only bundle version this build reads or writes.
// Unknown versions are rejected outright, never best-effort parsed.
const Version = 1

// WindowBundle is the export envelope around open windows.
type WindowBundle struct {
	Version   int                     `json:"version"`
	Timestamp string                  `json:"timestamp"`
	Windows   []domain.WindowSnapshot `json:"windows"`
}

// SessionBundle is the export envelope around the session collection.
type SessionBundle struct {
	Version   int               `json:"version"`
	Timestamp string            `json:"timestamp"`
	Sessions  domain.Collection `json:"sessions"`
}

// EncodeWindows wraps windows in a version-1 envelope stamped at now.
func EncodeWindows(windows []domain.WindowSnapshot, now time.Time) WindowBundle {
	return WindowBundle{
		Version:   Version,
		Timestamp: now.UTC().Format(time.RFC3339),
		Windows:   windows,
	}
}

// EncodeSessions wraps a session collection in a version-1 envelope.
func EncodeSessions(col domain.Collection, now time.Time) SessionBundle {
	return SessionBundle{
		Version:   Version,
		Timestamp: now.UTC().Format(time.RFC3339),
		Sessions:  col,
	}
}

// Marshal renders a bundle as pretty-printed UTF-8 JSON, the bit-exact
// on-disk form.
func Marshal(bundle any) ([]byte, error) {
	return json.MarshalIndent(bundle, "", "  ")
}

// envelope probes the fields shared by both bundle kinds. Pointers
// distinguish absent from zero.
type envelope struct {
	Version   *int            `json:"version"`
	Timestamp json.RawMessage `json:"timestamp"` // string or number, both accepted
}

func checkVersion(data []byte) (string, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", domain.NewValidationError("bundle", err.Error())
	}
	if env.Version == nil {
		return "", domain.NewValidationError("bundle", "missing version")
	}
	if *env.Version != Version {
		return "", domain.NewValidationError("bundle", fmt.Sprintf("unknown version %d", *env.Version))
	}
	return timestampString(env.Timestamp), nil
}

func timestampString(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// DecodeWindows parses a window bundle, failing on a missing or unknown
// version and on a missing windows field.
func DecodeWindows(data []byte) (WindowBundle, error) {
	ts, err := checkVersion(data)
	if err != nil {
		return WindowBundle{}, err
	}
	var raw struct {
		Windows *[]domain.WindowSnapshot `json:"windows"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return WindowBundle{}, domain.NewValidationError("bundle", err.Error())
	}
	if raw.Windows == nil {
		return WindowBundle{}, domain.NewValidationError("bundle", "missing windows")
	}
	return WindowBundle{Version: Version, Timestamp: ts, Windows: *raw.Windows}, nil
}

// DecodeSessions parses a session bundle under the same envelope rules.
func DecodeSessions(data []byte) (SessionBundle, error) {
	ts, err := checkVersion(data)
	if err != nil {
		return SessionBundle{}, err
	}
	var raw struct {
		Sessions *domain.Collection `json:"sessions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return SessionBundle{}, domain.NewValidationError("bundle", err.Error())
	}
	if raw.Sessions == nil {
		return SessionBundle{}, domain.NewValidationError("bundle", "missing sessions")
	}
	return SessionBundle{Version: Version, Timestamp: ts, Sessions: *raw.Sessions}, nil
}

// Filename builds an export filename with a colon/period-stripped ISO
// timestamp suffix.
func Filename(prefix string, now time.Time) string {
	ts := now.UTC().Format(time.RFC3339)
	ts = strings.ReplaceAll(ts, ":", "")
	ts = strings.ReplaceAll(ts, ".", "")
	return fmt.Sprintf("%s-%s.json", prefix, ts)
}
