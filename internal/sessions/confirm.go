package sessions

import "errors"

// ErrNotConfirmed guards the destructive entry points. Remove and Clear
// are unreachable without an armed token; confirmation is a contract of
// the core, not a UI nicety.
var ErrNotConfirmed = errors.New("destructive operation requires confirmation")

// Confirmation is the two-state confirm-then-act token. The zero value
// is unarmed; Confirmed() is the only way to arm one.
type Confirmation struct {
	armed bool
}

// Confirmed returns an armed token. Callers produce it only after an
// explicit user confirmation (a --yes flag or an interactive prompt).
func Confirmed() Confirmation {
	return Confirmation{armed: true}
}

// Armed reports whether the token authorizes a destructive mutation.
func (c Confirmation) Armed() bool {
	return c.armed
}
