// Package settings loads and stores the user preferences kept under
// the "settings" key. The stored value is defaulted deeply: a missing
// or partial document yields the documented defaults for every absent
// field. Settings are loaded once per invocation and passed explicitly
// to the operations that need them; nothing reads them ambiently.
package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mv/tabctl/internal/domain"
	"github.com/mv/tabctl/internal/storage"
)

// KV is the persistence surface. *storage.Store satisfies it.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Load reads settings, applying deep defaults over a missing or
// partial stored value. A malformed document is a validation error,
// not silently replaced.
func Load(ctx context.Context, kv KV) (domain.Settings, error) {
	s := domain.DefaultSettings()

	raw, ok, err := kv.Get(ctx, storage.KeySettings)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("read settings: %w", err)
	}
	if !ok {
		return s, nil
	}
	// Decoding over the defaults keeps them for absent fields.
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return domain.Settings{}, domain.NewValidationError("settings", err.Error())
	}
	return s, nil
}

// Save writes the full settings document.
func Save(ctx context.Context, kv KV, s domain.Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return kv.Set(ctx, storage.KeySettings, string(data))
}
