package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionCapturesOrderedURLs(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	tabs := []TabSnapshot{
		{ID: "1", URL: "https://a.com/"},
		{ID: "2", URL: "https://b.com/"},
	}

	s := NewSession(tabs, now)
	assert.Equal(t, int64(1700000000000), s.Timestamp)
	assert.Equal(t, 2, s.TabCount)
	assert.Equal(t, []string{"https://a.com/", "https://b.com/"}, s.URLs)
	assert.Nil(t, s.CustomName)
}

func TestDisplayNameFallsBackToLabel(t *testing.T) {
	s := Session{TabCount: 3, URLs: []string{"a", "b", "c"}}
	assert.Equal(t, "3 tabs", s.DisplayName())

	name := "research"
	s.CustomName = &name
	assert.Equal(t, "research", s.DisplayName())
}

func TestCustomNameSerializesAsNull(t *testing.T) {
	data, err := json.Marshal(Session{TabCount: 1, URLs: []string{"https://a.com/"}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"customName":null`)
}

func TestSessionKeyUsesFirstURL(t *testing.T) {
	a := Session{Timestamp: 5, URLs: []string{"https://a.com/", "https://b.com/"}}
	b := Session{Timestamp: 5, URLs: []string{"https://a.com/", "https://c.com/"}}
	assert.Equal(t, a.Key(), b.Key())

	c := Session{Timestamp: 6, URLs: []string{"https://a.com/"}}
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestParseWindowState(t *testing.T) {
	for _, raw := range []string{"normal", "NORMAL", "Minimized", "maximized"} {
		_, ok := ParseWindowState(raw)
		assert.True(t, ok, raw)
	}

	_, ok := ParseWindowState("sideways")
	assert.False(t, ok)
	_, ok = ParseWindowState("fullscreen")
	assert.False(t, ok)
}

func TestValidationErrorDetection(t *testing.T) {
	err := NewValidationError("url", "bad scheme")
	assert.True(t, IsValidation(err))
	assert.False(t, IsValidation(errors.New("plain")))

	wrapped := NewHostCallError("move", err)
	var verr *ValidationError
	assert.True(t, errors.As(wrapped, &verr))
}

func TestPartialFailureString(t *testing.T) {
	assert.True(t, PartialFailure{Done: 4}.Ok())
	assert.False(t, PartialFailure{Done: 3, Failed: 1}.Ok())
}
