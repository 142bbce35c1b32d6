package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartPopulatesIdentity(t *testing.T) {
	l := NewLogger(&bytes.Buffer{})

	e := l.Start(CategorySessions, "session.save")
	assert.NotEmpty(t, e.EventID)
	assert.NotEmpty(t, e.SessionID)
	assert.False(t, e.StartedAt.IsZero())
	assert.Equal(t, CategorySessions, e.Category)
}

func TestLogSuccessAndError(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	require.NoError(t, l.LogSuccess(l.Start(CategoryOrganize, "group")))
	require.NoError(t, l.LogError(l.Start(CategoryBackup, "import"), errors.New("bad bundle")))

	sc := bufio.NewScanner(&buf)
	var events []Event
	for sc.Scan() {
		var e Event
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		events = append(events, e)
	}
	require.Len(t, events, 2)
	assert.Equal(t, StatusSuccess, events[0].Status)
	assert.Equal(t, StatusError, events[1].Status)
	assert.Equal(t, "bad bundle", events[1].ErrorMessage)
}

func TestLogPartialCarriesCounts(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	require.NoError(t, l.LogPartial(l.Start(CategoryOrganize, "dedupe"), 3, 1))

	var e Event
	require.NoError(t, json.Unmarshal(buf.Bytes(), &e))
	assert.Equal(t, StatusPartial, e.Status)
	assert.Equal(t, 3, e.Done)
	assert.Equal(t, 1, e.Failed)
}

func TestOpenAppendsToFile(t *testing.T) {
	dir := t.TempDir()

	l, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, l.LogSuccess(l.Start(CategorySystem, "start")))
	require.NoError(t, l.Close())

	l2, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, l2.LogSuccess(l2.Start(CategorySystem, "start")))
	require.NoError(t, l2.Close())

	data, err := os.ReadFile(filepath.Join(dir, "audit.jsonl"))
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(data, []byte("\n")))
}
