// Package audit provides a jsonl trail of tabctl operations. One line
// per completed operation, appended to audit.jsonl in the data
// directory, so a surprising reorder or a lost session can be traced
// after the fact.
package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/mv/tabctl/internal/config"
)

// Category represents the type of operation being audited.
type Category string

const (
	CategoryOrganize Category = "organize"
	CategorySessions Category = "sessions"
	CategoryURLs     Category = "urls"
	CategoryBackup   Category = "backup"
	CategorySettings Category = "settings"
	CategorySystem   Category = "system"
)

// Status represents the outcome of an operation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusPartial Status = "partial"
)

// Event represents a single auditable operation.
type Event struct {
	EventID string `json:"event_id"`

	Category  Category `json:"category"`
	Operation string   `json:"operation"`

	Status       Status `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Done         int    `json:"done,omitempty"`
	Failed       int    `json:"failed,omitempty"`

	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
	DurationMs  int64     `json:"duration_ms,omitempty"`

	SessionID string `json:"session_id,omitempty"`
}

// Complete fills in the outcome and timing of an event.
func (e *Event) Complete(status Status, err error) {
	e.Status = status
	if err != nil {
		e.ErrorMessage = err.Error()
	}
	e.CompletedAt = time.Now()
	e.DurationMs = e.CompletedAt.Sub(e.StartedAt).Milliseconds()
}

// Logger appends audit events to an output stream.
type Logger struct {
	mu        sync.Mutex
	sessionID string
	output    io.Writer
	closer    io.Closer
}

// NewLogger creates a logger writing to w.
func NewLogger(w io.Writer) *Logger {
	return &Logger{
		sessionID: ulid.MustNew(ulid.Timestamp(time.Now()), rand.New(rand.NewSource(time.Now().UnixNano()))).String(),
		output:    w,
	}
}

// Open creates a logger appending to audit.jsonl under dataDir.
func Open(dataDir string) (*Logger, error) {
	if err := config.EnsureDir(dataDir); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dataDir, "audit.jsonl"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	l := NewLogger(f)
	l.closer = f
	return l, nil
}

// Close releases the underlying file, if any.
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

// Start begins tracking an operation.
func (l *Logger) Start(category Category, operation string) *Event {
	return &Event{
		EventID:   uuid.New().String(),
		Category:  category,
		Operation: operation,
		StartedAt: time.Now(),
		SessionID: l.sessionID,
	}
}

// Log writes a completed event.
func (l *Logger) Log(event *Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if event.CompletedAt.IsZero() {
		event.Complete(event.Status, nil)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	_, err = fmt.Fprintf(l.output, "%s\n", data)
	return err
}

// LogSuccess logs a successful operation.
func (l *Logger) LogSuccess(event *Event) error {
	event.Complete(StatusSuccess, nil)
	return l.Log(event)
}

// LogError logs a failed operation.
func (l *Logger) LogError(event *Event, err error) error {
	event.Complete(StatusError, err)
	return l.Log(event)
}

// LogPartial records a batch that completed with per-item failures.
func (l *Logger) LogPartial(event *Event, done, failed int) error {
	event.Complete(StatusPartial, nil)
	event.Done = done
	event.Failed = failed
	return l.Log(event)
}
