package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus is the lifecycle tag of a session. Sessions never leave the
// active state today; the field is kept for forward compatibility with the
// export format.
type SessionStatus string

const (
	SessionActive SessionStatus = "active"
)

// Entry is one recorded generation within a session's history. Entries are
// immutable once appended.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Prompt    string    `json:"prompt"`
	Style     string    `json:"style"`
	Image     string    `json:"image"`
	Plot      string    `json:"plot"`
}

// Session is a container for an ordered, append-only sequence of generation
// entries. It lives in process memory only; Export writes a point-in-time
// snapshot without mutating the session.
type Session struct {
	ID        uuid.UUID     `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Status    SessionStatus `json:"status"`
	History   []Entry       `json:"history"`
}

// SessionSummary is the snapshot returned by the status operation.
type SessionSummary struct {
	SessionID   uuid.UUID     `json:"session_id"`
	CreatedAt   time.Time     `json:"created_at"`
	Status      SessionStatus `json:"status"`
	EntryCount  int           `json:"entry_count"`
	LastEntryAt time.Time     `json:"last_entry_at"`
}

// SessionExport is the document shape written by the export operation.
type SessionExport struct {
	SessionID  string            `json:"session_id"`
	ExportedAt time.Time         `json:"exported_at"`
	Data       SessionExportData `json:"data"`
}

type SessionExportData struct {
	CreatedAt time.Time `json:"created_at"`
	History   []Entry   `json:"history"`
}

// SessionStore defines the interface for session and history storage.
type SessionStore interface {
	Create() *Session
	AddEntry(sessionID uuid.UUID, prompt, style, image, plot string) (*Entry, error)
	History(sessionID uuid.UUID) ([]Entry, error)
	Entry(sessionID uuid.UUID, index int) (*Entry, bool)
	Status(sessionID uuid.UUID) (*SessionSummary, error)
	Export(sessionID uuid.UUID) (string, error)
}
