package domain

import (
	"time"

	"github.com/google/uuid"
)

// CharacterSource identifies where a roster entry came from.
type CharacterSource string

const (
	SourceLLM    CharacterSource = "LLM"
	SourceManual CharacterSource = "manual"
)

// Character is one entry in a session's character roster.
type Character struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Role       string          `json:"role"`
	Appearance string          `json:"appearance"`
	BooruTags  string          `json:"booru_tags"`
	Source     CharacterSource `json:"source"`
	Confirmed  bool            `json:"confirmed"`
}

// RosterMetadata tracks roster-level state for a session.
type RosterMetadata struct {
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
	Confirmed   bool      `json:"confirmed"`
	Version     int       `json:"version"`
}

// RosterExport is the document shape written when a roster is saved to disk.
type RosterExport struct {
	SessionID  string         `json:"session_id"`
	Timestamp  time.Time      `json:"timestamp"`
	Characters []Character    `json:"characters"`
	Metadata   RosterMetadata `json:"metadata"`
}

// CharacterStore defines the interface for per-session roster storage.
// Rosters are created implicitly on first touch.
type CharacterStore interface {
	Characters(sessionID uuid.UUID) []Character
	SetCharacters(sessionID uuid.UUID, characters []Character)
	Add(sessionID uuid.UUID, c Character) uuid.UUID
	Update(sessionID uuid.UUID, characterID uuid.UUID, updates Character) error
	Delete(sessionID uuid.UUID, characterID uuid.UUID)
	Confirm(sessionID uuid.UUID)
	ResetConfirmation(sessionID uuid.UUID)
	IsConfirmed(sessionID uuid.UUID) bool
	Export(sessionID uuid.UUID) *RosterExport
	SaveToFile(sessionID uuid.UUID) (string, error)
}
