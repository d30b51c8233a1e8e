package character

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/adiavolo/comic-insights/internal/domain"
)

type roster struct {
	characters []domain.Character
	metadata   domain.RosterMetadata
}

// Store keeps one character roster per session. Rosters are created lazily on
// first touch; they track their own metadata (version, confirmation) and are
// independent of the generation history.
type Store struct {
	mu        sync.RWMutex
	rosters   map[uuid.UUID]*roster
	exportDir string
}

// NewStore creates a roster store that exports under exportDir.
func NewStore(exportDir string) *Store {
	return &Store{
		rosters:   make(map[uuid.UUID]*roster),
		exportDir: exportDir,
	}
}

// caller must hold s.mu
func (s *Store) roster(sessionID uuid.UUID) *roster {
	r, ok := s.rosters[sessionID]
	if !ok {
		now := time.Now().UTC()
		r = &roster{
			characters: []domain.Character{},
			metadata: domain.RosterMetadata{
				CreatedAt:   now,
				LastUpdated: now,
				Version:     1,
			},
		}
		s.rosters[sessionID] = r
		log.Info().Str("session_id", sessionID.String()).Msg("Created character roster")
	}
	return r
}

func (r *roster) touch() {
	r.metadata.LastUpdated = time.Now().UTC()
	r.metadata.Version++
}

// Characters returns a copy of the session's roster.
func (s *Store) Characters(sessionID uuid.UUID) []domain.Character {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.roster(sessionID)
	out := make([]domain.Character, len(r.characters))
	copy(out, r.characters)
	return out
}

// SetCharacters replaces the session's roster wholesale.
func (s *Store) SetCharacters(sessionID uuid.UUID, characters []domain.Character) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.roster(sessionID)
	r.characters = make([]domain.Character, len(characters))
	copy(r.characters, characters)
	r.touch()

	log.Info().
		Str("session_id", sessionID.String()).
		Int("count", len(characters)).
		Msg("Replaced character roster")
}

// Add appends a character to the roster and returns its assigned ID.
func (s *Store) Add(sessionID uuid.UUID, c domain.Character) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.roster(sessionID)
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Source == "" {
		c.Source = domain.SourceManual
	}
	r.characters = append(r.characters, c)
	r.touch()

	log.Info().
		Str("session_id", sessionID.String()).
		Str("name", c.Name).
		Msg("Added character")

	return c.ID
}

// Update overwrites the mutable fields of an existing character. Empty fields
// in updates are left unchanged.
func (s *Store) Update(sessionID uuid.UUID, characterID uuid.UUID, updates domain.Character) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.roster(sessionID)
	for i := range r.characters {
		if r.characters[i].ID != characterID {
			continue
		}
		c := &r.characters[i]
		if updates.Name != "" {
			c.Name = updates.Name
		}
		if updates.Role != "" {
			c.Role = updates.Role
		}
		if updates.Appearance != "" {
			c.Appearance = updates.Appearance
		}
		if updates.BooruTags != "" {
			c.BooruTags = updates.BooruTags
		}
		r.touch()

		log.Info().
			Str("session_id", sessionID.String()).
			Str("character_id", characterID.String()).
			Msg("Updated character")
		return nil
	}

	return fmt.Errorf("character %s in session %s: %w", characterID, sessionID, domain.ErrCharacterNotFound)
}

// Delete removes a character from the roster. Deleting an absent character is
// a no-op, matching the permissive roster policy.
func (s *Store) Delete(sessionID uuid.UUID, characterID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.roster(sessionID)
	kept := r.characters[:0]
	for _, c := range r.characters {
		if c.ID != characterID {
			kept = append(kept, c)
		}
	}
	r.characters = kept
	r.touch()

	log.Info().
		Str("session_id", sessionID.String()).
		Str("character_id", characterID.String()).
		Msg("Deleted character")
}

// Confirm locks the roster for the session.
func (s *Store) Confirm(sessionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.roster(sessionID)
	r.metadata.Confirmed = true
	r.metadata.LastUpdated = time.Now().UTC()

	log.Info().Str("session_id", sessionID.String()).Msg("Confirmed character roster")
}

// ResetConfirmation clears the confirmed flag.
func (s *Store) ResetConfirmation(sessionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.roster(sessionID)
	r.metadata.Confirmed = false
	r.metadata.LastUpdated = time.Now().UTC()
}

// IsConfirmed reports whether the session's roster has been confirmed.
func (s *Store) IsConfirmed(sessionID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster(sessionID).metadata.Confirmed
}

// Export returns a snapshot of the roster with metadata.
func (s *Store) Export(sessionID uuid.UUID) *domain.RosterExport {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.roster(sessionID)
	characters := make([]domain.Character, len(r.characters))
	copy(characters, r.characters)

	return &domain.RosterExport{
		SessionID:  sessionID.String(),
		Timestamp:  time.Now().UTC(),
		Characters: characters,
		Metadata:   r.metadata,
	}
}

// SaveToFile writes the roster snapshot to a JSON file under the export
// directory and returns the path written.
func (s *Store) SaveToFile(sessionID uuid.UUID) (string, error) {
	export := s.Export(sessionID)

	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(s.exportDir, fmt.Sprintf("characters_%s.json", sessionID))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create roster file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export); err != nil {
		return "", fmt.Errorf("failed to write roster file: %w", err)
	}

	log.Info().
		Str("session_id", sessionID.String()).
		Str("path", path).
		Msg("Saved character roster")

	return path, nil
}
