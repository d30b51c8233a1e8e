package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adiavolo/comic-insights/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Manager owns the mapping from session ID to session and is the sole
// mutator of session history. State is in-memory only; Export writes a
// snapshot to the export directory on demand.
type Manager struct {
	mu        sync.RWMutex
	sessions  map[uuid.UUID]*domain.Session
	exportDir string
}

// NewManager creates a session manager that exports under exportDir.
func NewManager(exportDir string) *Manager {
	return &Manager{
		sessions:  make(map[uuid.UUID]*domain.Session),
		exportDir: exportDir,
	}
}

// Create initializes a new session with an empty history and returns it.
func (m *Manager) Create() *domain.Session {
	s := &domain.Session{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Status:    domain.SessionActive,
		History:   []domain.Entry{},
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	log.Info().Str("session_id", s.ID.String()).Msg("Created session")
	return s
}

// AddEntry appends a generation record to the session's history. The entry's
// timestamp is set here; entries are never mutated or removed afterwards.
func (m *Manager) AddEntry(sessionID uuid.UUID, prompt, style, image, plot string) (*domain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrSessionNotFound)
	}

	entry := domain.Entry{
		Timestamp: time.Now().UTC(),
		Prompt:    prompt,
		Style:     style,
		Image:     image,
		Plot:      plot,
	}
	s.History = append(s.History, entry)

	log.Debug().
		Str("session_id", sessionID.String()).
		Int("history_len", len(s.History)).
		Msg("Appended history entry")

	return &entry, nil
}

// History returns a copy of the session's history in insertion order.
func (m *Manager) History(sessionID uuid.UUID) ([]domain.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrSessionNotFound)
	}

	history := make([]domain.Entry, len(s.History))
	copy(history, s.History)
	return history, nil
}

// Entry returns the entry at index (0-based). An unknown session or an
// out-of-range index both report absence rather than a hard failure.
func (m *Manager) Entry(sessionID uuid.UUID, index int) (*domain.Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, false
	}
	if index < 0 || index >= len(s.History) {
		return nil, false
	}

	entry := s.History[index]
	return &entry, true
}

// Status returns a point-in-time summary of the session. LastEntryAt falls
// back to the creation timestamp when the history is empty.
func (m *Manager) Status(sessionID uuid.UUID) (*domain.SessionSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrSessionNotFound)
	}

	lastEntryAt := s.CreatedAt
	if n := len(s.History); n > 0 {
		lastEntryAt = s.History[n-1].Timestamp
	}

	return &domain.SessionSummary{
		SessionID:   s.ID,
		CreatedAt:   s.CreatedAt,
		Status:      s.Status,
		EntryCount:  len(s.History),
		LastEntryAt: lastEntryAt,
	}, nil
}

// Export serializes the session to a JSON file under the export directory and
// returns the path written. The in-memory session is not mutated.
func (m *Manager) Export(sessionID uuid.UUID) (string, error) {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	var doc domain.SessionExport
	if ok {
		history := make([]domain.Entry, len(s.History))
		copy(history, s.History)
		doc = domain.SessionExport{
			SessionID:  s.ID.String(),
			ExportedAt: time.Now().UTC(),
			Data: domain.SessionExportData{
				CreatedAt: s.CreatedAt,
				History:   history,
			},
		}
	}
	m.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("session %s: %w", sessionID, domain.ErrSessionNotFound)
	}

	if err := os.MkdirAll(m.exportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(m.exportDir, fmt.Sprintf("session_%s.json", sessionID))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	log.Info().
		Str("session_id", sessionID.String()).
		Str("path", path).
		Msg("Exported session")

	return path, nil
}
