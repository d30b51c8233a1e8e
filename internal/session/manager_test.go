package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/adiavolo/comic-insights/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Create(t *testing.T) {
	m := NewManager(t.TempDir())

	s1 := m.Create()
	s2 := m.Create()

	assert.NotEqual(t, s1.ID, s2.ID)
	assert.Equal(t, domain.SessionActive, s1.Status)
	assert.Empty(t, s1.History)
	assert.False(t, s1.CreatedAt.IsZero())
}

func TestManager_AddEntry(t *testing.T) {
	m := NewManager(t.TempDir())
	s := m.Create()

	entry, err := m.AddEntry(s.ID, "a cat", "manga", "exports/generated_1.png", "a cat, manga style")
	require.NoError(t, err)
	assert.Equal(t, "a cat", entry.Prompt)
	assert.Equal(t, "manga", entry.Style)
	assert.False(t, entry.Timestamp.IsZero())

	history, err := m.History(s.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	t.Run("unknown session", func(t *testing.T) {
		_, err := m.AddEntry(uuid.New(), "p", "s", "i", "")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}

func TestManager_HistoryOrder(t *testing.T) {
	m := NewManager(t.TempDir())
	s := m.Create()

	const n = 10
	for i := 0; i < n; i++ {
		_, err := m.AddEntry(s.ID, fmt.Sprintf("prompt %d", i), "manga", fmt.Sprintf("img_%d.png", i), "")
		require.NoError(t, err)
	}

	history, err := m.History(s.ID)
	require.NoError(t, err)
	require.Len(t, history, n)
	for i, entry := range history {
		assert.Equal(t, fmt.Sprintf("prompt %d", i), entry.Prompt)
	}

	// The returned slice is a copy; mutating it must not touch the store.
	history[0].Prompt = "mutated"
	again, err := m.History(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "prompt 0", again[0].Prompt)
}

func TestManager_History_UnknownSession(t *testing.T) {
	m := NewManager(t.TempDir())

	_, err := m.History(uuid.New())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_Entry(t *testing.T) {
	m := NewManager(t.TempDir())
	s := m.Create()

	const n = 3
	for i := 0; i < n; i++ {
		_, err := m.AddEntry(s.ID, fmt.Sprintf("prompt %d", i), "manga", "img.png", "")
		require.NoError(t, err)
	}

	for i := 0; i < n; i++ {
		entry, ok := m.Entry(s.ID, i)
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("prompt %d", i), entry.Prompt)
	}

	_, ok := m.Entry(s.ID, -1)
	assert.False(t, ok)
	_, ok = m.Entry(s.ID, n)
	assert.False(t, ok)
	_, ok = m.Entry(uuid.New(), 0)
	assert.False(t, ok)
}

func TestManager_Status(t *testing.T) {
	m := NewManager(t.TempDir())
	s := m.Create()

	summary, err := m.Status(s.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.EntryCount)
	assert.Equal(t, s.CreatedAt, summary.LastEntryAt)
	assert.Equal(t, domain.SessionActive, summary.Status)

	entry, err := m.AddEntry(s.ID, "p", "s", "i", "")
	require.NoError(t, err)

	summary, err = m.Status(s.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.EntryCount)
	assert.Equal(t, entry.Timestamp, summary.LastEntryAt)

	history, err := m.History(s.ID)
	require.NoError(t, err)
	assert.Equal(t, len(history), summary.EntryCount)

	t.Run("unknown session", func(t *testing.T) {
		_, err := m.Status(uuid.New())
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}

func TestManager_Export(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(filepath.Join(dir, "exports"))
	s := m.Create()

	_, err := m.AddEntry(s.ID, "a cat", "manga", "img.png", "plot text")
	require.NoError(t, err)
	_, err = m.AddEntry(s.ID, "a dog", "comic_book", "img2.png", "")
	require.NoError(t, err)

	path, err := m.Export(s.ID)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "exports", "session_"+s.ID.String()+".json"), path)

	// Round-trip: the written document matches the in-memory history.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc domain.SessionExport
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, s.ID.String(), doc.SessionID)
	assert.False(t, doc.ExportedAt.IsZero())
	assert.True(t, doc.Data.CreatedAt.Equal(s.CreatedAt))

	history, err := m.History(s.ID)
	require.NoError(t, err)
	require.Len(t, doc.Data.History, len(history))
	for i, entry := range history {
		assert.Equal(t, entry.Prompt, doc.Data.History[i].Prompt)
		assert.Equal(t, entry.Style, doc.Data.History[i].Style)
		assert.Equal(t, entry.Image, doc.Data.History[i].Image)
		assert.Equal(t, entry.Plot, doc.Data.History[i].Plot)
		assert.True(t, entry.Timestamp.Equal(doc.Data.History[i].Timestamp))
	}

	// Every entry keeps its "plot" key in the document, even when empty.
	var generic struct {
		Data struct {
			History []map[string]any `json:"history"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &generic))
	for _, entry := range generic.Data.History {
		_, present := entry["plot"]
		assert.True(t, present)
	}

	// Export is a snapshot; the session stays live.
	_, err = m.AddEntry(s.ID, "a bird", "manga", "img3.png", "")
	assert.NoError(t, err)

	t.Run("unknown session", func(t *testing.T) {
		_, err := m.Export(uuid.New())
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}
