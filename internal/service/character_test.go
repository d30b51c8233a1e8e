package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adiavolo/comic-insights/internal/character"
	"github.com/adiavolo/comic-insights/internal/domain"
	"github.com/adiavolo/comic-insights/internal/llm"
)

func newCharacterService(t *testing.T, provider llm.Provider) *CharacterService {
	t.Helper()
	router := llm.NewRouter(provider.Name())
	router.RegisterProvider(provider)
	return NewCharacterService(character.NewStore(t.TempDir()), router)
}

func TestCharacterService_ExtractFromSummary(t *testing.T) {
	provider := NewMockProvider("ollama")
	svc := newCharacterService(t, provider)

	provider.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		return req.Temperature == extractionTemperature
	}), "").Return(&llm.Response{
		Text: `Sure, here they are:
[
  {"name": "Lina Voss", "role": "protagonist", "appearance": "silver hair", "booru_tags": "silver hair, green eyes"},
  {"name": "", "role": "broken", "appearance": "", "booru_tags": ""}
]`,
		Model: "gemma3:12b",
	}, nil)

	chars, err := svc.ExtractFromSummary(context.Background(), "a story about Lina", "")
	require.NoError(t, err)
	require.Len(t, chars, 1)
	assert.Equal(t, "Lina Voss", chars[0].Name)
	assert.Equal(t, domain.SourceLLM, chars[0].Source)
}

func TestCharacterService_ExtractFromSummary_Errors(t *testing.T) {
	t.Run("llm failure", func(t *testing.T) {
		provider := NewMockProvider("ollama")
		svc := newCharacterService(t, provider)
		provider.On("Complete", mock.Anything, mock.Anything, "").Return(nil, errors.New("connection refused"))

		_, err := svc.ExtractFromSummary(context.Background(), "story", "")
		assert.Error(t, err)
	})

	t.Run("no JSON in output", func(t *testing.T) {
		provider := NewMockProvider("ollama")
		svc := newCharacterService(t, provider)
		provider.On("Complete", mock.Anything, mock.Anything, "").Return(&llm.Response{Text: "no characters here"}, nil)

		_, err := svc.ExtractFromSummary(context.Background(), "story", "")
		assert.Error(t, err)
	})

	t.Run("unknown provider", func(t *testing.T) {
		provider := NewMockProvider("ollama")
		svc := newCharacterService(t, provider)

		_, err := svc.ExtractFromSummary(context.Background(), "story", "nonexistent")
		assert.Error(t, err)
	})
}

func TestCharacterService_RegenerateBooruTags(t *testing.T) {
	provider := NewMockProvider("ollama")
	svc := newCharacterService(t, provider)

	provider.On("Complete", mock.Anything, mock.Anything, "").Return(&llm.Response{
		Text: "\"curly red hair, black jacket,\nrobotic eye\"",
	}, nil)

	tags, err := svc.RegenerateBooruTags(context.Background(), "a woman with curly red hair", "")
	require.NoError(t, err)
	assert.Equal(t, "curly red hair, black jacket, robotic eye", tags)
}

func TestCharacterService_RosterOps(t *testing.T) {
	provider := NewMockProvider("ollama")
	svc := newCharacterService(t, provider)
	sessionID := uuid.New()

	id := svc.Add(sessionID, domain.Character{Name: "A", Role: "hero", Appearance: "tall", BooruTags: "tall"})
	assert.Len(t, svc.Roster(sessionID), 1)

	require.NoError(t, svc.Update(sessionID, id, domain.Character{Role: "villain"}))
	assert.Equal(t, "villain", svc.Roster(sessionID)[0].Role)

	assert.False(t, svc.IsConfirmed(sessionID))
	svc.Confirm(sessionID)
	assert.True(t, svc.IsConfirmed(sessionID))

	path, err := svc.ExportToFile(sessionID)
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	svc.Delete(sessionID, id)
	assert.Empty(t, svc.Roster(sessionID))
}

func TestCharacterService_SetRosterResetsConfirmation(t *testing.T) {
	provider := NewMockProvider("ollama")
	svc := newCharacterService(t, provider)
	sessionID := uuid.New()

	svc.Add(sessionID, domain.Character{Name: "A"})
	svc.Confirm(sessionID)
	require.True(t, svc.IsConfirmed(sessionID))

	svc.SetRoster(sessionID, []domain.Character{{Name: "B"}})
	assert.False(t, svc.IsConfirmed(sessionID))
	require.Len(t, svc.Roster(sessionID), 1)
	assert.Equal(t, "B", svc.Roster(sessionID)[0].Name)
}
