package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/adiavolo/comic-insights/internal/character"
	"github.com/adiavolo/comic-insights/internal/domain"
	"github.com/adiavolo/comic-insights/internal/llm"
)

const extractionTemperature = 0.7

// CharacterService manages session character rosters and the LLM-backed
// extraction and tagging flows.
type CharacterService struct {
	store     domain.CharacterStore
	llmRouter *llm.Router
}

// NewCharacterService creates a character service.
func NewCharacterService(store domain.CharacterStore, llmRouter *llm.Router) *CharacterService {
	return &CharacterService{
		store:     store,
		llmRouter: llmRouter,
	}
}

// ExtractFromSummary asks the LLM to pull characters out of a story summary.
// Invalid items from the model are dropped, not surfaced as errors.
func (s *CharacterService) ExtractFromSummary(ctx context.Context, story, providerName string) ([]domain.Character, error) {
	provider, err := s.llmRouter.GetProvider(providerName)
	if err != nil {
		return nil, fmt.Errorf("failed to get LLM provider: %w", err)
	}

	resp, err := provider.Complete(ctx, llm.Request{
		Prompt:      llm.BuildCharacterExtractionPrompt(story),
		Temperature: extractionTemperature,
	}, "")
	if err != nil {
		return nil, fmt.Errorf("character extraction failed: %w", err)
	}

	raw, err := llm.ExtractJSONArray(resp.Text)
	if err != nil {
		return nil, fmt.Errorf("character extraction returned no usable data: %w", err)
	}

	characters := character.NormalizeList(raw)

	log.Info().
		Int("extracted", len(characters)).
		Int("rejected", len(raw)-len(characters)).
		Str("model", resp.Model).
		Msg("Extracted characters from summary")

	return characters, nil
}

// RegenerateBooruTags derives booru-style visual tags from an appearance
// description.
func (s *CharacterService) RegenerateBooruTags(ctx context.Context, appearance, providerName string) (string, error) {
	provider, err := s.llmRouter.GetProvider(providerName)
	if err != nil {
		return "", fmt.Errorf("failed to get LLM provider: %w", err)
	}

	resp, err := provider.Complete(ctx, llm.Request{
		Prompt:      llm.BuildBooruTagsPrompt(appearance),
		Temperature: extractionTemperature,
	}, "")
	if err != nil {
		return "", fmt.Errorf("tag regeneration failed: %w", err)
	}

	return llm.CleanLine(resp.Text), nil
}

// Roster returns the session's characters.
func (s *CharacterService) Roster(sessionID uuid.UUID) []domain.Character {
	return s.store.Characters(sessionID)
}

// SetRoster replaces the session's characters. A replaced roster is no
// longer confirmed until the client confirms it again.
func (s *CharacterService) SetRoster(sessionID uuid.UUID, characters []domain.Character) {
	s.store.SetCharacters(sessionID, characters)
	s.store.ResetConfirmation(sessionID)
}

// Add appends a character and returns its ID.
func (s *CharacterService) Add(sessionID uuid.UUID, c domain.Character) uuid.UUID {
	return s.store.Add(sessionID, c)
}

// Update edits an existing character.
func (s *CharacterService) Update(sessionID, characterID uuid.UUID, updates domain.Character) error {
	return s.store.Update(sessionID, characterID, updates)
}

// Delete removes a character.
func (s *CharacterService) Delete(sessionID, characterID uuid.UUID) {
	s.store.Delete(sessionID, characterID)
}

// Confirm locks the roster.
func (s *CharacterService) Confirm(sessionID uuid.UUID) {
	s.store.Confirm(sessionID)
}

// IsConfirmed reports the roster's confirmation state.
func (s *CharacterService) IsConfirmed(sessionID uuid.UUID) bool {
	return s.store.IsConfirmed(sessionID)
}

// ExportToFile writes the roster snapshot to disk and returns the path.
func (s *CharacterService) ExportToFile(sessionID uuid.UUID) (string, error) {
	return s.store.SaveToFile(sessionID)
}
