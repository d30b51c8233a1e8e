package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/adiavolo/comic-insights/internal/llm"
)

const summaryTemperature = 0.7

// StoryService produces and refines story summaries through the LLM router.
type StoryService struct {
	llmRouter *llm.Router
}

// NewStoryService creates a story service.
func NewStoryService(llmRouter *llm.Router) *StoryService {
	return &StoryService{llmRouter: llmRouter}
}

func (s *StoryService) complete(ctx context.Context, providerName, prompt string) (string, error) {
	provider, err := s.llmRouter.GetProvider(providerName)
	if err != nil {
		return "", fmt.Errorf("failed to get LLM provider: %w", err)
	}

	resp, err := provider.Complete(ctx, llm.Request{
		Prompt:      prompt,
		Temperature: summaryTemperature,
	}, "")
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.Text), nil
}

// GenerateSummary writes an initial story summary from a raw prompt.
func (s *StoryService) GenerateSummary(ctx context.Context, providerName, prompt string) (string, error) {
	summary, err := s.complete(ctx, providerName, llm.BuildInitialSummaryPrompt(prompt))
	if err != nil {
		return "", fmt.Errorf("summary generation failed: %w", err)
	}
	return summary, nil
}

// CorrectSummary applies a light grammar and flow pass to a manually edited
// summary without changing its meaning.
func (s *StoryService) CorrectSummary(ctx context.Context, providerName, summary string) (string, error) {
	corrected, err := s.complete(ctx, providerName, llm.BuildLightCorrectionPrompt(summary))
	if err != nil {
		return "", fmt.Errorf("summary correction failed: %w", err)
	}
	return corrected, nil
}

// RefineSummary revises a summary according to a free-text instruction.
func (s *StoryService) RefineSummary(ctx context.Context, providerName, summary, instruction string) (string, error) {
	refined, err := s.complete(ctx, providerName, llm.BuildInstructionRefinementPrompt(summary, instruction))
	if err != nil {
		return "", fmt.Errorf("summary refinement failed: %w", err)
	}
	return refined, nil
}
