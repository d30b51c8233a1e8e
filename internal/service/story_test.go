package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adiavolo/comic-insights/internal/llm"
)

func newStoryService(provider llm.Provider) *StoryService {
	router := llm.NewRouter(provider.Name())
	router.RegisterProvider(provider)
	return NewStoryService(router)
}

func TestStoryService_GenerateSummary(t *testing.T) {
	provider := NewMockProvider("ollama")
	svc := newStoryService(provider)

	provider.On("Complete", mock.MatchedBy(func(_ context.Context) bool { return true }), mock.MatchedBy(func(req llm.Request) bool {
		return strings.Contains(req.Prompt, "a heist in a floating city")
	}), "").Return(&llm.Response{Text: "  A daring crew assembles...  \n"}, nil)

	summary, err := svc.GenerateSummary(context.Background(), "", "a heist in a floating city")
	require.NoError(t, err)
	assert.Equal(t, "A daring crew assembles...", summary)
}

func TestStoryService_RefineSummary(t *testing.T) {
	provider := NewMockProvider("ollama")
	svc := newStoryService(provider)

	provider.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		return strings.Contains(req.Prompt, `"make it darker"`) &&
			strings.Contains(req.Prompt, "The crew assembles.")
	}), "").Return(&llm.Response{Text: "Under a starless sky, the crew assembles."}, nil)

	refined, err := svc.RefineSummary(context.Background(), "", "The crew assembles.", "make it darker")
	require.NoError(t, err)
	assert.Equal(t, "Under a starless sky, the crew assembles.", refined)
}

func TestStoryService_CorrectSummary(t *testing.T) {
	provider := NewMockProvider("ollama")
	svc := newStoryService(provider)

	provider.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		return strings.Contains(req.Prompt, "the crew assemble on docks")
	}), "").Return(&llm.Response{Text: "The crew assembles on the docks."}, nil)

	corrected, err := svc.CorrectSummary(context.Background(), "", "the crew assemble on docks")
	require.NoError(t, err)
	assert.Equal(t, "The crew assembles on the docks.", corrected)
}

func TestStoryService_ProviderFailure(t *testing.T) {
	provider := NewMockProvider("ollama")
	svc := newStoryService(provider)

	provider.On("Complete", mock.Anything, mock.Anything, "").Return(nil, errors.New("timeout"))

	_, err := svc.GenerateSummary(context.Background(), "", "prompt")
	assert.Error(t, err)
}
