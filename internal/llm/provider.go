package llm

import "context"

// Request contains text completion parameters
type Request struct {
	Prompt      string
	Temperature float64
}

// Response contains an LLM completion result
type Response struct {
	Text       string
	Model      string
	TokensUsed int
	LatencyMs  int64
}

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// AvailableModels returns list of supported models
	AvailableModels() []string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// Complete generates a free-text completion for the prompt
	Complete(ctx context.Context, req Request, model string) (*Response, error)
}
