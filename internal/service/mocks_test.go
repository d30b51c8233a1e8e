package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/adiavolo/comic-insights/internal/domain"
	"github.com/adiavolo/comic-insights/internal/imagegen"
	"github.com/adiavolo/comic-insights/internal/llm"
)

// MockSessionStore mocks the domain.SessionStore interface
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create() *domain.Session {
	args := m.Called()
	return args.Get(0).(*domain.Session)
}

func (m *MockSessionStore) AddEntry(sessionID uuid.UUID, prompt, style, image, plot string) (*domain.Entry, error) {
	args := m.Called(sessionID, prompt, style, image, plot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockSessionStore) History(sessionID uuid.UUID) ([]domain.Entry, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockSessionStore) Entry(sessionID uuid.UUID, index int) (*domain.Entry, bool) {
	args := m.Called(sessionID, index)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.Entry), args.Bool(1)
}

func (m *MockSessionStore) Status(sessionID uuid.UUID) (*domain.SessionSummary, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionSummary), args.Error(1)
}

func (m *MockSessionStore) Export(sessionID uuid.UUID) (string, error) {
	args := m.Called(sessionID)
	return args.String(0), args.Error(1)
}

// MockImageGenerator mocks the ImageGenerator interface
type MockImageGenerator struct {
	mock.Mock
}

func (m *MockImageGenerator) Generate(ctx context.Context, req imagegen.Request) (*imagegen.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*imagegen.Result), args.Error(1)
}

func (m *MockImageGenerator) FullPrompt(req imagegen.Request) string {
	args := m.Called(req)
	return args.String(0)
}

// MockProvider mocks the llm.Provider interface
type MockProvider struct {
	mock.Mock
	name string
}

func NewMockProvider(name string) *MockProvider {
	return &MockProvider{name: name}
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) AvailableModels() []string {
	return []string{"mock"}
}

func (m *MockProvider) DefaultModel() string {
	return "mock"
}

func (m *MockProvider) IsConfigured() bool {
	return true
}

func (m *MockProvider) Complete(ctx context.Context, req llm.Request, model string) (*llm.Response, error) {
	args := m.Called(ctx, req, model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.Response), args.Error(1)
}
