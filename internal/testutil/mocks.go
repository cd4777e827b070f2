package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCompletionService is a testify mock of the CompletionService port.
type MockCompletionService struct {
	mock.Mock
}

func (m *MockCompletionService) TranslateQuery(ctx context.Context, question, schema string) (string, error) {
	args := m.Called(ctx, question, schema)
	return args.String(0), args.Error(1)
}

func (m *MockCompletionService) SummarizeRows(ctx context.Context, rendered string) (string, error) {
	args := m.Called(ctx, rendered)
	return args.String(0), args.Error(1)
}

func (m *MockCompletionService) GenerateRecipe(ctx context.Context, question string) (string, error) {
	args := m.Called(ctx, question)
	return args.String(0), args.Error(1)
}

func (m *MockCompletionService) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
