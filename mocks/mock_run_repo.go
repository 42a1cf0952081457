package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"policyparser/internal/domain"
)

// MockRunRepo is a mock implementation of port.RunRepository.
type MockRunRepo struct {
	mock.Mock
}

func (m *MockRunRepo) CreateRun(ctx context.Context, run *domain.ExtractionRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepo) FinishRun(ctx context.Context, run *domain.ExtractionRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepo) AddOutcomes(ctx context.Context, outcomes []domain.ExtractionOutcome) error {
	args := m.Called(ctx, outcomes)
	return args.Error(0)
}

func (m *MockRunRepo) GetRun(ctx context.Context, id uuid.UUID) (*domain.ExtractionRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionRun), args.Error(1)
}

func (m *MockRunRepo) ListOutcomes(ctx context.Context, runID uuid.UUID) ([]domain.ExtractionOutcome, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExtractionOutcome), args.Error(1)
}
