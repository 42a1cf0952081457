package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"policyparser/internal/service"
)

// MockExtractionService is a mock implementation of service.ExtractionService.
type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) Extract(ctx context.Context, input service.ExtractInput) (*service.ExtractResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExtractResult), args.Error(1)
}

func (m *MockExtractionService) Insurers() []service.InsurerInfo {
	args := m.Called()
	return args.Get(0).([]service.InsurerInfo)
}
