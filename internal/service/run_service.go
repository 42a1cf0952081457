package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"policyparser/internal/domain"
	"policyparser/internal/port"
)

// RunDetail is a persisted run with its per-document outcomes in input order.
type RunDetail struct {
	Run      *domain.ExtractionRun      `json:"run"`
	Outcomes []domain.ExtractionOutcome `json:"outcomes"`
}

// RunService reads run history.
type RunService interface {
	GetRun(ctx context.Context, id uuid.UUID) (*RunDetail, error)
}

type runService struct {
	repo port.RunRepository
}

// NewRunService creates a RunService. A nil repo yields ErrPersistenceDisabled on every call.
func NewRunService(repo port.RunRepository) RunService {
	return &runService{repo: repo}
}

func (s *runService) GetRun(ctx context.Context, id uuid.UUID) (*RunDetail, error) {
	if s.repo == nil {
		return nil, domain.ErrPersistenceDisabled
	}
	run, err := s.repo.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}
	outcomes, err := s.repo.ListOutcomes(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.RunService.GetRun: %w", err)
	}
	return &RunDetail{Run: run, Outcomes: outcomes}, nil
}
