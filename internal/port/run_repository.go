package port

import (
	"context"

	"github.com/google/uuid"

	"policyparser/internal/domain"
)

// RunRepository persists batch runs and their per-document outcomes.
type RunRepository interface {
	CreateRun(ctx context.Context, run *domain.ExtractionRun) error
	FinishRun(ctx context.Context, run *domain.ExtractionRun) error
	AddOutcomes(ctx context.Context, outcomes []domain.ExtractionOutcome) error
	GetRun(ctx context.Context, id uuid.UUID) (*domain.ExtractionRun, error)
	ListOutcomes(ctx context.Context, runID uuid.UUID) ([]domain.ExtractionOutcome, error)
}
