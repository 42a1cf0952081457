package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"policyparser/internal/domain"
	"policyparser/internal/port"
)

type runRepo struct {
	db *sqlx.DB
}

// NewRunRepo creates a new PostgreSQL-backed RunRepository.
func NewRunRepo(db *sqlx.DB) port.RunRepository {
	return &runRepo{db: db}
}

func (r *runRepo) CreateRun(ctx context.Context, run *domain.ExtractionRun) error {
	query := `INSERT INTO extraction_runs (id, processing_date, status, input_count, success_count, error_count, report_location, started_at)
		VALUES (:id, :processing_date, :status, :input_count, :success_count, :error_count, :report_location, :started_at)`
	if _, err := r.db.NamedExecContext(ctx, query, run); err != nil {
		return fmt.Errorf("runRepo.CreateRun: %w", err)
	}
	return nil
}

func (r *runRepo) FinishRun(ctx context.Context, run *domain.ExtractionRun) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE extraction_runs
		 SET status = $1, success_count = $2, error_count = $3, report_location = $4, finished_at = $5
		 WHERE id = $6`,
		run.Status, run.SuccessCount, run.ErrorCount, run.ReportLocation, run.FinishedAt, run.ID)
	if err != nil {
		return fmt.Errorf("runRepo.FinishRun: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("runRepo.FinishRun rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRunNotFound
	}
	return nil
}

// AddOutcomes inserts all outcomes of a run in one transaction.
func (r *runRepo) AddOutcomes(ctx context.Context, outcomes []domain.ExtractionOutcome) error {
	if len(outcomes) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("runRepo.AddOutcomes begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	query := `INSERT INTO extraction_outcomes (id, run_id, position, sequence, file, state, variant, reason, remarks, fields, created_at)
		VALUES (:id, :run_id, :position, :sequence, :file, :state, :variant, :reason, :remarks, :fields, :created_at)`
	if _, err := tx.NamedExecContext(ctx, query, outcomes); err != nil {
		return fmt.Errorf("runRepo.AddOutcomes: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("runRepo.AddOutcomes commit: %w", err)
	}
	return nil
}

func (r *runRepo) GetRun(ctx context.Context, id uuid.UUID) (*domain.ExtractionRun, error) {
	var run domain.ExtractionRun
	err := r.db.GetContext(ctx, &run, "SELECT * FROM extraction_runs WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRunNotFound
		}
		return nil, fmt.Errorf("runRepo.GetRun: %w", err)
	}
	return &run, nil
}

func (r *runRepo) ListOutcomes(ctx context.Context, runID uuid.UUID) ([]domain.ExtractionOutcome, error) {
	var outcomes []domain.ExtractionOutcome
	err := r.db.SelectContext(ctx, &outcomes,
		`SELECT * FROM extraction_outcomes WHERE run_id = $1 ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("runRepo.ListOutcomes: %w", err)
	}
	return outcomes, nil
}
