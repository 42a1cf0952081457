package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"policyparser/internal/domain"
	x "policyparser/internal/extract"
	"policyparser/internal/port"
)

// runRecorder writes run history when a RunRepository is configured. Persistence failures are
// logged and never fail the run.
type runRecorder struct {
	repo    port.RunRepository
	logger  *zap.Logger
	run     *domain.ExtractionRun
	created bool
}

func newRunRecorder(repo port.RunRepository, logger *zap.Logger) *runRecorder {
	return &runRecorder{repo: repo, logger: logger}
}

func (r *runRecorder) start(ctx context.Context, summary *domain.RunSummary) {
	if r.repo == nil {
		return
	}
	r.run = &domain.ExtractionRun{
		ID:             summary.RunID,
		ProcessingDate: summary.ProcessingDate,
		Status:         domain.RunStatusRunning,
		InputCount:     summary.Input,
		StartedAt:      summary.StartedAt,
	}
	if err := r.repo.CreateRun(ctx, r.run); err != nil {
		r.logger.Warn("failed to record run start", zap.Error(err))
		return
	}
	r.created = true
}

func (r *runRecorder) fail(ctx context.Context, summary *domain.RunSummary) {
	if !r.created {
		return
	}
	now := time.Now().UTC()
	r.run.Status = domain.RunStatusFailed
	r.run.SuccessCount = summary.Success
	r.run.ErrorCount = summary.Errors
	r.run.FinishedAt = &now
	if err := r.repo.FinishRun(ctx, r.run); err != nil {
		r.logger.Warn("failed to record run failure", zap.Error(err))
	}
}

// finish stores every document outcome and marks the run completed. sequences holds the SAIBA
// serial number of each result, zero for non-successes.
func (r *runRecorder) finish(ctx context.Context, summary *domain.RunSummary, results []x.Result, sequences []int, location string) {
	if !r.created {
		return
	}
	outcomes := make([]domain.ExtractionOutcome, 0, len(results))
	for i, res := range results {
		outcomes = append(outcomes, outcomeFor(summary.RunID, i, res, sequences[i]))
	}
	if err := r.repo.AddOutcomes(ctx, outcomes); err != nil {
		r.logger.Warn("failed to record run outcomes", zap.Error(err))
	}

	finished := summary.FinishedAt
	r.run.Status = domain.RunStatusCompleted
	r.run.SuccessCount = summary.Success
	r.run.ErrorCount = summary.Errors
	r.run.ReportLocation = location
	r.run.FinishedAt = &finished
	if err := r.repo.FinishRun(ctx, r.run); err != nil {
		r.logger.Warn("failed to record run completion", zap.Error(err))
	}
}

func outcomeFor(runID uuid.UUID, position int, res x.Result, sequence int) domain.ExtractionOutcome {
	out := domain.ExtractionOutcome{
		ID:        uuid.New(),
		RunID:     runID,
		Position:  position,
		Sequence:  sequence,
		File:      res.File,
		State:     res.State,
		Variant:   res.Variant,
		Fields:    json.RawMessage("{}"),
		CreatedAt: time.Now().UTC(),
	}
	if er, isErr := res.ErrorRecord(); isErr {
		out.Reason = er.Reason
		out.Remarks = er.Remarks
	}
	if len(res.Values) > 0 {
		if data, err := json.Marshal(res.Values.Strings()); err == nil {
			out.Fields = data
		}
	}
	return out
}
