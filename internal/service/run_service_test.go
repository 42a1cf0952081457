package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"policyparser/internal/domain"
	"policyparser/internal/service"
	"policyparser/mocks"
)

func TestRunService_GetRun(t *testing.T) {
	id := uuid.New()
	run := &domain.ExtractionRun{ID: id, Status: domain.RunStatusCompleted, InputCount: 2}
	outcomes := []domain.ExtractionOutcome{{RunID: id, File: "a.pdf"}, {RunID: id, File: "b.pdf"}}

	repo := new(mocks.MockRunRepo)
	repo.On("GetRun", mock.Anything, id).Return(run, nil)
	repo.On("ListOutcomes", mock.Anything, id).Return(outcomes, nil)

	got, err := service.NewRunService(repo).GetRun(context.Background(), id)
	require.NoError(t, err)
	assert.Same(t, run, got.Run)
	assert.Equal(t, outcomes, got.Outcomes)
}

func TestRunService_GetRun_NotFound(t *testing.T) {
	id := uuid.New()
	repo := new(mocks.MockRunRepo)
	repo.On("GetRun", mock.Anything, id).Return(nil, domain.ErrRunNotFound)

	_, err := service.NewRunService(repo).GetRun(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
	repo.AssertNotCalled(t, "ListOutcomes", mock.Anything, mock.Anything)
}

func TestRunService_GetRun_OutcomesError(t *testing.T) {
	id := uuid.New()
	repo := new(mocks.MockRunRepo)
	repo.On("GetRun", mock.Anything, id).Return(&domain.ExtractionRun{ID: id}, nil)
	repo.On("ListOutcomes", mock.Anything, id).Return(nil, errors.New("timeout"))

	_, err := service.NewRunService(repo).GetRun(context.Background(), id)
	assert.ErrorContains(t, err, "timeout")
}

func TestRunService_GetRun_PersistenceDisabled(t *testing.T) {
	_, err := service.NewRunService(nil).GetRun(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrPersistenceDisabled)
}
