package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"policyparser/internal/domain"
	"policyparser/internal/service"
	"policyparser/mocks"
)

const pdfHeader = "%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<< /Type /Catalog >>\nendobj\n"

func pdfInput(name string) service.ExtractInput {
	return service.ExtractInput{
		FileName:       name,
		Size:           int64(len(pdfHeader)),
		Body:           strings.NewReader(pdfHeader),
		ProcessingDate: processingDate,
	}
}

// isUpload matches the temporary path an uploaded document is written to.
func isUpload(name string) interface{} {
	return mock.MatchedBy(func(path string) bool { return filepath.Base(path) == name })
}

func TestExtractionService_Extract_Success(t *testing.T) {
	text := new(mocks.MockTextExtractor)
	text.On("Extract", mock.Anything, isUpload("policy.pdf")).Return(acmeText, nil)
	svc := service.NewExtractionService(newEngine(text), testBranches(), nil, 20, "", nil)

	res, err := svc.Extract(context.Background(), pdfInput("uploads/policy.pdf"))
	require.NoError(t, err)

	assert.Equal(t, uuid.Nil, res.RunID)
	assert.Equal(t, "policy.pdf", res.File)
	assert.Equal(t, domain.OutcomeSuccess, res.State)
	assert.Equal(t, domain.VariantSBI, res.Variant)
	assert.Equal(t, domain.VariantSBI.DisplayName(), res.Insurer)
	assert.Empty(t, res.Reason)
	assert.Equal(t, "P100", res.Fields["policy_number"])
	assert.Equal(t, "1", res.Row["Sno"])
	assert.Equal(t, "SBI-101", res.Row["InsurerBranchAutoCodeSAIBA"])
	assert.Equal(t, "03/15/2024", res.Row["PolicyReceiveDate"])
	assert.Equal(t, "8826294213", res.Row["MobileNo"])
}

func TestExtractionService_Extract_Unidentified(t *testing.T) {
	text := new(mocks.MockTextExtractor)
	text.On("Extract", mock.Anything, isUpload("other.pdf")).Return(unknownText, nil)
	svc := service.NewExtractionService(newEngine(text), testBranches(), nil, 20, "", nil)

	res, err := svc.Extract(context.Background(), pdfInput("other.pdf"))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUnidentifiedInsurer, res.State)
	assert.Equal(t, domain.ReasonUnidentifiedInsurer, res.Reason)
	assert.Equal(t, "Not Available", res.Insurer)
	assert.Nil(t, res.Row)
}

func TestExtractionService_Extract_ReadError(t *testing.T) {
	text := new(mocks.MockTextExtractor)
	text.On("Extract", mock.Anything, isUpload("broken.pdf")).Return("", errors.New("syntax error"))
	svc := service.NewExtractionService(newEngine(text), testBranches(), nil, 20, "", nil)

	res, err := svc.Extract(context.Background(), pdfInput("broken.pdf"))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeReadError, res.State)
	assert.Equal(t, "Unable to read PDF. syntax error.", res.Reason)
}

func TestExtractionService_Extract_Rejects(t *testing.T) {
	svc := service.NewExtractionService(newEngine(new(mocks.MockTextExtractor)), testBranches(), nil, 1, "", nil)

	tests := []struct {
		name  string
		input service.ExtractInput
		want  error
	}{
		{"wrong extension", pdfInput("policy.docx"), domain.ErrUnsupportedFileType},
		{"too large", service.ExtractInput{FileName: "big.pdf", Size: 2 * 1024 * 1024, Body: strings.NewReader(pdfHeader)}, domain.ErrFileTooLarge},
		{"not a pdf", service.ExtractInput{FileName: "fake.pdf", Size: 5, Body: strings.NewReader("hello")}, domain.ErrUnsupportedFileType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Extract(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExtractionService_Extract_RecordsRun(t *testing.T) {
	text := new(mocks.MockTextExtractor)
	text.On("Extract", mock.Anything, isUpload("policy.pdf")).Return(acmeText, nil)

	runs := new(mocks.MockRunRepo)
	runs.On("CreateRun", mock.Anything, mock.MatchedBy(func(r *domain.ExtractionRun) bool {
		return r.InputCount == 1
	})).Return(nil)
	runs.On("AddOutcomes", mock.Anything, mock.MatchedBy(func(o []domain.ExtractionOutcome) bool {
		return len(o) == 1 && o[0].Sequence == 1 && o[0].File == "policy.pdf"
	})).Return(nil)
	runs.On("FinishRun", mock.Anything, mock.MatchedBy(func(r *domain.ExtractionRun) bool {
		return r.Status == domain.RunStatusCompleted && r.SuccessCount == 1
	})).Return(nil)

	svc := service.NewExtractionService(newEngine(text), testBranches(), runs, 20, "", nil)
	res, err := svc.Extract(context.Background(), pdfInput("policy.pdf"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, res.RunID)
	runs.AssertExpectations(t)
}

func TestExtractionService_Insurers(t *testing.T) {
	svc := service.NewExtractionService(newEngine(new(mocks.MockTextExtractor)), testBranches(), nil, 20, "", nil)

	got := svc.Insurers()
	require.Len(t, got, len(domain.KnownVariants))
	assert.Equal(t, service.InsurerInfo{Variant: domain.VariantSBI, Name: domain.VariantSBI.DisplayName(), Enabled: true}, got[0])
	assert.False(t, got[1].Enabled)
	assert.False(t, got[2].Enabled)
}
