package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"policyparser/internal/domain"
	"policyparser/internal/handler"
	"policyparser/internal/service"
	"policyparser/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func multipartRequest(t *testing.T, filename string, fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, _ = part.Write([]byte("%PDF-1.4 test content"))
	}
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestExtractionHandler_Extract_Success(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	h := handler.NewExtractionHandler(svc)

	svc.On("Extract", mock.Anything, mock.MatchedBy(func(in service.ExtractInput) bool {
		return in.FileName == "policy.pdf" &&
			in.ProcessingDate.Equal(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
	})).Return(&service.ExtractResult{
		File:    "policy.pdf",
		State:   domain.OutcomeSuccess,
		Variant: domain.VariantSBI,
		Fields:  map[string]string{"policy_number": "P100"},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "policy.pdf", map[string]string{"processing_date": "03/15/2024"})

	h.Extract(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "success", data["state"])
	assert.Equal(t, "P100", data["fields"].(map[string]interface{})["policy_number"])
	svc.AssertExpectations(t)
}

func TestExtractionHandler_Extract_DefaultsProcessingDate(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	h := handler.NewExtractionHandler(svc)
	svc.On("Extract", mock.Anything, mock.MatchedBy(func(in service.ExtractInput) bool {
		return !in.ProcessingDate.IsZero()
	})).Return(&service.ExtractResult{State: domain.OutcomeUnidentifiedInsurer}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "other.pdf", nil)

	h.Extract(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestExtractionHandler_Extract_NoFile(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	h := handler.NewExtractionHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "", map[string]string{"processing_date": "03/15/2024"})

	h.Extract(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_FILE", decode(t, w).Error.Code)
	svc.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestExtractionHandler_Extract_InvalidDate(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	h := handler.NewExtractionHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "policy.pdf", map[string]string{"processing_date": "15/03/2024"})

	h.Extract(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_PROCESSING_DATE", decode(t, w).Error.Code)
}

func TestExtractionHandler_Extract_ServiceErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{fmt.Errorf("report.Mapper.BuildRow x.pdf: %w", domain.ErrUnknownInsurer), http.StatusInternalServerError, "BRANCH_MASTER_INCOMPLETE"},
		{errors.New("disk full"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			svc := new(mocks.MockExtractionService)
			svc.On("Extract", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = multipartRequest(t, "policy.pdf", nil)

			handler.NewExtractionHandler(svc).Extract(c)

			assert.Equal(t, tt.status, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestExtractionHandler_Insurers(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	svc.On("Insurers").Return([]service.InsurerInfo{
		{Variant: domain.VariantSBI, Name: domain.VariantSBI.DisplayName(), Enabled: true},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/insurers", nil)

	handler.NewExtractionHandler(svc).Insurers(c)

	assert.Equal(t, http.StatusOK, w.Code)
	items := decode(t, w).Data.([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "sbi", items[0].(map[string]interface{})["variant"])
	assert.Equal(t, true, items[0].(map[string]interface{})["enabled"])
}

func TestRunHandler_GetByID(t *testing.T) {
	id := uuid.New()
	svc := new(mocks.MockRunService)
	svc.On("GetRun", mock.Anything, id).Return(&service.RunDetail{
		Run:      &domain.ExtractionRun{ID: id, Status: domain.RunStatusCompleted},
		Outcomes: []domain.ExtractionOutcome{{RunID: id, File: "a.pdf"}},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/runs/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	handler.NewRunHandler(svc).GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "completed", data["run"].(map[string]interface{})["status"])
	assert.Len(t, data["outcomes"], 1)
}

func TestRunHandler_GetByID_Errors(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name   string
		param  string
		err    error
		status int
	}{
		{"invalid id", "not-a-uuid", nil, http.StatusBadRequest},
		{"not found", id.String(), domain.ErrRunNotFound, http.StatusNotFound},
		{"persistence disabled", id.String(), domain.ErrPersistenceDisabled, http.StatusNotImplemented},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockRunService)
			if tt.err != nil {
				svc.On("GetRun", mock.Anything, id).Return(nil, tt.err)
			}

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/runs/"+tt.param, nil)
			c.Params = gin.Params{{Key: "id", Value: tt.param}}

			handler.NewRunHandler(svc).GetByID(c)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name   string
		db     handler.Pinger
		status int
	}{
		{"persistence disabled", nil, http.StatusOK},
		{"database up", stubPinger{}, http.StatusOK},
		{"database down", stubPinger{err: errors.New("refused")}, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewHealthHandler(tt.db)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/readyz", nil)
			h.Readiness(c)
			assert.Equal(t, tt.status, w.Code)

			w = httptest.NewRecorder()
			c, _ = gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/healthz", nil)
			h.Liveness(c)
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}
