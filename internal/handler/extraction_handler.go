package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"policyparser/internal/config"
	"policyparser/internal/service"
)

// ExtractionHandler handles single-document extraction endpoints.
type ExtractionHandler struct {
	extractionService service.ExtractionService
}

// NewExtractionHandler creates a new ExtractionHandler.
func NewExtractionHandler(extractionService service.ExtractionService) *ExtractionHandler {
	return &ExtractionHandler{extractionService: extractionService}
}

// Extract handles POST /api/v1/extract
// Multipart form: file (PDF, required), processing_date (mm/dd/yyyy, optional, defaults to today).
func (h *ExtractionHandler) Extract(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	date, err := config.ParseProcessingDate(c.PostForm("processing_date"))
	if err != nil {
		HandleError(c, err)
		return
	}
	if date.IsZero() {
		date = time.Now()
	}

	result, err := h.extractionService.Extract(c.Request.Context(), service.ExtractInput{
		FileName:       header.Filename,
		Size:           header.Size,
		Body:           file,
		ProcessingDate: date,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Insurers handles GET /api/v1/insurers
func (h *ExtractionHandler) Insurers(c *gin.Context) {
	RespondOK(c, h.extractionService.Insurers())
}
