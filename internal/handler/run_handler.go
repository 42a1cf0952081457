package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"policyparser/internal/service"
)

// RunHandler serves persisted batch run history.
type RunHandler struct {
	runService service.RunService
}

// NewRunHandler creates a new RunHandler.
func NewRunHandler(runService service.RunService) *RunHandler {
	return &RunHandler{runService: runService}
}

// GetByID handles GET /api/v1/runs/:id
func (h *RunHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid run ID")
		return
	}

	detail, err := h.runService.GetRun(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, detail)
}
