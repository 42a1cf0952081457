package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"policyparser/internal/handler"
	"policyparser/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	logger *zap.Logger,
	allowedOrigins []string,
	extractionH *handler.ExtractionHandler,
	runH *handler.RunHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")
	v1.POST("/extract", extractionH.Extract)
	v1.GET("/insurers", extractionH.Insurers)
	v1.GET("/runs/:id", runH.GetByID)

	return r
}
