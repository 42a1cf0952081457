package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"policyparser/internal/app"
	"policyparser/internal/config"
	"policyparser/internal/handler"
	"policyparser/internal/logging"
	"policyparser/internal/router"
	"policyparser/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logging.Sync(logger) }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	branches, err := app.LoadBranches(cfg.Master.BranchFile, cfg.Run.EnabledInsurers)
	if err != nil {
		return fmt.Errorf("failed to load branch master: %w", err)
	}

	backends, err := app.OpenBackends(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open backends: %w", err)
	}
	defer backends.Close()

	// Initialize services
	engine := app.NewEngine(cfg, logger)
	extractionSvc := service.NewExtractionService(engine, branches, backends.Runs,
		cfg.Server.MaxUploadMB, cfg.Report.DefaultMobile, logger.Named("extraction"))
	runSvc := service.NewRunService(backends.Runs)

	// Initialize handlers. A nil *sqlx.DB must not become a non-nil Pinger.
	var healthH *handler.HealthHandler
	if backends.DB != nil {
		healthH = handler.NewHealthHandler(backends.DB)
	} else {
		healthH = handler.NewHealthHandler(nil)
	}
	r := router.Setup(logger.Named("http"), cfg.Server.AllowedOrigins,
		handler.NewExtractionHandler(extractionSvc),
		handler.NewRunHandler(runSvc),
		healthH,
	)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
