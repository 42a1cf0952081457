// Package app wires configuration into the engine and its optional backends. It is shared by
// the batch CLI and the HTTP server.
package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"policyparser/internal/branch"
	"policyparser/internal/config"
	"policyparser/internal/domain"
	x "policyparser/internal/extract"
	"policyparser/internal/insurer"
	"policyparser/internal/pdftext"
	"policyparser/internal/port"
	"policyparser/internal/repository/postgres"
	s3storage "policyparser/internal/storage/s3"
)

// Backends holds the optional persistence and storage collaborators. Nil fields are disabled.
type Backends struct {
	DB      *sqlx.DB
	Runs    port.RunRepository
	Storage port.ObjectStorage
}

// Close releases the database pool, if any.
func (b *Backends) Close() {
	if b.DB != nil {
		_ = b.DB.Close()
	}
}

// NewEngine builds the extraction engine for the configured insurers on top of pdftotext.
func NewEngine(cfg *config.Config, logger *zap.Logger) *x.Engine {
	text := pdftext.New(nil, pdftext.Options{
		Binary:  cfg.Extract.Binary,
		Timeout: cfg.Extract.Timeout,
	}, logger.Named("pdftext"))
	return x.NewEngine(insurer.NewClassifier(), text, cfg.Run.EnabledInsurers, logger.Named("extract"))
}

// LoadBranches reads the branch master and verifies it covers every enabled insurer.
func LoadBranches(path string, enabled []domain.Variant) (*branch.Index, error) {
	if path == "" {
		return nil, fmt.Errorf("app.LoadBranches: branch master file is required")
	}
	idx, err := branch.LoadFile(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(enabled))
	for _, v := range enabled {
		names = append(names, v.DisplayName())
	}
	if err := idx.Require(names...); err != nil {
		return nil, fmt.Errorf("app.LoadBranches %s: %w", path, err)
	}
	return idx, nil
}

// OpenBackends connects the run repository and report store when enabled.
func OpenBackends(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backends, error) {
	b := &Backends{}
	if cfg.DB.Enabled {
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return nil, err
		}
		b.DB = db
		b.Runs = postgres.NewRunRepo(db)
		logger.Info("run persistence enabled", zap.String("host", cfg.DB.Host), zap.String("database", cfg.DB.Name))
	}
	if cfg.S3.Enabled {
		store, err := s3storage.NewReportStore(ctx, &cfg.S3)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.Storage = store
		logger.Info("report upload enabled", zap.String("bucket", cfg.S3.Bucket), zap.String("prefix", cfg.S3.Prefix))
	}
	return b, nil
}
