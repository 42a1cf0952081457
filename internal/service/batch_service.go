package service

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"policyparser/internal/domain"
	x "policyparser/internal/extract"
	"policyparser/internal/port"
	"policyparser/internal/report"
)

// BatchInput describes one batch run. Exactly one of Files and Dir must be set.
type BatchInput struct {
	Files          []string
	Dir            string
	ReportFile     string
	ErrorFile      string
	ProcessingDate time.Time
	// TextDumpDir, when set, receives the normalized text of every readable document.
	TextDumpDir string
}

// BatchConfig holds the collaborators and settings of a BatchService.
type BatchConfig struct {
	Workers       int
	DefaultMobile string
	// Runs is optional; nil disables run history.
	Runs port.RunRepository
	// Storage is optional; nil disables report upload.
	Storage port.ObjectStorage
	Upload  UploadConfig
}

// UploadConfig locates uploaded reports in object storage.
type UploadConfig struct {
	Bucket        string
	Prefix        string
	PresignExpiry int64
}

// BatchService processes a set of policy documents into a SAIBA report and an error report.
type BatchService interface {
	Run(ctx context.Context, in BatchInput) (*domain.RunSummary, error)
}

type batchService struct {
	engine   *x.Engine
	branches report.BranchLookup
	cfg      BatchConfig
	logger   *zap.Logger
}

// NewBatchService creates a BatchService. branches must already hold a bucket for every
// enabled insurer.
func NewBatchService(engine *x.Engine, branches report.BranchLookup, cfg BatchConfig, logger *zap.Logger) BatchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &batchService{engine: engine, branches: branches, cfg: cfg, logger: logger}
}

func (s *batchService) Run(ctx context.Context, in BatchInput) (*domain.RunSummary, error) {
	files, err := ResolveInputs(in.Files, in.Dir)
	if err != nil {
		return nil, err
	}

	summary := &domain.RunSummary{
		RunID:          uuid.New(),
		ProcessingDate: in.ProcessingDate,
		StartedAt:      time.Now().UTC(),
		Input:          len(files),
		ByState:        make(map[domain.OutcomeState]int),
	}
	log := s.logger.With(zap.String("run_id", summary.RunID.String()))
	log.Info("processing documents", zap.Int("files", len(files)), zap.Int("workers", s.cfg.Workers))

	rec := newRunRecorder(s.cfg.Runs, log)
	rec.start(ctx, summary)

	results, err := s.processAll(ctx, files, in)
	if err != nil {
		rec.fail(ctx, summary)
		return nil, err
	}

	mapper := report.NewMapper(s.branches, in.ProcessingDate, s.cfg.DefaultMobile)
	var rows, errorRows [][]string
	sequences := make([]int, len(results))
	for i, res := range results {
		summary.ByState[res.State]++
		if er, isErr := res.ErrorRecord(); isErr {
			errorRows = append(errorRows, report.ErrorRow(er))
			continue
		}
		sequences[i] = len(rows) + 1
		row, err := mapper.BuildRow(res.Variant, res.File, res.Values, sequences[i])
		if err != nil {
			rec.fail(ctx, summary)
			return nil, fmt.Errorf("service.BatchService.Run: %w", err)
		}
		rows = append(rows, row.Values(report.Headers))
	}
	summary.Success = len(rows)
	summary.Errors = len(errorRows)

	if err := report.WriteFile(in.ReportFile, report.Headers, rows); err != nil {
		rec.fail(ctx, summary)
		return nil, err
	}
	if err := report.WriteFile(in.ErrorFile, report.ErrorHeaders, errorRows); err != nil {
		rec.fail(ctx, summary)
		return nil, err
	}

	location := in.ReportFile
	if s.cfg.Storage != nil {
		summary.ReportURL, location = s.upload(ctx, log, summary.RunID, in.ReportFile, location)
		summary.ErrorReportURL, _ = s.upload(ctx, log, summary.RunID, in.ErrorFile, "")
	}

	summary.FinishedAt = time.Now().UTC()
	rec.finish(ctx, summary, results, sequences, location)

	log.Info("processing complete",
		zap.Int("input", summary.Input),
		zap.Int("success", summary.Success),
		zap.Int("errors", summary.Errors),
	)
	return summary, nil
}

// processAll runs every document through the engine on a bounded pool. Results keep input order.
func (s *batchService) processAll(ctx context.Context, files []string, in BatchInput) ([]x.Result, error) {
	env := x.Env{ProcessingDate: in.ProcessingDate}
	results := make([]x.Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.engine.Process(gctx, path, env)
			if in.TextDumpDir != "" && results[i].State != domain.OutcomeReadError {
				s.dumpText(in.TextDumpDir, results[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("service.BatchService.Run: %w", err)
	}
	return results, nil
}

func (s *batchService) dumpText(dir string, res x.Result) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.logger.Warn("cannot create text dump directory", zap.String("dir", dir), zap.Error(err))
		return
	}
	path := filepath.Join(dir, res.File+".txt")
	if err := os.WriteFile(path, []byte(res.Document.Content()), 0o644); err != nil {
		s.logger.Warn("cannot write text dump", zap.String("path", path), zap.Error(err))
	}
}

// upload stores a written report and returns a presigned URL and the object location. Failures
// are logged; the local report remains authoritative.
func (s *batchService) upload(ctx context.Context, log *zap.Logger, runID uuid.UUID, path, fallback string) (string, string) {
	f, err := os.Open(path)
	if err != nil {
		log.Warn("report upload skipped", zap.String("path", path), zap.Error(err))
		return "", fallback
	}
	defer f.Close()

	key := ObjectKey(s.cfg.Upload.Prefix, runID, filepath.Base(path))
	out, err := s.cfg.Storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Upload.Bucket,
		Key:         key,
		Body:        f,
		ContentType: report.FormatFor(path).ContentType(),
	})
	if err != nil {
		log.Warn("report upload failed", zap.String("key", key), zap.Error(fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)))
		return "", fallback
	}
	url, err := s.cfg.Storage.GetPresignedURL(ctx, s.cfg.Upload.Bucket, key, s.cfg.Upload.PresignExpiry)
	if err != nil {
		log.Warn("presigning report failed", zap.String("key", key), zap.Error(err))
	} else {
		log.Info("report uploaded", zap.String("key", key), zap.String("url", url))
	}
	return url, out.Location
}

// ObjectKey returns the storage key of a run's report file: <prefix>/<run id>/<file name>.
func ObjectKey(prefix string, runID uuid.UUID, name string) string {
	parts := []string{runID.String(), name}
	if p := strings.Trim(prefix, "/"); p != "" {
		parts = append([]string{p}, parts...)
	}
	return strings.Join(parts, "/")
}

// ResolveInputs returns the documents of a run: the given files, or every *.pdf under dir
// (case-insensitive extension, recursive, lexical order).
func ResolveInputs(files []string, dir string) ([]string, error) {
	switch {
	case len(files) > 0 && dir != "":
		return nil, domain.ErrConflictingInputs
	case len(files) > 0:
		return files, nil
	case dir == "":
		return nil, domain.ErrNoInputFiles
	}

	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".pdf") {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.ResolveInputs: %w", err)
	}
	return out, nil
}
