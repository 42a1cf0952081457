package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"policyparser/internal/domain"
	x "policyparser/internal/extract"
	"policyparser/internal/port"
	"policyparser/internal/report"
)

// ExtractInput is the DTO for a single-document extraction request.
type ExtractInput struct {
	FileName       string
	Size           int64
	Body           io.Reader
	ProcessingDate time.Time
}

// ExtractResult is the outcome of extracting one uploaded document.
type ExtractResult struct {
	RunID   uuid.UUID           `json:"run_id,omitempty"`
	File    string              `json:"file"`
	State   domain.OutcomeState `json:"state"`
	Insurer string              `json:"insurer"`
	Variant domain.Variant      `json:"variant"`
	Reason  string              `json:"reason,omitempty"`
	Remarks string              `json:"remarks,omitempty"`
	Fields  map[string]string   `json:"fields"`
	Row     report.Record       `json:"row,omitempty"`
}

// InsurerInfo describes one recognizable insurer and whether it is enabled.
type InsurerInfo struct {
	Variant domain.Variant `json:"variant"`
	Name    string         `json:"name"`
	Enabled bool           `json:"enabled"`
}

// ExtractionService extracts uploaded documents one at a time.
type ExtractionService interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractResult, error)
	Insurers() []InsurerInfo
}

type extractionService struct {
	engine        *x.Engine
	branches      report.BranchLookup
	runs          port.RunRepository
	maxBytes      int64
	defaultMobile string
	logger        *zap.Logger
}

// NewExtractionService creates an ExtractionService. runs may be nil.
func NewExtractionService(
	engine *x.Engine,
	branches report.BranchLookup,
	runs port.RunRepository,
	maxUploadMB int64,
	defaultMobile string,
	logger *zap.Logger,
) ExtractionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &extractionService{
		engine:        engine,
		branches:      branches,
		runs:          runs,
		maxBytes:      maxUploadMB * 1024 * 1024,
		defaultMobile: defaultMobile,
		logger:        logger,
	}
}

func (s *extractionService) Extract(ctx context.Context, input ExtractInput) (*ExtractResult, error) {
	name := filepath.Base(input.FileName)
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		return nil, domain.ErrUnsupportedFileType
	}
	if s.maxBytes > 0 && input.Size > s.maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read the first 512 bytes for magic-byte content type detection
	head := make([]byte, 512)
	n, err := io.ReadFull(input.Body, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	head = head[:n]
	if http.DetectContentType(head) != "application/pdf" {
		return nil, domain.ErrUnsupportedFileType
	}

	dir, err := os.MkdirTemp("", "policyparser-*")
	if err != nil {
		return nil, fmt.Errorf("service.ExtractionService.Extract: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, name)
	if err := writeUpload(path, io.MultiReader(bytes.NewReader(head), input.Body)); err != nil {
		return nil, fmt.Errorf("service.ExtractionService.Extract: %w", err)
	}

	date := input.ProcessingDate
	if date.IsZero() {
		date = time.Now()
	}
	res := s.engine.Process(ctx, path, x.Env{ProcessingDate: date})

	out := &ExtractResult{
		File:    res.File,
		State:   res.State,
		Insurer: res.Variant.DisplayName(),
		Variant: res.Variant,
		Fields:  res.Values.Strings(),
	}
	sequence := 0
	if er, isErr := res.ErrorRecord(); isErr {
		out.Reason = er.Reason
		out.Remarks = er.Remarks
	} else {
		sequence = 1
		row, err := report.NewMapper(s.branches, date, s.defaultMobile).BuildRow(res.Variant, res.File, res.Values, sequence)
		if err != nil {
			return nil, fmt.Errorf("service.ExtractionService.Extract: %w", err)
		}
		out.Row = row
	}

	if s.runs != nil {
		out.RunID = s.record(ctx, res, date, sequence)
	}

	s.logger.Info("document extracted",
		zap.String("file", out.File),
		zap.String("state", string(out.State)),
		zap.String("variant", string(out.Variant)),
	)
	return out, nil
}

// record persists a single-document run. Failures are logged and yield uuid.Nil.
func (s *extractionService) record(ctx context.Context, res x.Result, date time.Time, sequence int) uuid.UUID {
	summary := &domain.RunSummary{
		RunID:          uuid.New(),
		ProcessingDate: date,
		StartedAt:      time.Now().UTC(),
		Input:          1,
		ByState:        map[domain.OutcomeState]int{res.State: 1},
	}
	if sequence > 0 {
		summary.Success = 1
	} else {
		summary.Errors = 1
	}
	rec := newRunRecorder(s.runs, s.logger.With(zap.String("run_id", summary.RunID.String())))
	rec.start(ctx, summary)
	if !rec.created {
		return uuid.Nil
	}
	summary.FinishedAt = time.Now().UTC()
	rec.finish(ctx, summary, []x.Result{res}, []int{sequence}, "")
	return summary.RunID
}

func (s *extractionService) Insurers() []InsurerInfo {
	out := make([]InsurerInfo, 0, len(domain.KnownVariants))
	for _, v := range domain.KnownVariants {
		out = append(out, InsurerInfo{Variant: v, Name: v.DisplayName(), Enabled: s.engine.Enabled(v)})
	}
	return out
}

func writeUpload(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
