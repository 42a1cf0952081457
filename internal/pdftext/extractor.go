// Package pdftext extracts policy document text with poppler's pdftotext.
package pdftext

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

var errEmptyText = errors.New("no text could be extracted")

// Options configures the pdftotext invocation.
type Options struct {
	Binary  string
	Timeout time.Duration
}

// Extractor implements port.TextExtractor on top of pdftotext. The primary pass reads text in
// content-stream order; the alternate pass keeps the physical layout.
type Extractor struct {
	runner Runner
	opts   Options
	logger *zap.Logger
}

// New creates an Extractor. A nil runner runs commands on the host.
func New(runner Runner, opts Options, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if runner == nil {
		runner = ExecRunner{Logger: logger}
	}
	if opts.Binary == "" {
		opts.Binary = "pdftotext"
	}
	return &Extractor{runner: runner, opts: opts, logger: logger}
}

// Extract returns the document text in reading order.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	return e.run(ctx, path, false)
}

// ExtractAlternate returns the document text with its physical layout preserved.
func (e *Extractor) ExtractAlternate(ctx context.Context, path string) (string, error) {
	return e.run(ctx, path, true)
}

func (e *Extractor) run(ctx context.Context, path string, layout bool) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}

	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	args := []string{"-enc", "UTF-8", "-eol", "unix"}
	if layout {
		args = append(args, "-layout")
	}
	args = append(args, path, "-")

	stdout, stderr, err := e.runner.Run(ctx, e.opts.Binary, args...)
	if err != nil {
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			return "", fmt.Errorf("%s: %s", e.opts.Binary, firstLine(msg))
		}
		return "", fmt.Errorf("%s: %w", e.opts.Binary, err)
	}
	if strings.TrimSpace(string(stdout)) == "" && info.Size() > 0 {
		return "", errEmptyText
	}
	return string(stdout), nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
