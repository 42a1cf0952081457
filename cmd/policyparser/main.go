// Package main implements the policyparser CLI, which turns a batch of motor insurance policy
// PDFs into a SAIBA upload report and an error report.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"policyparser/internal/app"
	"policyparser/internal/config"
	"policyparser/internal/domain"
	"policyparser/internal/logging"
	"policyparser/internal/service"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policyparser",
		Short: "Extract SAIBA upload rows from insurance policy PDFs",
		Long: `policyparser reads motor insurance policy PDFs, identifies the insurer, extracts
policy fields and writes one SAIBA row per recognized document. Documents that cannot be
read, identified or are from a disabled insurer are listed in the error report.

Examples:
  # Process every PDF under a directory
  policyparser -d ./policies -o out/report.xlsx -b branches.xlsx -p 03/15/2024

  # Process selected files, only for SBI, keeping the extracted text
  policyparser -f a.pdf -f b.pdf -o report.csv -b branches.csv -p 03/15/2024 --enable sbi -g ./txt`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runBatch,
	}

	f := cmd.Flags()
	f.StringSliceP("files", "f", nil, "policy PDF files to process")
	f.StringP("dir", "d", "", "directory searched recursively for *.pdf files")
	f.StringP("output", "o", "", "SAIBA report file (.xlsx or .csv)")
	f.StringP("error", "e", "errors.csv", "error report file (.xlsx or .csv)")
	f.StringP("branches", "b", "", "branch master file (.xlsx or .csv)")
	f.StringP("gentxt", "g", "", "directory receiving the extracted text of each document")
	f.StringP("processing-date", "p", "", "processing date (mm/dd/yyyy)")
	f.IntP("workers", "w", 0, "documents processed concurrently (default: number of CPUs)")
	f.StringSlice("enable", nil, "enabled insurers (default: sbi,new_india,icici_lombard)")
	f.String("log-level", "", "log level: debug, info, warn, error")

	_ = cmd.MarkFlagRequired("output")
	_ = cmd.MarkFlagRequired("branches")
	_ = cmd.MarkFlagRequired("processing-date")
	cmd.MarkFlagsMutuallyExclusive("files", "dir")
	cmd.MarkFlagsOneRequired("files", "dir")
	return cmd
}

func runBatch(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadWithFlags(cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logging.Sync(logger) }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := run(ctx, cfg, logger)
	if err != nil {
		logger.Error("batch failed", zap.Error(err))
		return err
	}
	return printSummary(cmd.OutOrStdout(), summary)
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*domain.RunSummary, error) {
	if cfg.Run.ProcessingDate.IsZero() {
		return nil, fmt.Errorf("%w: processing date is required", domain.ErrInvalidProcessingDate)
	}

	logger.Info("reading branch master", zap.String("file", cfg.Master.BranchFile))
	branches, err := app.LoadBranches(cfg.Master.BranchFile, cfg.Run.EnabledInsurers)
	if err != nil {
		return nil, err
	}

	backends, err := app.OpenBackends(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	defer backends.Close()

	batch := service.NewBatchService(app.NewEngine(cfg, logger), branches, service.BatchConfig{
		Workers:       cfg.Run.Workers,
		DefaultMobile: cfg.Report.DefaultMobile,
		Runs:          backends.Runs,
		Storage:       backends.Storage,
		Upload: service.UploadConfig{
			Bucket:        cfg.S3.Bucket,
			Prefix:        cfg.S3.Prefix,
			PresignExpiry: cfg.S3.PresignExpiry,
		},
	}, logger)

	return batch.Run(ctx, service.BatchInput{
		Files:          cfg.Input.Files,
		Dir:            cfg.Input.Dir,
		ReportFile:     cfg.Output.ReportFile,
		ErrorFile:      cfg.Output.ErrorFile,
		ProcessingDate: cfg.Run.ProcessingDate,
		TextDumpDir:    cfg.Run.TextDumpDir,
	})
}

func printSummary(w io.Writer, summary *domain.RunSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
