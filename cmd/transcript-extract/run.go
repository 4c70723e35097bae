// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/transcript-extract/internal/extract"
	"github.com/pdiddy/transcript-extract/internal/groups"
	"github.com/pdiddy/transcript-extract/internal/logging"
	"github.com/pdiddy/transcript-extract/internal/pipeline"
	"github.com/pdiddy/transcript-extract/internal/report"
	"github.com/pdiddy/transcript-extract/internal/scan"
	"github.com/pdiddy/transcript-extract/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract text from every file and write grouped JSON",
	Long: `Run extracts text from the files named by the groups file (or, without
one, every supported file in the source directory), writes the results to
<output-dir>/<output-file> as JSON grouped by label, and prints a summary.

A file that cannot be extracted is recorded with an "error" entry and does
not stop the run. Use --fail-on-error to exit non-zero when that happens.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		sum, err := runExtraction(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if cfg.FailOnError && sum.HasFailures() {
			return fmt.Errorf("%d file(s) failed extraction", sum.Failed)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().String("groups-file", "", "YAML file mapping group labels to file names")
	runCmd.Flags().String("output-file", types.DefaultOutputFile, "output JSON file name inside output-dir")
	runCmd.Flags().Int("workers", types.DefaultWorkers, "number of files extracted concurrently")
	runCmd.Flags().String("pdf-backend", string(types.PDFNative), "PDF backend: native or pdftotext")
	runCmd.Flags().String("log-level", types.DefaultLogLevel, "log level: debug, info, warn, or error")
	runCmd.Flags().Bool("fail-on-error", false, "exit non-zero if any file failed")

	bindFlags(runCmd.Flags(), map[string]string{
		"groups-file":   "groups_file",
		"output-file":   "output_file",
		"workers":       "workers",
		"pdf-backend":   "pdf_backend",
		"log-level":     "log_level",
		"fail-on-error": "fail_on_error",
	})

	rootCmd.AddCommand(runCmd)
}

// runExtraction performs one extraction run and returns its summary. Only
// setup and artifact-write failures are returned as errors; per-file
// failures are recorded in the artifact.
func runExtraction(ctx context.Context, cfg types.ExtractConfig, stdout, stderr io.Writer) (report.Summary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return report.Summary{}, fmt.Errorf("creating output directory: %w", err)
	}

	logs, err := logging.New(logging.Options{Dir: cfg.OutputDir, Level: cfg.LogLevel, Console: stderr})
	if err != nil {
		return report.Summary{}, err
	}
	defer logs.Close()
	logger := logs.Logger.With(zap.String("run_id", uuid.NewString()))

	backend, err := extract.NewPDFBackend(cfg.PDFBackend)
	if err != nil {
		return report.Summary{}, err
	}

	plan, err := buildPlan(cfg)
	if err != nil {
		logger.Error("building task list", zap.Error(err))
		return report.Summary{}, err
	}
	tasks := plan.Tasks(cfg.SourceDir)

	logger.Info("extraction started",
		zap.String("source_dir", cfg.SourceDir),
		zap.String("output", cfg.OutputPath()),
		zap.String("log_file", logs.Path),
		zap.String("pdf_backend", backend.Name()),
		zap.Int("groups", len(plan.Groups)),
		zap.Int("files", len(tasks)))

	runner := &pipeline.Runner{
		Extractor: extract.New(logger, extract.WithPDFBackend(backend)),
		Logger:    logger,
		Workers:   cfg.Workers,
		Status:    stderr,
	}
	results := runner.Run(ctx, plan.Labels(), tasks)

	if err := report.WriteJSON(cfg.OutputPath(), results); err != nil {
		logger.Error("writing output", zap.Error(err))
		return report.Summary{}, err
	}

	sum := results.Summarize()
	logger.Info("output written",
		zap.String("path", cfg.OutputPath()),
		zap.Int("succeeded", sum.Succeeded),
		zap.Int("failed", sum.Failed),
		zap.Int("chars", sum.TotalChars))

	report.PrintSummary(stdout, sum)
	return sum, nil
}

// buildPlan loads the groups file, or scans the source directory into one
// group named after it when no groups file is configured.
func buildPlan(cfg types.ExtractConfig) (*groups.Config, error) {
	if cfg.GroupsFile != "" {
		return groups.Load(cfg.GroupsFile)
	}
	paths, err := scan.Dir(cfg.SourceDir)
	if err != nil {
		return nil, err
	}
	return groups.FromPaths(defaultLabel(cfg.SourceDir), paths), nil
}
