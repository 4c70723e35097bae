// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs extraction tasks on a bounded worker pool and
// collects exactly one result per task.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/transcript-extract/internal/extract"
	"github.com/pdiddy/transcript-extract/internal/report"
	"github.com/pdiddy/transcript-extract/pkg/types"
)

// DefaultWorkers is the pool size used when Runner.Workers is unset.
const DefaultWorkers = 4

// Extractor returns the text of the file at path.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Progress describes one completed task.
type Progress struct {
	Done   int
	Total  int
	Task   types.ExtractionTask
	Result types.ExtractionResult
}

// Runner executes tasks concurrently. Failures are isolated per task: every
// task yields one result whatever happens to the others, and the run always
// waits for every task to finish.
type Runner struct {
	Extractor Extractor
	Logger    *zap.Logger

	// Workers bounds concurrent extractions (default 4).
	Workers int

	// Status receives one line per completed task. Nil discards.
	Status io.Writer

	// OnProgress, if set, is called from the collector after each task.
	OnProgress func(Progress)
}

type outcome struct {
	task   types.ExtractionTask
	result types.ExtractionResult
}

// Run extracts every task and returns the results grouped by label. Every
// label in labels appears in the result even if it has no tasks or all of
// its tasks fail. Results are placed by (group, filename); completion order
// does not matter.
func (r *Runner) Run(ctx context.Context, labels []string, tasks []types.ExtractionTask) *report.Grouped {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	status := r.Status
	if status == nil {
		status = io.Discard
	}
	workers := r.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}

	grouped := report.NewGrouped(labels)
	for _, t := range tasks {
		grouped.Declare(t.Group, t.Filename)
	}

	results := make(chan outcome)
	collected := make(chan struct{})

	// Single writer: only this goroutine touches grouped until Run returns.
	go func() {
		defer close(collected)
		done := 0
		for o := range results {
			done++
			grouped.Set(o.task.Group, o.task.Filename, o.result)
			writeStatus(status, done, len(tasks), o)
			if r.OnProgress != nil {
				r.OnProgress(Progress{Done: done, Total: len(tasks), Task: o.task, Result: o.result})
			}
		}
	}()

	var g errgroup.Group
	g.SetLimit(workers)
	for _, t := range tasks {
		g.Go(func() error {
			results <- outcome{task: t, result: r.runTask(ctx, logger, t)}
			return nil
		})
	}
	g.Wait()
	close(results)
	<-collected

	logger.Info("extraction finished",
		zap.Int("tasks", len(tasks)),
		zap.Int("workers", workers))
	return grouped
}

// runTask extracts one file and converts any failure, including a panic,
// into a failed result.
func (r *Runner) runTask(ctx context.Context, logger *zap.Logger, t types.ExtractionTask) (res types.ExtractionResult) {
	log := logger.With(zap.String("group", t.Group), zap.String("file", t.Filename))

	defer func() {
		if p := recover(); p != nil {
			res = types.Failed(types.KindExtraction, fmt.Sprintf("panic: %v", p))
			log.Error("extraction panicked", zap.Any("panic", p))
		}
	}()

	text, err := r.Extractor.Extract(ctx, t.Path)
	if err != nil {
		kind := extract.KindOf(err)
		if kind == types.KindFileNotFound {
			log.Warn("file not found", zap.String("path", t.Path))
			return types.Failed(kind, types.FileNotFoundMessage)
		}
		log.Warn("extraction failed", zap.String("kind", string(kind)), zap.Error(err))
		return types.Failed(kind, err.Error())
	}

	res = types.Succeeded(text)
	log.Debug("extracted", zap.Int("chars", res.CharCount))
	return res
}

func writeStatus(w io.Writer, done, total int, o outcome) {
	if o.result.OK() {
		fmt.Fprintf(w, "[%d/%d] extracted: %s (%d chars)\n", done, total, o.task.Filename, o.result.CharCount)
		return
	}
	fmt.Fprintf(w, "[%d/%d] failed:    %s (%s)\n", done, total, o.task.Filename, o.result.Failure.Message)
}
