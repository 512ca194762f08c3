// Package batch runs a per-file operation concurrently over a selection and
// aggregates the outcome. One file's failure never affects another's: every
// task runs to completion and the batch waits for all of them.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/JaimeStill/image-forge/internal/formats"
	"golang.org/x/sync/errgroup"
)

// Op processes one file and returns the paths it wrote.
type Op func(ctx context.Context, file formats.File) ([]string, error)

// Runner executes batches and delivers their reports to a sink.
type Runner struct {
	limit  int
	sink   Sink
	logger *slog.Logger
}

// NewRunner creates a runner. A limit of zero launches every task at once.
// A nil sink discards reports.
func NewRunner(limit int, sink Sink, logger *slog.Logger) *Runner {
	if sink == nil {
		sink = Multi()
	}
	return &Runner{
		limit:  limit,
		sink:   sink,
		logger: logger.With("system", "batch"),
	}
}

type slot struct {
	seq     int64
	outputs []string
	err     error
}

// Run applies op to every file and returns the aggregate report. It never
// fails: per-file errors and panics become Failure entries.
func (r *Runner) Run(ctx context.Context, operation string, files []formats.File, op Op) *Report {
	started := time.Now()
	slots := make([]slot, len(files))

	var seq atomic.Int64
	var g errgroup.Group
	if r.limit > 0 {
		g.SetLimit(r.limit)
	}

	for i, file := range files {
		g.Go(func() error {
			outputs, err := r.exec(ctx, file, op)
			slots[i] = slot{seq: seq.Add(1), outputs: outputs, err: err}
			return nil
		})
	}
	g.Wait()

	report := NewReport(operation, started, time.Now(), collect(files, slots))

	// A cancelled batch still records what it managed to do.
	if err := r.sink.Deliver(context.WithoutCancel(ctx), report); err != nil {
		r.logger.Warn("report delivery failed", "id", report.ID, "error", err)
	}
	return report
}

func (r *Runner) exec(ctx context.Context, file formats.File, op Op) (outputs []string, err error) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("task panicked", "source", file.Path(), "panic", p)
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return op(ctx, file)
}

func collect(files []formats.File, slots []slot) Result {
	order := make([]int, len(slots))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		return int(slots[a].seq - slots[b].seq)
	})

	result := Result{
		Successes: make([]Success, 0, len(files)),
		Failures:  make([]Failure, 0),
	}
	for _, i := range order {
		source := files[i].Path()
		if s := slots[i]; s.err != nil {
			result.Failures = append(result.Failures, Failure{Source: source, Message: s.err.Error()})
		} else {
			result.Successes = append(result.Successes, Success{Source: source, Outputs: s.outputs})
		}
	}
	return result
}
