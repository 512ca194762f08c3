package batch

import (
	"fmt"
	"io"
	"time"

	"github.com/docker/go-units"
	"github.com/google/uuid"
)

// Report is the aggregate outcome of one batch invocation.
type Report struct {
	ID         uuid.UUID `json:"id"`
	Operation  string    `json:"operation"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Result
}

// NewReport stamps result with a fresh id and its timing.
func NewReport(operation string, started, finished time.Time, result Result) *Report {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &Report{
		ID:         id,
		Operation:  operation,
		StartedAt:  started,
		FinishedAt: finished,
		Result:     result,
	}
}

// Elapsed returns the wall time of the batch.
func (r *Report) Elapsed() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// WriteText writes a human-readable report: the summary line, one line per
// output, and a failure listing when any file failed.
func (r *Report) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s: %s (%s)\n", r.Operation, r.Summary(), units.HumanDuration(r.Elapsed())); err != nil {
		return err
	}

	for _, s := range r.Successes {
		for _, out := range s.Outputs {
			if _, err := fmt.Fprintf(w, "  ok    %s\n", out); err != nil {
				return err
			}
		}
	}

	if !r.Failed() {
		return nil
	}

	if _, err := fmt.Fprintf(w, "%d failed:\n", len(r.Failures)); err != nil {
		return err
	}
	for _, f := range r.Failures {
		if _, err := fmt.Fprintf(w, "  fail  %s: %s\n", f.Source, f.Message); err != nil {
			return err
		}
	}
	return nil
}
