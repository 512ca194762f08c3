package batch_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/image-forge/internal/batch"
	"github.com/JaimeStill/image-forge/internal/formats"
	"github.com/JaimeStill/image-forge/pkg/logging"
)

func files(dir string, names ...string) []formats.File {
	out := make([]formats.File, len(names))
	for i, n := range names {
		out[i] = formats.NewFile(filepath.Join(dir, n))
	}
	return out
}

type recordingSink struct {
	mu      sync.Mutex
	reports []*batch.Report
	err     error
}

func (s *recordingSink) Deliver(ctx context.Context, r *batch.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, r)
	return s.err
}

func TestRun_PartitionsSuccessesAndFailures(t *testing.T) {
	dir := t.TempDir()
	in := files(dir, "a.png", "missing-1.png", "b.png", "missing-2.png", "c.png")

	sink := &recordingSink{}
	runner := batch.NewRunner(0, sink, logging.Discard())

	report := runner.Run(context.Background(), "convert", in, func(ctx context.Context, f formats.File) ([]string, error) {
		if strings.HasPrefix(filepath.Base(f.Path()), "missing") {
			return nil, fmt.Errorf("open %s: no such file", f.Path())
		}
		return []string{f.WithExt("webp")}, nil
	})

	if len(report.Successes) != 3 {
		t.Errorf("successes = %d, want 3", len(report.Successes))
	}
	if len(report.Failures) != 2 {
		t.Fatalf("failures = %d, want 2", len(report.Failures))
	}
	if report.Summary() != "3 of 5 succeeded" {
		t.Errorf("Summary() = %q", report.Summary())
	}

	for _, f := range report.Failures {
		if !strings.Contains(filepath.Base(f.Source), "missing") {
			t.Errorf("failure names %q, want a missing file", f.Source)
		}
		if !strings.Contains(f.Message, f.Source) {
			t.Errorf("failure message %q does not name %q", f.Message, f.Source)
		}
	}
	for _, s := range report.Successes {
		if len(s.Outputs) != 1 || filepath.Ext(s.Outputs[0]) != ".webp" {
			t.Errorf("success outputs = %v", s.Outputs)
		}
	}

	if len(sink.reports) != 1 || sink.reports[0] != report {
		t.Error("sink did not receive the report")
	}
}

func TestRun_CompletionOrder(t *testing.T) {
	in := files(t.TempDir(), "slow.png", "fast.png")

	runner := batch.NewRunner(0, nil, logging.Discard())
	report := runner.Run(context.Background(), "convert", in, func(ctx context.Context, f formats.File) ([]string, error) {
		if strings.Contains(f.Path(), "slow") {
			time.Sleep(50 * time.Millisecond)
		}
		return []string{f.Path()}, nil
	})

	if len(report.Successes) != 2 {
		t.Fatalf("successes = %d, want 2", len(report.Successes))
	}
	if !strings.Contains(report.Successes[0].Source, "fast") {
		t.Errorf("first success = %s, want fast.png to complete first", report.Successes[0].Source)
	}
}

func TestRun_FailureDoesNotCancelSiblings(t *testing.T) {
	in := files(t.TempDir(), "fail.png", "slow.png")

	var finished atomic.Bool
	runner := batch.NewRunner(0, nil, logging.Discard())
	report := runner.Run(context.Background(), "convert", in, func(ctx context.Context, f formats.File) ([]string, error) {
		if strings.Contains(f.Path(), "fail") {
			return nil, errors.New("boom")
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(30 * time.Millisecond):
		}
		finished.Store(true)
		return []string{f.Path()}, nil
	})

	if !finished.Load() {
		t.Error("sibling task did not run to completion")
	}
	if len(report.Successes) != 1 || len(report.Failures) != 1 {
		t.Errorf("got %d successes, %d failures, want 1 and 1", len(report.Successes), len(report.Failures))
	}
}

func TestRun_RecoversPanics(t *testing.T) {
	in := files(t.TempDir(), "panic.png", "ok.png")

	runner := batch.NewRunner(0, nil, logging.Discard())
	report := runner.Run(context.Background(), "favicons", in, func(ctx context.Context, f formats.File) ([]string, error) {
		if strings.Contains(f.Path(), "panic") {
			panic("decoder exploded")
		}
		return []string{f.Path()}, nil
	})

	if len(report.Failures) != 1 {
		t.Fatalf("failures = %d, want 1", len(report.Failures))
	}
	if !strings.Contains(report.Failures[0].Message, "decoder exploded") {
		t.Errorf("failure message = %q", report.Failures[0].Message)
	}
	if len(report.Successes) != 1 {
		t.Errorf("successes = %d, want 1", len(report.Successes))
	}
}

func TestRun_RespectsLimit(t *testing.T) {
	in := files(t.TempDir(), "1.png", "2.png", "3.png", "4.png", "5.png", "6.png")

	var active, peak atomic.Int32
	runner := batch.NewRunner(2, nil, logging.Discard())
	report := runner.Run(context.Background(), "convert", in, func(ctx context.Context, f formats.File) ([]string, error) {
		n := active.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		active.Add(-1)
		return nil, nil
	})

	if peak.Load() > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", peak.Load())
	}
	if report.Total() != 6 {
		t.Errorf("Total() = %d, want 6", report.Total())
	}
}

func TestRun_EmptySelection(t *testing.T) {
	runner := batch.NewRunner(0, nil, logging.Discard())
	report := runner.Run(context.Background(), "convert", nil, func(ctx context.Context, f formats.File) ([]string, error) {
		t.Fatal("op called for empty selection")
		return nil, nil
	})

	if report.Summary() != "0 of 0 succeeded" {
		t.Errorf("Summary() = %q", report.Summary())
	}
}

func TestRun_SinkErrorDoesNotFailBatch(t *testing.T) {
	in := files(t.TempDir(), "a.png")
	sink := &recordingSink{err: errors.New("history unavailable")}

	report := batch.NewRunner(0, sink, logging.Discard()).Run(context.Background(), "convert", in,
		func(ctx context.Context, f formats.File) ([]string, error) {
			return []string{f.Path()}, nil
		})

	if len(report.Successes) != 1 {
		t.Errorf("successes = %d, want 1", len(report.Successes))
	}
}

func TestReport_WriteText(t *testing.T) {
	started := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	report := batch.NewReport("convert", started, started.Add(2*time.Second), batch.Result{
		Successes: []batch.Success{{Source: "/img/a.png", Outputs: []string{"/img/a.webp"}}},
		Failures:  []batch.Failure{{Source: "/img/b.png", Message: "decode failed"}},
	})

	var buf bytes.Buffer
	if err := report.WriteText(&buf); err != nil {
		t.Fatalf("WriteText() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"convert: 1 of 2 succeeded", "/img/a.webp", "1 failed:", "/img/b.png: decode failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if report.ID.String() == "" {
		t.Error("report has no id")
	}
}

func TestMulti_JoinsErrors(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{err: errors.New("b failed")}

	err := batch.Multi(a, nil, b).Deliver(context.Background(), &batch.Report{})
	if err == nil || !strings.Contains(err.Error(), "b failed") {
		t.Errorf("Deliver() error = %v, want b failed", err)
	}
	if len(a.reports) != 1 || len(b.reports) != 1 {
		t.Error("every sink should receive the report")
	}
}

func TestLogSink_LogsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&logging.Config{Level: logging.LevelInfo, Format: logging.FormatText}, &buf)

	report := &batch.Report{Operation: "convert", Result: batch.Result{
		Failures: []batch.Failure{{Source: "/img/x.png", Message: "boom"}},
	}}
	if err := batch.LogSink(logger).Deliver(context.Background(), report); err != nil {
		t.Fatalf("Deliver() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"batch complete", "0 of 1 succeeded", "/img/x.png", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q: %s", want, out)
		}
	}
}

func TestRun_DeliversAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var deliverErr error
	delivered := false
	sink := batch.SinkFunc(func(ctx context.Context, r *batch.Report) error {
		delivered = true
		deliverErr = ctx.Err()
		return nil
	})

	runner := batch.NewRunner(1, sink, logging.Discard())
	report := runner.Run(ctx, "convert", files(t.TempDir(), "a.png", "b.png"), func(ctx context.Context, f formats.File) ([]string, error) {
		cancel()
		return nil, ctx.Err()
	})

	if !delivered {
		t.Fatal("report not delivered")
	}
	if deliverErr != nil {
		t.Errorf("delivery context error = %v, want nil after batch cancellation", deliverErr)
	}
	if len(report.Failures) != 2 {
		t.Errorf("failures = %d, want 2", len(report.Failures))
	}
}
