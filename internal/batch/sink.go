package batch

import (
	"context"
	"errors"
	"log/slog"
)

// Sink receives every completed batch report.
type Sink interface {
	Deliver(ctx context.Context, report *Report) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, report *Report) error

func (f SinkFunc) Deliver(ctx context.Context, report *Report) error {
	return f(ctx, report)
}

type logSink struct {
	logger *slog.Logger
}

// LogSink writes the summary at info level and each failure at warn level.
func LogSink(logger *slog.Logger) Sink {
	return &logSink{logger: logger.With("system", "report")}
}

func (s *logSink) Deliver(ctx context.Context, r *Report) error {
	s.logger.InfoContext(ctx, "batch complete",
		"id", r.ID,
		"operation", r.Operation,
		"summary", r.Summary(),
		"elapsed", r.Elapsed(),
	)
	for _, f := range r.Failures {
		s.logger.WarnContext(ctx, "file failed",
			"id", r.ID,
			"source", f.Source,
			"error", f.Message,
		)
	}
	return nil
}

type multiSink []Sink

// Multi delivers to every sink in order, joining their errors. Nil sinks are skipped.
func Multi(sinks ...Sink) Sink {
	var ms multiSink
	for _, s := range sinks {
		if s != nil {
			ms = append(ms, s)
		}
	}
	return ms
}

func (ms multiSink) Deliver(ctx context.Context, r *Report) error {
	var errs []error
	for _, s := range ms {
		if err := s.Deliver(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
