package reconcile

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
)

// RunEvent captures lightweight telemetry for one reconciliation.
type RunEvent struct {
	RunID     string
	Sprint    domain.SprintTag
	Range     domain.DateRange
	InSprint  int
	Other     int
	Warnings  int
	Duration  time.Duration
	Err       error
	StartedAt time.Time
}

// Observer receives reconciliation events.
type Observer interface {
	ObserveRun(ctx context.Context, event RunEvent)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObserveRun(context.Context, RunEvent) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes one record per run to logger.
func NewLogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		return NoopObserver{}
	}
	return &logObserver{logger: logger}
}

func (o *logObserver) ObserveRun(ctx context.Context, event RunEvent) {
	attrs := []any{
		"run_id", event.RunID,
		"sprint", string(event.Sprint),
		"range", event.Range.String(),
		"in_sprint", event.InSprint,
		"other", event.Other,
		"warnings", event.Warnings,
		"duration_ms", event.Duration.Milliseconds(),
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "reconcile_run", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "reconcile_run", attrs...)
}
