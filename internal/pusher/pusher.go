// Package pusher creates assembled events against an external calendar
// sink, one at a time, isolating per-row failures.
package pusher

import (
	"context"
	"log/slog"

	"coursecal/internal/models"
)

// Sink accepts one calendar event and creates it remotely.
type Sink interface {
	CreateEvent(ctx context.Context, event *models.Event) error
}

// Outcome classifies a push run.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomePartial
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomePartial:
		return "partial"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Failure records one event that could not be created, with the source
// row it came from.
type Failure struct {
	Row     int
	Summary string
	Err     error
}

// Result is the typed outcome of a push run. Skipped carries the row
// indices that never became events (parse failures upstream); the caller
// fills it so one result describes the whole import.
type Result struct {
	Created  int
	Skipped  []int
	Failures []Failure
}

// Outcome classifies the result: failure when nothing was created and at
// least one push failed, partial when some were, success otherwise.
func (r Result) Outcome() Outcome {
	switch {
	case len(r.Failures) == 0:
		return OutcomeSuccess
	case r.Created > 0:
		return OutcomePartial
	default:
		return OutcomeFailure
	}
}

// Pusher pushes events to a sink sequentially.
type Pusher struct {
	logger *slog.Logger
	sink   Sink
	dryRun bool
}

// New creates a Pusher.
func New(logger *slog.Logger, sink Sink, dryRun bool) *Pusher {
	return &Pusher{logger: logger, sink: sink, dryRun: dryRun}
}

// Push creates every event against the sink, continuing past individual
// failures. A failed row never invalidates events already created for
// other rows.
func (p *Pusher) Push(ctx context.Context, events []*models.Event) Result {
	var res Result
	for _, ev := range events {
		if p.dryRun {
			p.logger.Info("[DRY RUN] Would create event", "summary", ev.Summary, "start", ev.Start.DateTime)
			res.Created++
			continue
		}
		if err := p.sink.CreateEvent(ctx, ev); err != nil {
			p.logger.Error("Failed to create event", "summary", ev.Summary, "row", ev.Row, "error", err)
			res.Failures = append(res.Failures, Failure{Row: ev.Row, Summary: ev.Summary, Err: err})
			continue
		}
		res.Created++
	}
	return res
}
