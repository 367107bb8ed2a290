package workers

import (
	"context"
	"log/slog"
	"toni/contract"
	"toni/domain/event"
	"toni/observability"
)

// Recorder is the single consumer of persistence events. Handlers publish
// without blocking; events are applied in publication order and failures are
// logged and dropped.
type Recorder struct {
	log    *slog.Logger
	events chan event.DomainEvent
	sinks  []contract.EventSink
}

func NewRecorder(log *slog.Logger, capacity int, sinks ...contract.EventSink) *Recorder {
	return &Recorder{log: log, events: make(chan event.DomainEvent, capacity), sinks: sinks}
}

// Publish enqueues e, or drops it when the queue is full.
func (r *Recorder) Publish(e event.DomainEvent) {
	select {
	case r.events <- e:
		observability.RecorderQueueDepth.Set(float64(len(r.events)))
	default:
		observability.RecorderDropped.Inc()
		r.log.Warn("Persistence queue full, event dropped", "event", e.EventName())
	}
}

func (r *Recorder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			r.drain(ctx)
			return nil
		case e := <-r.events:
			r.apply(ctx, e)
		}
	}
}

// drain applies what is already queued so a graceful shutdown loses nothing.
func (r *Recorder) drain(ctx context.Context) {
	for {
		select {
		case e := <-r.events:
			r.apply(ctx, e)
		default:
			return
		}
	}
}

func (r *Recorder) apply(ctx context.Context, e event.DomainEvent) {
	observability.RecorderQueueDepth.Set(float64(len(r.events)))
	applyCtx := context.WithoutCancel(ctx)
	for _, s := range r.sinks {
		if err := s.Consume(applyCtx, e); err != nil {
			observability.RecorderFailures.WithLabelValues(e.EventName()).Inc()
			r.log.Error("Database error (non-fatal)", "event", e.EventName(), "error", err)
		}
	}
}

// NopPublisher discards everything. It stands in when persistence is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(event.DomainEvent) {}
