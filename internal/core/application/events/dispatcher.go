// Package events delivers committed domain events to their handlers, either right
// after the command that raised them or later through the outbox relay.
package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/pkg/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrUnexpectedEvent is returned by a typed handler that receives an event of
// another type.
var ErrUnexpectedEvent = errors.New("unexpected event type")

// Handler consumes one committed event.
type Handler interface {
	Handle(ctx context.Context, event kernel.DomainEvent) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event kernel.DomainEvent) error

func (f HandlerFunc) Handle(ctx context.Context, event kernel.DomainEvent) error {
	return f(ctx, event)
}

// On wraps a handler for the concrete event type E.
//
// Example:
//
//	dispatcher.Register(routeprocess.EventRouteProcessStarted,
//	    events.On(func(ctx context.Context, e routeprocess.RouteProcessStarted) error {
//	        return notify(ctx, e.RouteProcessID)
//	    }))
func On[E kernel.DomainEvent](fn func(ctx context.Context, event E) error) Handler {
	return HandlerFunc(func(ctx context.Context, event kernel.DomainEvent) error {
		typed, ok := event.(E)
		if !ok {
			return fmt.Errorf("%w: %T", ErrUnexpectedEvent, event)
		}
		return fn(ctx, typed)
	})
}

// Dispatcher routes events to the handlers registered for their name. It is built
// once in the composition root and passed explicitly to whoever publishes.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]Handler),
		logger:   logger.With("component", "event_dispatcher"),
		tracer:   otel.Tracer("wastetrack/events"),
	}
}

// Register appends h to the handlers of eventName. Handlers run in registration order.
func (d *Dispatcher) Register(eventName string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventName] = append(d.handlers[eventName], h)
}

// Publish runs every handler of the event synchronously. The first failure stops the
// loop and is returned as *errs.EventHandlerFailureError. Events without handlers
// are accepted.
func (d *Dispatcher) Publish(ctx context.Context, event kernel.DomainEvent) error {
	name := event.EventName()
	eventID := event.EventID().String()

	d.mu.RLock()
	handlers := append([]Handler(nil), d.handlers[name]...)
	d.mu.RUnlock()

	ctx, span := d.tracer.Start(ctx, "publish "+name, trace.WithAttributes(
		attribute.String("event.name", name),
		attribute.String("event.id", eventID),
		attribute.String("aggregate.id", event.AggregateID().String()),
		attribute.Int("event.handlers", len(handlers)),
	))
	defer span.End()

	for _, h := range handlers {
		if err := h.Handle(ctx, event); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "event handler failed")
			d.logger.ErrorContext(ctx, "Event handler failed",
				"event", name,
				"event_id", eventID,
				"error", err,
			)
			return errs.NewEventHandlerFailureError(name, eventID, err)
		}
	}

	d.logger.DebugContext(ctx, "Event dispatched", "event", name, "event_id", eventID, "handlers", len(handlers))
	return nil
}
