package eventhandlers

import (
	"context"
	"log/slog"

	"wastetrack/internal/core/application/usecases/queries"
	"wastetrack/internal/core/application/views"
	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/ports"
)

// RouteProcessViewReader loads the current view of a route.
type RouteProcessViewReader interface {
	Handle(ctx context.Context, query queries.GetRouteProcessQuery) (views.RouteProcessView, error)
}

// NotificationHandler re-reads a route after a state change and pushes its view to
// subscribers. The view is read from the store rather than built from the event, so a
// replayed event still publishes the latest state.
//
// Notifications are best effort: read and notifier failures are logged and never
// reported to the dispatcher, so they cannot fail a command whose state is committed.
// Subscribers that missed a view get the current one when they reconnect.
type NotificationHandler struct {
	reader   RouteProcessViewReader
	notifier ports.RouteProcessNotifier
	logger   *slog.Logger
}

func NewNotificationHandler(
	reader RouteProcessViewReader,
	notifier ports.RouteProcessNotifier,
	logger *slog.Logger,
) *NotificationHandler {
	return &NotificationHandler{
		reader:   reader,
		notifier: notifier,
		logger:   logger.With("component", "route_notification_handler"),
	}
}

// Handle accepts any route event and notifies for its aggregate. It always returns nil.
func (h *NotificationHandler) Handle(ctx context.Context, evt kernel.DomainEvent) error {
	query, err := queries.NewGetRouteProcessQuery(evt.AggregateID())
	if err != nil {
		h.skip(ctx, evt, "invalid route id", err)
		return nil
	}

	view, err := h.reader.Handle(ctx, query)
	if err != nil {
		h.skip(ctx, evt, "read route view", err)
		return nil
	}

	if err = h.notifier.Notify(ctx, view); err != nil {
		h.skip(ctx, evt, "notify subscribers", err)
		return nil
	}

	h.logger.DebugContext(ctx, "Route view published",
		"route_process_id", view.ID.String(),
		"event", evt.EventName(),
		"status", view.Status,
		"progress", view.ProgressPercent,
	)
	return nil
}

func (h *NotificationHandler) skip(ctx context.Context, evt kernel.DomainEvent, step string, err error) {
	h.logger.WarnContext(ctx, "Route notification skipped",
		"route_process_id", evt.AggregateID().String(),
		"event", evt.EventName(),
		"step", step,
		"error", err,
	)
}
