package ports

import (
	"context"

	"wastetrack/internal/core/application/views"
	"wastetrack/internal/core/domain/model/kernel"
)

// RouteProcessNotifier fans route views out to real-time subscribers.
// Delivery is at-least-once; subscribers must tolerate repeats.
type RouteProcessNotifier interface {
	// Notify publishes the current view of a route.
	Notify(ctx context.Context, view views.RouteProcessView) error
	// Subscribe returns a channel of views for one route and a function that ends the
	// subscription. The channel is closed when the subscription ends or ctx is done.
	Subscribe(ctx context.Context, routeProcessID kernel.UUID) (<-chan views.RouteProcessView, func(), error)
}
