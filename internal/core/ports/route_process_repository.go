// Package ports defines the contracts between the waste tracking core and its
// infrastructure: aggregate stores, the outbox, event publishing and real-time
// notification.
package ports

import (
	"context"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/routeprocess"
)

// RouteProcessRepository persists RouteProcess aggregates with optimistic concurrency.
type RouteProcessRepository interface {
	// Add inserts a new route together with its stops.
	Add(ctx context.Context, aggregate *routeprocess.RouteProcess) error

	// Update writes the whole aggregate if the stored version still equals
	// aggregate.Version(). A lost update fails with errs.ErrConcurrencyConflict and a
	// missing route with errs.ErrObjectNotFound.
	Update(ctx context.Context, aggregate *routeprocess.RouteProcess) error

	// Get loads a route with its stops. A missing route fails with errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*routeprocess.RouteProcess, error)
}
