package ports

import (
	"context"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/operation"
)

// WasteOperationRepository is the append-only store of waste operations.
type WasteOperationRepository interface {
	// Add appends the operation. An operation whose source event was already recorded
	// is ignored, so replaying an event never creates a second record.
	Add(ctx context.Context, op *operation.WasteOperation) error

	// ListByRouteProcess returns the operations of a route ordered by occurrence.
	ListByRouteProcess(ctx context.Context, routeProcessID kernel.UUID) ([]*operation.WasteOperation, error)
}
