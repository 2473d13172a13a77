package queries

import (
	"context"

	"wastetrack/internal/core/application/views"
	"wastetrack/internal/core/ports"
)

// ListRouteOperationsQueryHandler reads operations through the operation repository.
// An unknown route yields an empty list, not an error.
type ListRouteOperationsQueryHandler struct {
	operations ports.WasteOperationRepository
}

func NewListRouteOperationsQueryHandler(operations ports.WasteOperationRepository) ListRouteOperationsQueryHandler {
	return ListRouteOperationsQueryHandler{operations: operations}
}

func (h ListRouteOperationsQueryHandler) Handle(
	ctx context.Context,
	query ListRouteOperationsQuery,
) ([]views.WasteOperationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ops, err := h.operations.ListByRouteProcess(ctx, query.RouteProcessID())
	if err != nil {
		return nil, err
	}

	result := make([]views.WasteOperationView, 0, len(ops))
	for _, op := range ops {
		result = append(result, views.FromWasteOperation(op))
	}
	return result, nil
}
