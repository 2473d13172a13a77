package commands

import (
	"context"

	"wastetrack/internal/core/application/views"
	"wastetrack/internal/core/domain/model/routeprocess"
	"wastetrack/internal/pkg/result"
)

// CreateRouteProcessCommandHandler stores a new Planned route and announces it with
// RouteProcessCreated.
//
// Example:
//
//	handler := NewCreateRouteProcessCommandHandler(deps)
//	res, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err // store or dispatch failure, safe to retry
//	}
//	if !res.IsSuccess() {
//	    return fmt.Errorf("route rejected: %s", res.Message())
//	}
type CreateRouteProcessCommandHandler struct {
	flow routeProcessFlow
}

func NewCreateRouteProcessCommandHandler(deps RouteProcessDeps) CreateRouteProcessCommandHandler {
	return CreateRouteProcessCommandHandler{
		flow: newRouteProcessFlow(deps, "create_route_process_handler"),
	}
}

// Handle builds the route and persists it. Invalid stops yield a failed result.
func (h *CreateRouteProcessCommandHandler) Handle(
	ctx context.Context,
	cmd CreateRouteProcessCommand,
) (result.Result[views.RouteProcessView], error) {
	if err := cmd.Validate(); err != nil {
		return result.Result[views.RouteProcessView]{}, err
	}

	rp, err := routeprocess.NewRouteProcess(
		cmd.RouteProcessID(),
		cmd.VehicleID(),
		cmd.DriverID(),
		cmd.Stops(),
		h.flow.now(),
	)
	if err != nil {
		return outcome[views.RouteProcessView](err)
	}

	return h.flow.create(ctx, rp)
}
