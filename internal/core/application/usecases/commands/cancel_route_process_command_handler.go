package commands

import (
	"context"

	"wastetrack/internal/core/application/views"
	"wastetrack/internal/core/domain/model/routeprocess"
	"wastetrack/internal/pkg/result"
)

// CancelRouteProcessCommandHandler cancels a route that has not finished yet.
type CancelRouteProcessCommandHandler struct {
	flow routeProcessFlow
}

func NewCancelRouteProcessCommandHandler(deps RouteProcessDeps) CancelRouteProcessCommandHandler {
	return CancelRouteProcessCommandHandler{
		flow: newRouteProcessFlow(deps, "cancel_route_process_handler"),
	}
}

func (h *CancelRouteProcessCommandHandler) Handle(
	ctx context.Context,
	cmd CancelRouteProcessCommand,
) (result.Result[views.RouteProcessView], error) {
	if err := cmd.Validate(); err != nil {
		return result.Result[views.RouteProcessView]{}, err
	}

	return h.flow.modify(ctx, cmd.RouteProcessID(), func(rp *routeprocess.RouteProcess) error {
		return rp.Cancel(cmd.Reason(), h.flow.now())
	})
}
