package commands

import (
	"context"

	"wastetrack/internal/core/application/views"
	"wastetrack/internal/core/domain/model/routeprocess"
	"wastetrack/internal/pkg/result"
)

// CompleteRouteStopCommandHandler completes a stop. Completing the last open stop also
// completes the route. The trigger events raised by the stop are dispatched before the
// handler returns, so the matching operations are recorded by then.
type CompleteRouteStopCommandHandler struct {
	flow routeProcessFlow
}

func NewCompleteRouteStopCommandHandler(deps RouteProcessDeps) CompleteRouteStopCommandHandler {
	return CompleteRouteStopCommandHandler{
		flow: newRouteProcessFlow(deps, "complete_route_stop_handler"),
	}
}

func (h *CompleteRouteStopCommandHandler) Handle(
	ctx context.Context,
	cmd CompleteRouteStopCommand,
) (result.Result[views.RouteProcessView], error) {
	if err := cmd.Validate(); err != nil {
		return result.Result[views.RouteProcessView]{}, err
	}

	return h.flow.modify(ctx, cmd.RouteProcessID(), func(rp *routeprocess.RouteProcess) error {
		return rp.CompleteStop(cmd.StopID(), cmd.Notes(), cmd.WasteItemIDs(), h.flow.now())
	})
}
