package commands

import (
	"context"

	"wastetrack/internal/core/application/views"
	"wastetrack/internal/core/domain/model/routeprocess"
	"wastetrack/internal/pkg/result"
)

// StartRouteProcessCommandHandler starts a planned route.
type StartRouteProcessCommandHandler struct {
	flow routeProcessFlow
}

func NewStartRouteProcessCommandHandler(deps RouteProcessDeps) StartRouteProcessCommandHandler {
	return StartRouteProcessCommandHandler{
		flow: newRouteProcessFlow(deps, "start_route_process_handler"),
	}
}

func (h *StartRouteProcessCommandHandler) Handle(
	ctx context.Context,
	cmd StartRouteProcessCommand,
) (result.Result[views.RouteProcessView], error) {
	if err := cmd.Validate(); err != nil {
		return result.Result[views.RouteProcessView]{}, err
	}

	return h.flow.modify(ctx, cmd.RouteProcessID(), func(rp *routeprocess.RouteProcess) error {
		return rp.Start(h.flow.now())
	})
}
