package commands

import (
	"errors"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/pkg/guard"
)

var ErrStartRouteProcessCommandIsNotConstructed = errors.New(
	"StartRouteProcessCommand must be created via NewStartRouteProcessCommand constructor",
)

// StartRouteProcessCommand moves a Planned route to InProgress.
type StartRouteProcessCommand struct {
	routeProcessID kernel.UUID

	guard guard.ConstructorGuard
}

func NewStartRouteProcessCommand(routeProcessID kernel.UUID) (StartRouteProcessCommand, error) {
	if err := routeProcessID.Validate(); err != nil {
		return StartRouteProcessCommand{}, err
	}

	return StartRouteProcessCommand{
		routeProcessID: routeProcessID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c StartRouteProcessCommand) Validate() error {
	return c.guard.Validate(ErrStartRouteProcessCommandIsNotConstructed)
}

func (c StartRouteProcessCommand) RouteProcessID() kernel.UUID {
	return c.routeProcessID
}
