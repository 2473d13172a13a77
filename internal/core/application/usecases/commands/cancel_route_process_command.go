package commands

import (
	"errors"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/pkg/guard"
)

var ErrCancelRouteProcessCommandIsNotConstructed = errors.New(
	"CancelRouteProcessCommand must be created via NewCancelRouteProcessCommand constructor",
)

// CancelRouteProcessCommand terminates a Planned or InProgress route. The route
// rejects a blank reason.
type CancelRouteProcessCommand struct {
	routeProcessID kernel.UUID
	reason         string

	guard guard.ConstructorGuard
}

func NewCancelRouteProcessCommand(routeProcessID kernel.UUID, reason string) (CancelRouteProcessCommand, error) {
	if err := routeProcessID.Validate(); err != nil {
		return CancelRouteProcessCommand{}, err
	}

	return CancelRouteProcessCommand{
		routeProcessID: routeProcessID,
		reason:         reason,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c CancelRouteProcessCommand) Validate() error {
	return c.guard.Validate(ErrCancelRouteProcessCommandIsNotConstructed)
}

func (c CancelRouteProcessCommand) RouteProcessID() kernel.UUID {
	return c.routeProcessID
}

func (c CancelRouteProcessCommand) Reason() string {
	return c.reason
}
