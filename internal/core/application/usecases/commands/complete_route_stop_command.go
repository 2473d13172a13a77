package commands

import (
	"errors"
	"strings"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/pkg/guard"
)

var ErrCompleteRouteStopCommandIsNotConstructed = errors.New(
	"CompleteRouteStopCommand must be created via NewCompleteRouteStopCommand constructor",
)

// CompleteRouteStopCommand marks one stop of an in-progress route as done. The waste
// item ids are the items actually handled at the stop.
type CompleteRouteStopCommand struct { //nolint:recvcheck //using for validation
	routeProcessID kernel.UUID
	stopID         kernel.UUID
	notes          *string
	wasteItemIDs   []kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteRouteStopCommand creates the command. Blank notes are dropped.
func NewCompleteRouteStopCommand(
	routeProcessID kernel.UUID,
	stopID kernel.UUID,
	notes *string,
	wasteItemIDs []kernel.UUID,
) (CompleteRouteStopCommand, error) {
	cmd := CompleteRouteStopCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRouteProcessID(routeProcessID),
		cmd.setStopID(stopID),
	); err != nil {
		return CompleteRouteStopCommand{}, err
	}

	if notes != nil && strings.TrimSpace(*notes) != "" {
		n := strings.TrimSpace(*notes)
		cmd.notes = &n
	}
	cmd.wasteItemIDs = make([]kernel.UUID, len(wasteItemIDs))
	copy(cmd.wasteItemIDs, wasteItemIDs)

	return cmd, nil
}

func (c CompleteRouteStopCommand) Validate() error {
	return c.guard.Validate(ErrCompleteRouteStopCommandIsNotConstructed)
}

func (c CompleteRouteStopCommand) RouteProcessID() kernel.UUID {
	return c.routeProcessID
}

func (c CompleteRouteStopCommand) StopID() kernel.UUID {
	return c.stopID
}

func (c CompleteRouteStopCommand) Notes() *string {
	return c.notes
}

func (c CompleteRouteStopCommand) WasteItemIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.wasteItemIDs))
	copy(ids, c.wasteItemIDs)
	return ids
}

func (c *CompleteRouteStopCommand) setRouteProcessID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.routeProcessID = id
	return nil
}

func (c *CompleteRouteStopCommand) setStopID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.stopID = id
	return nil
}
