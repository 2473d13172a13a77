package commands

import (
	"errors"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/routeprocess"
	"wastetrack/internal/pkg/guard"
)

var (
	ErrCreateRouteProcessCommandIsNotConstructed = errors.New(
		"CreateRouteProcessCommand must be created via NewCreateRouteProcessCommand constructor",
	)
	ErrVehicleIDIsRequired = errors.New("vehicle id is required")
	ErrDriverIDIsRequired  = errors.New("driver id is required")
)

// CreateRouteProcessCommand plans a new route for a vehicle and driver.
//
// Example:
//
//	pickup, _ := routeprocess.NewStopPlan("generator-1", routeprocess.Pickup, nil, nil)
//	cmd, err := NewCreateRouteProcessCommand(kernel.NewUUID(), "TRK-12", "driver-7",
//	    []routeprocess.StopPlan{pickup})
//	if err != nil {
//	    return fmt.Errorf("invalid route: %w", err)
//	}
//	res, err := handler.Handle(ctx, cmd)
type CreateRouteProcessCommand struct { //nolint:recvcheck //using for validation
	routeProcessID kernel.UUID
	vehicleID      string
	driverID       string
	stops          []routeprocess.StopPlan

	guard guard.ConstructorGuard
}

// NewCreateRouteProcessCommand validates the request shape. Stop rules, including the
// need for at least one stop, are enforced by the route itself.
func NewCreateRouteProcessCommand(
	routeProcessID kernel.UUID,
	vehicleID string,
	driverID string,
	stops []routeprocess.StopPlan,
) (CreateRouteProcessCommand, error) {
	cmd := CreateRouteProcessCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRouteProcessID(routeProcessID),
		cmd.setVehicleID(vehicleID),
		cmd.setDriverID(driverID),
	); err != nil {
		return CreateRouteProcessCommand{}, err
	}

	cmd.stops = make([]routeprocess.StopPlan, len(stops))
	copy(cmd.stops, stops)

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRouteProcessCommand) Validate() error {
	return c.guard.Validate(ErrCreateRouteProcessCommandIsNotConstructed)
}

func (c CreateRouteProcessCommand) RouteProcessID() kernel.UUID {
	return c.routeProcessID
}

func (c CreateRouteProcessCommand) VehicleID() string {
	return c.vehicleID
}

func (c CreateRouteProcessCommand) DriverID() string {
	return c.driverID
}

// Stops returns the stop plans in visiting order.
func (c CreateRouteProcessCommand) Stops() []routeprocess.StopPlan {
	stops := make([]routeprocess.StopPlan, len(c.stops))
	copy(stops, c.stops)
	return stops
}

func (c *CreateRouteProcessCommand) setRouteProcessID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.routeProcessID = id
	return nil
}

func (c *CreateRouteProcessCommand) setVehicleID(vehicleID string) error {
	if vehicleID == "" {
		return ErrVehicleIDIsRequired
	}

	c.vehicleID = vehicleID
	return nil
}

func (c *CreateRouteProcessCommand) setDriverID(driverID string) error {
	if driverID == "" {
		return ErrDriverIDIsRequired
	}

	c.driverID = driverID
	return nil
}
