package queries

import (
	"errors"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/pkg/guard"
)

var ErrListRouteOperationsQueryIsNotConstructed = errors.New(
	"ListRouteOperationsQuery must be created via NewListRouteOperationsQuery constructor",
)

// ListRouteOperationsQuery lists the relocations, transfers and storages recorded
// for one route, oldest first.
type ListRouteOperationsQuery struct {
	routeProcessID kernel.UUID
	guard          guard.ConstructorGuard
}

func NewListRouteOperationsQuery(routeProcessID kernel.UUID) (ListRouteOperationsQuery, error) {
	if err := routeProcessID.Validate(); err != nil {
		return ListRouteOperationsQuery{}, err
	}
	return ListRouteOperationsQuery{
		routeProcessID: routeProcessID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (q ListRouteOperationsQuery) RouteProcessID() kernel.UUID {
	return q.routeProcessID
}

func (q ListRouteOperationsQuery) Validate() error {
	return q.guard.Validate(ErrListRouteOperationsQueryIsNotConstructed)
}
