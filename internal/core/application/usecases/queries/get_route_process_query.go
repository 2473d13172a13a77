// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models from the views package and never raise events.
package queries

import (
	"errors"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/pkg/guard"
)

var ErrGetRouteProcessQueryIsNotConstructed = errors.New(
	"GetRouteProcessQuery must be created via NewGetRouteProcessQuery constructor",
)

// GetRouteProcessQuery loads the current view of one route.
//
// Example:
//
//	query, err := NewGetRouteProcessQuery(routeID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
//	fmt.Printf("%s is %d%% done\n", view.ID, view.ProgressPercent)
type GetRouteProcessQuery struct {
	routeProcessID kernel.UUID
	guard          guard.ConstructorGuard
}

// NewGetRouteProcessQuery creates the query. The id must be a constructed UUID.
func NewGetRouteProcessQuery(routeProcessID kernel.UUID) (GetRouteProcessQuery, error) {
	if err := routeProcessID.Validate(); err != nil {
		return GetRouteProcessQuery{}, err
	}
	return GetRouteProcessQuery{
		routeProcessID: routeProcessID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (q GetRouteProcessQuery) RouteProcessID() kernel.UUID {
	return q.routeProcessID
}

// Validate ensures the query was created through the constructor.
func (q GetRouteProcessQuery) Validate() error {
	return q.guard.Validate(ErrGetRouteProcessQueryIsNotConstructed)
}
