package routeprocess

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/pkg/errs"
	"wastetrack/internal/pkg/guard"
)

var (
	// ErrStopPlanIsNotConstructed is returned when a zero-value StopPlan is used.
	ErrStopPlanIsNotConstructed = errors.New("StopPlan must be created via NewStopPlan")
	// ErrRouteStopIsNotConstructed is returned when a zero-value RouteStop is used.
	ErrRouteStopIsNotConstructed = errors.New("RouteStop must be created via RestoreRouteStop or a RouteProcess")
)

// StopPlan describes a stop before the route exists. The route assigns the stop
// identity and its order.
type StopPlan struct {
	location           kernel.LocationRef
	operationType      StopOperationType
	responsiblePartyID *string
	wasteItemIDs       []kernel.UUID
	guard              guard.ConstructorGuard
}

// NewStopPlan validates a stop description.
//
// Parameters:
//   - location: where the stop happens, a facility or a "vehicle:<id>" reference
//   - operationType: the work done at the stop
//   - responsiblePartyID: the receiving party, optional; a hand-over stop without one
//     records its Transfer with no recipient
//   - wasteItemIDs: items expected to move through the stop, may be empty
//
// Returns:
//   - StopPlan: the validated plan
//   - error: aggregated validation errors
//
// Example:
//
//	party := "recycler-9"
//	plan, err := routeprocess.NewStopPlan("plant-3", routeprocess.Delivery, &party, nil)
func NewStopPlan(
	location string,
	operationType StopOperationType,
	responsiblePartyID *string,
	wasteItemIDs []kernel.UUID,
) (StopPlan, error) {
	loc, locErr := kernel.NewLocationRef(location)
	party := normalizeOptional(responsiblePartyID)

	var idsErr error
	for i, id := range wasteItemIDs {
		if err := id.Validate(); err != nil {
			idsErr = errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("wasteItemIds[%d]", i), err)
			break
		}
	}

	if err := errors.Join(locErr, operationType.Validate(), idsErr); err != nil {
		return StopPlan{}, err
	}

	return StopPlan{
		location:           loc,
		operationType:      operationType,
		responsiblePartyID: party,
		wasteItemIDs:       mergeIDs(nil, wasteItemIDs),
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the plan was built with NewStopPlan.
func (p StopPlan) Validate() error {
	return p.guard.Validate(ErrStopPlanIsNotConstructed)
}

func (p StopPlan) Location() kernel.LocationRef {
	return p.location
}

func (p StopPlan) OperationType() StopOperationType {
	return p.operationType
}

// RouteStop is one location visit within a route. It has no identity outside its
// RouteProcess and is only mutated through it.
type RouteStop struct {
	id                 kernel.UUID
	location           kernel.LocationRef
	order              int
	operationType      StopOperationType
	responsiblePartyID *string
	isCompleted        bool
	completedAt        *time.Time
	notes              *string
	wasteItemIDs       []kernel.UUID
	guard              guard.ConstructorGuard
}

// RestoreRouteStop rebuilds a stop from persistence.
func RestoreRouteStop(
	id kernel.UUID,
	location string,
	order int,
	operationType StopOperationType,
	responsiblePartyID *string,
	isCompleted bool,
	completedAt *time.Time,
	notes *string,
	wasteItemIDs []kernel.UUID,
) (*RouteStop, error) {
	loc, locErr := kernel.NewLocationRef(location)

	var orderErr error
	if order < 1 {
		orderErr = errs.NewValueIsInvalidErrorWithCause("order", fmt.Errorf("%d is not a positive stop order", order))
	}

	var completionErr error
	if isCompleted != (completedAt != nil) {
		completionErr = errs.NewValueIsInvalidErrorWithCause(
			"completedAt",
			fmt.Errorf("completed=%t does not match completedAt presence", isCompleted),
		)
	}

	if err := errors.Join(id.Validate(), locErr, orderErr, operationType.Validate(), completionErr); err != nil {
		return nil, err
	}

	return &RouteStop{
		id:                 id,
		location:           loc,
		order:              order,
		operationType:      operationType,
		responsiblePartyID: copyString(responsiblePartyID),
		isCompleted:        isCompleted,
		completedAt:        copyTime(completedAt),
		notes:              copyString(notes),
		wasteItemIDs:       mergeIDs(nil, wasteItemIDs),
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the stop was properly constructed.
func (s *RouteStop) Validate() error {
	if s == nil {
		return ErrRouteStopIsNotConstructed
	}
	return s.guard.Validate(ErrRouteStopIsNotConstructed)
}

func (s *RouteStop) ID() kernel.UUID {
	return s.id
}

func (s *RouteStop) Location() kernel.LocationRef {
	return s.location
}

func (s *RouteStop) Order() int {
	return s.order
}

func (s *RouteStop) OperationType() StopOperationType {
	return s.operationType
}

func (s *RouteStop) ResponsiblePartyID() *string {
	return copyString(s.responsiblePartyID)
}

func (s *RouteStop) IsCompleted() bool {
	return s.isCompleted
}

func (s *RouteStop) CompletedAt() *time.Time {
	return copyTime(s.completedAt)
}

func (s *RouteStop) Notes() *string {
	return copyString(s.notes)
}

func (s *RouteStop) WasteItemIDs() []kernel.UUID {
	return mergeIDs(nil, s.wasteItemIDs)
}

func (s *RouteStop) complete(notes *string, wasteItemIDs []kernel.UUID, at time.Time) {
	s.isCompleted = true
	s.completedAt = &at
	if n := normalizeOptional(notes); n != nil {
		s.notes = n
	}
	s.wasteItemIDs = mergeIDs(s.wasteItemIDs, wasteItemIDs)
}

// mergeIDs appends the ids of extra missing from base, keeping first-seen order.
func mergeIDs(base, extra []kernel.UUID) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(base)+len(extra))
	seen := make(map[kernel.UUID]struct{}, len(base)+len(extra))
	for _, list := range [][]kernel.UUID{base, extra} {
		for _, id := range list {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
