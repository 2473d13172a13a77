package routeprocess

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/pkg/errs"
	"wastetrack/internal/pkg/guard"
)

// Domain rule names carried by DomainRuleViolationError.Rule.
const (
	RuleNoStops           = "route_requires_stops"
	RuleStopOrder         = "route_stop_order"
	RuleNotPlanned        = "route_not_planned"
	RuleNotInProgress     = "route_not_in_progress"
	RuleStopNotFound      = "route_stop_not_found"
	RuleStopAlreadyDone   = "route_stop_already_completed"
	RuleAlreadyTerminated = "route_already_terminated"
)

var (
	// ErrRouteProcessIsNotConstructed is returned when a zero-value RouteProcess is used.
	ErrRouteProcessIsNotConstructed = errors.New("RouteProcess must be created via NewRouteProcess or RestoreRouteProcess")
	// ErrVehicleIsRequired is returned for a blank vehicle id.
	ErrVehicleIsRequired = errs.NewValueIsRequiredError("vehicleId")
	// ErrDriverIsRequired is returned for a blank driver id.
	ErrDriverIsRequired = errs.NewValueIsRequiredError("driverId")
	// ErrReasonIsRequired is returned when cancelling without a reason.
	ErrReasonIsRequired = errs.NewValueIsRequiredError("reason")
)

// RouteProcess is the aggregate root of a transport route.
//
// Invariants:
//   - stops are non-empty and their Order values are exactly 1..N
//   - the stop set is fixed at creation
//   - Completed and Cancelled are final
//   - every state change appends domain events to the pending buffer
//
// RouteProcess is not safe for concurrent use. The store serialises writers with the
// version returned by Version.
type RouteProcess struct {
	id                 kernel.UUID
	vehicleID          string
	driverID           string
	status             Status
	stops              []*RouteStop
	createdAt          time.Time
	startedAt          *time.Time
	completedAt        *time.Time
	cancelledAt        *time.Time
	cancellationReason *string
	// version is the store version the aggregate was loaded at; 0 before the first insert.
	version int
	events  []kernel.DomainEvent
	guard   guard.ConstructorGuard
}

// NewRouteProcess plans a new route. Stops are ordered 1..N in the given sequence.
//
// Parameters:
//   - id: route identity
//   - vehicleID, driverID: opaque references to the vehicle and its driver
//   - plans: at least one validated StopPlan
//   - at: creation time
//
// Returns:
//   - *RouteProcess: a Planned route with a RouteProcessCreated event pending
//   - error: validation errors, or a DomainRuleViolationError when plans is empty
//
// Example:
//
//	pickup, _ := routeprocess.NewStopPlan("LocA", routeprocess.Pickup, nil, nil)
//	rp, err := routeprocess.NewRouteProcess(kernel.NewUUID(), "V", "D", []routeprocess.StopPlan{pickup}, time.Now())
func NewRouteProcess(
	id kernel.UUID,
	vehicleID string,
	driverID string,
	plans []StopPlan,
	at time.Time,
) (*RouteProcess, error) {
	rp := &RouteProcess{
		status:    Planned,
		createdAt: at,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		rp.setID(id),
		rp.setVehicleID(vehicleID),
		rp.setDriverID(driverID),
	); err != nil {
		return nil, err
	}

	if len(plans) == 0 {
		return nil, errs.NewDomainRuleViolationError(RuleNoStops, "a route process needs at least one stop")
	}

	stops := make([]*RouteStop, 0, len(plans))
	for i, plan := range plans {
		if err := plan.Validate(); err != nil {
			return nil, fmt.Errorf("stop %d: %w", i+1, err)
		}
		stops = append(stops, &RouteStop{
			id:                 kernel.NewUUID(),
			location:           plan.location,
			order:              i + 1,
			operationType:      plan.operationType,
			responsiblePartyID: copyString(plan.responsiblePartyID),
			wasteItemIDs:       mergeIDs(nil, plan.wasteItemIDs),
			guard:              guard.NewConstructorGuard(),
		})
	}
	rp.stops = stops

	rp.raise(RouteProcessCreated{
		EventMeta: newMeta(rp.id, at),
		VehicleID: rp.vehicleID,
		DriverID:  rp.driverID,
		StopCount: len(stops),
	})

	return rp, nil
}

// RestoreRouteProcess rebuilds a route from persistence. The stop ordering invariant
// is re-checked; no events are raised.
func RestoreRouteProcess(
	id kernel.UUID,
	vehicleID string,
	driverID string,
	status Status,
	stops []*RouteStop,
	createdAt time.Time,
	startedAt *time.Time,
	completedAt *time.Time,
	cancelledAt *time.Time,
	cancellationReason *string,
	version int,
) (*RouteProcess, error) {
	rp := &RouteProcess{
		createdAt:          createdAt,
		startedAt:          copyTime(startedAt),
		completedAt:        copyTime(completedAt),
		cancelledAt:        copyTime(cancelledAt),
		cancellationReason: copyString(cancellationReason),
		version:            version,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		rp.setID(id),
		rp.setVehicleID(vehicleID),
		rp.setDriverID(driverID),
		rp.setStatus(status),
		rp.setStops(stops),
	); err != nil {
		return nil, err
	}

	return rp, nil
}

// Validate ensures the route was properly constructed.
func (rp *RouteProcess) Validate() error {
	if rp == nil {
		return ErrRouteProcessIsNotConstructed
	}
	return rp.guard.Validate(ErrRouteProcessIsNotConstructed)
}

func (rp *RouteProcess) ID() kernel.UUID {
	return rp.id
}

func (rp *RouteProcess) VehicleID() string {
	return rp.vehicleID
}

func (rp *RouteProcess) DriverID() string {
	return rp.driverID
}

func (rp *RouteProcess) Status() Status {
	return rp.status
}

func (rp *RouteProcess) CreatedAt() time.Time {
	return rp.createdAt
}

func (rp *RouteProcess) StartedAt() *time.Time {
	return copyTime(rp.startedAt)
}

func (rp *RouteProcess) CompletedAt() *time.Time {
	return copyTime(rp.completedAt)
}

func (rp *RouteProcess) CancelledAt() *time.Time {
	return copyTime(rp.cancelledAt)
}

func (rp *RouteProcess) CancellationReason() *string {
	return copyString(rp.cancellationReason)
}

// Version returns the store version the aggregate was loaded at.
func (rp *RouteProcess) Version() int {
	return rp.version
}

// MarkPersisted records the version assigned by the store after a successful write.
func (rp *RouteProcess) MarkPersisted(version int) {
	rp.version = version
}

// Stops returns the stops ordered by Order. The slice is a copy; the stops are
// read-only outside the aggregate.
func (rp *RouteProcess) Stops() []*RouteStop {
	out := make([]*RouteStop, len(rp.stops))
	copy(out, rp.stops)
	return out
}

// Stop returns the stop with the given id.
func (rp *RouteProcess) Stop(stopID kernel.UUID) (*RouteStop, bool) {
	for _, s := range rp.stops {
		if s.id.IsEqual(stopID) {
			return s, true
		}
	}
	return nil, false
}

// CompletedStops returns how many stops are completed.
func (rp *RouteProcess) CompletedStops() int {
	n := 0
	for _, s := range rp.stops {
		if s.isCompleted {
			n++
		}
	}
	return n
}

// ProgressPercent returns round(100 × completed / total).
func (rp *RouteProcess) ProgressPercent() int {
	if len(rp.stops) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(rp.CompletedStops()) / float64(len(rp.stops))))
}

// Start moves a Planned route to InProgress.
func (rp *RouteProcess) Start(at time.Time) error {
	if err := rp.Validate(); err != nil {
		return err
	}
	if rp.status != Planned {
		return errs.NewDomainRuleViolationError(
			RuleNotPlanned,
			fmt.Sprintf("route process can only be started when Planned, current status is %s", rp.status),
		)
	}

	rp.status = InProgress
	rp.startedAt = &at
	rp.raise(RouteProcessStarted{EventMeta: newMeta(rp.id, at)})
	return nil
}

// CompleteStop completes one stop of an InProgress route. Stops may be completed in
// any order. The stop's trigger events are raised first, then RouteStopCompleted, then
// RouteProcessCompleted when it was the last open stop.
//
// Parameters:
//   - stopID: a stop of this route that is not completed yet
//   - notes: optional driver notes, blank notes are ignored
//   - wasteItemIDs: items actually handled, merged into the stop's planned items
//   - at: completion time
func (rp *RouteProcess) CompleteStop(stopID kernel.UUID, notes *string, wasteItemIDs []kernel.UUID, at time.Time) error {
	if err := rp.Validate(); err != nil {
		return err
	}
	if rp.status != InProgress {
		return errs.NewDomainRuleViolationError(
			RuleNotInProgress,
			fmt.Sprintf("stops can only be completed while the route is InProgress, current status is %s", rp.status),
		)
	}

	stop, ok := rp.Stop(stopID)
	if !ok {
		return errs.NewDomainRuleViolationError(
			RuleStopNotFound,
			fmt.Sprintf("stop %s does not belong to route process %s", stopID, rp.id),
		)
	}
	if stop.isCompleted {
		return errs.NewDomainRuleViolationError(
			RuleStopAlreadyDone,
			fmt.Sprintf("stop %d (%s) is already completed", stop.order, stopID),
		)
	}
	for i, id := range wasteItemIDs {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("wasteItemIds[%d]", i), err)
		}
	}

	stop.complete(notes, wasteItemIDs, at)
	rp.raiseTriggers(stop, at)

	completed := rp.CompletedStops()
	rp.raise(RouteStopCompleted{
		EventMeta:      newMeta(rp.id, at),
		StopID:         stop.id,
		Order:          stop.order,
		CompletedStops: completed,
		TotalStops:     len(rp.stops),
	})

	if completed == len(rp.stops) {
		rp.status = Completed
		rp.completedAt = &at
		rp.raise(RouteProcessCompleted{EventMeta: newMeta(rp.id, at)})
	}
	return nil
}

// Cancel terminates a Planned or InProgress route.
func (rp *RouteProcess) Cancel(reason string, at time.Time) error {
	if err := rp.Validate(); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonIsRequired
	}
	if rp.status.IsFinal() {
		return errs.NewDomainRuleViolationError(
			RuleAlreadyTerminated,
			fmt.Sprintf("route process is already %s and cannot be cancelled", rp.status),
		)
	}

	rp.status = Cancelled
	rp.cancelledAt = &at
	rp.cancellationReason = &reason
	rp.raise(RouteProcessCancelled{EventMeta: newMeta(rp.id, at), Reason: reason})
	return nil
}

// PendingEvents returns the buffered events in emission order.
func (rp *RouteProcess) PendingEvents() []kernel.DomainEvent {
	out := make([]kernel.DomainEvent, len(rp.events))
	copy(out, rp.events)
	return out
}

// ClearEvents empties the buffer once the events are safely handed over.
func (rp *RouteProcess) ClearEvents() {
	rp.events = nil
}

func (rp *RouteProcess) raise(evt kernel.DomainEvent) {
	rp.events = append(rp.events, evt)
}

func (rp *RouteProcess) raiseTriggers(stop *RouteStop, at time.Time) {
	vehicle := kernel.VehicleLocation(rp.vehicleID)
	items := stop.WasteItemIDs()

	switch stop.operationType {
	case Pickup:
		rp.raise(ResidueRelocationTriggered{
			EventMeta:    newMeta(rp.id, at),
			StopID:       stop.id,
			From:         stop.location,
			To:           vehicle,
			VehicleID:    rp.vehicleID,
			WasteItemIDs: items,
		})
	case Delivery:
		rp.raise(ResidueRelocationTriggered{
			EventMeta:    newMeta(rp.id, at),
			StopID:       stop.id,
			From:         vehicle,
			To:           stop.location,
			VehicleID:    rp.vehicleID,
			WasteItemIDs: items,
		})
	case IntermediateStorage:
		rp.raise(ResidueStorageTriggered{
			EventMeta:    newMeta(rp.id, at),
			StopID:       stop.id,
			Location:     stop.location,
			WasteItemIDs: items,
		})
	}
	if stop.operationType.TransfersCustody() {
		rp.raise(rp.transferTrigger(stop, items, at))
	}
}

func (rp *RouteProcess) transferTrigger(stop *RouteStop, items []kernel.UUID, at time.Time) ResidueTransferTriggered {
	to := ""
	if stop.responsiblePartyID != nil {
		to = *stop.responsiblePartyID
	}
	return ResidueTransferTriggered{
		EventMeta:    newMeta(rp.id, at),
		StopID:       stop.id,
		FromPartyID:  rp.driverID,
		ToPartyID:    to,
		VehicleID:    rp.vehicleID,
		WasteItemIDs: items,
	}
}

func (rp *RouteProcess) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	rp.id = id
	return nil
}

func (rp *RouteProcess) setVehicleID(vehicleID string) error {
	vehicleID = strings.TrimSpace(vehicleID)
	if vehicleID == "" {
		return ErrVehicleIsRequired
	}
	rp.vehicleID = vehicleID
	return nil
}

func (rp *RouteProcess) setDriverID(driverID string) error {
	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return ErrDriverIsRequired
	}
	rp.driverID = driverID
	return nil
}

func (rp *RouteProcess) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	rp.status = status
	return nil
}

// setStops checks that the stops carry Order 1..N with no gaps or repeats and stores
// them sorted by Order.
func (rp *RouteProcess) setStops(stops []*RouteStop) error {
	if len(stops) == 0 {
		return errs.NewDomainRuleViolationError(RuleNoStops, "a route process needs at least one stop")
	}

	sorted := make([]*RouteStop, len(stops))
	for _, s := range stops {
		if err := s.Validate(); err != nil {
			return err
		}
		if s.order < 1 || s.order > len(stops) || sorted[s.order-1] != nil {
			return errs.NewDomainRuleViolationError(
				RuleStopOrder,
				fmt.Sprintf("stop orders must be exactly 1..%d, got %d twice or out of range", len(stops), s.order),
			)
		}
		sorted[s.order-1] = s
	}
	rp.stops = sorted
	return nil
}
