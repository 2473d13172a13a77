package routeprocess

import (
	"time"

	"wastetrack/internal/core/domain/model/kernel"
)

// Event names used as dispatcher routing keys and outbox discriminators.
const (
	EventRouteProcessCreated        = "route_process.created"
	EventRouteProcessStarted        = "route_process.started"
	EventRouteStopCompleted         = "route_process.stop_completed"
	EventRouteProcessCompleted      = "route_process.completed"
	EventRouteProcessCancelled      = "route_process.cancelled"
	EventResidueRelocationTriggered = "route_process.residue_relocation_triggered"
	EventResidueTransferTriggered   = "route_process.residue_transfer_triggered"
	EventResidueStorageTriggered    = "route_process.residue_storage_triggered"
)

// EventMeta is embedded in every route event.
type EventMeta struct {
	ID             kernel.UUID `json:"eventId"`
	RouteProcessID kernel.UUID `json:"routeProcessId"`
	OccurredAt     time.Time   `json:"occurredAt"`
}

func newMeta(routeProcessID kernel.UUID, at time.Time) EventMeta {
	return EventMeta{ID: kernel.NewUUID(), RouteProcessID: routeProcessID, OccurredAt: at}
}

func (m EventMeta) EventID() kernel.UUID { return m.ID }
func (m EventMeta) AggregateID() kernel.UUID { return m.RouteProcessID }
func (m EventMeta) OccurredOn() time.Time { return m.OccurredAt }

// RouteProcessCreated is emitted once by NewRouteProcess.
type RouteProcessCreated struct {
	EventMeta
	VehicleID string `json:"vehicleId"`
	DriverID  string `json:"driverId"`
	StopCount int    `json:"stopCount"`
}

func (RouteProcessCreated) EventName() string { return EventRouteProcessCreated }

// RouteProcessStarted is emitted when the route leaves Planned.
type RouteProcessStarted struct {
	EventMeta
}

func (RouteProcessStarted) EventName() string { return EventRouteProcessStarted }

// RouteStopCompleted is emitted after the trigger events of a completed stop.
type RouteStopCompleted struct {
	EventMeta
	StopID         kernel.UUID `json:"stopId"`
	Order          int         `json:"order"`
	CompletedStops int         `json:"completedStops"`
	TotalStops     int         `json:"totalStops"`
}

func (RouteStopCompleted) EventName() string { return EventRouteStopCompleted }

// RouteProcessCompleted is emitted when the last stop is completed.
type RouteProcessCompleted struct {
	EventMeta
}

func (RouteProcessCompleted) EventName() string { return EventRouteProcessCompleted }

// RouteProcessCancelled is emitted by Cancel.
type RouteProcessCancelled struct {
	EventMeta
	Reason string `json:"reason"`
}

func (RouteProcessCancelled) EventName() string { return EventRouteProcessCancelled }

// ResidueRelocationTriggered asks for a Relocation operation moving the stop's waste
// between two locations.
type ResidueRelocationTriggered struct {
	EventMeta
	StopID       kernel.UUID        `json:"stopId"`
	From         kernel.LocationRef `json:"from"`
	To           kernel.LocationRef `json:"to"`
	VehicleID    string             `json:"vehicleId"`
	WasteItemIDs []kernel.UUID      `json:"wasteItemIds"`
}

func (ResidueRelocationTriggered) EventName() string { return EventResidueRelocationTriggered }

// ResidueTransferTriggered asks for a Transfer operation handing custody from the
// driver to the stop's responsible party.
type ResidueTransferTriggered struct {
	EventMeta
	StopID       kernel.UUID   `json:"stopId"`
	FromPartyID  string        `json:"fromPartyId"`
	ToPartyID    string        `json:"toPartyId"`
	VehicleID    string        `json:"vehicleId"`
	WasteItemIDs []kernel.UUID `json:"wasteItemIds"`
}

func (ResidueTransferTriggered) EventName() string { return EventResidueTransferTriggered }

// ResidueStorageTriggered asks for a Storage operation at the stop location.
type ResidueStorageTriggered struct {
	EventMeta
	StopID       kernel.UUID        `json:"stopId"`
	Location     kernel.LocationRef `json:"location"`
	WasteItemIDs []kernel.UUID      `json:"wasteItemIds"`
}

func (ResidueStorageTriggered) EventName() string { return EventResidueStorageTriggered }
