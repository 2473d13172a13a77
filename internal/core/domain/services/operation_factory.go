package services

import (
	"errors"
	"fmt"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/operation"
	"wastetrack/internal/core/domain/model/routeprocess"
)

// ErrNotATriggerEvent is returned when Build receives an event that does not request
// a waste operation.
var ErrNotATriggerEvent = errors.New("event does not trigger a waste operation")

// OperationFactory is a domain service that derives WasteOperation records from the
// trigger events raised by a RouteProcess.
//
// Business rules:
//   - the operation id is derived from the event id, so one event yields one operation
//   - the payload is taken from the event only; the route is never re-read
//   - a transfer without a receiving party is recorded with an empty recipient
//
// Example usage:
//
//	factory := services.NewOperationFactory()
//	op, err := factory.Build(evt)
//	if errors.Is(err, services.ErrNotATriggerEvent) {
//	    // nothing to record for this event
//	}
type OperationFactory struct{}

// NewOperationFactory creates a new OperationFactory instance.
func NewOperationFactory() OperationFactory {
	return OperationFactory{}
}

// Build dispatches on the concrete trigger event type.
//
// Returns:
//   - *operation.WasteOperation: the derived operation
//   - error: ErrNotATriggerEvent for other events, or validation errors
func (f OperationFactory) Build(evt kernel.DomainEvent) (*operation.WasteOperation, error) {
	switch e := evt.(type) {
	case routeprocess.ResidueRelocationTriggered:
		return f.Relocation(e)
	case routeprocess.ResidueTransferTriggered:
		return f.Transfer(e)
	case routeprocess.ResidueStorageTriggered:
		return f.Storage(e)
	default:
		name := "<nil>"
		if evt != nil {
			name = evt.EventName()
		}
		return nil, fmt.Errorf("%w: %s", ErrNotATriggerEvent, name)
	}
}

// Relocation builds a Relocation operation from a relocation trigger.
func (f OperationFactory) Relocation(evt routeprocess.ResidueRelocationTriggered) (*operation.WasteOperation, error) {
	return operation.NewRelocation(
		originOf(evt.EventMeta, evt.StopID, evt.WasteItemIDs),
		operation.RelocationData{From: evt.From, To: evt.To, VehicleID: evt.VehicleID},
	)
}

// Transfer builds a Transfer operation from a transfer trigger. A trigger without a
// recipient still records that custody left the driver.
func (f OperationFactory) Transfer(evt routeprocess.ResidueTransferTriggered) (*operation.WasteOperation, error) {
	return operation.NewTransfer(
		originOf(evt.EventMeta, evt.StopID, evt.WasteItemIDs),
		operation.TransferData{FromPartyID: evt.FromPartyID, ToPartyID: evt.ToPartyID, VehicleID: evt.VehicleID},
	)
}

// Storage builds a Storage operation from a storage trigger.
func (f OperationFactory) Storage(evt routeprocess.ResidueStorageTriggered) (*operation.WasteOperation, error) {
	return operation.NewStorage(
		originOf(evt.EventMeta, evt.StopID, evt.WasteItemIDs),
		operation.StorageData{Location: evt.Location},
	)
}

func originOf(meta routeprocess.EventMeta, stopID kernel.UUID, items []kernel.UUID) operation.Origin {
	return operation.Origin{
		RouteProcessID: meta.RouteProcessID,
		StopID:         stopID,
		SourceEventID:  meta.ID,
		OccurredOn:     meta.OccurredAt,
		WasteItemIDs:   items,
	}
}
