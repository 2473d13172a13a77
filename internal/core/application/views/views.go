// Package views contains the read models returned by commands and queries and pushed
// to real-time subscribers.
package views

import (
	"time"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/operation"
	"wastetrack/internal/core/domain/model/routeprocess"
	"wastetrack/internal/core/domain/model/wasteitem"
)

// RouteProcessView is the externally visible state of a route.
type RouteProcessView struct {
	ID                 kernel.UUID     `json:"id"`
	VehicleID          string          `json:"vehicleId"`
	DriverID           string          `json:"driverId"`
	Status             string          `json:"status"`
	CreatedAt          time.Time       `json:"createdAt"`
	StartedAt          *time.Time      `json:"startedAt,omitempty"`
	CompletedAt        *time.Time      `json:"completedAt,omitempty"`
	CancelledAt        *time.Time      `json:"cancelledAt,omitempty"`
	CancellationReason *string         `json:"cancellationReason,omitempty"`
	Stops              []RouteStopView `json:"stops"`
	ProgressPercent    int             `json:"progressPercent"`
	Version            int             `json:"version"`
}

// RouteStopView is one stop inside a RouteProcessView.
type RouteStopView struct {
	ID                 kernel.UUID   `json:"id"`
	LocationID         string        `json:"locationId"`
	Order              int           `json:"order"`
	OperationType      string        `json:"operationType"`
	ResponsiblePartyID *string       `json:"responsiblePartyId,omitempty"`
	IsCompleted        bool          `json:"isCompleted"`
	CompletedAt        *time.Time    `json:"completedAt,omitempty"`
	Notes              *string       `json:"notes,omitempty"`
	WasteItemIDs       []kernel.UUID `json:"wasteItemIds"`
}

// FromRouteProcess projects the aggregate into its view.
func FromRouteProcess(rp *routeprocess.RouteProcess) RouteProcessView {
	stops := rp.Stops()
	view := RouteProcessView{
		ID:                 rp.ID(),
		VehicleID:          rp.VehicleID(),
		DriverID:           rp.DriverID(),
		Status:             rp.Status().String(),
		CreatedAt:          rp.CreatedAt(),
		StartedAt:          rp.StartedAt(),
		CompletedAt:        rp.CompletedAt(),
		CancelledAt:        rp.CancelledAt(),
		CancellationReason: rp.CancellationReason(),
		Stops:              make([]RouteStopView, 0, len(stops)),
		ProgressPercent:    rp.ProgressPercent(),
		Version:            rp.Version(),
	}
	for _, s := range stops {
		view.Stops = append(view.Stops, RouteStopView{
			ID:                 s.ID(),
			LocationID:         s.Location().String(),
			Order:              s.Order(),
			OperationType:      s.OperationType().String(),
			ResponsiblePartyID: s.ResponsiblePartyID(),
			IsCompleted:        s.IsCompleted(),
			CompletedAt:        s.CompletedAt(),
			Notes:              s.Notes(),
			WasteItemIDs:       s.WasteItemIDs(),
		})
	}
	return view
}

// WasteItemView is the externally visible state of a waste item.
type WasteItemView struct {
	ID             kernel.UUID  `json:"id"`
	ParentID       *kernel.UUID `json:"parentId,omitempty"`
	WasteClass     string       `json:"wasteClass"`
	Quantity       int64        `json:"quantity"`
	Unit           string       `json:"unit"`
	State          string       `json:"state"`
	HolderID       string       `json:"holderId"`
	CertificateRef *string      `json:"certificateRef,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
	// Split is the item carved off by a partial transition, if any.
	Split *WasteItemView `json:"split,omitempty"`
}

// FromWasteItem projects the aggregate into its view.
func FromWasteItem(item *wasteitem.WasteItem) WasteItemView {
	return WasteItemView{
		ID:             item.ID(),
		ParentID:       item.ParentID(),
		WasteClass:     item.WasteClass(),
		Quantity:       item.Quantity(),
		Unit:           item.Unit(),
		State:          item.State().String(),
		HolderID:       item.HolderID(),
		CertificateRef: item.CertificateRef(),
		CreatedAt:      item.CreatedAt(),
		UpdatedAt:      item.UpdatedAt(),
	}
}

// WasteOperationView is a recorded relocation, transfer or storage. Only the payload
// fields of its type are set.
type WasteOperationView struct {
	ID             kernel.UUID   `json:"id"`
	Type           string        `json:"type"`
	RouteProcessID kernel.UUID   `json:"routeProcessId"`
	StopID         kernel.UUID   `json:"stopId"`
	SourceEventID  kernel.UUID   `json:"sourceEventId"`
	OccurredOn     time.Time     `json:"occurredOn"`
	WasteItemIDs   []kernel.UUID `json:"wasteItemIds"`
	From           string        `json:"from,omitempty"`
	To             string        `json:"to,omitempty"`
	VehicleID      string        `json:"vehicleId,omitempty"`
	FromPartyID    string        `json:"fromPartyId,omitempty"`
	ToPartyID      string        `json:"toPartyId,omitempty"`
	Location       string        `json:"location,omitempty"`
}

// FromWasteOperation projects an operation into its view.
func FromWasteOperation(op *operation.WasteOperation) WasteOperationView {
	view := WasteOperationView{
		ID:             op.ID(),
		Type:           op.Type().String(),
		RouteProcessID: op.RouteProcessID(),
		StopID:         op.StopID(),
		SourceEventID:  op.SourceEventID(),
		OccurredOn:     op.OccurredOn(),
		WasteItemIDs:   op.WasteItemIDs(),
	}
	if data, ok := op.Relocation(); ok {
		view.From = data.From.String()
		view.To = data.To.String()
		view.VehicleID = data.VehicleID
	}
	if data, ok := op.Transfer(); ok {
		view.FromPartyID = data.FromPartyID
		view.ToPartyID = data.ToPartyID
		view.VehicleID = data.VehicleID
	}
	if data, ok := op.Storage(); ok {
		view.Location = data.Location.String()
	}
	return view
}
