// Package routeprocessrepo persists RouteProcess aggregates and their stops.
package routeprocessrepo

import (
	"time"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/routeprocess"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RouteProcessDTO is the route_processes row. Version drives optimistic concurrency.
type RouteProcessDTO struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey"`
	VehicleID          string         `gorm:"type:varchar(255);not null"`
	DriverID           string         `gorm:"type:varchar(255);not null"`
	Status             string         `gorm:"type:varchar(32);not null;index"`
	CreatedAt          time.Time      `gorm:"not null"`
	StartedAt          *time.Time     `gorm:"column:started_at"`
	CompletedAt        *time.Time     `gorm:"column:completed_at"`
	CancelledAt        *time.Time     `gorm:"column:cancelled_at"`
	CancellationReason *string        `gorm:"type:text"`
	Version            int            `gorm:"not null"`
	Stops              []RouteStopDTO `gorm:"foreignKey:RouteProcessID;constraint:OnDelete:CASCADE"`
}

func (RouteProcessDTO) TableName() string {
	return "route_processes"
}

// RouteStopDTO is the route_stops row. The stop order is stored as stop_order since
// "order" is reserved in SQL.
type RouteStopDTO struct {
	ID                 uuid.UUID                      `gorm:"type:uuid;primaryKey"`
	RouteProcessID     uuid.UUID                      `gorm:"type:uuid;not null;index"`
	LocationID         string                         `gorm:"type:varchar(255);not null"`
	StopOrder          int                            `gorm:"not null"`
	OperationType      string                         `gorm:"type:varchar(32);not null"`
	ResponsiblePartyID *string                        `gorm:"type:varchar(255)"`
	IsCompleted        bool                           `gorm:"not null;default:false"`
	CompletedAt        *time.Time                     `gorm:"column:completed_at"`
	Notes              *string                        `gorm:"type:text"`
	WasteItemIDs       datatypes.JSONSlice[uuid.UUID] `gorm:"column:waste_item_ids"`
}

func (RouteStopDTO) TableName() string {
	return "route_stops"
}

// fromDomain maps the aggregate to its rows. version is the value to store.
func fromDomain(rp *routeprocess.RouteProcess, version int) RouteProcessDTO {
	routeID := rp.ID().Bytes()
	stops := make([]RouteStopDTO, 0, len(rp.Stops()))
	for _, s := range rp.Stops() {
		stops = append(stops, RouteStopDTO{
			ID:                 s.ID().Bytes(),
			RouteProcessID:     routeID,
			LocationID:         s.Location().String(),
			StopOrder:          s.Order(),
			OperationType:      s.OperationType().String(),
			ResponsiblePartyID: s.ResponsiblePartyID(),
			IsCompleted:        s.IsCompleted(),
			CompletedAt:        s.CompletedAt(),
			Notes:              s.Notes(),
			WasteItemIDs:       toRaw(s.WasteItemIDs()),
		})
	}

	return RouteProcessDTO{
		ID:                 routeID,
		VehicleID:          rp.VehicleID(),
		DriverID:           rp.DriverID(),
		Status:             rp.Status().String(),
		CreatedAt:          rp.CreatedAt(),
		StartedAt:          rp.StartedAt(),
		CompletedAt:        rp.CompletedAt(),
		CancelledAt:        rp.CancelledAt(),
		CancellationReason: rp.CancellationReason(),
		Version:            version,
		Stops:              stops,
	}
}

// toDomain restores the aggregate from its rows.
func toDomain(dto RouteProcessDTO) (*routeprocess.RouteProcess, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := routeprocess.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	stops := make([]*routeprocess.RouteStop, 0, len(dto.Stops))
	for _, stopDTO := range dto.Stops {
		stop, stopErr := stopToDomain(stopDTO)
		if stopErr != nil {
			return nil, stopErr
		}
		stops = append(stops, stop)
	}

	return routeprocess.RestoreRouteProcess(
		id,
		dto.VehicleID,
		dto.DriverID,
		status,
		stops,
		dto.CreatedAt,
		dto.StartedAt,
		dto.CompletedAt,
		dto.CancelledAt,
		dto.CancellationReason,
		dto.Version,
	)
}

func stopToDomain(dto RouteStopDTO) (*routeprocess.RouteStop, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	opType, err := routeprocess.ParseStopOperationType(dto.OperationType)
	if err != nil {
		return nil, err
	}

	items, err := fromRaw(dto.WasteItemIDs)
	if err != nil {
		return nil, err
	}

	return routeprocess.RestoreRouteStop(
		id,
		dto.LocationID,
		dto.StopOrder,
		opType,
		dto.ResponsiblePartyID,
		dto.IsCompleted,
		dto.CompletedAt,
		dto.Notes,
		items,
	)
}

func toRaw(ids []kernel.UUID) datatypes.JSONSlice[uuid.UUID] {
	raw := make(datatypes.JSONSlice[uuid.UUID], 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return raw
}

func fromRaw(raw datatypes.JSONSlice[uuid.UUID]) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
