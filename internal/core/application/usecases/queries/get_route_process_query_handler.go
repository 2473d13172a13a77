package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"wastetrack/internal/core/application/views"
	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/routeprocess"
	"wastetrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRouteProcessQueryHandler reads a route and its stops with plain SQL and
// rebuilds the view through the domain model, so derived values such as progress
// are computed the same way as on the write side. Both reads share one read-only
// repeatable-read transaction, so a concurrent stop completion cannot tear the view.
//
// Example:
//
//	handler := NewGetRouteProcessQueryHandler(db)
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return echo.ErrNotFound
//	}
type GetRouteProcessQueryHandler struct {
	db *gorm.DB
}

// NewGetRouteProcessQueryHandler creates the handler.
func NewGetRouteProcessQueryHandler(db *gorm.DB) GetRouteProcessQueryHandler {
	return GetRouteProcessQueryHandler{db: db}
}

// Handle returns the view of the route. A missing route fails with
// *errs.ObjectNotFoundError.
func (h GetRouteProcessQueryHandler) Handle(
	ctx context.Context,
	query GetRouteProcessQuery,
) (views.RouteProcessView, error) {
	if err := query.Validate(); err != nil {
		return views.RouteProcessView{}, err
	}

	var view views.RouteProcessView
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rp, err := readRouteProcess(tx, query.RouteProcessID())
		if err != nil {
			return err
		}
		view = views.FromRouteProcess(rp)
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return views.RouteProcessView{}, err
	}
	return view, nil
}

func readRouteProcess(db *gorm.DB, id kernel.UUID) (*routeprocess.RouteProcess, error) {
	var (
		rawID              uuid.UUID
		vehicleID          string
		driverID           string
		status             string
		createdAt          time.Time
		startedAt          *time.Time
		completedAt        *time.Time
		cancelledAt        *time.Time
		cancellationReason *string
		version            int
	)
	row := db.Raw(`
		SELECT
			id,
			vehicle_id,
			driver_id,
			status,
			created_at,
			started_at,
			completed_at,
			cancelled_at,
			cancellation_reason,
			version
		FROM route_processes
		WHERE id = ?
	`, id.Bytes()).Row()
	err := row.Scan(
		&rawID,
		&vehicleID,
		&driverID,
		&status,
		&createdAt,
		&startedAt,
		&completedAt,
		&cancelledAt,
		&cancellationReason,
		&version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("routeProcessId", id.String())
	}
	if err != nil {
		return nil, err
	}

	stops, err := loadStops(db, id)
	if err != nil {
		return nil, err
	}

	parsedStatus, err := routeprocess.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	return routeprocess.RestoreRouteProcess(
		id,
		vehicleID,
		driverID,
		parsedStatus,
		stops,
		createdAt,
		startedAt,
		completedAt,
		cancelledAt,
		cancellationReason,
		version,
	)
}

func loadStops(db *gorm.DB, id kernel.UUID) ([]*routeprocess.RouteStop, error) {
	rows, err := db.Raw(`
		SELECT
			id,
			location_id,
			stop_order,
			operation_type,
			responsible_party_id,
			is_completed,
			completed_at,
			notes,
			waste_item_ids
		FROM route_stops
		WHERE route_process_id = ?
		ORDER BY stop_order
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stops := make([]*routeprocess.RouteStop, 0)
	for rows.Next() {
		var (
			rawID       uuid.UUID
			locationID  string
			order       int
			opType      string
			party       *string
			isCompleted bool
			completedAt *time.Time
			notes       *string
			rawItems    []byte
		)
		if err = rows.Scan(
			&rawID,
			&locationID,
			&order,
			&opType,
			&party,
			&isCompleted,
			&completedAt,
			&notes,
			&rawItems,
		); err != nil {
			return nil, err
		}

		stopID, idErr := kernel.UUIDFromBytes(rawID[:])
		if idErr != nil {
			return nil, idErr
		}
		parsedType, typeErr := routeprocess.ParseStopOperationType(opType)
		if typeErr != nil {
			return nil, typeErr
		}
		items, itemsErr := decodeIDs(rawItems)
		if itemsErr != nil {
			return nil, itemsErr
		}

		stop, stopErr := routeprocess.RestoreRouteStop(
			stopID, locationID, order, parsedType, party, isCompleted, completedAt, notes, items,
		)
		if stopErr != nil {
			return nil, stopErr
		}
		stops = append(stops, stop)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return stops, nil
}

// decodeIDs reads a JSON array of UUID strings. NULL and empty input yield no ids.
func decodeIDs(raw []byte) ([]kernel.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var ids []kernel.UUID
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
