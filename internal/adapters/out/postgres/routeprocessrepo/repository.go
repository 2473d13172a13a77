package routeprocessrepo

import (
	"context"
	"errors"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/routeprocess"
	"wastetrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRouteProcessRepository implements ports.RouteProcessRepository using GORM.
type GormRouteProcessRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRouteProcessRepository creates a new GORM route process repository.
func NewGormRouteProcessRepository(db *gorm.DB, tracker aggregateTracker) *GormRouteProcessRepository {
	return &GormRouteProcessRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new route with its stops at version aggregate.Version()+1.
func (r *GormRouteProcessRepository) Add(ctx context.Context, aggregate *routeprocess.RouteProcess) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate, aggregate.Version()+1)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.track(aggregate)
	return nil
}

// Update writes the route and its stops if the stored version still equals
// aggregate.Version(). The stored version is incremented.
//
// Example:
//
//	rp, _ := repo.Get(ctx, id)
//	_ = rp.Start(time.Now())
//	err := repo.Update(ctx, rp)
//	if errors.Is(err, errs.ErrConcurrencyConflict) {
//	    // someone else wrote the route first; reload and retry
//	}
func (r *GormRouteProcessRepository) Update(ctx context.Context, aggregate *routeprocess.RouteProcess) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	expected := aggregate.Version()
	dto := fromDomain(aggregate, expected+1)

	result := r.db.WithContext(ctx).
		Model(&RouteProcessDTO{}).
		Where("id = ? AND version = ?", dto.ID, expected).
		Updates(map[string]any{
			"status":              dto.Status,
			"started_at":          dto.StartedAt,
			"completed_at":        dto.CompletedAt,
			"cancelled_at":        dto.CancelledAt,
			"cancellation_reason": dto.CancellationReason,
			"version":             dto.Version,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missOrConflict(ctx, aggregate.ID(), expected)
	}

	for i := range dto.Stops {
		stop := dto.Stops[i]
		err := r.db.WithContext(ctx).
			Model(&RouteStopDTO{}).
			Where("id = ? AND route_process_id = ?", stop.ID, dto.ID).
			Updates(map[string]any{
				"is_completed":   stop.IsCompleted,
				"completed_at":   stop.CompletedAt,
				"notes":          stop.Notes,
				"waste_item_ids": stop.WasteItemIDs,
			}).Error
		if err != nil {
			return err
		}
	}

	r.track(aggregate)
	return nil
}

// Get retrieves a route with its stops ordered by stop order.
func (r *GormRouteProcessRepository) Get(ctx context.Context, id kernel.UUID) (*routeprocess.RouteProcess, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RouteProcessDTO
	err := r.db.WithContext(ctx).
		Preload("Stops", func(db *gorm.DB) *gorm.DB {
			return db.Order("stop_order")
		}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("routeProcessId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// missOrConflict tells a missing route from a version mismatch after an update
// matched no row.
func (r *GormRouteProcessRepository) missOrConflict(ctx context.Context, id kernel.UUID, expected int) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&RouteProcessDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundErrorWithCause("routeProcessId", id.String(), gorm.ErrRecordNotFound)
	}
	return errs.NewConcurrencyConflictError("routeProcessId", id.String(), expected)
}

func (r *GormRouteProcessRepository) track(aggregate *routeprocess.RouteProcess) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
}
