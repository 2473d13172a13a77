package operationrepo

import (
	"context"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/operation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWasteOperationRepository implements ports.WasteOperationRepository using GORM.
// Operations are never updated or deleted.
type GormWasteOperationRepository struct {
	db *gorm.DB
}

// NewGormWasteOperationRepository creates a new GORM waste operation repository.
func NewGormWasteOperationRepository(db *gorm.DB) *GormWasteOperationRepository {
	return &GormWasteOperationRepository{db: db}
}

// Add appends op. A row with the same id or source event is left untouched and no
// error is returned, so replaying a trigger event is a no-op.
func (r *GormWasteOperationRepository) Add(ctx context.Context, op *operation.WasteOperation) error {
	if err := op.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(op)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
}

// ListByRouteProcess returns the operations of a route ordered by occurrence. Operations
// of the same stop share a timestamp and come out as relocation, storage, transfer.
func (r *GormWasteOperationRepository) ListByRouteProcess(
	ctx context.Context,
	routeProcessID kernel.UUID,
) ([]*operation.WasteOperation, error) {
	if err := routeProcessID.Validate(); err != nil {
		return nil, err
	}

	var dtos []WasteOperationDTO
	if err := r.db.WithContext(ctx).
		Where("route_process_id = ?", routeProcessID.Bytes()).
		Order("occurred_on").
		Order("type").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	ops := make([]*operation.WasteOperation, 0, len(dtos))
	for _, dto := range dtos {
		op, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}
