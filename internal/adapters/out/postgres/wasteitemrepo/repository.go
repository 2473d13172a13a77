package wasteitemrepo

import (
	"context"
	"errors"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/wasteitem"
	"wastetrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormWasteItemRepository implements ports.WasteItemRepository using GORM.
type GormWasteItemRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWasteItemRepository creates a new GORM waste item repository.
func NewGormWasteItemRepository(db *gorm.DB, tracker aggregateTracker) *GormWasteItemRepository {
	return &GormWasteItemRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new item.
func (r *GormWasteItemRepository) Add(ctx context.Context, item *wasteitem.WasteItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item, item.Version()+1)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.track(item)
	return nil
}

// Update writes the item if its stored version still equals item.Version().
func (r *GormWasteItemRepository) Update(ctx context.Context, item *wasteitem.WasteItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	expected := item.Version()
	dto := fromDomain(item, expected+1)

	result := r.db.WithContext(ctx).
		Model(&WasteItemDTO{}).
		Where("id = ? AND version = ?", dto.ID, expected).
		Updates(map[string]any{
			"quantity":        dto.Quantity,
			"state":           dto.State,
			"holder_id":       dto.HolderID,
			"certificate_ref": dto.CertificateRef,
			"updated_at":      dto.UpdatedAt,
			"version":         dto.Version,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&WasteItemDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundErrorWithCause("wasteItemId", item.ID().String(), gorm.ErrRecordNotFound)
		}
		return errs.NewConcurrencyConflictError("wasteItemId", item.ID().String(), expected)
	}

	r.track(item)
	return nil
}

// Get retrieves an item by id.
func (r *GormWasteItemRepository) Get(ctx context.Context, id kernel.UUID) (*wasteitem.WasteItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WasteItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("wasteItemId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormWasteItemRepository) track(item *wasteitem.WasteItem) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(item.ID(), item)
	}
}
