package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"wastetrack/internal/core/application/views"
	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/lifecycle"
	"wastetrack/internal/core/domain/model/wasteitem"
	"wastetrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetWasteItemQueryHandler reads a single waste item.
type GetWasteItemQueryHandler struct {
	db *gorm.DB
}

func NewGetWasteItemQueryHandler(db *gorm.DB) GetWasteItemQueryHandler {
	return GetWasteItemQueryHandler{db: db}
}

func (h GetWasteItemQueryHandler) Handle(ctx context.Context, query GetWasteItemQuery) (views.WasteItemView, error) {
	if err := query.Validate(); err != nil {
		return views.WasteItemView{}, err
	}

	id := query.WasteItemID()

	var (
		rawID          uuid.UUID
		rawParentID    uuid.NullUUID
		wasteClass     string
		quantity       int64
		unit           string
		state          string
		holderID       string
		certificateRef *string
		createdAt      time.Time
		updatedAt      time.Time
		version        int
	)
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			parent_id,
			waste_class,
			quantity,
			unit,
			state,
			holder_id,
			certificate_ref,
			created_at,
			updated_at,
			version
		FROM waste_items
		WHERE id = ?
	`, id.Bytes()).Row().Scan(
		&rawID,
		&rawParentID,
		&wasteClass,
		&quantity,
		&unit,
		&state,
		&holderID,
		&certificateRef,
		&createdAt,
		&updatedAt,
		&version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return views.WasteItemView{}, errs.NewObjectNotFoundError("wasteItemId", id.String())
	}
	if err != nil {
		return views.WasteItemView{}, err
	}

	var parentID *kernel.UUID
	if rawParentID.Valid {
		p, parentErr := kernel.UUIDFromBytes(rawParentID.UUID[:])
		if parentErr != nil {
			return views.WasteItemView{}, parentErr
		}
		parentID = &p
	}

	parsedState, err := lifecycle.ParseState(state)
	if err != nil {
		return views.WasteItemView{}, err
	}

	item, err := wasteitem.RestoreWasteItem(
		id,
		parentID,
		wasteClass,
		quantity,
		unit,
		parsedState,
		holderID,
		certificateRef,
		createdAt,
		updatedAt,
		version,
	)
	if err != nil {
		return views.WasteItemView{}, err
	}
	return views.FromWasteItem(item), nil
}
