package ports

import (
	"context"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/wasteitem"
)

// WasteItemRepository persists WasteItem aggregates with optimistic concurrency.
type WasteItemRepository interface {
	Add(ctx context.Context, item *wasteitem.WasteItem) error
	// Update fails with errs.ErrConcurrencyConflict on a lost update.
	Update(ctx context.Context, item *wasteitem.WasteItem) error
	Get(ctx context.Context, id kernel.UUID) (*wasteitem.WasteItem, error)
}
