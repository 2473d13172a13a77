package commands

import (
	"context"
	"time"

	"wastetrack/internal/core/application/views"
	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/wasteitem"
	"wastetrack/internal/pkg/result"
)

// wasteItemFlow loads an item, changes it and stores it together with any item split
// off by the change.
type wasteItemFlow struct {
	uowFactory WasteItemUoWFactory
	clock      func() time.Time
}

func newWasteItemFlow(uowFactory WasteItemUoWFactory, clock func() time.Time) wasteItemFlow {
	if clock == nil {
		clock = time.Now
	}
	return wasteItemFlow{uowFactory: uowFactory, clock: clock}
}

func (f wasteItemFlow) now() time.Time {
	return f.clock().UTC()
}

func (f wasteItemFlow) modify(
	ctx context.Context,
	id kernel.UUID,
	change func(item *wasteitem.WasteItem) (*wasteitem.WasteItem, error),
) (result.Result[views.WasteItemView], error) {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return result.Result[views.WasteItemView]{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.WasteItemRepository()
	item, err := repo.Get(ctx, id)
	if err != nil {
		return outcome[views.WasteItemView](err)
	}

	split, err := change(item)
	if err != nil {
		return outcome[views.WasteItemView](err)
	}

	if err = repo.Update(ctx, item); err != nil {
		return outcome[views.WasteItemView](err)
	}
	if split != nil {
		if err = repo.Add(ctx, split); err != nil {
			return outcome[views.WasteItemView](err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return result.Result[views.WasteItemView]{}, err
	}

	view := views.FromWasteItem(item)
	if split != nil {
		splitView := views.FromWasteItem(split)
		view.Split = &splitView
	}
	return result.Ok(view), nil
}
