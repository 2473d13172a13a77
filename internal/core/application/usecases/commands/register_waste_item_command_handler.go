package commands

import (
	"context"
	"time"

	"wastetrack/internal/core/application/views"
	"wastetrack/internal/core/domain/model/wasteitem"
	"wastetrack/internal/pkg/result"
)

// RegisterWasteItemCommandHandler stores a new item in Generated.
type RegisterWasteItemCommandHandler struct {
	flow wasteItemFlow
}

func NewRegisterWasteItemCommandHandler(
	uowFactory WasteItemUoWFactory,
	clock func() time.Time,
) RegisterWasteItemCommandHandler {
	return RegisterWasteItemCommandHandler{flow: newWasteItemFlow(uowFactory, clock)}
}

func (h *RegisterWasteItemCommandHandler) Handle(
	ctx context.Context,
	cmd RegisterWasteItemCommand,
) (result.Result[views.WasteItemView], error) {
	if err := cmd.Validate(); err != nil {
		return result.Result[views.WasteItemView]{}, err
	}

	item, err := wasteitem.NewWasteItem(
		cmd.WasteItemID(),
		cmd.WasteClass(),
		cmd.Quantity(),
		cmd.Unit(),
		cmd.HolderID(),
		h.flow.now(),
	)
	if err != nil {
		return outcome[views.WasteItemView](err)
	}

	uow := h.flow.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return result.Result[views.WasteItemView]{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.WasteItemRepository().Add(ctx, item); err != nil {
		return outcome[views.WasteItemView](err)
	}

	if err = uow.Commit(ctx); err != nil {
		return result.Result[views.WasteItemView]{}, err
	}

	return result.Ok(views.FromWasteItem(item)), nil
}
