package commands

import (
	"context"
	"time"

	"wastetrack/internal/core/application/views"
	"wastetrack/internal/core/domain/model/wasteitem"
	"wastetrack/internal/pkg/result"
)

// TransferWasteItemCustodyCommandHandler changes the holder of an item.
type TransferWasteItemCustodyCommandHandler struct {
	flow wasteItemFlow
}

func NewTransferWasteItemCustodyCommandHandler(
	uowFactory WasteItemUoWFactory,
	clock func() time.Time,
) TransferWasteItemCustodyCommandHandler {
	return TransferWasteItemCustodyCommandHandler{flow: newWasteItemFlow(uowFactory, clock)}
}

func (h *TransferWasteItemCustodyCommandHandler) Handle(
	ctx context.Context,
	cmd TransferWasteItemCustodyCommand,
) (result.Result[views.WasteItemView], error) {
	if err := cmd.Validate(); err != nil {
		return result.Result[views.WasteItemView]{}, err
	}

	return h.flow.modify(ctx, cmd.WasteItemID(), func(item *wasteitem.WasteItem) (*wasteitem.WasteItem, error) {
		return nil, item.TransferCustody(cmd.ToHolderID(), h.flow.now())
	})
}
