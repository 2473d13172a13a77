package commands

import (
	"context"
	"time"

	"wastetrack/internal/core/application/views"
	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/wasteitem"
	"wastetrack/internal/pkg/result"
)

// TransitionWasteItemCommandHandler applies a lifecycle step. A partial step stores the
// split item next to the updated remainder in one transaction.
type TransitionWasteItemCommandHandler struct {
	flow wasteItemFlow
}

func NewTransitionWasteItemCommandHandler(
	uowFactory WasteItemUoWFactory,
	clock func() time.Time,
) TransitionWasteItemCommandHandler {
	return TransitionWasteItemCommandHandler{flow: newWasteItemFlow(uowFactory, clock)}
}

func (h *TransitionWasteItemCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionWasteItemCommand,
) (result.Result[views.WasteItemView], error) {
	if err := cmd.Validate(); err != nil {
		return result.Result[views.WasteItemView]{}, err
	}

	return h.flow.modify(ctx, cmd.WasteItemID(), func(item *wasteitem.WasteItem) (*wasteitem.WasteItem, error) {
		return item.Apply(wasteitem.Transition{
			Target:         cmd.Target(),
			Quantity:       cmd.Quantity(),
			AllowPartial:   cmd.AllowPartial(),
			Evidence:       cmd.Evidence(),
			CertificateRef: cmd.CertificateRef(),
			SplitID:        kernel.NewUUID(),
			At:             h.flow.now(),
		})
	})
}
