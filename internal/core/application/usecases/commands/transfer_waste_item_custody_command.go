package commands

import (
	"errors"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/pkg/guard"
)

var ErrTransferWasteItemCustodyCommandIsNotConstructed = errors.New(
	"TransferWasteItemCustodyCommand must be created via NewTransferWasteItemCustodyCommand constructor",
)

// TransferWasteItemCustodyCommand hands an item to another holder.
type TransferWasteItemCustodyCommand struct {
	wasteItemID kernel.UUID
	toHolderID  string

	guard guard.ConstructorGuard
}

func NewTransferWasteItemCustodyCommand(
	wasteItemID kernel.UUID,
	toHolderID string,
) (TransferWasteItemCustodyCommand, error) {
	if err := wasteItemID.Validate(); err != nil {
		return TransferWasteItemCustodyCommand{}, err
	}

	return TransferWasteItemCustodyCommand{
		wasteItemID: wasteItemID,
		toHolderID:  toHolderID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c TransferWasteItemCustodyCommand) Validate() error {
	return c.guard.Validate(ErrTransferWasteItemCustodyCommandIsNotConstructed)
}

func (c TransferWasteItemCustodyCommand) WasteItemID() kernel.UUID {
	return c.wasteItemID
}

func (c TransferWasteItemCustodyCommand) ToHolderID() string {
	return c.toHolderID
}
