package commands

import (
	"errors"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/pkg/guard"
)

var ErrRegisterWasteItemCommandIsNotConstructed = errors.New(
	"RegisterWasteItemCommand must be created via NewRegisterWasteItemCommand constructor",
)

// RegisterWasteItemCommand records a newly generated waste item. Quantity is in
// integer base units of unit.
type RegisterWasteItemCommand struct {
	wasteItemID kernel.UUID
	wasteClass  string
	quantity    int64
	unit        string
	holderID    string

	guard guard.ConstructorGuard
}

// NewRegisterWasteItemCommand only checks the id; the item validates the rest.
func NewRegisterWasteItemCommand(
	wasteItemID kernel.UUID,
	wasteClass string,
	quantity int64,
	unit string,
	holderID string,
) (RegisterWasteItemCommand, error) {
	if err := wasteItemID.Validate(); err != nil {
		return RegisterWasteItemCommand{}, err
	}

	return RegisterWasteItemCommand{
		wasteItemID: wasteItemID,
		wasteClass:  wasteClass,
		quantity:    quantity,
		unit:        unit,
		holderID:    holderID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterWasteItemCommand) Validate() error {
	return c.guard.Validate(ErrRegisterWasteItemCommandIsNotConstructed)
}

func (c RegisterWasteItemCommand) WasteItemID() kernel.UUID {
	return c.wasteItemID
}

func (c RegisterWasteItemCommand) WasteClass() string {
	return c.wasteClass
}

func (c RegisterWasteItemCommand) Quantity() int64 {
	return c.quantity
}

func (c RegisterWasteItemCommand) Unit() string {
	return c.unit
}

func (c RegisterWasteItemCommand) HolderID() string {
	return c.holderID
}
