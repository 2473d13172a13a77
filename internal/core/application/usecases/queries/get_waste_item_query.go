package queries

import (
	"errors"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/pkg/guard"
)

var ErrGetWasteItemQueryIsNotConstructed = errors.New(
	"GetWasteItemQuery must be created via NewGetWasteItemQuery constructor",
)

// GetWasteItemQuery loads the current state of one waste item.
type GetWasteItemQuery struct {
	wasteItemID kernel.UUID
	guard       guard.ConstructorGuard
}

func NewGetWasteItemQuery(wasteItemID kernel.UUID) (GetWasteItemQuery, error) {
	if err := wasteItemID.Validate(); err != nil {
		return GetWasteItemQuery{}, err
	}
	return GetWasteItemQuery{
		wasteItemID: wasteItemID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q GetWasteItemQuery) WasteItemID() kernel.UUID {
	return q.wasteItemID
}

func (q GetWasteItemQuery) Validate() error {
	return q.guard.Validate(ErrGetWasteItemQueryIsNotConstructed)
}
