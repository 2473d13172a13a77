// Package operationrepo is the append-only store of waste operations.
package operationrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/operation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WasteOperationDTO is the waste_operations row. Payload holds the data of the
// operation type as JSON. SourceEventID is unique so an event is recorded once.
type WasteOperationDTO struct {
	ID             uuid.UUID                      `gorm:"type:uuid;primaryKey"`
	Type           string                         `gorm:"type:varchar(32);not null"`
	RouteProcessID uuid.UUID                      `gorm:"type:uuid;not null;index"`
	StopID         uuid.UUID                      `gorm:"type:uuid;not null"`
	SourceEventID  uuid.UUID                      `gorm:"type:uuid;not null;uniqueIndex"`
	WasteItemIDs   datatypes.JSONSlice[uuid.UUID] `gorm:"column:waste_item_ids"`
	Payload        datatypes.JSON                 `gorm:"not null"`
	OccurredOn     time.Time                      `gorm:"not null;index"`
}

func (WasteOperationDTO) TableName() string {
	return "waste_operations"
}

func fromDomain(op *operation.WasteOperation) (WasteOperationDTO, error) {
	var payload any
	if data, ok := op.Relocation(); ok {
		payload = data
	}
	if data, ok := op.Transfer(); ok {
		payload = data
	}
	if data, ok := op.Storage(); ok {
		payload = data
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return WasteOperationDTO{}, fmt.Errorf("encode %s payload: %w", op.Type(), err)
	}

	items := make(datatypes.JSONSlice[uuid.UUID], 0, len(op.WasteItemIDs()))
	for _, id := range op.WasteItemIDs() {
		items = append(items, id.Bytes())
	}

	return WasteOperationDTO{
		ID:             op.ID().Bytes(),
		Type:           op.Type().String(),
		RouteProcessID: op.RouteProcessID().Bytes(),
		StopID:         op.StopID().Bytes(),
		SourceEventID:  op.SourceEventID().Bytes(),
		WasteItemIDs:   items,
		Payload:        datatypes.JSON(raw),
		OccurredOn:     op.OccurredOn(),
	}, nil
}

func toDomain(dto WasteOperationDTO) (*operation.WasteOperation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	opType, err := operation.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}

	origin, err := originOf(dto)
	if err != nil {
		return nil, err
	}

	switch opType {
	case operation.Relocation:
		var data operation.RelocationData
		if err = json.Unmarshal(dto.Payload, &data); err != nil {
			return nil, err
		}
		return operation.RestoreWasteOperation(id, opType, origin, &data, nil, nil)
	case operation.Transfer:
		var data operation.TransferData
		if err = json.Unmarshal(dto.Payload, &data); err != nil {
			return nil, err
		}
		return operation.RestoreWasteOperation(id, opType, origin, nil, &data, nil)
	default:
		var data operation.StorageData
		if err = json.Unmarshal(dto.Payload, &data); err != nil {
			return nil, err
		}
		return operation.RestoreWasteOperation(id, opType, origin, nil, nil, &data)
	}
}

func originOf(dto WasteOperationDTO) (operation.Origin, error) {
	routeID, err := kernel.UUIDFromBytes(dto.RouteProcessID[:])
	if err != nil {
		return operation.Origin{}, err
	}
	stopID, err := kernel.UUIDFromBytes(dto.StopID[:])
	if err != nil {
		return operation.Origin{}, err
	}
	eventID, err := kernel.UUIDFromBytes(dto.SourceEventID[:])
	if err != nil {
		return operation.Origin{}, err
	}

	items := make([]kernel.UUID, 0, len(dto.WasteItemIDs))
	for _, raw := range dto.WasteItemIDs {
		itemID, itemErr := kernel.UUIDFromBytes(raw[:])
		if itemErr != nil {
			return operation.Origin{}, itemErr
		}
		items = append(items, itemID)
	}

	return operation.Origin{
		RouteProcessID: routeID,
		StopID:         stopID,
		SourceEventID:  eventID,
		OccurredOn:     dto.OccurredOn,
		WasteItemIDs:   items,
	}, nil
}
