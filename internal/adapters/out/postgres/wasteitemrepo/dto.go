// Package wasteitemrepo persists WasteItem aggregates.
package wasteitemrepo

import (
	"time"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/lifecycle"
	"wastetrack/internal/core/domain/model/wasteitem"

	"github.com/google/uuid"
)

// WasteItemDTO is the waste_items row. Quantity is kept in integer base units.
type WasteItemDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ParentID       *uuid.UUID `gorm:"type:uuid;index"`
	WasteClass     string     `gorm:"type:varchar(64);not null"`
	Quantity       int64      `gorm:"not null"`
	Unit           string     `gorm:"type:varchar(16);not null"`
	State          string     `gorm:"type:varchar(32);not null;index"`
	HolderID       string     `gorm:"type:varchar(255);not null;index"`
	CertificateRef *string    `gorm:"type:varchar(255)"`
	CreatedAt      time.Time  `gorm:"not null"`
	UpdatedAt      time.Time  `gorm:"not null"`
	Version        int        `gorm:"not null"`
}

func (WasteItemDTO) TableName() string {
	return "waste_items"
}

func fromDomain(item *wasteitem.WasteItem, version int) WasteItemDTO {
	var parentID *uuid.UUID
	if item.ParentID() != nil {
		raw := item.ParentID().Bytes()
		parentID = &raw
	}

	return WasteItemDTO{
		ID:             item.ID().Bytes(),
		ParentID:       parentID,
		WasteClass:     item.WasteClass(),
		Quantity:       item.Quantity(),
		Unit:           item.Unit(),
		State:          item.State().String(),
		HolderID:       item.HolderID(),
		CertificateRef: item.CertificateRef(),
		CreatedAt:      item.CreatedAt(),
		UpdatedAt:      item.UpdatedAt(),
		Version:        version,
	}
}

// toDomain restores an item from its row.
func toDomain(dto WasteItemDTO) (*wasteitem.WasteItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var parentID *kernel.UUID
	if dto.ParentID != nil {
		pID, parentErr := kernel.UUIDFromBytes((*dto.ParentID)[:])
		if parentErr != nil {
			return nil, parentErr
		}
		parentID = &pID
	}

	state, err := lifecycle.ParseState(dto.State)
	if err != nil {
		return nil, err
	}

	return wasteitem.RestoreWasteItem(
		id,
		parentID,
		dto.WasteClass,
		dto.Quantity,
		dto.Unit,
		state,
		dto.HolderID,
		dto.CertificateRef,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.Version,
	)
}
