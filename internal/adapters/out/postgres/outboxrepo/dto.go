// Package outboxrepo stores committed domain events until every handler has
// accepted them.
package outboxrepo

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OutboxMessageDTO is the outbox_messages row. Rows are dispatched in
// (created_at, aggregate_version, position) order.
type OutboxMessageDTO struct {
	EventID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	AggregateID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	AggregateVersion int            `gorm:"not null"`
	Position         int            `gorm:"not null"`
	EventName        string         `gorm:"type:varchar(128);not null"`
	Payload          datatypes.JSON `gorm:"not null"`
	OccurredOn       time.Time      `gorm:"not null"`
	CreatedAt        time.Time      `gorm:"not null;index"`
	DispatchedAt     *time.Time     `gorm:"index"`
	Attempts         int            `gorm:"not null;default:0"`
	LastError        *string        `gorm:"type:text"`
	NextAttemptAt    *time.Time     `gorm:"column:next_attempt_at"`
}

func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}
