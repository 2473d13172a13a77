package outboxrepo

import (
	"context"
	"fmt"
	"time"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/ports"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormOutboxRepository implements ports.OutboxWriter on the command transaction and
// ports.OutboxStore for the relay.
type GormOutboxRepository struct {
	db    *gorm.DB
	codec *EventCodec
	clock func() time.Time
}

// NewGormOutboxRepository creates an outbox bound to db, which is the transaction
// when used as an OutboxWriter.
func NewGormOutboxRepository(db *gorm.DB, codec *EventCodec, clock func() time.Time) *GormOutboxRepository {
	if clock == nil {
		clock = time.Now
	}
	return &GormOutboxRepository{
		db:    db,
		codec: codec,
		clock: clock,
	}
}

// Enqueue stores events in emission order.
func (r *GormOutboxRepository) Enqueue(ctx context.Context, aggregateVersion int, events []kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	now := r.clock()
	rows := make([]OutboxMessageDTO, 0, len(events))
	for i, evt := range events {
		payload, err := r.codec.Encode(evt)
		if err != nil {
			return err
		}
		rows = append(rows, OutboxMessageDTO{
			EventID:          evt.EventID().Bytes(),
			AggregateID:      evt.AggregateID().Bytes(),
			AggregateVersion: aggregateVersion,
			Position:         i,
			EventName:        evt.EventName(),
			Payload:          datatypes.JSON(payload),
			OccurredOn:       evt.OccurredOn(),
			CreatedAt:        now,
		})
	}

	return r.db.WithContext(ctx).Create(&rows).Error
}

// notBehindBackoff keeps an entry only when no earlier undispatched entry of the same
// aggregate is waiting for its retry time.
const notBehindBackoff = `NOT EXISTS (
	SELECT 1 FROM outbox_messages AS earlier
	WHERE earlier.aggregate_id = outbox_messages.aggregate_id
		AND earlier.dispatched_at IS NULL
		AND earlier.next_attempt_at IS NOT NULL
		AND earlier.next_attempt_at > ?
		AND (earlier.created_at < outbox_messages.created_at
			OR (earlier.created_at = outbox_messages.created_at
				AND (earlier.aggregate_version < outbox_messages.aggregate_version
					OR (earlier.aggregate_version = outbox_messages.aggregate_version
						AND earlier.position < outbox_messages.position)))))`

// FetchPending returns undispatched entries created at or before olderThan that are
// due at now. Entries in back-off and the later entries of their aggregate stay out
// of the batch, so one failing route cannot fill it.
func (r *GormOutboxRepository) FetchPending(
	ctx context.Context,
	limit int,
	olderThan, now time.Time,
) ([]ports.OutboxEntry, error) {
	var rows []OutboxMessageDTO
	if err := r.db.WithContext(ctx).
		Where("dispatched_at IS NULL AND created_at <= ?", olderThan).
		Where("next_attempt_at IS NULL OR next_attempt_at <= ?", now).
		Where(notBehindBackoff, now).
		Order("created_at").
		Order("aggregate_version").
		Order("position").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]ports.OutboxEntry, 0, len(rows))
	for _, row := range rows {
		evt, err := r.codec.Decode(row.EventName, row.Payload)
		if err != nil {
			return nil, fmt.Errorf("outbox entry %s: %w", row.EventID, err)
		}
		entries = append(entries, ports.OutboxEntry{
			Event:            evt,
			AggregateVersion: row.AggregateVersion,
			Position:         row.Position,
			Attempts:         row.Attempts,
			CreatedAt:        row.CreatedAt,
			NextAttemptAt:    row.NextAttemptAt,
		})
	}
	return entries, nil
}

// MarkDispatched stamps the entry as delivered.
func (r *GormOutboxRepository) MarkDispatched(ctx context.Context, eventID kernel.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&OutboxMessageDTO{}).
		Where("event_id = ?", eventID.Bytes()).
		Updates(map[string]any{
			"dispatched_at":   at,
			"last_error":      nil,
			"next_attempt_at": nil,
		}).Error
}

// MarkFailed counts the attempt and schedules the next one.
func (r *GormOutboxRepository) MarkFailed(ctx context.Context, eventID kernel.UUID, reason string, nextAttemptAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&OutboxMessageDTO{}).
		Where("event_id = ?", eventID.Bytes()).
		Updates(map[string]any{
			"attempts":        gorm.Expr("attempts + 1"),
			"last_error":      reason,
			"next_attempt_at": nextAttemptAt,
		}).Error
}
