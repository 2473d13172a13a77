package ports

import (
	"context"
	"time"

	"wastetrack/internal/core/domain/model/kernel"
)

// OutboxWriter co-commits domain events with the aggregate that raised them. It must
// be bound to the same transaction as the aggregate write.
type OutboxWriter interface {
	// Enqueue stores events in emission order. aggregateVersion is the version the
	// aggregate reached with this write and orders events across commands.
	Enqueue(ctx context.Context, aggregateVersion int, events []kernel.DomainEvent) error
}

// OutboxEntry is an event waiting to be dispatched.
type OutboxEntry struct {
	Event            kernel.DomainEvent
	AggregateVersion int
	Position         int
	Attempts         int
	CreatedAt        time.Time
	// NextAttemptAt is set after a failed attempt.
	NextAttemptAt *time.Time
}

// OutboxStore is the relay side of the outbox.
type OutboxStore interface {
	// FetchPending returns up to limit undispatched entries created before olderThan,
	// ordered by creation, aggregate version and position. Entries whose retry time is
	// after now are left out, and so are the later entries of their aggregate.
	FetchPending(ctx context.Context, limit int, olderThan, now time.Time) ([]OutboxEntry, error)
	// MarkDispatched records that every handler accepted the event.
	MarkDispatched(ctx context.Context, eventID kernel.UUID, at time.Time) error
	// MarkFailed records a failed attempt and when to retry.
	MarkFailed(ctx context.Context, eventID kernel.UUID, reason string, nextAttemptAt time.Time) error
}
