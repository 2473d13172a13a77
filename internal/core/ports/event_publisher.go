package ports

import (
	"context"

	"wastetrack/internal/core/domain/model/kernel"
)

// EventPublisher delivers one event to every handler registered for its name,
// synchronously, stopping at the first handler failure.
type EventPublisher interface {
	Publish(ctx context.Context, event kernel.DomainEvent) error
}
