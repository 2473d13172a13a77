package kernel

import "time"

// DomainEvent is a fact emitted by an aggregate. Events are buffered on the aggregate,
// persisted to the outbox together with it and dispatched after commit.
type DomainEvent interface {
	// EventID is unique per event and stable across replays.
	EventID() UUID
	// EventName is the routing key used by the dispatcher, e.g. "route_process.started".
	EventName() string
	// AggregateID identifies the aggregate that emitted the event.
	AggregateID() UUID
	// OccurredOn is the time the fact happened.
	OccurredOn() time.Time
}
