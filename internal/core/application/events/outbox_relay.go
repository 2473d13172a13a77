package events

import (
	"context"
	"log/slog"
	"time"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/ports"
)

// RelayConfig tunes OutboxRelay.
type RelayConfig struct {
	// BatchSize caps the entries handled per Drain.
	BatchSize int
	// MinAge leaves fresh entries to the command that wrote them.
	MinAge time.Duration
	// RetryDelay is multiplied by the attempt count to schedule the next attempt.
	RetryDelay time.Duration
}

// DrainResult counts what one Drain did.
type DrainResult struct {
	Dispatched int
	Failed     int
	Deferred   int
}

// OutboxRelay re-dispatches events that were committed but never marked dispatched,
// e.g. because the process stopped between commit and dispatch or a handler failed.
//
// Per-aggregate order is kept: once an event of an aggregate fails or is waiting for
// its retry time, the later events of that aggregate are deferred to a later Drain.
type OutboxRelay struct {
	store     ports.OutboxStore
	publisher ports.EventPublisher
	cfg       RelayConfig
	clock     func() time.Time
	logger    *slog.Logger
}

// NewOutboxRelay creates a relay. Zero config values fall back to a batch of 100, no
// minimum age and a 30 second retry step.
func NewOutboxRelay(
	store ports.OutboxStore,
	publisher ports.EventPublisher,
	cfg RelayConfig,
	clock func() time.Time,
	logger *slog.Logger,
) *OutboxRelay {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 30 * time.Second
	}
	if clock == nil {
		clock = time.Now
	}
	return &OutboxRelay{
		store:     store,
		publisher: publisher,
		cfg:       cfg,
		clock:     clock,
		logger:    logger.With("component", "outbox_relay"),
	}
}

// Drain handles one batch of pending entries. Store errors abort the batch; handler
// failures are recorded on the entry and do not.
func (r *OutboxRelay) Drain(ctx context.Context) (DrainResult, error) {
	var result DrainResult
	now := r.clock()

	entries, err := r.store.FetchPending(ctx, r.cfg.BatchSize, now.Add(-r.cfg.MinAge), now)
	if err != nil {
		return result, err
	}

	blocked := make(map[kernel.UUID]struct{})
	for _, entry := range entries {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		aggregateID := entry.Event.AggregateID()
		if _, ok := blocked[aggregateID]; ok {
			result.Deferred++
			continue
		}
		if entry.NextAttemptAt != nil && entry.NextAttemptAt.After(now) {
			blocked[aggregateID] = struct{}{}
			result.Deferred++
			continue
		}

		if pubErr := r.publisher.Publish(ctx, entry.Event); pubErr != nil {
			blocked[aggregateID] = struct{}{}
			result.Failed++
			next := now.Add(r.cfg.RetryDelay * time.Duration(entry.Attempts+1))
			r.logger.WarnContext(ctx, "Outbox entry dispatch failed",
				"event", entry.Event.EventName(),
				"event_id", entry.Event.EventID().String(),
				"attempt", entry.Attempts+1,
				"next_attempt_at", next,
				"error", pubErr,
			)
			if err = r.store.MarkFailed(ctx, entry.Event.EventID(), pubErr.Error(), next); err != nil {
				return result, err
			}
			continue
		}

		if err = r.store.MarkDispatched(ctx, entry.Event.EventID(), r.clock()); err != nil {
			return result, err
		}
		result.Dispatched++
	}

	if result.Dispatched+result.Failed > 0 {
		r.logger.InfoContext(ctx, "Outbox drained",
			"dispatched", result.Dispatched,
			"failed", result.Failed,
			"deferred", result.Deferred,
		)
	}
	return result, nil
}
