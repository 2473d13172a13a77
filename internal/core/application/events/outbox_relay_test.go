package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"wastetrack/internal/core/application/events"
	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOutboxStore struct{ mock.Mock }

func (m *MockOutboxStore) FetchPending(
	ctx context.Context,
	limit int,
	olderThan, now time.Time,
) ([]ports.OutboxEntry, error) {
	args := m.Called(ctx, limit, olderThan, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxEntry), args.Error(1)
}

func (m *MockOutboxStore) MarkDispatched(ctx context.Context, eventID kernel.UUID, at time.Time) error {
	args := m.Called(ctx, eventID, at)
	return args.Error(0)
}

func (m *MockOutboxStore) MarkFailed(ctx context.Context, eventID kernel.UUID, reason string, nextAttemptAt time.Time) error {
	args := m.Called(ctx, eventID, reason, nextAttemptAt)
	return args.Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, event kernel.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func TestOutboxRelay_Drain(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	cfg := events.RelayConfig{BatchSize: 10, MinAge: 5 * time.Second, RetryDelay: time.Minute}

	t.Run("dispatches and marks in order", func(t *testing.T) {
		ctx := t.Context()
		route := kernel.NewUUID()
		first := newTestEvent("a", route)
		second := newTestEvent("b", route)
		store := new(MockOutboxStore)
		publisher := new(MockPublisher)

		mock.InOrder(
			store.On("FetchPending", ctx, 10, now.Add(-5*time.Second), now).
				Return([]ports.OutboxEntry{{Event: first}, {Event: second, Position: 1}}, nil).Once(),
			publisher.On("Publish", ctx, first).Return(nil).Once(),
			store.On("MarkDispatched", ctx, first.id, now).Return(nil).Once(),
			publisher.On("Publish", ctx, second).Return(nil).Once(),
			store.On("MarkDispatched", ctx, second.id, now).Return(nil).Once(),
		)

		result, err := events.NewOutboxRelay(store, publisher, cfg, clock, discardLogger()).Drain(ctx)

		require.NoError(t, err)
		assert.Equal(t, events.DrainResult{Dispatched: 2}, result)
		store.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("failure holds back the rest of the aggregate", func(t *testing.T) {
		ctx := t.Context()
		routeA := kernel.NewUUID()
		routeB := kernel.NewUUID()
		a1 := newTestEvent("a1", routeA)
		a2 := newTestEvent("a2", routeA)
		b1 := newTestEvent("b1", routeB)
		store := new(MockOutboxStore)
		publisher := new(MockPublisher)
		boom := errors.New("handler down")

		store.On("FetchPending", ctx, 10, mock.Anything, now).
			Return([]ports.OutboxEntry{{Event: a1, Attempts: 2}, {Event: a2}, {Event: b1}}, nil).Once()
		publisher.On("Publish", ctx, a1).Return(boom).Once()
		store.On("MarkFailed", ctx, a1.id, "handler down", now.Add(3*time.Minute)).Return(nil).Once()
		publisher.On("Publish", ctx, b1).Return(nil).Once()
		store.On("MarkDispatched", ctx, b1.id, now).Return(nil).Once()

		result, err := events.NewOutboxRelay(store, publisher, cfg, clock, discardLogger()).Drain(ctx)

		require.NoError(t, err)
		assert.Equal(t, events.DrainResult{Dispatched: 1, Failed: 1, Deferred: 1}, result)
		publisher.AssertNotCalled(t, "Publish", ctx, a2)
		store.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("entries waiting for retry block their aggregate", func(t *testing.T) {
		ctx := t.Context()
		route := kernel.NewUUID()
		waiting := newTestEvent("a1", route)
		later := newTestEvent("a2", route)
		retryAt := now.Add(time.Minute)
		store := new(MockOutboxStore)
		publisher := new(MockPublisher)

		store.On("FetchPending", ctx, 10, mock.Anything, now).
			Return([]ports.OutboxEntry{{Event: waiting, NextAttemptAt: &retryAt}, {Event: later}}, nil).Once()

		result, err := events.NewOutboxRelay(store, publisher, cfg, clock, discardLogger()).Drain(ctx)

		require.NoError(t, err)
		assert.Equal(t, events.DrainResult{Deferred: 2}, result)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("store errors abort the batch", func(t *testing.T) {
		ctx := t.Context()
		evt := newTestEvent("a", kernel.NewUUID())
		store := new(MockOutboxStore)
		publisher := new(MockPublisher)
		dbDown := errors.New("db down")

		store.On("FetchPending", ctx, 10, mock.Anything, now).Return([]ports.OutboxEntry{{Event: evt}}, nil).Once()
		publisher.On("Publish", ctx, evt).Return(nil).Once()
		store.On("MarkDispatched", ctx, evt.id, now).Return(dbDown).Once()

		_, err := events.NewOutboxRelay(store, publisher, cfg, clock, discardLogger()).Drain(ctx)

		require.ErrorIs(t, err, dbDown)
	})

	t.Run("fetch error", func(t *testing.T) {
		ctx := t.Context()
		store := new(MockOutboxStore)
		dbDown := errors.New("db down")
		store.On("FetchPending", ctx, 100, mock.Anything, mock.Anything).Return(nil, dbDown).Once()

		_, err := events.NewOutboxRelay(store, new(MockPublisher), events.RelayConfig{}, clock, discardLogger()).Drain(ctx)

		require.ErrorIs(t, err, dbDown)
	})
}
