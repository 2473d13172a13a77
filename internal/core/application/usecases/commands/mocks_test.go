package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"wastetrack/internal/core/application/usecases/commands"
	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/routeprocess"
	"wastetrack/internal/core/domain/model/wasteitem"
	"wastetrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockRouteProcessRepository struct{ mock.Mock }

func (m *MockRouteProcessRepository) Add(ctx context.Context, rp *routeprocess.RouteProcess) error {
	args := m.Called(ctx, rp)
	return args.Error(0)
}

func (m *MockRouteProcessRepository) Update(ctx context.Context, rp *routeprocess.RouteProcess) error {
	args := m.Called(ctx, rp)
	return args.Error(0)
}

func (m *MockRouteProcessRepository) Get(ctx context.Context, id kernel.UUID) (*routeprocess.RouteProcess, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*routeprocess.RouteProcess), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockOutboxWriter struct{ mock.Mock }

func (m *MockOutboxWriter) Enqueue(ctx context.Context, aggregateVersion int, events []kernel.DomainEvent) error {
	args := m.Called(ctx, aggregateVersion, events)
	return args.Error(0)
}

type MockRouteProcessUoW struct{ mock.Mock }

func (m *MockRouteProcessUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRouteProcessUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRouteProcessUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRouteProcessUoW) RouteProcessRepository() ports.RouteProcessRepository {
	args := m.Called()
	return args.Get(0).(ports.RouteProcessRepository)
}

func (m *MockRouteProcessUoW) Outbox() ports.OutboxWriter {
	args := m.Called()
	return args.Get(0).(ports.OutboxWriter)
}

type MockRouteProcessUoWFactory struct{ mock.Mock }

func (m *MockRouteProcessUoWFactory) Create() commands.RouteProcessUoW {
	args := m.Called()
	return args.Get(0).(commands.RouteProcessUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event kernel.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockDispatchRecorder struct{ mock.Mock }

func (m *MockDispatchRecorder) MarkDispatched(ctx context.Context, eventID kernel.UUID, at time.Time) error {
	args := m.Called(ctx, eventID, at)
	return args.Error(0)
}

type MockWasteItemRepository struct{ mock.Mock }

func (m *MockWasteItemRepository) Add(ctx context.Context, item *wasteitem.WasteItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockWasteItemRepository) Update(ctx context.Context, item *wasteitem.WasteItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockWasteItemRepository) Get(ctx context.Context, id kernel.UUID) (*wasteitem.WasteItem, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*wasteitem.WasteItem), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockWasteItemUoW struct{ mock.Mock }

func (m *MockWasteItemUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWasteItemUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWasteItemUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWasteItemUoW) WasteItemRepository() ports.WasteItemRepository {
	args := m.Called()
	return args.Get(0).(ports.WasteItemRepository)
}

type MockWasteItemUoWFactory struct{ mock.Mock }

func (m *MockWasteItemUoWFactory) Create() commands.WasteItemUoW {
	args := m.Called()
	return args.Get(0).(commands.WasteItemUoW)
}

// routeMocks bundles the collaborators of a route command handler.
type routeMocks struct {
	repo       *MockRouteProcessRepository
	outbox     *MockOutboxWriter
	uow        *MockRouteProcessUoW
	factory    *MockRouteProcessUoWFactory
	publisher  *MockEventPublisher
	dispatched *MockDispatchRecorder
}

func newRouteMocks() routeMocks {
	m := routeMocks{
		repo:       new(MockRouteProcessRepository),
		outbox:     new(MockOutboxWriter),
		uow:        new(MockRouteProcessUoW),
		factory:    new(MockRouteProcessUoWFactory),
		publisher:  new(MockEventPublisher),
		dispatched: new(MockDispatchRecorder),
	}
	m.factory.On("Create").Return(m.uow).Once()
	return m
}

func (m routeMocks) deps() commands.RouteProcessDeps {
	return commands.RouteProcessDeps{
		UoWFactory: m.factory,
		Publisher:  m.publisher,
		Dispatched: m.dispatched,
		Clock:      fixedClock,
		Logger:     discardLogger(),
	}
}

func (m routeMocks) assertExpectations(t mock.TestingT) {
	m.repo.AssertExpectations(t)
	m.outbox.AssertExpectations(t)
	m.uow.AssertExpectations(t)
	m.factory.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
	m.dispatched.AssertExpectations(t)
}

// plannedRoute returns a stored-looking route with a pickup and a delivery stop.
func plannedRoute(t *testing.T) *routeprocess.RouteProcess {
	t.Helper()
	party := "recycler-9"
	pickup, err := routeprocess.NewStopPlan("generator-1", routeprocess.Pickup, nil, nil)
	require.NoError(t, err)
	delivery, err := routeprocess.NewStopPlan("plant-3", routeprocess.Delivery, &party, nil)
	require.NoError(t, err)

	rp, err := routeprocess.NewRouteProcess(
		kernel.NewUUID(), "truck-7", "driver-2", []routeprocess.StopPlan{pickup, delivery}, fixedNow.Add(-time.Hour),
	)
	require.NoError(t, err)
	rp.ClearEvents()
	rp.MarkPersisted(1)
	return rp
}
