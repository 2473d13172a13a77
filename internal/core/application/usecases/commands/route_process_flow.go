package commands

import (
	"context"
	"log/slog"
	"time"

	"wastetrack/internal/core/application/views"
	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/routeprocess"
	"wastetrack/internal/core/ports"
	"wastetrack/internal/pkg/result"
)

// RouteProcessDeps are the collaborators shared by the route command handlers.
type RouteProcessDeps struct {
	UoWFactory RouteProcessUoWFactory
	Publisher  ports.EventPublisher
	Dispatched DispatchRecorder
	// Clock defaults to time.Now.
	Clock  func() time.Time
	Logger *slog.Logger
}

// routeProcessFlow runs the common part of every route command:
// Begin, load or create, change, store with version check, enqueue events, Commit,
// then dispatch the committed events in the order they were raised.
type routeProcessFlow struct {
	deps RouteProcessDeps
}

func newRouteProcessFlow(deps RouteProcessDeps, component string) routeProcessFlow {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	deps.Logger = deps.Logger.With("component", component)
	return routeProcessFlow{deps: deps}
}

func (f routeProcessFlow) now() time.Time {
	return f.deps.Clock().UTC()
}

// create stores a new route.
func (f routeProcessFlow) create(
	ctx context.Context,
	rp *routeprocess.RouteProcess,
) (result.Result[views.RouteProcessView], error) {
	uow := f.deps.UoWFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return result.Result[views.RouteProcessView]{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.RouteProcessRepository().Add(ctx, rp); err != nil {
		return outcome[views.RouteProcessView](err)
	}

	return f.commit(ctx, uow, rp)
}

// modify loads the route, applies change and stores it.
func (f routeProcessFlow) modify(
	ctx context.Context,
	id kernel.UUID,
	change func(rp *routeprocess.RouteProcess) error,
) (result.Result[views.RouteProcessView], error) {
	uow := f.deps.UoWFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return result.Result[views.RouteProcessView]{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.RouteProcessRepository()
	rp, err := repo.Get(ctx, id)
	if err != nil {
		return outcome[views.RouteProcessView](err)
	}

	if err = change(rp); err != nil {
		return outcome[views.RouteProcessView](err)
	}

	if err = repo.Update(ctx, rp); err != nil {
		return outcome[views.RouteProcessView](err)
	}

	return f.commit(ctx, uow, rp)
}

func (f routeProcessFlow) commit(
	ctx context.Context,
	uow RouteProcessUoW,
	rp *routeprocess.RouteProcess,
) (result.Result[views.RouteProcessView], error) {
	pending := rp.PendingEvents()
	if err := uow.Outbox().Enqueue(ctx, rp.Version()+1, pending); err != nil {
		return result.Result[views.RouteProcessView]{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return result.Result[views.RouteProcessView]{}, err
	}
	rp.ClearEvents()

	if err := f.dispatch(ctx, pending); err != nil {
		return result.Result[views.RouteProcessView]{}, err
	}

	return result.Ok(views.FromRouteProcess(rp)), nil
}

// dispatch publishes events one by one. On a handler failure the remaining events stay
// in the outbox for the relay and the failure is returned.
func (f routeProcessFlow) dispatch(ctx context.Context, pending []kernel.DomainEvent) error {
	for _, evt := range pending {
		if err := f.deps.Publisher.Publish(ctx, evt); err != nil {
			return err
		}

		if err := f.deps.Dispatched.MarkDispatched(ctx, evt.EventID(), f.now()); err != nil {
			// The relay will publish it again; handlers are idempotent.
			f.deps.Logger.WarnContext(ctx, "Failed to mark event dispatched",
				"event", evt.EventName(),
				"event_id", evt.EventID().String(),
				"error", err,
			)
		}
	}
	return nil
}
