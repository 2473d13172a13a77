package cmd

import (
	"log/slog"
	"time"

	httpadapter "wastetrack/internal/adapters/in/http"
	"wastetrack/internal/adapters/out/postgres"
	"wastetrack/internal/adapters/out/postgres/operationrepo"
	"wastetrack/internal/adapters/out/postgres/outboxrepo"
	"wastetrack/internal/core/application/eventhandlers"
	"wastetrack/internal/core/application/events"
	"wastetrack/internal/core/application/usecases/commands"
	"wastetrack/internal/core/application/usecases/queries"
	"wastetrack/internal/core/domain/services"
	"wastetrack/internal/core/ports"
	"wastetrack/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	outbox     *outboxrepo.GormOutboxRepository
	dispatcher *events.Dispatcher
	notifier   ports.RouteProcessNotifier
	clock      func() time.Time
	logger     *slog.Logger
}

// NewCompositionRoot wires the stores, the event dispatcher and its handlers.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	notifier ports.RouteProcessNotifier,
	logger *slog.Logger,
) *CompositionRoot {
	clock := func() time.Time { return time.Now().UTC() }
	codec := outboxrepo.RouteProcessCodec()

	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, codec, clock),
		outbox:     outboxrepo.NewGormOutboxRepository(gormDB, codec, clock),
		dispatcher: events.NewDispatcher(logger),
		notifier:   notifier,
		clock:      clock,
		logger:     logger,
	}
	c.registerEventHandlers()
	return c
}

func (c *CompositionRoot) registerEventHandlers() {
	operations := operationrepo.NewGormWasteOperationRepository(c.gormDB)
	factory := services.NewOperationFactory()
	eventhandlers.Register(
		c.dispatcher,
		eventhandlers.NewRelocationHandler(operations, factory, c.logger),
		eventhandlers.NewTransferHandler(operations, factory, c.logger),
		eventhandlers.NewStorageHandler(operations, factory, c.logger),
		eventhandlers.NewNotificationHandler(c.CreateGetRouteProcessQueryHandler(), c.notifier, c.logger),
	)
}

// Dispatcher is exposed for the outbox relay and for tests.
func (c *CompositionRoot) Dispatcher() *events.Dispatcher {
	return c.dispatcher
}

func (c *CompositionRoot) routeProcessDeps() commands.RouteProcessDeps {
	return commands.RouteProcessDeps{
		UoWFactory: FuncRouteProcessUoWFactory(func() commands.RouteProcessUoW {
			return c.uowFactory.Create()
		}),
		Publisher:  c.dispatcher,
		Dispatched: c.outbox,
		Clock:      c.clock,
		Logger:     c.logger,
	}
}

func (c *CompositionRoot) wasteItemUoWFactory() commands.WasteItemUoWFactory {
	return FuncWasteItemUoWFactory(func() commands.WasteItemUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateRouteProcessCommandHandler() commands.CreateRouteProcessCommandHandler {
	return commands.NewCreateRouteProcessCommandHandler(c.routeProcessDeps())
}

func (c *CompositionRoot) CreateStartRouteProcessCommandHandler() commands.StartRouteProcessCommandHandler {
	return commands.NewStartRouteProcessCommandHandler(c.routeProcessDeps())
}

func (c *CompositionRoot) CreateCompleteRouteStopCommandHandler() commands.CompleteRouteStopCommandHandler {
	return commands.NewCompleteRouteStopCommandHandler(c.routeProcessDeps())
}

func (c *CompositionRoot) CreateCancelRouteProcessCommandHandler() commands.CancelRouteProcessCommandHandler {
	return commands.NewCancelRouteProcessCommandHandler(c.routeProcessDeps())
}

func (c *CompositionRoot) CreateRegisterWasteItemCommandHandler() commands.RegisterWasteItemCommandHandler {
	return commands.NewRegisterWasteItemCommandHandler(c.wasteItemUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateTransitionWasteItemCommandHandler() commands.TransitionWasteItemCommandHandler {
	return commands.NewTransitionWasteItemCommandHandler(c.wasteItemUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateTransferWasteItemCustodyCommandHandler() commands.TransferWasteItemCustodyCommandHandler {
	return commands.NewTransferWasteItemCustodyCommandHandler(c.wasteItemUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateGetRouteProcessQueryHandler() queries.GetRouteProcessQueryHandler {
	return queries.NewGetRouteProcessQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWasteItemQueryHandler() queries.GetWasteItemQueryHandler {
	return queries.NewGetWasteItemQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListRouteOperationsQueryHandler() queries.ListRouteOperationsQueryHandler {
	return queries.NewListRouteOperationsQueryHandler(operationrepo.NewGormWasteOperationRepository(c.gormDB))
}

// CreateHTTPRouter builds the echo instance serving every use case.
func (c *CompositionRoot) CreateHTTPRouter() (*echo.Echo, error) {
	createRoute := c.CreateCreateRouteProcessCommandHandler()
	startRoute := c.CreateStartRouteProcessCommandHandler()
	completeStop := c.CreateCompleteRouteStopCommandHandler()
	cancelRoute := c.CreateCancelRouteProcessCommandHandler()
	registerItem := c.CreateRegisterWasteItemCommandHandler()
	transitionItem := c.CreateTransitionWasteItemCommandHandler()
	transferCustody := c.CreateTransferWasteItemCustodyCommandHandler()

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateRouteProcess:       &createRoute,
		StartRouteProcess:        &startRoute,
		CompleteRouteStop:        &completeStop,
		CancelRouteProcess:       &cancelRoute,
		RegisterWasteItem:        &registerItem,
		TransitionWasteItem:      &transitionItem,
		TransferWasteItemCustody: &transferCustody,
		GetRouteProcess:          c.CreateGetRouteProcessQueryHandler(),
		GetWasteItem:             c.CreateGetWasteItemQueryHandler(),
		ListRouteOperations:      c.CreateListRouteOperationsQueryHandler(),
		Notifier:                 c.notifier,
	}, c.logger)
	return httpadapter.NewRouter(server)
}

// CreateJobManager builds the background jobs; the caller starts them.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	relay := events.NewOutboxRelay(c.outbox, c.dispatcher, events.RelayConfig{
		BatchSize:  c.cfg.OutboxBatchSize,
		MinAge:     c.cfg.OutboxMinAge,
		RetryDelay: c.cfg.OutboxRetryDelay,
	}, c.clock, c.logger)
	return jobs.NewJobManager(jobs.NewOutboxRelayJob(relay, c.cfg.OutboxRelaySchedule, c.logger), c.logger)
}

type FuncRouteProcessUoWFactory func() commands.RouteProcessUoW

func (f FuncRouteProcessUoWFactory) Create() commands.RouteProcessUoW {
	return f()
}

type FuncWasteItemUoWFactory func() commands.WasteItemUoW

func (f FuncWasteItemUoWFactory) Create() commands.WasteItemUoW {
	return f()
}
