// Package postgres provides the GORM-based Unit of Work shared by the waste tracking
// repositories. A unit of work owns one transaction; repositories obtained from it
// after Begin write through that transaction, and aggregates they write are tracked
// so their new store version is applied only once the transaction commits.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.RouteProcessRepository().Update(ctx, rp); err != nil {
//	    return err
//	}
//	if err := uow.Outbox().Enqueue(ctx, rp.Version()+1, rp.PendingEvents()); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each goroutine must use its own UnitOfWork.
package postgres

import (
	"context"
	"time"

	"wastetrack/internal/adapters/out/postgres/operationrepo"
	"wastetrack/internal/adapters/out/postgres/outboxrepo"
	"wastetrack/internal/adapters/out/postgres/routeprocessrepo"
	"wastetrack/internal/adapters/out/postgres/wasteitemrepo"
	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/ports"

	"gorm.io/gorm"
)

// versioned is implemented by aggregates stored with optimistic concurrency.
type versioned interface {
	Version() int
	MarkPersisted(version int)
}

// trackedAggregate represents an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one database handle.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, outboxrepo.RouteProcessCodec(), time.Now)
type GormUnitOfWorkFactory struct {
	db    *gorm.DB
	codec *outboxrepo.EventCodec
	clock func() time.Time
}

// NewGormUnitOfWorkFactory creates a factory. codec encodes outbox payloads; clock
// stamps outbox rows and defaults to time.Now.
func NewGormUnitOfWorkFactory(db *gorm.DB, codec *outboxrepo.EventCodec, clock func() time.Time) *GormUnitOfWorkFactory {
	if codec == nil {
		codec = outboxrepo.RouteProcessCodec()
	}
	if clock == nil {
		clock = time.Now
	}
	return &GormUnitOfWorkFactory{db: db, codec: codec, clock: clock}
}

// Create produces a fresh unit of work with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		codec:             f.codec,
		clock:             f.clock,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across the repositories and
// the outbox.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	codec             *outboxrepo.EventCodec
	clock             func() time.Time
	trackedAggregates []trackedAggregate
}

// Begin opens the transaction. Calling it again while a transaction is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit makes the writes durable and then advances the version of every tracked
// aggregate, once per aggregate.
//
// Returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	seen := make(map[kernel.UUID]struct{}, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		if _, dup := seen[tracked.ID]; dup {
			continue
		}
		seen[tracked.ID] = struct{}{}
		if v, ok := tracked.Aggregate.(versioned); ok {
			v.MarkPersisted(v.Version() + 1)
		}
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Rollback discards the transaction. Returns gorm.ErrInvalidTransaction when none
// is open, which makes a deferred Rollback after Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// RouteProcessRepository returns a route repository on the current transaction, or
// on the plain connection when none is open.
func (uow *GormUnitOfWork) RouteProcessRepository() ports.RouteProcessRepository {
	return routeprocessrepo.NewGormRouteProcessRepository(uow.conn(), uow)
}

// WasteItemRepository returns a waste item repository on the current transaction.
func (uow *GormUnitOfWork) WasteItemRepository() ports.WasteItemRepository {
	return wasteitemrepo.NewGormWasteItemRepository(uow.conn(), uow)
}

// WasteOperationRepository returns the operation store on the current transaction.
func (uow *GormUnitOfWork) WasteOperationRepository() ports.WasteOperationRepository {
	return operationrepo.NewGormWasteOperationRepository(uow.conn())
}

// Outbox returns the outbox writer on the current transaction.
func (uow *GormUnitOfWork) Outbox() ports.OutboxWriter {
	return outboxrepo.NewGormOutboxRepository(uow.conn(), uow.codec, uow.clock)
}

// TrackAggregate registers an aggregate written within this unit of work. Called by
// repositories after a successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
