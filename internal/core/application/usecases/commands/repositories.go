// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, persistence
// and, for routes, dispatch of the committed events.
package commands

import (
	"context"
	"time"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest combination it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// RouteProcessRepoFactory provides access to the route repository within a transaction.
	RouteProcessRepoFactory interface {
		RouteProcessRepository() ports.RouteProcessRepository
	}

	// WasteItemRepoFactory provides access to the waste item repository within a transaction.
	WasteItemRepoFactory interface {
		WasteItemRepository() ports.WasteItemRepository
	}

	// OutboxFactory provides the outbox bound to the same transaction.
	OutboxFactory interface {
		Outbox() ports.OutboxWriter
	}

	// RouteProcessUoW manages transactions for route commands. Events raised by the
	// route are written to the outbox before Commit.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   rp, err := uow.RouteProcessRepository().Get(ctx, id)
	//   // ... change rp, Update
	//   err = uow.Outbox().Enqueue(ctx, rp.Version()+1, rp.PendingEvents())
	//   err = uow.Commit(ctx)
	RouteProcessUoW interface {
		TxManager
		RouteProcessRepoFactory
		OutboxFactory
	}

	// RouteProcessUoWFactory creates new route unit of work instances.
	RouteProcessUoWFactory interface {
		Create() RouteProcessUoW
	}

	// WasteItemUoW manages transactions for waste item commands.
	WasteItemUoW interface {
		TxManager
		WasteItemRepoFactory
	}

	// WasteItemUoWFactory creates new waste item unit of work instances.
	WasteItemUoWFactory interface {
		Create() WasteItemUoW
	}

	// DispatchRecorder marks outbox entries whose event every handler accepted, so the
	// relay does not dispatch them again.
	DispatchRecorder interface {
		MarkDispatched(ctx context.Context, eventID kernel.UUID, at time.Time) error
	}
)
