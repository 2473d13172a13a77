package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories returned after Begin
// share its transaction; before Begin they use the plain connection.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	RouteProcessRepository() RouteProcessRepository
	WasteItemRepository() WasteItemRepository
	WasteOperationRepository() WasteOperationRepository
	Outbox() OutboxWriter
}
