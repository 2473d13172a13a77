package postgres

import (
	"wastetrack/internal/adapters/out/postgres/operationrepo"
	"wastetrack/internal/adapters/out/postgres/outboxrepo"
	"wastetrack/internal/adapters/out/postgres/routeprocessrepo"
	"wastetrack/internal/adapters/out/postgres/wasteitemrepo"

	"gorm.io/gorm"
)

// Models lists every table the service owns, in migration order.
func Models() []any {
	return []any{
		&routeprocessrepo.RouteProcessDTO{},
		&routeprocessrepo.RouteStopDTO{},
		&wasteitemrepo.WasteItemDTO{},
		&operationrepo.WasteOperationDTO{},
		&outboxrepo.OutboxMessageDTO{},
	}
}

// AutoMigrate creates or updates the schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
