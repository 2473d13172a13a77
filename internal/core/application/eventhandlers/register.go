package eventhandlers

import (
	"wastetrack/internal/core/application/events"
	"wastetrack/internal/core/domain/model/routeprocess"
)

// Register subscribes the handlers to their events. A route raises its trigger events
// before RouteStopCompleted, so a stop's operations are stored by the time its
// notification goes out.
func Register(
	dispatcher *events.Dispatcher,
	relocation *RelocationHandler,
	transfer *TransferHandler,
	storage *StorageHandler,
	notification *NotificationHandler,
) {
	dispatcher.Register(routeprocess.EventResidueRelocationTriggered, events.On(relocation.Handle))
	dispatcher.Register(routeprocess.EventResidueTransferTriggered, events.On(transfer.Handle))
	dispatcher.Register(routeprocess.EventResidueStorageTriggered, events.On(storage.Handle))

	for _, name := range []string{
		routeprocess.EventRouteProcessStarted,
		routeprocess.EventRouteStopCompleted,
		routeprocess.EventRouteProcessCompleted,
		routeprocess.EventRouteProcessCancelled,
	} {
		dispatcher.Register(name, notification)
	}
}
