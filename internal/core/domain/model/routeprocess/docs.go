// Package routeprocess contains the RouteProcess aggregate: one planned or executing
// multi-stop vehicle trip that physically moves waste.
//
// Route status:
//
//	Planned ──> InProgress ──> Completed
//	   │             │
//	   └─────┬───────┘
//	         v
//	     Cancelled
//
// Completing a stop emits trigger events that downstream handlers turn into waste
// operations:
//
//	Pickup              ResidueRelocationTriggered (stop → vehicle)
//	Delivery            ResidueRelocationTriggered (vehicle → stop) + ResidueTransferTriggered
//	IntermediateStorage ResidueStorageTriggered
//	CustodyTransfer     ResidueTransferTriggered
//
// Events are buffered on the aggregate until the orchestration layer persists it and
// drains them with PendingEvents and ClearEvents. The buffer is never persisted as
// aggregate state.
package routeprocess
