// Package services provides domain services: business logic that spans aggregates
// and does not belong to a single one.
//
// The package includes:
//   - OperationFactory: derives WasteOperation records from RouteProcess trigger events
package services
