// Package kernel provides the shared primitives of the waste tracking domain.
//
// The package includes:
//   - UUID: identifier value object, random or derived from a namespace and a name
//   - LocationRef: opaque reference to a facility, storage area or vehicle
//   - DomainEvent: the contract every aggregate event satisfies
//
// The primitives are immutable and safe for concurrent use.
package kernel
