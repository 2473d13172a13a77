// Package guard provides ConstructorGuard, a marker that distinguishes values built
// through their constructor from zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when no specific
// error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects, entities, commands and queries are only
// created through their designated constructor functions.
//
// Embed a ConstructorGuard in a struct, set it with NewConstructorGuard inside the
// constructor, and call Validate from the struct's own Validate method. A zero-value
// struct fails validation.
//
// Example usage:
//
//	var ErrStopPlanNotConstructed = errors.New("StopPlan must be created via NewStopPlan")
//
//	type StopPlan struct {
//	    location kernel.LocationRef
//	    guard    guard.ConstructorGuard
//	}
//
//	func (p StopPlan) Validate() error {
//	    return p.guard.Validate(ErrStopPlanNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks its owner as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the owner was built by its constructor, otherwise
// validationError (or ErrDefaultConstructorGuard when validationError is nil).
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
