// Package errs holds the typed errors shared by the waste tracking domain, the command
// handlers and the adapters.
//
// Every type pairs a sentinel with a struct carrying the details:
//   - ValueIsRequiredError, ValueIsInvalidError and ValueIsOutOfRangeError for input
//     that fails validation
//   - ObjectNotFoundError for an aggregate missing from its store
//   - DomainRuleViolationError for an illegal state change on an aggregate
//   - ConcurrencyConflictError for a lost update detected by a store
//   - EventHandlerFailureError for a committed event a handler could not process
//
// Constructors come in two forms, with and without a cause, and Unwrap returns the
// sentinel so callers classify with errors.Is:
//
//	if errors.Is(err, errs.ErrConcurrencyConflict) {
//		// reload and retry
//	}
//
// Domain rule violations, missing objects and invalid values are outcomes reported to
// the caller. Concurrency conflicts and handler failures are infrastructure conditions
// and may be retried.
package errs
