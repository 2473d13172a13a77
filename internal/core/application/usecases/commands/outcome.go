package commands

import (
	"errors"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/pkg/errs"
	"wastetrack/internal/pkg/result"
)

// outcome sorts a failure into a business result or a returned error.
//
// Missing aggregates, rule violations and invalid input become a failed Result the
// caller shows to the user. Anything else, notably concurrency conflicts, store
// failures and event handler failures, is returned as an error the caller may retry.
func outcome[T any](err error) (result.Result[T], error) {
	if isBusinessFailure(err) {
		return result.Fail[T](err), nil
	}
	return result.Result[T]{}, err
}

func isBusinessFailure(err error) bool {
	return errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrDomainRuleViolation) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsOutOfRange) ||
		errors.Is(err, kernel.ErrUUIDIsNotConstructed)
}
