// Package result provides Result, the success-or-failure envelope returned by
// application commands for outcomes the caller must handle but that are not
// infrastructure errors (missing objects, rejected domain rules, invalid input).
package result

import (
	"errors"

	"wastetrack/internal/pkg/errs"
)

// Result carries either a value or a failure reason.
//
// Example:
//
//	res, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    // infrastructure failure: retry
//	}
//	if !res.IsSuccess() {
//	    fmt.Println(res.Message())
//	    return
//	}
//	view := res.Value()
type Result[T any] struct {
	value   T
	failure error
	ok      bool
}

// Ok returns a successful Result holding value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Fail returns a failed Result. A nil reason is replaced by errs.ErrValueIsInvalid so a
// failed Result always explains itself.
func Fail[T any](reason error) Result[T] {
	if reason == nil {
		reason = errs.ErrValueIsInvalid
	}
	return Result[T]{failure: reason}
}

// IsSuccess reports whether the Result holds a value.
func (r Result[T]) IsSuccess() bool {
	return r.ok
}

// Value returns the held value, or the zero value for a failed Result.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the failure reason, or nil for a successful Result.
func (r Result[T]) Err() error {
	return r.failure
}

// Message returns the human-readable failure reason. Domain rule violations
// report only their message, other failures their full error text.
func (r Result[T]) Message() string {
	if r.failure == nil {
		return ""
	}
	var violation *errs.DomainRuleViolationError
	if errors.As(r.failure, &violation) {
		return violation.Message
	}
	return r.failure.Error()
}

// IsNotFound reports whether the failure is an errs.ErrObjectNotFound.
func (r Result[T]) IsNotFound() bool {
	return errors.Is(r.failure, errs.ErrObjectNotFound)
}
