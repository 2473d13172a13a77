package errs_test

import (
	"errors"
	"testing"

	"wastetrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("routeProcess", "123")

		assert.Equal(t, "routeProcess", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("routeProcess", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: routeProcess, ID is: 123 (cause: database connection failed)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("quantity")

		assert.Equal(t, "value is invalid: quantity", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("must be positive")
		err := errs.NewValueIsInvalidErrorWithCause("quantity", cause)

		assert.Equal(t, "value is invalid: quantity (cause: must be positive)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 150, 1, 120)

		assert.Equal(t, 150, err.Value)
		assert.Equal(t, "value is invalid: 150 is quantity, min value is 1, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("score", -5, 0, 100, cause)

		assert.Equal(t,
			"value is invalid: -5 is score, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("vehicleID")

	assert.Equal(t, "value is required: vehicleID", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	withCause := errs.NewValueIsRequiredErrorWithCause("vehicleID", errors.New("blank"))
	assert.Equal(t, "value is required: vehicleID (cause: blank)", withCause.Error())
}

func TestDomainRuleViolationError(t *testing.T) {
	t.Run("message carries rule and explanation", func(t *testing.T) {
		err := errs.NewDomainRuleViolationError("route_not_planned", "route cannot be started from InProgress")

		assert.Equal(t, "route_not_planned: route cannot be started from InProgress", err.Error())
		require.ErrorIs(t, err, errs.ErrDomainRuleViolation)
	})

	t.Run("errors.As recovers the typed error", func(t *testing.T) {
		var wrapped error = errs.NewDomainRuleViolationErrorWithCause("rule", "msg", errors.New("why"))

		var violation *errs.DomainRuleViolationError
		require.ErrorAs(t, wrapped, &violation)
		assert.Equal(t, "msg", violation.Message)
		assert.Contains(t, wrapped.Error(), "(cause: why)")
	})
}

func TestConcurrencyConflictError(t *testing.T) {
	err := errs.NewConcurrencyConflictError("routeProcess", "abc", 3)

	assert.Equal(t, "concurrency conflict: routeProcess abc was modified concurrently (expected version 3)", err.Error())
	require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	assert.NotErrorIs(t, err, errs.ErrDomainRuleViolation)
}

func TestEventHandlerFailureError(t *testing.T) {
	cause := errors.New("store unavailable")
	err := errs.NewEventHandlerFailureError("route_process.residue_relocation_triggered", "e-1", cause)

	require.ErrorIs(t, err, errs.ErrEventHandlerFailure)
	require.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, errs.ErrDomainRuleViolation)
	assert.Contains(t, err.Error(), "store unavailable")
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "domain rule violation", errs.ErrDomainRuleViolation.Error())
	assert.Equal(t, "concurrency conflict", errs.ErrConcurrencyConflict.Error())
	assert.Equal(t, "event handler failure", errs.ErrEventHandlerFailure.Error())
}
