package result_test

import (
	"testing"

	"wastetrack/internal/pkg/errs"
	"wastetrack/internal/pkg/result"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult(t *testing.T) {
	t.Run("ok holds the value", func(t *testing.T) {
		res := result.Ok(42)

		assert.True(t, res.IsSuccess())
		assert.Equal(t, 42, res.Value())
		require.NoError(t, res.Err())
		assert.Empty(t, res.Message())
	})

	t.Run("fail reports the domain message only", func(t *testing.T) {
		res := result.Fail[int](errs.NewDomainRuleViolationError("route_not_planned", "route already started"))

		assert.False(t, res.IsSuccess())
		assert.Zero(t, res.Value())
		assert.Equal(t, "route already started", res.Message())
		require.ErrorIs(t, res.Err(), errs.ErrDomainRuleViolation)
		assert.False(t, res.IsNotFound())
	})

	t.Run("fail with not found", func(t *testing.T) {
		res := result.Fail[string](errs.NewObjectNotFoundError("routeProcess", "abc"))

		assert.True(t, res.IsNotFound())
		assert.Equal(t, "object not found: abc", res.Message())
	})

	t.Run("fail with nil reason still fails", func(t *testing.T) {
		res := result.Fail[string](nil)

		assert.False(t, res.IsSuccess())
		require.ErrorIs(t, res.Err(), errs.ErrValueIsInvalid)
	})
}
