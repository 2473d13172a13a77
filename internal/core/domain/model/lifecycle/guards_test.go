package lifecycle_test

import (
	"testing"

	"wastetrack/internal/core/domain/model/lifecycle"
	"wastetrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardFor(t *testing.T) {
	t.Run("received requires carrier confirmation", func(t *testing.T) {
		rule, ok := lifecycle.GuardFor(lifecycle.Received)

		require.True(t, ok)
		assert.Equal(t, lifecycle.GuardCarrierConfirmed, rule.Code)
		assert.Equal(t, lifecycle.Received, rule.Target)
		assert.Contains(t, rule.Description, "carrier")
		assert.Contains(t, rule.Description, "tolerance")
	})

	t.Run("unguarded target", func(t *testing.T) {
		_, ok := lifecycle.GuardFor(lifecycle.Inspected)

		assert.False(t, ok)
	})
}

func TestGuardRules(t *testing.T) {
	rules := lifecycle.GuardRules()

	require.NotEmpty(t, rules)
	codes := map[string]bool{}
	for i, rule := range rules {
		assert.NotEmpty(t, rule.Description)
		assert.False(t, codes[rule.Code], "duplicate code %s", rule.Code)
		codes[rule.Code] = true
		if i > 0 {
			assert.Less(t, rules[i-1].Target, rule.Target)
		}
	}
}

func TestCheckGuard(t *testing.T) {
	t.Run("missing evidence is a domain rule violation", func(t *testing.T) {
		err := lifecycle.CheckGuard(lifecycle.Received, lifecycle.NewEvidence("manifest_signed"))

		require.ErrorIs(t, err, errs.ErrDomainRuleViolation)
		var violation *errs.DomainRuleViolationError
		require.ErrorAs(t, err, &violation)
		assert.Equal(t, lifecycle.GuardCarrierConfirmed, violation.Rule)
		assert.Contains(t, violation.Message, "Received")
	})

	t.Run("supplied evidence passes", func(t *testing.T) {
		err := lifecycle.CheckGuard(lifecycle.Received, lifecycle.NewEvidence(" carrier_confirmed "))

		assert.NoError(t, err)
	})

	t.Run("unguarded target passes without evidence", func(t *testing.T) {
		assert.NoError(t, lifecycle.CheckGuard(lifecycle.Inspected, nil))
	})
}

func TestEvidence(t *testing.T) {
	e := lifecycle.NewEvidence("b", "", "a", "b")

	assert.Equal(t, []string{"a", "b"}, e.Codes())
	assert.True(t, e.Has("a"))
	assert.False(t, e.Has(""))
}
