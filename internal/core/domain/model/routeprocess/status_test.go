package routeprocess_test

import (
	"testing"

	"wastetrack/internal/core/domain/model/routeprocess"
	"wastetrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	for _, s := range []routeprocess.Status{routeprocess.Planned, routeprocess.InProgress, routeprocess.Completed, routeprocess.Cancelled} {
		parsed, err := routeprocess.ParseStatus(s.String())

		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := routeprocess.ParseStatus("Paused")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, "Unknown", routeprocess.StatusUnknown.String())
	assert.True(t, routeprocess.Completed.IsFinal())
	assert.True(t, routeprocess.Cancelled.IsFinal())
	assert.False(t, routeprocess.InProgress.IsFinal())
}

func TestStopOperationType(t *testing.T) {
	tests := []struct {
		name       string
		op         routeprocess.StopOperationType
		handsOver bool
	}{
		{"Pickup", routeprocess.Pickup, false},
		{"Delivery", routeprocess.Delivery, true},
		{"IntermediateStorage", routeprocess.IntermediateStorage, false},
		{"CustodyTransfer", routeprocess.CustodyTransfer, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := routeprocess.ParseStopOperationType(tt.name)

			require.NoError(t, err)
			assert.Equal(t, tt.op, parsed)
			assert.Equal(t, tt.name, tt.op.String())
			assert.Equal(t, tt.handsOver, tt.op.TransfersCustody())
		})
	}

	_, err := routeprocess.ParseStopOperationType("Teleport")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
