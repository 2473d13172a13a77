package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/pkg/errs"
)

func TestNewLocationRef(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    kernel.LocationRef
		wantErr error
	}{
		{name: "facility reference", input: "facility-7", want: "facility-7"},
		{name: "surrounding spaces are trimmed", input: "  depot ", want: "depot"},
		{name: "blank is rejected", input: "   ", wantErr: errs.ErrValueIsRequired},
		{name: "empty is rejected", input: "", wantErr: errs.ErrValueIsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := kernel.NewLocationRef(tt.input)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVehicleLocation(t *testing.T) {
	loc := kernel.VehicleLocation("TRK-12")

	assert.Equal(t, "vehicle:TRK-12", loc.String())
	assert.True(t, loc.IsVehicle())
	assert.Equal(t, "TRK-12", loc.VehicleID())

	plain := kernel.LocationRef("facility-1")
	assert.False(t, plain.IsVehicle())
	assert.Empty(t, plain.VehicleID())
}
