package kernel

import (
	"strings"

	"wastetrack/internal/pkg/errs"
)

const vehiclePrefix = "vehicle:"

// LocationRef is an opaque reference to a place that can hold waste: a facility, a
// storage area, or a vehicle when the waste is in on-board custody.
type LocationRef string

// NewLocationRef validates and returns a location reference.
//
// Returns:
//   - LocationRef: the trimmed reference
//   - error: ValueIsRequiredError when ref is blank
func NewLocationRef(ref string) (LocationRef, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errs.NewValueIsRequiredError("locationId")
	}
	return LocationRef(ref), nil
}

// VehicleLocation returns the location reference of a vehicle's cargo space.
//
// Example:
//
//	kernel.VehicleLocation("TRK-12") // "vehicle:TRK-12"
func VehicleLocation(vehicleID string) LocationRef {
	return LocationRef(vehiclePrefix + vehicleID)
}

// IsVehicle reports whether the reference points at a vehicle.
func (l LocationRef) IsVehicle() bool {
	return strings.HasPrefix(string(l), vehiclePrefix)
}

// VehicleID returns the vehicle identifier of a vehicle reference, or "" otherwise.
func (l LocationRef) VehicleID() string {
	if !l.IsVehicle() {
		return ""
	}
	return strings.TrimPrefix(string(l), vehiclePrefix)
}

func (l LocationRef) String() string {
	return string(l)
}
