package kernel

import (
	"fmt"

	"wastetrack/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString or DeriveUUID")

// UUID identifies route processes, stops, waste items, operations and events.
// It wraps github.com/google/uuid so the domain never depends on the library type directly.
//
// The zero value is invalid: construct it with NewUUID, UUIDFromString, UUIDFromBytes or
// DeriveUUID.
//
// Example:
//
//	routeID := kernel.NewUUID()
//	opID := kernel.DeriveUUID(routeID, "relocation")
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random UUID (version 4).
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// DeriveUUID returns a name-based UUID (version 5) computed from namespace and name.
// The same inputs always produce the same UUID, which lets an operation inherit a stable
// identity from the event that produced it.
//
// Parameters:
//   - namespace: a valid UUID scoping the name
//   - name: any string unique within the namespace
//
// Example:
//
//	a := kernel.DeriveUUID(eventID, "operation")
//	b := kernel.DeriveUUID(eventID, "operation")
//	a.IsEqual(b) // true
func DeriveUUID(namespace UUID, name string) UUID {
	return UUID{id: uuid.NewSHA1(namespace.id, []byte(name))}
}

// UUIDFromString parses a UUID from its string representation.
// Braced, urn-prefixed and hyphen-less forms are accepted.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// MustUUID parses s and panics on failure. Intended for constants in tests and fixtures.
func MustUUID(s string) UUID {
	id, err := UUIDFromString(s)
	if err != nil {
		panic(err)
	}
	return id
}

// UUIDFromBytes creates a UUID from a 16-byte slice. A nil UUID is rejected.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns a copy of the underlying uuid.UUID.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both UUIDs hold the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// IsZero reports whether the UUID was never constructed.
func (u UUID) IsZero() bool {
	return u.id == uuid.Nil
}

// MarshalText implements encoding.TextMarshaler so UUIDs can be used in JSON payloads
// and as map keys.
func (u UUID) MarshalText() ([]byte, error) {
	return u.id.MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *UUID) UnmarshalText(data []byte) error {
	parsed, err := UUIDFromString(string(data))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Validate returns ErrUUIDIsNotConstructed for a nil UUID.
//
// Example:
//
//	func NewWasteItem(id kernel.UUID, ...) (*WasteItem, error) {
//	    if err := id.Validate(); err != nil {
//	        return nil, fmt.Errorf("invalid waste item ID: %w", err)
//	    }
//	    ...
//	}
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
