package routeprocess

import (
	"fmt"

	"wastetrack/internal/pkg/errs"
)

// Status is the route state.
type Status int

const (
	// StatusUnknown is the zero value and is never valid.
	StatusUnknown Status = iota
	Planned
	InProgress
	Completed
	Cancelled
)

var statusNames = map[Status]string{
	Planned:    "Planned",
	InProgress: "InProgress",
	Completed:  "Completed",
	Cancelled:  "Cancelled",
}

// ParseStatus maps a name returned by String back to a Status.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a route status", name))
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "Unknown"
}

// Validate rejects StatusUnknown and undeclared values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a route status", s))
	}
	return nil
}

// IsFinal reports whether no further transition is possible.
func (s Status) IsFinal() bool {
	return s == Completed || s == Cancelled
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(data []byte) error {
	parsed, err := ParseStatus(string(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// StopOperationType is the kind of work performed at a stop.
type StopOperationType int

const (
	OperationUnknown StopOperationType = iota
	Pickup
	Delivery
	IntermediateStorage
	CustodyTransfer
)

var operationNames = map[StopOperationType]string{
	Pickup:              "Pickup",
	Delivery:            "Delivery",
	IntermediateStorage: "IntermediateStorage",
	CustodyTransfer:     "CustodyTransfer",
}

// ParseStopOperationType maps a name returned by String back to a StopOperationType.
func ParseStopOperationType(name string) (StopOperationType, error) {
	for t, n := range operationNames {
		if n == name {
			return t, nil
		}
	}
	return OperationUnknown, errs.NewValueIsInvalidErrorWithCause(
		"operationType",
		fmt.Errorf("%q is not a stop operation type", name),
	)
}

func (t StopOperationType) String() string {
	if n, ok := operationNames[t]; ok {
		return n
	}
	return "Unknown"
}

// Validate rejects OperationUnknown and undeclared values.
func (t StopOperationType) Validate() error {
	if _, ok := operationNames[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("operationType", fmt.Errorf("%d is not a stop operation type", t))
	}
	return nil
}

// TransfersCustody reports whether completing the stop hands waste to another party.
func (t StopOperationType) TransfersCustody() bool {
	return t == Delivery || t == CustodyTransfer
}

// MarshalText encodes the operation type by name.
func (t StopOperationType) MarshalText() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes an operation type name.
func (t *StopOperationType) UnmarshalText(data []byte) error {
	parsed, err := ParseStopOperationType(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
