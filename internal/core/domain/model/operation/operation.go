package operation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/pkg/errs"
	"wastetrack/internal/pkg/guard"
)

// ErrWasteOperationIsNotConstructed is returned when a zero-value WasteOperation is used.
var ErrWasteOperationIsNotConstructed = errors.New("WasteOperation must be created via NewRelocation, NewTransfer, NewStorage or RestoreWasteOperation")

// Type is the kind of operation.
type Type int

const (
	TypeUnknown Type = iota
	Relocation
	Transfer
	Storage
)

var typeNames = map[Type]string{
	Relocation: "Relocation",
	Transfer:   "Transfer",
	Storage:    "Storage",
}

// ParseType maps a name returned by String back to a Type.
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("operationType", fmt.Errorf("%q is not an operation type", name))
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "Unknown"
}

// Validate rejects TypeUnknown and undeclared values.
func (t Type) Validate() error {
	if _, ok := typeNames[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("operationType", fmt.Errorf("%d is not an operation type", t))
	}
	return nil
}

// RelocationData moves waste between two locations aboard a vehicle.
type RelocationData struct {
	From      kernel.LocationRef `json:"from"`
	To        kernel.LocationRef `json:"to"`
	VehicleID string             `json:"vehicleId"`
}

// TransferData hands custody of waste from one party to another. ToPartyID is
// empty when the stop named no receiving party.
type TransferData struct {
	FromPartyID string `json:"fromPartyId"`
	ToPartyID   string `json:"toPartyId,omitempty"`
	VehicleID   string `json:"vehicleId,omitempty"`
}

// StorageData places waste at a storage location.
type StorageData struct {
	Location kernel.LocationRef `json:"location"`
}

// Origin ties an operation to the route stop and event that produced it.
type Origin struct {
	RouteProcessID kernel.UUID
	StopID         kernel.UUID
	SourceEventID  kernel.UUID
	OccurredOn     time.Time
	WasteItemIDs   []kernel.UUID
}

func (o Origin) validate() error {
	var occurredErr error
	if o.OccurredOn.IsZero() {
		occurredErr = errs.NewValueIsRequiredError("occurredOn")
	}
	return errors.Join(
		wrapField("routeProcessId", o.RouteProcessID.Validate()),
		wrapField("stopId", o.StopID.Validate()),
		wrapField("sourceEventId", o.SourceEventID.Validate()),
		occurredErr,
	)
}

// WasteOperation is immutable once built. Exactly one of the payload accessors
// returns ok=true, matching Type.
type WasteOperation struct {
	id         kernel.UUID
	opType     Type
	relocation *RelocationData
	transfer   *TransferData
	storage    *StorageData
	origin     Origin
	guard      guard.ConstructorGuard
}

// IDFor returns the operation id derived from the source event id.
func IDFor(sourceEventID kernel.UUID) kernel.UUID {
	return kernel.DeriveUUID(sourceEventID, "waste-operation")
}

// NewRelocation builds a Relocation operation.
//
// Returns:
//   - *WasteOperation: the operation with an id derived from origin.SourceEventID
//   - error: aggregated validation errors
func NewRelocation(origin Origin, data RelocationData) (*WasteOperation, error) {
	var sameErr error
	if data.From != "" && data.From == data.To {
		sameErr = errs.NewValueIsInvalidErrorWithCause("to", fmt.Errorf("relocation from and to are both %s", data.From))
	}
	if err := errors.Join(
		origin.validate(),
		requiredText("from", string(data.From)),
		requiredText("to", string(data.To)),
		requiredText("vehicleId", data.VehicleID),
		sameErr,
	); err != nil {
		return nil, err
	}
	return build(Relocation, origin, &data, nil, nil), nil
}

// NewTransfer builds a Transfer operation.
func NewTransfer(origin Origin, data TransferData) (*WasteOperation, error) {
	if err := errors.Join(
		origin.validate(),
		requiredText("fromPartyId", data.FromPartyID),
	); err != nil {
		return nil, err
	}
	return build(Transfer, origin, nil, &data, nil), nil
}

// NewStorage builds a Storage operation.
func NewStorage(origin Origin, data StorageData) (*WasteOperation, error) {
	if err := errors.Join(
		origin.validate(),
		requiredText("location", string(data.Location)),
	); err != nil {
		return nil, err
	}
	return build(Storage, origin, nil, nil, &data), nil
}

// RestoreWasteOperation rebuilds an operation from persistence. The payload matching
// opType must be non-nil; the others are ignored.
func RestoreWasteOperation(
	id kernel.UUID,
	opType Type,
	origin Origin,
	relocation *RelocationData,
	transfer *TransferData,
	storage *StorageData,
) (*WasteOperation, error) {
	var op *WasteOperation
	var err error
	switch opType {
	case Relocation:
		if relocation == nil {
			return nil, errs.NewValueIsRequiredError("relocation")
		}
		op, err = NewRelocation(origin, *relocation)
	case Transfer:
		if transfer == nil {
			return nil, errs.NewValueIsRequiredError("transfer")
		}
		op, err = NewTransfer(origin, *transfer)
	case Storage:
		if storage == nil {
			return nil, errs.NewValueIsRequiredError("storage")
		}
		op, err = NewStorage(origin, *storage)
	default:
		return nil, opType.Validate()
	}
	if err != nil {
		return nil, err
	}
	if err = id.Validate(); err != nil {
		return nil, err
	}
	op.id = id
	return op, nil
}

func build(opType Type, origin Origin, r *RelocationData, t *TransferData, s *StorageData) *WasteOperation {
	items := make([]kernel.UUID, len(origin.WasteItemIDs))
	copy(items, origin.WasteItemIDs)
	origin.WasteItemIDs = items

	return &WasteOperation{
		id:         IDFor(origin.SourceEventID),
		opType:     opType,
		relocation: r,
		transfer:   t,
		storage:    s,
		origin:     origin,
		guard:      guard.NewConstructorGuard(),
	}
}

// Validate ensures the operation was properly constructed.
func (o *WasteOperation) Validate() error {
	if o == nil {
		return ErrWasteOperationIsNotConstructed
	}
	return o.guard.Validate(ErrWasteOperationIsNotConstructed)
}

func (o *WasteOperation) ID() kernel.UUID {
	return o.id
}

func (o *WasteOperation) Type() Type {
	return o.opType
}

func (o *WasteOperation) RouteProcessID() kernel.UUID {
	return o.origin.RouteProcessID
}

func (o *WasteOperation) StopID() kernel.UUID {
	return o.origin.StopID
}

func (o *WasteOperation) SourceEventID() kernel.UUID {
	return o.origin.SourceEventID
}

func (o *WasteOperation) OccurredOn() time.Time {
	return o.origin.OccurredOn
}

// WasteItemIDs returns a copy of the items the operation applies to.
func (o *WasteOperation) WasteItemIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(o.origin.WasteItemIDs))
	copy(out, o.origin.WasteItemIDs)
	return out
}

// Relocation returns the relocation payload of a Relocation operation.
func (o *WasteOperation) Relocation() (RelocationData, bool) {
	if o.relocation == nil {
		return RelocationData{}, false
	}
	return *o.relocation, true
}

// Transfer returns the transfer payload of a Transfer operation.
func (o *WasteOperation) Transfer() (TransferData, bool) {
	if o.transfer == nil {
		return TransferData{}, false
	}
	return *o.transfer, true
}

// Storage returns the storage payload of a Storage operation.
func (o *WasteOperation) Storage() (StorageData, bool) {
	if o.storage == nil {
		return StorageData{}, false
	}
	return *o.storage, true
}

func requiredText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(field)
	}
	return nil
}

func wrapField(field string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(field, err)
}
