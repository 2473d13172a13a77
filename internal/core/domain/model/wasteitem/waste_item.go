package wasteitem

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/lifecycle"
	"wastetrack/internal/pkg/errs"
	"wastetrack/internal/pkg/guard"
)

// Domain rule names carried by DomainRuleViolationError.Rule.
const (
	RuleTransitionNotAllowed     = "transition_not_allowed"
	RuleCertificateNotApplicable = "certificate_not_applicable"
	RuleTransferNotAllowed       = "transfer_not_allowed"
)

var (
	// ErrWasteItemIsNotConstructed is returned when a zero-value WasteItem is used.
	ErrWasteItemIsNotConstructed = errors.New("WasteItem must be created via NewWasteItem or RestoreWasteItem")
	// ErrWasteClassIsRequired is returned for a blank waste class.
	ErrWasteClassIsRequired = errs.NewValueIsRequiredError("wasteClass")
	// ErrUnitIsRequired is returned for a blank unit.
	ErrUnitIsRequired = errs.NewValueIsRequiredError("unit")
	// ErrHolderIsRequired is returned for a blank holder.
	ErrHolderIsRequired = errs.NewValueIsRequiredError("holderId")
)

// WasteItem is a quantity of waste of one class held by one party.
// Quantity is an integer count of base units so splits conserve it exactly.
type WasteItem struct {
	id             kernel.UUID
	parentID       *kernel.UUID
	wasteClass     string
	quantity       int64
	unit           string
	state          lifecycle.State
	holderID       string
	certificateRef *string
	createdAt      time.Time
	updatedAt      time.Time
	version        int
	guard          guard.ConstructorGuard
}

// NewWasteItem registers a freshly generated item.
//
// Parameters:
//   - id: item identity
//   - wasteClass: regulatory class code, e.g. "EWC 15 01 10*"
//   - quantity: positive amount in base units
//   - unit: name of the base unit, e.g. "kg"
//   - holderID: party currently in custody
//   - at: registration time
//
// Returns:
//   - *WasteItem: an item in lifecycle.Generated
//   - error: aggregated validation errors
func NewWasteItem(id kernel.UUID, wasteClass string, quantity int64, unit, holderID string, at time.Time) (*WasteItem, error) {
	item := &WasteItem{
		state:     lifecycle.Generated,
		createdAt: at,
		updatedAt: at,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setWasteClass(wasteClass),
		item.setQuantity(quantity),
		item.setUnit(unit),
		item.setHolderID(holderID),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreWasteItem rebuilds an item from persistence.
func RestoreWasteItem(
	id kernel.UUID,
	parentID *kernel.UUID,
	wasteClass string,
	quantity int64,
	unit string,
	state lifecycle.State,
	holderID string,
	certificateRef *string,
	createdAt time.Time,
	updatedAt time.Time,
	version int,
) (*WasteItem, error) {
	item := &WasteItem{
		certificateRef: copyString(certificateRef),
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		version:        version,
		guard:          guard.NewConstructorGuard(),
	}
	if parentID != nil {
		p := *parentID
		item.parentID = &p
	}

	if err := errors.Join(
		item.setID(id),
		item.setWasteClass(wasteClass),
		item.setQuantity(quantity),
		item.setUnit(unit),
		item.setHolderID(holderID),
		state.Validate(),
	); err != nil {
		return nil, err
	}
	item.state = state

	return item, nil
}

// Validate ensures the item was properly constructed.
func (w *WasteItem) Validate() error {
	if w == nil {
		return ErrWasteItemIsNotConstructed
	}
	return w.guard.Validate(ErrWasteItemIsNotConstructed)
}

func (w *WasteItem) ID() kernel.UUID {
	return w.id
}

// ParentID returns the item this one was split from, nil for original items.
func (w *WasteItem) ParentID() *kernel.UUID {
	if w.parentID == nil {
		return nil
	}
	p := *w.parentID
	return &p
}

func (w *WasteItem) WasteClass() string {
	return w.wasteClass
}

func (w *WasteItem) Quantity() int64 {
	return w.quantity
}

func (w *WasteItem) Unit() string {
	return w.unit
}

func (w *WasteItem) State() lifecycle.State {
	return w.state
}

func (w *WasteItem) HolderID() string {
	return w.holderID
}

func (w *WasteItem) CertificateRef() *string {
	return copyString(w.certificateRef)
}

func (w *WasteItem) CreatedAt() time.Time {
	return w.createdAt
}

func (w *WasteItem) UpdatedAt() time.Time {
	return w.updatedAt
}

// Version returns the store version the item was loaded at.
func (w *WasteItem) Version() int {
	return w.version
}

// MarkPersisted records the version assigned by the store.
func (w *WasteItem) MarkPersisted(version int) {
	w.version = version
}

// Transition describes a requested lifecycle step.
type Transition struct {
	Target         lifecycle.State
	Quantity       int64
	AllowPartial   bool
	Evidence       lifecycle.Evidence
	CertificateRef *string
	// SplitID identifies the new item when the step consumes part of the quantity.
	SplitID kernel.UUID
	At      time.Time
}

// Apply performs a lifecycle step.
//
// When tr.Quantity equals the item quantity the item itself moves to tr.Target and
// Apply returns nil. When it is smaller (tr.AllowPartial must be set) the consumed part
// is split into a new item in tr.Target, which is returned; the receiver keeps the
// remainder in its current state.
//
// Returns:
//   - *WasteItem: the split item, nil when the whole item moved
//   - error: DomainRuleViolationError for illegal steps, validation errors otherwise
func (w *WasteItem) Apply(tr Transition) (*WasteItem, error) {
	if err := tr.Target.Validate(); err != nil {
		return nil, err
	}
	if !lifecycle.IsAllowed(w.state, tr.Target) {
		return nil, errs.NewDomainRuleViolationError(
			RuleTransitionNotAllowed,
			fmt.Sprintf("waste item cannot move from %s to %s", w.state, tr.Target),
		)
	}
	if err := lifecycle.CheckGuard(tr.Target, tr.Evidence); err != nil {
		return nil, err
	}

	cert := normalizeOptional(tr.CertificateRef)
	if cert != nil && !lifecycle.IsCertifiableState(tr.Target) {
		return nil, errs.NewDomainRuleViolationError(
			RuleCertificateNotApplicable,
			fmt.Sprintf("%s is not a certifiable milestone", tr.Target),
		)
	}

	consumed, remaining, err := lifecycle.Split(tr.Quantity, w.quantity, tr.AllowPartial)
	if err != nil {
		return nil, err
	}

	if remaining == 0 {
		w.state = tr.Target
		if cert != nil {
			w.certificateRef = cert
		}
		w.updatedAt = tr.At
		return nil, nil
	}

	if err = tr.SplitID.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("splitId", err)
	}
	parent := w.id
	split := &WasteItem{
		id:             tr.SplitID,
		parentID:       &parent,
		wasteClass:     w.wasteClass,
		quantity:       consumed,
		unit:           w.unit,
		state:          tr.Target,
		holderID:       w.holderID,
		certificateRef: cert,
		createdAt:      tr.At,
		updatedAt:      tr.At,
		guard:          guard.NewConstructorGuard(),
	}
	w.quantity = remaining
	w.updatedAt = tr.At

	return split, nil
}

// TransferCustody hands the item to another holder. Legal only from post-reception,
// non-terminal states.
func (w *WasteItem) TransferCustody(toHolderID string, at time.Time) error {
	if !lifecycle.AllowsTransfer(w.state) {
		return errs.NewDomainRuleViolationError(
			RuleTransferNotAllowed,
			fmt.Sprintf("custody cannot be transferred while the item is %s", w.state),
		)
	}
	toHolderID = strings.TrimSpace(toHolderID)
	if toHolderID == "" {
		return ErrHolderIsRequired
	}
	if toHolderID == w.holderID {
		return errs.NewValueIsInvalidErrorWithCause("holderId", fmt.Errorf("%s already holds the item", toHolderID))
	}

	w.holderID = toHolderID
	w.updatedAt = at
	return nil
}

func (w *WasteItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *WasteItem) setWasteClass(wasteClass string) error {
	wasteClass = strings.TrimSpace(wasteClass)
	if wasteClass == "" {
		return ErrWasteClassIsRequired
	}
	w.wasteClass = wasteClass
	return nil
}

func (w *WasteItem) setQuantity(quantity int64) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	w.quantity = quantity
	return nil
}

func (w *WasteItem) setUnit(unit string) error {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return ErrUnitIsRequired
	}
	w.unit = unit
	return nil
}

func (w *WasteItem) setHolderID(holderID string) error {
	holderID = strings.TrimSpace(holderID)
	if holderID == "" {
		return ErrHolderIsRequired
	}
	w.holderID = holderID
	return nil
}

func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
