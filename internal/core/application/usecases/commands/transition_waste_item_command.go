package commands

import (
	"errors"
	"strings"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/lifecycle"
	"wastetrack/internal/pkg/guard"
)

var ErrTransitionWasteItemCommandIsNotConstructed = errors.New(
	"TransitionWasteItemCommand must be created via NewTransitionWasteItemCommand constructor",
)

// TransitionWasteItemCommand moves an item, or part of it, to another lifecycle state.
//
// Example:
//
//	cert := "CERT-2026-0042"
//	cmd, err := NewTransitionWasteItemCommand(itemID, lifecycle.Treated, 40, true,
//	    []string{lifecycle.GuardTreatmentRecorded}, &cert)
//	res, err := handler.Handle(ctx, cmd)
//	// res.Value().Split holds the 40 units now in Treated
type TransitionWasteItemCommand struct {
	wasteItemID    kernel.UUID
	target         lifecycle.State
	quantity       int64
	allowPartial   bool
	evidence       []string
	certificateRef *string

	guard guard.ConstructorGuard
}

func NewTransitionWasteItemCommand(
	wasteItemID kernel.UUID,
	target lifecycle.State,
	quantity int64,
	allowPartial bool,
	evidence []string,
	certificateRef *string,
) (TransitionWasteItemCommand, error) {
	if err := errors.Join(wasteItemID.Validate(), target.Validate()); err != nil {
		return TransitionWasteItemCommand{}, err
	}

	cmd := TransitionWasteItemCommand{
		wasteItemID:  wasteItemID,
		target:       target,
		quantity:     quantity,
		allowPartial: allowPartial,
		evidence:     make([]string, len(evidence)),
		guard:        guard.NewConstructorGuard(),
	}
	copy(cmd.evidence, evidence)
	if certificateRef != nil && strings.TrimSpace(*certificateRef) != "" {
		ref := strings.TrimSpace(*certificateRef)
		cmd.certificateRef = &ref
	}

	return cmd, nil
}

func (c TransitionWasteItemCommand) Validate() error {
	return c.guard.Validate(ErrTransitionWasteItemCommandIsNotConstructed)
}

func (c TransitionWasteItemCommand) WasteItemID() kernel.UUID {
	return c.wasteItemID
}

func (c TransitionWasteItemCommand) Target() lifecycle.State {
	return c.target
}

func (c TransitionWasteItemCommand) Quantity() int64 {
	return c.quantity
}

func (c TransitionWasteItemCommand) AllowPartial() bool {
	return c.allowPartial
}

func (c TransitionWasteItemCommand) Evidence() lifecycle.Evidence {
	return lifecycle.NewEvidence(c.evidence...)
}

func (c TransitionWasteItemCommand) CertificateRef() *string {
	return c.certificateRef
}
