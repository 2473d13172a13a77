package lifecycle

import (
	"fmt"
	"sort"
	"strings"

	"wastetrack/internal/pkg/errs"
)

// GuardRule is a named precondition that must hold before an item enters Target.
// The state machine only names the rule; the caller proves it by supplying the Code
// as evidence.
type GuardRule struct {
	Code        string
	Target      State
	Description string
}

// Guard rule codes.
const (
	GuardCollectionScheduled   = "collection_scheduled"
	GuardManifestSigned        = "manifest_signed"
	GuardCarrierConfirmed      = "carrier_confirmed"
	GuardClassificationBacked  = "classification_backed"
	GuardTreatmentRecorded     = "treatment_recorded"
	GuardDisposalRecorded      = "disposal_recorded"
	GuardTransformationRecord  = "transformation_recorded"
	GuardRecipientAcknowledged = "recipient_acknowledged"
	GuardCertificateIssued     = "certificate_issued"
	GuardDocumentationComplete = "documentation_complete"
	GuardRejectionJustified    = "rejection_justified"
)

var guardRules = map[State]GuardRule{
	CollectionConfirmed: {
		Code:        GuardCollectionScheduled,
		Target:      CollectionConfirmed,
		Description: "collection must be scheduled with an authorised carrier",
	},
	InTransit: {
		Code:        GuardManifestSigned,
		Target:      InTransit,
		Description: "transport manifest must be signed by generator and carrier",
	},
	Received: {
		Code:        GuardCarrierConfirmed,
		Target:      Received,
		Description: "carrier must confirm the hand-over and the received quantity must be within tolerance of the manifest",
	},
	Classified: {
		Code:        GuardClassificationBacked,
		Target:      Classified,
		Description: "classification must be backed by an inspection report or lab analysis",
	},
	Treated: {
		Code:        GuardTreatmentRecorded,
		Target:      Treated,
		Description: "treatment must be recorded by the treating facility",
	},
	Disposed: {
		Code:        GuardDisposalRecorded,
		Target:      Disposed,
		Description: "final disposal must be recorded by a licensed disposal site",
	},
	Transformed: {
		Code:        GuardTransformationRecord,
		Target:      Transformed,
		Description: "transformation output must be recorded with its resulting products",
	},
	Delivered: {
		Code:        GuardRecipientAcknowledged,
		Target:      Delivered,
		Description: "receiving party must acknowledge the delivery",
	},
	Certified: {
		Code:        GuardCertificateIssued,
		Target:      Certified,
		Description: "a certificate must be issued for the completed activity",
	},
	Closed: {
		Code:        GuardDocumentationComplete,
		Target:      Closed,
		Description: "all regulatory documentation for the item must be complete",
	},
	Rejected: {
		Code:        GuardRejectionJustified,
		Target:      Rejected,
		Description: "rejection must state a justification",
	},
}

// GuardFor returns the guard rule attached to target, if any.
func GuardFor(target State) (GuardRule, bool) {
	rule, ok := guardRules[target]
	return rule, ok
}

// GuardRules returns every registered rule ordered by target state.
func GuardRules() []GuardRule {
	out := make([]GuardRule, 0, len(guardRules))
	for _, rule := range guardRules {
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Target < out[j].Target })
	return out
}

// Evidence is the set of guard codes the caller has proven.
type Evidence map[string]struct{}

// NewEvidence builds an Evidence set from codes. Blank codes are ignored.
func NewEvidence(codes ...string) Evidence {
	e := make(Evidence, len(codes))
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c != "" {
			e[c] = struct{}{}
		}
	}
	return e
}

// Has reports whether code was supplied.
func (e Evidence) Has(code string) bool {
	_, ok := e[code]
	return ok
}

// Satisfies reports whether the evidence proves rule.
func (e Evidence) Satisfies(rule GuardRule) bool {
	return e.Has(rule.Code)
}

// Codes returns the supplied codes sorted.
func (e Evidence) Codes() []string {
	out := make([]string, 0, len(e))
	for c := range e {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// CheckGuard returns a DomainRuleViolationError naming the rule when target carries a
// guard that evidence does not satisfy. Targets without a guard always pass.
func CheckGuard(target State, evidence Evidence) error {
	rule, ok := GuardFor(target)
	if !ok || evidence.Satisfies(rule) {
		return nil
	}
	return errs.NewDomainRuleViolationError(
		rule.Code,
		fmt.Sprintf("cannot enter %s: %s", target, rule.Description),
	)
}
