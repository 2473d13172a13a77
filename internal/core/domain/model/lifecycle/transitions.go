package lifecycle

// transitions maps each non-terminal state to the states reachable in one step.
// States missing from the map have no outgoing transitions.
var transitions = map[State][]State{
	Generated:           {CollectionRequested, Cancelled, Expired},
	CollectionRequested: {CollectionConfirmed, Rejected, Cancelled},
	CollectionConfirmed: {InTransit, Cancelled},
	InTransit:           {Received, Rejected, Retained},

	Received:           {Inspected, InTemporaryStorage, Rejected, Observed},
	Inspected:          {Classified, Rejected, Observed},
	Classified:         {InTemporaryStorage, InTreatment, InDisposal, InTransformation, Delivered},
	InTemporaryStorage: {InTreatment, InDisposal, InTransformation, Delivered, Expired, Observed},
	InTreatment:        {Treated, Observed},
	Treated:            {InDisposal, Recycled, Delivered, InTransformation, Certified},
	InDisposal:         {Disposed, Observed},
	Disposed:           {Certified},
	Recycled:           {Delivered, Certified},
	Delivered:          {Certified, Closed},
	Certified:          {Closed},

	InTransformation: {Transformed, Observed},
	Originated:       {Classified, InTemporaryStorage, Delivered},

	Rejected: {CollectionRequested, Cancelled},
	Observed: {Classified, InTemporaryStorage, InTreatment, Rejected, Retained},
	Retained: {Received, Rejected, Cancelled},
	Expired:  {InDisposal, Cancelled},
}

// transferable lists the post-reception, non-terminal states from which custody
// may change hands regardless of the main table.
var transferable = map[State]struct{}{
	Received:           {},
	InTemporaryStorage: {},
	InTreatment:        {},
	Treated:            {},
	InDisposal:         {},
	Observed:           {},
}

// AllowedTargets returns the states reachable from current in one step. The result
// is empty for terminal and undeclared states, and is a fresh slice on every call.
//
// Example:
//
//	lifecycle.AllowedTargets(lifecycle.InTransit)
//	// [Received Rejected Retained]
func AllowedTargets(current State) []State {
	targets := transitions[current]
	out := make([]State, len(targets))
	copy(out, targets)
	return out
}

// IsAllowed reports whether current → target is in the transition table.
func IsAllowed(current, target State) bool {
	for _, s := range transitions[current] {
		if s == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the state is declared and has no outgoing transitions.
func IsTerminal(s State) bool {
	if s.Validate() != nil {
		return false
	}
	return len(transitions[s]) == 0
}

// AllowsTransfer reports whether custody of an item may be transferred while it is in
// the given state.
func AllowsTransfer(current State) bool {
	_, ok := transferable[current]
	return ok
}
