package lifecycle

import (
	"fmt"

	"wastetrack/internal/pkg/errs"
)

// State is the position of a waste item in its regulated lifecycle.
type State int

const (
	// Unknown is the zero value and is not a declared state.
	Unknown State = iota

	Generated
	CollectionRequested
	CollectionConfirmed
	InTransit

	Received
	Inspected
	Classified
	InTemporaryStorage
	InTreatment
	Treated
	InDisposal
	Disposed
	Recycled
	Delivered
	Certified
	Closed

	InTransformation
	Transformed
	Originated

	Rejected
	Observed
	Retained
	Expired
	Cancelled
)

// Group partitions the declared states.
type Group int

const (
	GroupUnknown Group = iota
	GroupPreReception
	GroupOnSite
	GroupTransformation
	GroupException
)

type stateInfo struct {
	name  string
	group Group
}

// declared lists every state in declaration order.
var declared = []State{
	Generated, CollectionRequested, CollectionConfirmed, InTransit,
	Received, Inspected, Classified, InTemporaryStorage, InTreatment, Treated,
	InDisposal, Disposed, Recycled, Delivered, Certified, Closed,
	InTransformation, Transformed, Originated,
	Rejected, Observed, Retained, Expired, Cancelled,
}

var stateInfos = map[State]stateInfo{
	Generated:           {"Generated", GroupPreReception},
	CollectionRequested: {"CollectionRequested", GroupPreReception},
	CollectionConfirmed: {"CollectionConfirmed", GroupPreReception},
	InTransit:           {"InTransit", GroupPreReception},
	Received:            {"Received", GroupOnSite},
	Inspected:           {"Inspected", GroupOnSite},
	Classified:          {"Classified", GroupOnSite},
	InTemporaryStorage:  {"InTemporaryStorage", GroupOnSite},
	InTreatment:         {"InTreatment", GroupOnSite},
	Treated:             {"Treated", GroupOnSite},
	InDisposal:          {"InDisposal", GroupOnSite},
	Disposed:            {"Disposed", GroupOnSite},
	Recycled:            {"Recycled", GroupOnSite},
	Delivered:           {"Delivered", GroupOnSite},
	Certified:           {"Certified", GroupOnSite},
	Closed:              {"Closed", GroupOnSite},
	InTransformation:    {"InTransformation", GroupTransformation},
	Transformed:         {"Transformed", GroupTransformation},
	Originated:          {"Originated", GroupTransformation},
	Rejected:            {"Rejected", GroupException},
	Observed:            {"Observed", GroupException},
	Retained:            {"Retained", GroupException},
	Expired:             {"Expired", GroupException},
	Cancelled:           {"Cancelled", GroupException},
}

var statesByName = func() map[string]State {
	m := make(map[string]State, len(stateInfos))
	for s, info := range stateInfos {
		m[info.name] = s
	}
	return m
}()

// States returns every declared state in declaration order.
func States() []State {
	out := make([]State, len(declared))
	copy(out, declared)
	return out
}

// ParseState maps a state name, as returned by String, back to the State.
//
// Returns:
//   - State: the parsed state
//   - error: ValueIsInvalidError for an unknown name
func ParseState(name string) (State, error) {
	s, ok := statesByName[name]
	if !ok {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%q is not a lifecycle state", name))
	}
	return s, nil
}

// String returns the state name, "Unknown" for undeclared values.
func (s State) String() string {
	if info, ok := stateInfos[s]; ok {
		return info.name
	}
	return "Unknown"
}

// Group returns the group the state belongs to.
func (s State) Group() Group {
	return stateInfos[s].group
}

// Validate rejects Unknown and undeclared values.
func (s State) Validate() error {
	if _, ok := stateInfos[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a lifecycle state", s))
	}
	return nil
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(data []byte) error {
	parsed, err := ParseState(string(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (g Group) String() string {
	switch g {
	case GroupPreReception:
		return "PreReception"
	case GroupOnSite:
		return "OnSite"
	case GroupTransformation:
		return "Transformation"
	case GroupException:
		return "Exception"
	default:
		return "Unknown"
	}
}
