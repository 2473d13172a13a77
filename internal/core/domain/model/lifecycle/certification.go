package lifecycle

// Activity is a business milestone eligible to carry an issued certificate.
type Activity int

const (
	ActivityNone Activity = iota
	ActivityCollection
	ActivityReception
	ActivityTreatment
	ActivityDisposal
	ActivityTransfer
	ActivityTransformation
	ActivityClosure
)

var certifiable = map[State]Activity{
	CollectionConfirmed: ActivityCollection,
	Received:            ActivityReception,
	Treated:             ActivityTreatment,
	Disposed:            ActivityDisposal,
	Delivered:           ActivityTransfer,
	Transformed:         ActivityTransformation,
	Closed:              ActivityClosure,
}

// GetActivityForState returns the certifiable activity completed by entering target.
func GetActivityForState(target State) (Activity, bool) {
	a, ok := certifiable[target]
	return a, ok
}

// IsCertifiableState reports whether a certificate may attach to a transition into s.
func IsCertifiableState(s State) bool {
	_, ok := certifiable[s]
	return ok
}

// CertificateMayCoverPartialQuantity reports whether a certificate may be issued for
// part of an item's quantity. Always true.
func CertificateMayCoverPartialQuantity() bool {
	return true
}

func (a Activity) String() string {
	switch a {
	case ActivityCollection:
		return "Collection"
	case ActivityReception:
		return "Reception"
	case ActivityTreatment:
		return "Treatment"
	case ActivityDisposal:
		return "Disposal"
	case ActivityTransfer:
		return "Transfer"
	case ActivityTransformation:
		return "Transformation"
	case ActivityClosure:
		return "Closure"
	default:
		return "None"
	}
}
