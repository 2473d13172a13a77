package lifecycle

import (
	"fmt"

	"wastetrack/internal/pkg/errs"
)

// IsValidQuantity reports whether an operation may consume opQty out of available.
// opQty must be positive and not exceed available. Without allowPartial the operation
// must consume everything.
//
// Example:
//
//	lifecycle.IsValidQuantity(30, 100, true)  // true
//	lifecycle.IsValidQuantity(30, 100, false) // false
//	lifecycle.IsValidQuantity(0, 100, true)   // false
func IsValidQuantity(opQty, available int64, allowPartial bool) bool {
	if opQty <= 0 || opQty > available {
		return false
	}
	if !allowPartial {
		return opQty == available
	}
	return true
}

// Split validates opQty against available and returns the consumed and remaining
// parts. consumed + remaining == available always holds.
func Split(opQty, available int64, allowPartial bool) (consumed, remaining int64, err error) {
	if !IsValidQuantity(opQty, available, allowPartial) {
		if opQty > 0 && opQty < available && !allowPartial {
			return 0, 0, errs.NewDomainRuleViolationError(
				"partial_quantity_not_allowed",
				fmt.Sprintf("operation must consume the whole quantity %d, got %d", available, opQty),
			)
		}
		return 0, 0, errs.NewValueIsOutOfRangeError("quantity", opQty, int64(1), available)
	}
	return opQty, available - opQty, nil
}
