// backend/internal/domain/order/status.go
package order

import "strings"

// Status is the payment lifecycle tag of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// ParseStatus normalizes a raw tag. Unknown tags are rejected; the stock
// decrement decision depends on an enumerable set.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatusPending, StatusApproved, StatusCompleted, StatusRejected, StatusCancelled:
		return s, nil
	case "":
		return "", ErrInvalidStatus
	default:
		return "", ErrInvalidStatus
	}
}

// Paid reports whether the status counts as a paid terminal state.
func (s Status) Paid() bool {
	return s == StatusApproved || s == StatusCompleted
}

// StockDecrementDue decides whether a transition into next must decrement
// stock. It is true exactly once per order: the stockAdjusted marker is set
// in the same transaction that applies the decrement, so a second call (or a
// racing retry) observes it and performs zero stock writes.
func StockDecrementDue(current Status, stockAdjusted bool, next Status) bool {
	if stockAdjusted {
		return false
	}
	return next.Paid() && !current.Paid()
}
