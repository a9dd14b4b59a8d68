package order

import (
	"context"
	"errors"
)

// ReconcileResult describes what a reconciliation transaction did.
type ReconcileResult struct {
	Order    Order
	Adjusted bool

	// MissingProducts lists productIds referenced by the order that no longer
	// exist in the product store. They are skipped, never fatal.
	MissingProducts []string
}

// Repository defines the persistence port for Order.
//
// Reconcile is the load-bearing operation: it must apply the status write and
// the (at most one per order) stock decrement as a single atomic unit, using
// the order document itself as the concurrency anchor. Two racing Reconcile
// calls for the same order must decrement stock exactly once between them.
type Repository interface {
	GetByID(ctx context.Context, id string) (Order, error)
	Create(ctx context.Context, o Order) (Order, error)
	SetPreferenceID(ctx context.Context, id string, preferenceID string) error
	UpdateStatus(ctx context.Context, id string, s Status) error
	Reconcile(ctx context.Context, id string, next Status) (ReconcileResult, error)
}

// Standard repository errors
var (
	ErrNotFound = errors.New("order: not found")
	ErrConflict = errors.New("order: conflict")

	// ErrInconsistent marks the narrow window where a store applied the stock
	// batch but failed the subsequent status write. The Firestore adapter's
	// single-transaction design cannot produce it, but the port keeps the
	// sentinel so non-transactional stores can surface the state distinctly
	// for manual reconciliation instead of hiding it in a generic failure.
	ErrInconsistent = errors.New("order: stock adjusted but status write failed")
)
