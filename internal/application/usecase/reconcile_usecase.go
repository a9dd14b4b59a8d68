// backend/internal/application/usecase/reconcile_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	orderdom "coliseum/internal/domain/order"
)

// OrderConfirmationSender is an outbound port. The SendGrid-backed mailer is
// injected in production; nil disables confirmation mail entirely.
type OrderConfirmationSender interface {
	SendOrderConfirmation(ctx context.Context, o orderdom.Order) error
}

// ReconcileUsecase applies an externally reported payment status to an order
// and triggers the order's one-time stock decrement. This is the only
// operation allowed to mutate product stock.
type ReconcileUsecase struct {
	orders orderdom.Repository
	mailer OrderConfirmationSender // optional
}

func NewReconcileUsecase(orders orderdom.Repository, mailer OrderConfirmationSender) *ReconcileUsecase {
	return &ReconcileUsecase{
		orders: orders,
		mailer: mailer,
	}
}

var (
	ErrReconcileRepoMissing     = errors.New("reconcile: order repository is not configured")
	ErrReconcileOrderIDRequired = errors.New("reconcile: orderId is required")
	ErrReconcileStatusRequired  = errors.New("reconcile: newStatus is required")
)

// ApplyStatusResult reports what a reconciliation did.
type ApplyStatusResult struct {
	Order           orderdom.Order
	Adjusted        bool
	MissingProducts []string
}

// ApplyStatus validates the arguments and delegates the atomic
// status-write-plus-decrement to the repository. Calling it twice with a paid
// status decrements stock only on the first call: the repository transaction
// sets the order's stockAdjusted marker together with the decrement, and the
// second call observes it.
func (u *ReconcileUsecase) ApplyStatus(ctx context.Context, orderID string, rawStatus string) (ApplyStatusResult, error) {
	if u.orders == nil {
		return ApplyStatusResult{}, ErrReconcileRepoMissing
	}

	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return ApplyStatusResult{}, ErrReconcileOrderIDRequired
	}
	if strings.TrimSpace(rawStatus) == "" {
		return ApplyStatusResult{}, ErrReconcileStatusRequired
	}

	next, err := orderdom.ParseStatus(rawStatus)
	if err != nil {
		return ApplyStatusResult{}, err
	}

	res, err := u.orders.Reconcile(ctx, orderID, next)
	if err != nil {
		return ApplyStatusResult{}, err
	}

	log.Printf("[reconcile_uc] status applied orderId=%s status=%s adjusted=%t missing=%d",
		orderID, next, res.Adjusted, len(res.MissingProducts))

	// Confirmation mail only on the transition that actually deducted stock,
	// so provider retries never re-send it. Best-effort.
	if res.Adjusted && u.mailer != nil {
		if mErr := u.mailer.SendOrderConfirmation(ctx, res.Order); mErr != nil {
			log.Printf("[reconcile_uc] WARN: confirmation mail failed orderId=%s err=%v", orderID, mErr)
		}
	}

	return ApplyStatusResult{
		Order:           res.Order,
		Adjusted:        res.Adjusted,
		MissingProducts: res.MissingProducts,
	}, nil
}
