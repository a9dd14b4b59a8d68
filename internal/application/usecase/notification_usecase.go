// backend/internal/application/usecase/notification_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	notifdom "coliseum/internal/domain/notification"
	orderdom "coliseum/internal/domain/order"
)

// PaymentInfo is the slice of the provider's payment resource the webhook
// needs: the reported status and the orderId correlation token we planted as
// external_reference at checkout.
type PaymentInfo struct {
	PaymentID string
	Status    string
	OrderID   string
}

// PaymentLookup is an outbound port backed by the Mercado Pago adapter.
type PaymentLookup interface {
	LookupPayment(ctx context.Context, paymentID string) (PaymentInfo, error)
}

// ErrPaymentLookupNotFound is returned by PaymentLookup implementations when
// the provider does not know the payment id.
var ErrPaymentLookupNotFound = errors.New("notification: payment not found at provider")

// NotificationUsecase ingests provider webhook deliveries: it always records
// the raw notification for audit, then resolves the payment and drives order
// reconciliation.
type NotificationUsecase struct {
	notifications notifdom.Repository
	payments      PaymentLookup
	reconcile     *ReconcileUsecase
	now           func() time.Time
}

func NewNotificationUsecase(
	notifications notifdom.Repository,
	payments PaymentLookup,
	reconcile *ReconcileUsecase,
) *NotificationUsecase {
	return &NotificationUsecase{
		notifications: notifications,
		payments:      payments,
		reconcile:     reconcile,
		now:           time.Now,
	}
}

var (
	ErrNotificationRepoMissing    = errors.New("notification: repository is not configured")
	ErrNotificationLookupMissing  = errors.New("notification: payment lookup is not configured")
	ErrNotificationApplierMissing = errors.New("notification: reconcile usecase is not configured")
)

type WebhookInput struct {
	Type    string
	DataID  string
	RawBody string
}

// WebhookOutcome is diagnostic; the handler answers the provider with 200
// whenever the error is nil.
type WebhookOutcome struct {
	Ignored       bool // non-payment type or no data id
	OrderID       string
	AppliedStatus string
	Adjusted      bool
}

// HandlePaymentNotification processes one webhook delivery.
//
// A non-nil error means "the provider should redeliver" (dependency trouble).
// Permanently hopeless deliveries — unknown payment, missing correlation,
// unknown order, unmappable status — are logged and swallowed so the provider
// does not retry them forever.
func (u *NotificationUsecase) HandlePaymentNotification(ctx context.Context, in WebhookInput) (WebhookOutcome, error) {
	if u.notifications == nil {
		return WebhookOutcome{}, ErrNotificationRepoMissing
	}
	if u.payments == nil {
		return WebhookOutcome{}, ErrNotificationLookupMissing
	}
	if u.reconcile == nil {
		return WebhookOutcome{}, ErrNotificationApplierMissing
	}

	typ := strings.TrimSpace(in.Type)
	dataID := strings.TrimSpace(in.DataID)

	if typ != "payment" || dataID == "" {
		log.Printf("[notification_uc] ignoring notification type=%q dataId=%q", typ, dataID)
		return WebhookOutcome{Ignored: true}, nil
	}

	rec, err := notifdom.New("", typ, dataID, in.RawBody, u.now())
	if err != nil {
		return WebhookOutcome{}, err
	}

	pay, err := u.payments.LookupPayment(ctx, dataID)
	if err != nil {
		if errors.Is(err, ErrPaymentLookupNotFound) {
			log.Printf("[notification_uc] WARN: provider does not know payment paymentId=%s", dataID)
			u.store(ctx, rec)
			return WebhookOutcome{}, nil
		}
		u.store(ctx, rec)
		return WebhookOutcome{}, err
	}

	orderID := strings.TrimSpace(pay.OrderID)
	if orderID == "" {
		log.Printf("[notification_uc] WARN: payment has no external_reference paymentId=%s (cannot correlate)", dataID)
		u.store(ctx, rec)
		return WebhookOutcome{}, nil
	}

	next, ok := mapProviderStatus(pay.Status)
	if !ok {
		log.Printf("[notification_uc] WARN: unmapped provider status paymentId=%s status=%q", dataID, pay.Status)
		rec.OrderID = orderID
		u.store(ctx, rec)
		return WebhookOutcome{OrderID: orderID}, nil
	}

	res, err := u.reconcile.ApplyStatus(ctx, orderID, string(next))
	if err != nil {
		if errors.Is(err, orderdom.ErrNotFound) {
			log.Printf("[notification_uc] WARN: payment references unknown order paymentId=%s orderId=%s", dataID, orderID)
			rec.OrderID = orderID
			u.store(ctx, rec)
			return WebhookOutcome{OrderID: orderID}, nil
		}
		rec.OrderID = orderID
		u.store(ctx, rec)
		return WebhookOutcome{OrderID: orderID}, err
	}

	rec.OrderID = orderID
	rec.AppliedStatus = string(next)
	u.store(ctx, rec)

	return WebhookOutcome{
		OrderID:       orderID,
		AppliedStatus: string(next),
		Adjusted:      res.Adjusted,
	}, nil
}

// store writes the audit record; audit failures never mask the main outcome.
func (u *NotificationUsecase) store(ctx context.Context, n notifdom.Notification) {
	if _, err := u.notifications.Create(ctx, n); err != nil {
		log.Printf("[notification_uc] WARN: persist notification failed dataId=%s err=%v", n.DataID, err)
	}
}

// mapProviderStatus translates Mercado Pago payment statuses into the order
// status set. Refund/chargeback flows are out of scope and stay unmapped.
func mapProviderStatus(s string) (orderdom.Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approved":
		return orderdom.StatusApproved, true
	case "pending", "in_process", "authorized":
		return orderdom.StatusPending, true
	case "rejected":
		return orderdom.StatusRejected, true
	case "cancelled":
		return orderdom.StatusCancelled, true
	default:
		return "", false
	}
}
