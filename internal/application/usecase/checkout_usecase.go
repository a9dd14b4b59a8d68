// backend/internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	orderdom "coliseum/internal/domain/order"
)

// CheckoutPreference is the provider's answer to a preference request.
type CheckoutPreference struct {
	ID        string
	InitPoint string
}

// PreferenceCreator is an outbound port. The Mercado Pago adapter is injected
// in production; it must thread the orderID to the provider as the
// correlation token (external_reference).
type PreferenceCreator interface {
	CreateCheckoutPreference(ctx context.Context, o orderdom.Order) (CheckoutPreference, error)
}

// CheckoutUsecase orchestrates "persist order -> request provider preference".
// The order is written FIRST so its id exists before the provider ever sees
// the cart; the webhook later resolves that id from the provider's payment.
type CheckoutUsecase struct {
	orders orderdom.Repository
	prefs  PreferenceCreator
	now    func() time.Time
}

func NewCheckoutUsecase(orders orderdom.Repository, prefs PreferenceCreator) *CheckoutUsecase {
	return &CheckoutUsecase{
		orders: orders,
		prefs:  prefs,
		now:    time.Now,
	}
}

var (
	ErrCheckoutRepoMissing  = errors.New("checkout: order repository is not configured")
	ErrCheckoutPrefsMissing = errors.New("checkout: preference creator is not configured")
	ErrCheckoutItemsEmpty   = errors.New("checkout: items are empty")
)

type CheckoutItemInput struct {
	ProductID string
	Title     string
	Quantity  int
	UnitPrice float64
}

type CheckoutInput struct {
	Items      []CheckoutItemInput
	PayerEmail string
}

type CheckoutResult struct {
	OrderID      string
	PreferenceID string
	InitPoint    string
}

// Checkout creates a pending order and a provider payment preference for it.
// If the provider call fails, the freshly created order is cancelled
// (best-effort) so it never sits pending forever.
func (u *CheckoutUsecase) Checkout(ctx context.Context, in CheckoutInput) (CheckoutResult, error) {
	if u.orders == nil {
		return CheckoutResult{}, ErrCheckoutRepoMissing
	}
	if u.prefs == nil {
		return CheckoutResult{}, ErrCheckoutPrefsMissing
	}
	if len(in.Items) == 0 {
		return CheckoutResult{}, ErrCheckoutItemsEmpty
	}

	items := make([]orderdom.Item, 0, len(in.Items))
	for _, it := range in.Items {
		// Lenient normalization, same as the storefront always sent:
		// zero/negative quantities become 1, negative prices become 0.
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		price := it.UnitPrice
		if price < 0 {
			price = 0
		}
		items = append(items, orderdom.Item{
			ProductID: strings.TrimSpace(it.ProductID),
			Name:      it.Title,
			Quantity:  qty,
			UnitPrice: price,
		})
	}

	o, err := orderdom.New("", items, in.PayerEmail, u.now())
	if err != nil {
		return CheckoutResult{}, err
	}

	created, err := u.orders.Create(ctx, o)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("checkout: create order: %w", err)
	}

	pref, err := u.prefs.CreateCheckoutPreference(ctx, created)
	if err != nil {
		if cErr := u.orders.UpdateStatus(ctx, created.ID, orderdom.StatusCancelled); cErr != nil {
			log.Printf("[checkout_uc] WARN: cancel after preference failure also failed orderId=%s err=%v",
				created.ID, cErr)
		}
		return CheckoutResult{}, fmt.Errorf("checkout: create preference: %w", err)
	}

	// The preference already exists and the buyer can pay; a failed back-write
	// of its id is logged, not fatal.
	if sErr := u.orders.SetPreferenceID(ctx, created.ID, pref.ID); sErr != nil {
		log.Printf("[checkout_uc] WARN: save preferenceId failed orderId=%s preferenceId=%s err=%v",
			created.ID, pref.ID, sErr)
	}

	log.Printf("[checkout_uc] OK: order created and preference requested orderId=%s preferenceId=%s items=%d",
		created.ID, pref.ID, len(created.Items))

	return CheckoutResult{
		OrderID:      created.ID,
		PreferenceID: pref.ID,
		InitPoint:    pref.InitPoint,
	}, nil
}
