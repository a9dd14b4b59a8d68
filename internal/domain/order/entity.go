// backend/internal/domain/order/entity.go
package order

import (
	"errors"
	"strings"
	"time"
)

// ========================================
// Item snapshot (stored in Order)
// ========================================

// Item is a line-item snapshot taken at checkout time. ProductID references
// the products collection; Name/UnitPrice are frozen copies so later catalog
// edits do not rewrite history.
type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// ========================================
// Entity
// ========================================

type Order struct {
	ID         string
	Items      []Item
	PayerEmail string
	Status     Status

	// PreferenceID is the payment provider's preference id, saved after the
	// provider call succeeds. The orderID itself travels to the provider as
	// external_reference (correlation token).
	PreferenceID string

	// StockAdjusted marks that this order's one-time stock decrement has been
	// committed. It is only ever flipped false -> true, inside the same
	// transaction as the decrement.
	StockAdjusted bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ========================================
// Errors
// ========================================

var (
	ErrInvalidID         = errors.New("order: invalid id")
	ErrInvalidItems      = errors.New("order: invalid items")
	ErrInvalidItem       = errors.New("order: invalid item snapshot")
	ErrInvalidPayerEmail = errors.New("order: invalid payerEmail")
	ErrInvalidStatus     = errors.New("order: invalid status")
	ErrInvalidCreatedAt  = errors.New("order: invalid createdAt")
)

// ========================================
// Constructors
// ========================================

// New builds a pending order. id may be empty; the repository assigns a
// document id on create.
func New(id string, items []Item, payerEmail string, now time.Time) (Order, error) {
	o := Order{
		ID:         strings.TrimSpace(id),
		Items:      normalizeItems(items),
		PayerEmail: strings.TrimSpace(payerEmail),
		Status:     StatusPending,
		CreatedAt:  now.UTC(),
		UpdatedAt:  now.UTC(),
	}
	if err := o.validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

// ========================================
// Behavior
// ========================================

// Total is the order amount in the store currency.
func (o Order) Total() float64 {
	var sum float64
	for _, it := range o.Items {
		sum += it.UnitPrice * float64(it.Quantity)
	}
	return sum
}

// ========================================
// Validation
// ========================================

func (o Order) validate() error {
	if o.PayerEmail == "" || !strings.Contains(o.PayerEmail, "@") {
		return ErrInvalidPayerEmail
	}
	if err := validateItems(o.Items); err != nil {
		return err
	}
	if o.CreatedAt.IsZero() {
		return ErrInvalidCreatedAt
	}
	return nil
}

func validateItems(items []Item) error {
	if len(items) == 0 {
		return ErrInvalidItems
	}
	for _, it := range items {
		if strings.TrimSpace(it.ProductID) == "" {
			return ErrInvalidItem
		}
		if it.Quantity <= 0 {
			return ErrInvalidItem
		}
		if it.UnitPrice < 0 {
			return ErrInvalidItem
		}
	}
	return nil
}

// ========================================
// Helpers
// ========================================

func normalizeItems(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		n := Item{
			ProductID: strings.TrimSpace(it.ProductID),
			Name:      strings.TrimSpace(it.Name),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		}
		if n.Name == "" {
			n.Name = "unnamed product"
		}
		out = append(out, n)
	}
	return out
}
