// backend/internal/domain/product/entity.go
package product

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound     = errors.New("product: not found")
	ErrConflict     = errors.New("product: conflict")
	ErrInvalidName  = errors.New("product: invalid name")
	ErrInvalidPrice = errors.New("product: invalid price")
	ErrInvalidStock = errors.New("product: invalid stock")
)

// Product is one sellable catalog entry. Stock is the only contended field:
// it is decremented exclusively through the order reconciliation transaction.
type Product struct {
	ID       string
	Name     string
	Price    float64
	Stock    int
	ImageURL string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// New builds a product. id may be empty; the repository assigns one.
func New(id, name string, price float64, stock int, imageURL string, now time.Time) (Product, error) {
	p := Product{
		ID:        strings.TrimSpace(id),
		Name:      strings.TrimSpace(name),
		Price:     price,
		Stock:     stock,
		ImageURL:  strings.TrimSpace(imageURL),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	if p.Name == "" {
		return Product{}, ErrInvalidName
	}
	if p.Price < 0 {
		return Product{}, ErrInvalidPrice
	}
	if p.Stock < 0 {
		return Product{}, ErrInvalidStock
	}
	return p, nil
}

// NextStock computes the on-hand quantity after selling qty units, clamped at
// zero. Oversells are absorbed, not rejected: a confirmed payment must not
// fail reconciliation because the shelf count drifted.
func NextStock(current, qty int) int {
	if qty < 0 {
		qty = 0
	}
	next := current - qty
	if next < 0 {
		return 0
	}
	return next
}
