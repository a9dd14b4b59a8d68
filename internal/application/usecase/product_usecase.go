// backend/internal/application/usecase/product_usecase.go
package usecase

import (
	"context"
	"errors"
	"time"

	productdom "coliseum/internal/domain/product"
)

// ProductUsecase serves the storefront catalog. Stock mutation is explicitly
// NOT here; only the reconciliation transaction touches stock.
type ProductUsecase struct {
	products productdom.Repository
	now      func() time.Time
}

func NewProductUsecase(products productdom.Repository) *ProductUsecase {
	return &ProductUsecase{
		products: products,
		now:      time.Now,
	}
}

var ErrProductRepoMissing = errors.New("product: repository is not configured")

func (u *ProductUsecase) List(ctx context.Context) ([]productdom.Product, error) {
	if u.products == nil {
		return nil, ErrProductRepoMissing
	}
	return u.products.List(ctx)
}

func (u *ProductUsecase) GetByID(ctx context.Context, id string) (productdom.Product, error) {
	if u.products == nil {
		return productdom.Product{}, ErrProductRepoMissing
	}
	return u.products.GetByID(ctx, id)
}

type CreateProductInput struct {
	Name     string
	Price    float64
	Stock    int
	ImageURL string
}

func (u *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (productdom.Product, error) {
	if u.products == nil {
		return productdom.Product{}, ErrProductRepoMissing
	}
	p, err := productdom.New("", in.Name, in.Price, in.Stock, in.ImageURL, u.now())
	if err != nil {
		return productdom.Product{}, err
	}
	return u.products.Create(ctx, p)
}
