package product

import "context"

// Repository defines the persistence port for Product.
//
// Note: stock decrements are deliberately absent here. They run inside the
// order reconciliation transaction (order.Repository.Reconcile) so the
// decrement and the order's stockAdjusted marker commit together.
type Repository interface {
	GetByID(ctx context.Context, id string) (Product, error)
	List(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Save(ctx context.Context, p Product) (Product, error)
}
