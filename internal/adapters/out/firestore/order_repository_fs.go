// backend/internal/adapters/out/firestore/order_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	orderdom "coliseum/internal/domain/order"
	productdom "coliseum/internal/domain/product"
)

const (
	ordersCollection   = "orders"
	productsCollection = "products"
)

// OrderRepositoryFS is a Firestore-based implementation of the order repository.
// It also owns the reconciliation transaction, which reaches into the products
// collection so the stock decrement and the order's status/stockAdjusted write
// commit as one unit.
type OrderRepositoryFS struct {
	Client *firestore.Client
}

func NewOrderRepositoryFS(client *firestore.Client) *OrderRepositoryFS {
	return &OrderRepositoryFS{Client: client}
}

func (r *OrderRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(ordersCollection)
}

func (r *OrderRepositoryFS) products() *firestore.CollectionRef {
	return r.Client.Collection(productsCollection)
}

// ============================================================
// Queries
// ============================================================

func (r *OrderRepositoryFS) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	if r.Client == nil {
		return orderdom.Order{}, errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return orderdom.Order{}, orderdom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return orderdom.Order{}, orderdom.ErrNotFound
		}
		return orderdom.Order{}, err
	}

	return docToOrder(snap)
}

// ============================================================
// Commands
// ============================================================

// Create inserts a new order (Firestore auto-ID allowed).
func (r *OrderRepositoryFS) Create(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	if r.Client == nil {
		return orderdom.Order{}, errors.New("firestore client is nil")
	}

	id := strings.TrimSpace(o.ID)
	var docRef *firestore.DocumentRef
	if id == "" {
		docRef = r.col().NewDoc()
		o.ID = docRef.ID
	} else {
		docRef = r.col().Doc(id)
		o.ID = id
	}

	if _, err := docRef.Create(ctx, orderToDoc(o)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return orderdom.Order{}, orderdom.ErrConflict
		}
		return orderdom.Order{}, err
	}

	snap, err := docRef.Get(ctx)
	if err != nil {
		return orderdom.Order{}, err
	}
	return docToOrder(snap)
}

// SetPreferenceID stores the provider preference id after the provider call.
func (r *OrderRepositoryFS) SetPreferenceID(ctx context.Context, id string, preferenceID string) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return orderdom.ErrNotFound
	}

	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "preferenceId", Value: strings.TrimSpace(preferenceID)},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return orderdom.ErrNotFound
		}
		return err
	}
	return nil
}

// UpdateStatus writes only the status field (no stock involvement).
// Reconcile is the correct entry point for provider-reported transitions.
func (r *OrderRepositoryFS) UpdateStatus(ctx context.Context, id string, s orderdom.Status) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return orderdom.ErrNotFound
	}

	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(s)},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return orderdom.ErrNotFound
		}
		return err
	}
	return nil
}

// ============================================================
// Reconcile (transactional status + one-time stock decrement)
// ============================================================

// Reconcile applies next to the order and, when the transition first enters a
// paid status, decrements every referenced product's stock, clamped at zero.
//
// The whole read-decide-write sequence runs in one Firestore transaction:
// concurrent calls for the same order conflict on the order document, the
// loser is retried by the SDK, re-reads stockAdjusted == true and performs
// zero stock writes. Missing products are logged and skipped.
func (r *OrderRepositoryFS) Reconcile(ctx context.Context, id string, next orderdom.Status) (orderdom.ReconcileResult, error) {
	if r.Client == nil {
		return orderdom.ReconcileResult{}, errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return orderdom.ReconcileResult{}, orderdom.ErrNotFound
	}

	ref := r.col().Doc(id)

	var res orderdom.ReconcileResult
	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// The SDK may retry this function; start from a clean slate.
		res = orderdom.ReconcileResult{}

		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return orderdom.ErrNotFound
			}
			return err
		}

		o, err := docToOrder(snap)
		if err != nil {
			return err
		}

		due := orderdom.StockDecrementDue(o.Status, o.StockAdjusted, next)

		type stockWrite struct {
			ref   *firestore.DocumentRef
			stock int
		}
		var writes []stockWrite

		if due {
			// All transaction reads must happen before any write; stage the
			// product updates first.
			for _, li := range aggregateQuantities(o.Items) {
				pRef := r.products().Doc(li.productID)
				pSnap, err := tx.Get(pRef)
				if err != nil {
					if status.Code(err) == codes.NotFound {
						log.Printf("[order_repo_fs] WARN: product missing for stock decrement orderId=%s productId=%s (skipped)",
							id, li.productID)
						res.MissingProducts = append(res.MissingProducts, li.productID)
						continue
					}
					return err
				}

				cur := stockFromDoc(pSnap)
				writes = append(writes, stockWrite{
					ref:   pRef,
					stock: productdom.NextStock(cur, li.quantity),
				})
			}
		}

		now := time.Now().UTC()

		for _, wr := range writes {
			if err := tx.Update(wr.ref, []firestore.Update{
				{Path: "stock", Value: wr.stock},
				{Path: "updatedAt", Value: now},
			}); err != nil {
				return err
			}
		}

		upd := []firestore.Update{
			{Path: "status", Value: string(next)},
			{Path: "updatedAt", Value: now},
		}
		if due {
			upd = append(upd, firestore.Update{Path: "stockAdjusted", Value: true})
		}
		if err := tx.Update(ref, upd); err != nil {
			return err
		}

		o.Status = next
		o.UpdatedAt = now
		if due {
			o.StockAdjusted = true
		}
		res.Order = o
		res.Adjusted = due
		return nil
	})
	if err != nil {
		return orderdom.ReconcileResult{}, err
	}

	if res.Adjusted {
		log.Printf("[order_repo_fs] stock adjusted orderId=%s status=%s items=%d missing=%d",
			id, next, len(res.Order.Items), len(res.MissingProducts))
	}
	return res, nil
}

type lineQty struct {
	productID string
	quantity  int
}

// aggregateQuantities merges duplicate productIds so each product document is
// read and written at most once per transaction.
func aggregateQuantities(items []orderdom.Item) []lineQty {
	idx := make(map[string]int, len(items))
	out := make([]lineQty, 0, len(items))
	for _, it := range items {
		pid := strings.TrimSpace(it.ProductID)
		if pid == "" {
			continue
		}
		if i, ok := idx[pid]; ok {
			out[i].quantity += it.Quantity
			continue
		}
		idx[pid] = len(out)
		out = append(out, lineQty{productID: pid, quantity: it.Quantity})
	}
	return out
}
