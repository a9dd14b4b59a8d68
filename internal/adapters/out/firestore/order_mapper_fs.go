// backend/internal/adapters/out/firestore/order_mapper_fs.go
package firestore

import (
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	orderdom "coliseum/internal/domain/order"
)

// orderDoc is the Firestore document shape for orders.
type orderDoc struct {
	Items         []orderItemDoc `firestore:"items"`
	PayerEmail    string         `firestore:"payerEmail"`
	Status        string         `firestore:"status"`
	PreferenceID  string         `firestore:"preferenceId"`
	StockAdjusted bool           `firestore:"stockAdjusted"`
	CreatedAt     time.Time      `firestore:"createdAt"`
	UpdatedAt     time.Time      `firestore:"updatedAt"`
}

type orderItemDoc struct {
	ProductID string  `firestore:"productId"`
	Name      string  `firestore:"name"`
	Quantity  int     `firestore:"quantity"`
	UnitPrice float64 `firestore:"unitPrice"`
}

func orderToDoc(o orderdom.Order) orderDoc {
	items := make([]orderItemDoc, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemDoc{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return orderDoc{
		Items:         items,
		PayerEmail:    o.PayerEmail,
		Status:        string(o.Status),
		PreferenceID:  o.PreferenceID,
		StockAdjusted: o.StockAdjusted,
		CreatedAt:     o.CreatedAt.UTC(),
		UpdatedAt:     o.UpdatedAt.UTC(),
	}
}

func docToOrder(snap *firestore.DocumentSnapshot) (orderdom.Order, error) {
	var d orderDoc
	if err := snap.DataTo(&d); err != nil {
		return orderdom.Order{}, fmt.Errorf("decode order %s: %w", snap.Ref.ID, err)
	}

	items := make([]orderdom.Item, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, orderdom.Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	createdAt := d.CreatedAt
	if createdAt.IsZero() && !snap.CreateTime.IsZero() {
		createdAt = snap.CreateTime
	}

	// Status stays as stored even if outside the known set; validation happens
	// at the usecase boundary, not when reading back persisted data.
	return orderdom.Order{
		ID:            snap.Ref.ID,
		Items:         items,
		PayerEmail:    d.PayerEmail,
		Status:        orderdom.Status(d.Status),
		PreferenceID:  d.PreferenceID,
		StockAdjusted: d.StockAdjusted,
		CreatedAt:     createdAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}, nil
}
