// backend/internal/domain/notification/entity.go
package notification

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidType = errors.New("notification: invalid type")
)

// Notification is one raw provider webhook delivery, kept as an append-only
// audit record regardless of whether reconciliation succeeded.
type Notification struct {
	ID         string
	Type       string // provider notification type, e.g. "payment"
	DataID     string // provider-side id, e.g. payment id
	RawBody    string
	ReceivedAt time.Time

	// Reconciliation outcome (filled in after the fact, best-effort)
	OrderID       string
	AppliedStatus string
}

// New builds a notification record.
func New(id, typ, dataID, rawBody string, receivedAt time.Time) (Notification, error) {
	n := Notification{
		ID:         strings.TrimSpace(id),
		Type:       strings.TrimSpace(typ),
		DataID:     strings.TrimSpace(dataID),
		RawBody:    rawBody,
		ReceivedAt: receivedAt.UTC(),
	}
	if n.Type == "" {
		return Notification{}, ErrInvalidType
	}
	return n, nil
}

// Repository is the append-only store for webhook deliveries.
type Repository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
}
