// backend/internal/adapters/out/firestore/notification_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	notifdom "coliseum/internal/domain/notification"
)

const notificationsCollection = "paymentNotifications"

// NotificationRepositoryFS persists raw provider webhook deliveries
// (append-only audit log).
type NotificationRepositoryFS struct {
	Client *firestore.Client
}

func NewNotificationRepositoryFS(client *firestore.Client) *NotificationRepositoryFS {
	return &NotificationRepositoryFS{Client: client}
}

func (r *NotificationRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(notificationsCollection)
}

type notificationDoc struct {
	Type          string    `firestore:"notificationType"`
	DataID        string    `firestore:"dataId"`
	RawBody       string    `firestore:"rawBody"`
	ReceivedAt    time.Time `firestore:"receivedAt"`
	OrderID       string    `firestore:"orderId"`
	AppliedStatus string    `firestore:"appliedStatus"`
}

func (r *NotificationRepositoryFS) Create(ctx context.Context, n notifdom.Notification) (notifdom.Notification, error) {
	if r.Client == nil {
		return notifdom.Notification{}, errors.New("firestore client is nil")
	}

	id := strings.TrimSpace(n.ID)
	if id == "" {
		id = uuid.NewString()
	}
	n.ID = id

	doc := notificationDoc{
		Type:          n.Type,
		DataID:        n.DataID,
		RawBody:       n.RawBody,
		ReceivedAt:    n.ReceivedAt.UTC(),
		OrderID:       n.OrderID,
		AppliedStatus: n.AppliedStatus,
	}

	if _, err := r.col().Doc(id).Create(ctx, doc); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			// Same delivery id seen twice; the audit record already exists.
			return n, nil
		}
		return notifdom.Notification{}, err
	}
	return n, nil
}
