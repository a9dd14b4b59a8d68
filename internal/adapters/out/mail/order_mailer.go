// backend/internal/adapters/out/mail/order_mailer.go
package mail

import (
	"context"
	"fmt"
	"strings"

	orderdom "coliseum/internal/domain/order"
)

// EmailClient abstracts the concrete mail transport (SendGrid here).
type EmailClient interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// OrderMailer formats and sends order confirmation mail through an EmailClient.
type OrderMailer struct {
	client      EmailClient
	fromAddress string
	shopName    string
}

func NewOrderMailer(client EmailClient, fromAddress, shopName string) *OrderMailer {
	shopName = strings.TrimSpace(shopName)
	if shopName == "" {
		shopName = "Coliseum Shop"
	}
	return &OrderMailer{
		client:      client,
		fromAddress: strings.TrimSpace(fromAddress),
		shopName:    shopName,
	}
}

func (m *OrderMailer) SendOrderConfirmation(ctx context.Context, o orderdom.Order) error {
	if m.client == nil {
		return fmt.Errorf("mail: email client is not configured")
	}
	to := strings.TrimSpace(o.PayerEmail)
	if to == "" {
		return fmt.Errorf("mail: payer email is empty")
	}

	subject := fmt.Sprintf("[%s] Payment confirmed for order %s", m.shopName, o.ID)

	var b strings.Builder
	fmt.Fprintf(&b, "Your payment was confirmed. Order %s:\n\n", o.ID)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "  %d x %s — %.2f\n", it.Quantity, it.Name, it.UnitPrice)
	}
	fmt.Fprintf(&b, "\nTotal: %.2f\n", o.Total())

	return m.client.Send(ctx, m.fromAddress, to, subject, b.String())
}
