// backend/internal/adapters/out/mercadopago/payment_lookup.go
package mercadopago

import (
	"context"
	"errors"
	"fmt"
	"strings"

	usecase "coliseum/internal/application/usecase"
)

// PaymentLookupService adapts Client to usecase.PaymentLookup.
type PaymentLookupService struct {
	client *Client
}

func NewPaymentLookupService(client *Client) *PaymentLookupService {
	return &PaymentLookupService{client: client}
}

func (s *PaymentLookupService) LookupPayment(ctx context.Context, paymentID string) (usecase.PaymentInfo, error) {
	if s.client == nil {
		return usecase.PaymentInfo{}, errors.New("mercadopago: client is not configured")
	}

	p, err := s.client.GetPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			return usecase.PaymentInfo{}, fmt.Errorf("%w: id=%s", usecase.ErrPaymentLookupNotFound, paymentID)
		}
		return usecase.PaymentInfo{}, err
	}

	return usecase.PaymentInfo{
		PaymentID: p.ID.String(),
		Status:    strings.TrimSpace(p.Status),
		OrderID:   strings.TrimSpace(p.ExternalReference),
	}, nil
}
