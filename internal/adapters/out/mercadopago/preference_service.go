// backend/internal/adapters/out/mercadopago/preference_service.go
package mercadopago

import (
	"context"
	"errors"
	"strings"

	usecase "coliseum/internal/application/usecase"
	orderdom "coliseum/internal/domain/order"
)

// PreferenceService adapts Client to usecase.PreferenceCreator. It owns the
// storefront-level knobs (back URLs, currency, notification URL) so the
// usecase stays free of provider wiring.
type PreferenceService struct {
	client          *Client
	backURLs        BackURLs
	notificationURL string
	currencyID      string
}

func NewPreferenceService(client *Client, backURLs BackURLs, notificationURL, currencyID string) *PreferenceService {
	currencyID = strings.TrimSpace(currencyID)
	if currencyID == "" {
		currencyID = "BRL"
	}
	return &PreferenceService{
		client:          client,
		backURLs:        backURLs,
		notificationURL: strings.TrimSpace(notificationURL),
		currencyID:      currencyID,
	}
}

func (s *PreferenceService) CreateCheckoutPreference(ctx context.Context, o orderdom.Order) (usecase.CheckoutPreference, error) {
	if s.client == nil {
		return usecase.CheckoutPreference{}, errors.New("mercadopago: client is not configured")
	}

	items := make([]PreferenceItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, PreferenceItem{
			Title:      it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			CurrencyID: s.currencyID,
		})
	}

	pref, err := s.client.CreatePreference(ctx, PreferenceRequest{
		Items:             items,
		ExternalReference: o.ID,
		BackURLs:          s.backURLs,
		AutoReturn:        "approved",
		NotificationURL:   s.notificationURL,
	})
	if err != nil {
		return usecase.CheckoutPreference{}, err
	}

	return usecase.CheckoutPreference{
		ID:        pref.ID,
		InitPoint: pref.InitPoint,
	}, nil
}
