// backend/internal/adapters/out/mercadopago/client.go
package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.mercadopago.com"

// Client talks to the two Mercado Pago endpoints this system needs:
// preference creation and payment lookup. It is not a general SDK.
type Client struct {
	client      *http.Client
	baseURL     string
	accessToken string
}

// NewClient builds a client. baseURL may be empty (production API);
// tests point it at an httptest server.
func NewClient(baseURL, accessToken string, timeout time.Duration) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		client:      &http.Client{Timeout: timeout},
		baseURL:     baseURL,
		accessToken: strings.TrimSpace(accessToken),
	}
}

// ----------------------------------------------------------------------
// Preference creation
// ----------------------------------------------------------------------

type PreferenceItem struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id"`
}

type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

// PreferenceRequest mirrors the provider's preference wire shape.
// ExternalReference carries the local orderId as the correlation token; the
// provider echoes it back on payments so the webhook can find the order.
type PreferenceRequest struct {
	Items             []PreferenceItem `json:"items"`
	ExternalReference string           `json:"external_reference,omitempty"`
	BackURLs          BackURLs         `json:"back_urls"`
	AutoReturn        string           `json:"auto_return,omitempty"`
	NotificationURL   string           `json:"notification_url,omitempty"`
}

type Preference struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

func (c *Client) CreatePreference(ctx context.Context, pref PreferenceRequest) (Preference, error) {
	if c.accessToken == "" {
		return Preference{}, fmt.Errorf("mercadopago: access token is empty")
	}
	if len(pref.Items) == 0 {
		return Preference{}, fmt.Errorf("mercadopago: preference items are empty")
	}

	body, err := json.Marshal(pref)
	if err != nil {
		return Preference{}, fmt.Errorf("mercadopago: encode preference: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/checkout/preferences",
		bytes.NewReader(body),
	)
	if err != nil {
		return Preference{}, fmt.Errorf("mercadopago: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return Preference{}, fmt.Errorf("mercadopago: create preference: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[mercadopago] create preference FAILED status=%d body=%s", resp.StatusCode, string(respBody))
		return Preference{}, fmt.Errorf("mercadopago: create preference failed: status=%d", resp.StatusCode)
	}

	var p Preference
	if err := json.Unmarshal(respBody, &p); err != nil {
		return Preference{}, fmt.Errorf("mercadopago: decode preference response: %w", err)
	}
	if strings.TrimSpace(p.ID) == "" {
		return Preference{}, fmt.Errorf("mercadopago: preference response missing id")
	}

	log.Printf("[mercadopago] preference created id=%s externalRef=%s", p.ID, pref.ExternalReference)
	return p, nil
}

// ----------------------------------------------------------------------
// Payment lookup
// ----------------------------------------------------------------------

// Payment is the slice of the provider's payment resource the webhook needs.
type Payment struct {
	ID                json.Number `json:"id"`
	Status            string      `json:"status"`
	ExternalReference string      `json:"external_reference"`
}

var ErrPaymentNotFound = fmt.Errorf("mercadopago: payment not found")

func (c *Client) GetPayment(ctx context.Context, paymentID string) (Payment, error) {
	if c.accessToken == "" {
		return Payment{}, fmt.Errorf("mercadopago: access token is empty")
	}
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return Payment{}, fmt.Errorf("mercadopago: payment id is empty")
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/v1/payments/"+url.PathEscape(paymentID),
		nil,
	)
	if err != nil {
		return Payment{}, fmt.Errorf("mercadopago: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return Payment{}, fmt.Errorf("mercadopago: get payment: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode == http.StatusNotFound {
		return Payment{}, ErrPaymentNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[mercadopago] get payment FAILED id=%s status=%d body=%s", paymentID, resp.StatusCode, string(respBody))
		return Payment{}, fmt.Errorf("mercadopago: get payment failed: status=%d", resp.StatusCode)
	}

	var p Payment
	if err := json.Unmarshal(respBody, &p); err != nil {
		return Payment{}, fmt.Errorf("mercadopago: decode payment response: %w", err)
	}
	return p, nil
}
