package shopHandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usecase "coliseum/internal/application/usecase"
	orderdom "coliseum/internal/domain/order"
)

type stubPreferenceCreator struct {
	pref     usecase.CheckoutPreference
	fail     error
	received []orderdom.Order
}

func (s *stubPreferenceCreator) CreateCheckoutPreference(ctx context.Context, o orderdom.Order) (usecase.CheckoutPreference, error) {
	s.received = append(s.received, o)
	if s.fail != nil {
		return usecase.CheckoutPreference{}, s.fail
	}
	return s.pref, nil
}

func checkoutFixture(t *testing.T) (http.Handler, *stubOrderRepo, *stubPreferenceCreator) {
	t.Helper()
	repo := newStubOrderRepo()
	prefs := &stubPreferenceCreator{pref: usecase.CheckoutPreference{ID: "pref-1", InitPoint: "https://mp/init"}}
	h := NewCheckoutHandler(usecase.NewCheckoutUsecase(&idAssigningRepo{stubOrderRepo: repo}, prefs))
	return h, repo, prefs
}

// idAssigningRepo gives created orders an id the way the Firestore adapter does.
type idAssigningRepo struct {
	*stubOrderRepo
}

func (r *idAssigningRepo) Create(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	if o.ID == "" {
		o.ID = "order-generated"
	}
	return r.stubOrderRepo.Create(ctx, o)
}

func postCheckout(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCheckoutHandler(t *testing.T) {
	h, _, prefs := checkoutFixture(t)

	rec := postCheckout(h, `{
		"items":[{"productId":"p1","title":"Shirt","quantity":2,"unit_price":49.9}],
		"payer":{"email":"buyer@example.com"}
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp checkoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pref-1", resp.ID)
	assert.Equal(t, "https://mp/init", resp.InitPoint)
	assert.Equal(t, "order-generated", resp.OrderID)

	require.Len(t, prefs.received, 1)
	assert.Equal(t, "order-generated", prefs.received[0].ID)
}

func TestCheckoutHandlerAcceptsStringPrices(t *testing.T) {
	h, _, prefs := checkoutFixture(t)

	rec := postCheckout(h, `{
		"items":[{"productId":"p1","title":"Shirt","quantity":1,"unit_price":"19.50"}],
		"payer":{"email":"buyer@example.com"}
	}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, prefs.received, 1)
	assert.InDelta(t, 19.5, prefs.received[0].Items[0].UnitPrice, 1e-9)
}

func TestCheckoutHandlerErrors(t *testing.T) {
	t.Run("MethodNotAllowed", func(t *testing.T) {
		h, _, _ := checkoutFixture(t)
		req := httptest.NewRequest(http.MethodGet, "/api/checkout", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		h, _, _ := checkoutFixture(t)
		rec := postCheckout(h, `{broken`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("EmptyItems", func(t *testing.T) {
		h, _, _ := checkoutFixture(t)
		rec := postCheckout(h, `{"items":[],"payer":{"email":"a@b.c"}}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("BadEmail", func(t *testing.T) {
		h, _, _ := checkoutFixture(t)
		rec := postCheckout(h, `{"items":[{"productId":"p1","title":"x","quantity":1,"unit_price":1}],"payer":{"email":"nope"}}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ProviderFailure", func(t *testing.T) {
		h, _, prefs := checkoutFixture(t)
		prefs.fail = errors.New("mp: 500")
		rec := postCheckout(h, `{"items":[{"productId":"p1","title":"x","quantity":1,"unit_price":1}],"payer":{"email":"a@b.c"}}`)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestParsePrice(t *testing.T) {
	assert.InDelta(t, 49.9, parsePrice(json.RawMessage(`49.9`)), 1e-9)
	assert.InDelta(t, 49.9, parsePrice(json.RawMessage(`"49.9"`)), 1e-9)
	assert.Equal(t, float64(0), parsePrice(json.RawMessage(`null`)))
	assert.Equal(t, float64(0), parsePrice(json.RawMessage(`"abc"`)))
	assert.Equal(t, float64(0), parsePrice(nil))
}
