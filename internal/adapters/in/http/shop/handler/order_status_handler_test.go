package shopHandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usecase "coliseum/internal/application/usecase"
	orderdom "coliseum/internal/domain/order"
	productdom "coliseum/internal/domain/product"
)

// stubOrderRepo backs handler tests with an in-memory order store whose
// Reconcile mirrors the Firestore adapter's decision logic.
type stubOrderRepo struct {
	mu       sync.Mutex
	orders   map[string]orderdom.Order
	products map[string]productdom.Product
	fail     error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		orders:   make(map[string]orderdom.Order),
		products: make(map[string]productdom.Product),
	}
}

func (r *stubOrderRepo) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) Create(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o
	return o, nil
}

func (r *stubOrderRepo) SetPreferenceID(ctx context.Context, id string, preferenceID string) error {
	return nil
}

func (r *stubOrderRepo) UpdateStatus(ctx context.Context, id string, s orderdom.Status) error {
	return nil
}

func (r *stubOrderRepo) Reconcile(ctx context.Context, id string, next orderdom.Status) (orderdom.ReconcileResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return orderdom.ReconcileResult{}, r.fail
	}
	o, ok := r.orders[id]
	if !ok {
		return orderdom.ReconcileResult{}, orderdom.ErrNotFound
	}
	var res orderdom.ReconcileResult
	due := orderdom.StockDecrementDue(o.Status, o.StockAdjusted, next)
	if due {
		for _, it := range o.Items {
			p, ok := r.products[it.ProductID]
			if !ok {
				res.MissingProducts = append(res.MissingProducts, it.ProductID)
				continue
			}
			p.Stock = productdom.NextStock(p.Stock, it.Quantity)
			r.products[it.ProductID] = p
		}
		o.StockAdjusted = true
	}
	o.Status = next
	r.orders[id] = o
	res.Order = o
	res.Adjusted = due
	return res, nil
}

func seedStatusFixture(t *testing.T) (*stubOrderRepo, http.Handler) {
	t.Helper()
	repo := newStubOrderRepo()
	repo.products["p1"] = productdom.Product{ID: "p1", Name: "Shirt", Price: 10, Stock: 5}
	o, err := orderdom.New("order-1", []orderdom.Item{
		{ProductID: "p1", Name: "Shirt", Quantity: 2, UnitPrice: 10},
	}, "buyer@example.com", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), o)
	require.NoError(t, err)

	h := NewOrderStatusHandler(usecase.NewReconcileUsecase(repo, nil))
	return repo, h
}

func postStatus(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/orders/status", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestOrderStatusHandlerAdjustsStock(t *testing.T) {
	repo, h := seedStatusFixture(t)

	rec := postStatus(h, `{"orderId":"order-1","newStatus":"approved"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp updateOrderStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "order-1", resp.OrderID)
	assert.Equal(t, "approved", resp.Status)
	assert.True(t, resp.Adjusted)
	assert.Equal(t, "order status updated and stock adjusted", resp.Message)
	assert.Equal(t, 3, repo.products["p1"].Stock)
}

func TestOrderStatusHandlerSecondCallReportsNoAdjustment(t *testing.T) {
	repo, h := seedStatusFixture(t)

	first := postStatus(h, `{"orderId":"order-1","newStatus":"approved"}`)
	require.Equal(t, http.StatusOK, first.Code)

	second := postStatus(h, `{"orderId":"order-1","newStatus":"approved"}`)
	require.Equal(t, http.StatusOK, second.Code)

	var resp updateOrderStatusResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.False(t, resp.Adjusted)
	assert.Equal(t, "order status updated", resp.Message)
	assert.Equal(t, 3, repo.products["p1"].Stock)
}

func TestOrderStatusHandlerErrors(t *testing.T) {
	_, h := seedStatusFixture(t)

	t.Run("MethodNotAllowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/orders/status", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		rec := postStatus(h, `{not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MissingOrderID", func(t *testing.T) {
		rec := postStatus(h, `{"newStatus":"approved"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MissingStatus", func(t *testing.T) {
		rec := postStatus(h, `{"orderId":"order-1"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		rec := postStatus(h, `{"orderId":"order-1","newStatus":"refunded"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("OrderNotFound", func(t *testing.T) {
		rec := postStatus(h, `{"orderId":"ghost","newStatus":"approved"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestOrderStatusHandlerDependencyFailure(t *testing.T) {
	repo, h := seedStatusFixture(t)
	repo.fail = context.DeadlineExceeded

	rec := postStatus(h, `{"orderId":"order-1","newStatus":"approved"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestOrderStatusHandlerInconsistentState(t *testing.T) {
	repo, h := seedStatusFixture(t)
	repo.fail = orderdom.ErrInconsistent

	rec := postStatus(h, `{"orderId":"order-1","newStatus":"approved"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "inconsistent")
}

func TestOrderStatusHandlerReportsMissingProducts(t *testing.T) {
	repo, h := seedStatusFixture(t)
	delete(repo.products, "p1")

	rec := postStatus(h, `{"orderId":"order-1","newStatus":"approved"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp updateOrderStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Adjusted)
	assert.Equal(t, []string{"p1"}, resp.MissingProducts)
}
