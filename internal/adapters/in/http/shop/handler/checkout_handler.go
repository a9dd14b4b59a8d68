// backend/internal/adapters/in/http/shop/handler/checkout_handler.go
package shopHandler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	usecase "coliseum/internal/application/usecase"
	orderdom "coliseum/internal/domain/order"
)

// CheckoutHandler serves POST /api/checkout: persist the order, then request
// a provider payment preference and hand the buyer the redirect URL.
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) http.Handler {
	return &CheckoutHandler{uc: uc}
}

// Wire shapes keep the storefront's original field names (unit_price etc.).
// unit_price arrives as string or number depending on the storefront build,
// so it decodes leniently.
type checkoutItemRequest struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice json.RawMessage `json:"unit_price"`
}

type checkoutRequest struct {
	Items []checkoutItemRequest `json:"items"`
	Payer struct {
		Email string `json:"email"`
	} `json:"payer"`
}

type checkoutResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
	OrderID   string `json:"orderId"`
}

func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if h.uc == nil {
		writeJSONError(w, http.StatusInternalServerError, "checkout usecase is not configured")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "failed to read body")
		return
	}
	_ = r.Body.Close()

	var req checkoutRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	items := make([]usecase.CheckoutItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.CheckoutItemInput{
			ProductID: it.ProductID,
			Title:     it.Title,
			Quantity:  it.Quantity,
			UnitPrice: parsePrice(it.UnitPrice),
		})
	}

	res, err := h.uc.Checkout(r.Context(), usecase.CheckoutInput{
		Items:      items,
		PayerEmail: req.Payer.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCheckoutItemsEmpty),
			errors.Is(err, orderdom.ErrInvalidItems),
			errors.Is(err, orderdom.ErrInvalidItem),
			errors.Is(err, orderdom.ErrInvalidPayerEmail):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		default:
			writeJSONError(w, http.StatusBadGateway, "failed to create payment preference")
		}
		return
	}

	writeJSON(w, http.StatusOK, checkoutResponse{
		ID:        res.PreferenceID,
		InitPoint: res.InitPoint,
		OrderID:   res.OrderID,
	})
}

// parsePrice accepts numbers and numeric strings; anything else is 0.
func parsePrice(raw json.RawMessage) float64 {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0
	}
	s = strings.Trim(s, `"`)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
