// backend/internal/adapters/in/http/shop/handler/order_status_handler.go
package shopHandler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	usecase "coliseum/internal/application/usecase"
	orderdom "coliseum/internal/domain/order"
)

// OrderStatusHandler serves POST /api/orders/status: the admin/operator entry
// point into order reconciliation. The webhook path reaches the same usecase.
type OrderStatusHandler struct {
	uc *usecase.ReconcileUsecase
}

func NewOrderStatusHandler(uc *usecase.ReconcileUsecase) http.Handler {
	return &OrderStatusHandler{uc: uc}
}

type updateOrderStatusRequest struct {
	OrderID   string `json:"orderId"`
	NewStatus string `json:"newStatus"`
}

type updateOrderStatusResponse struct {
	OrderID         string   `json:"orderId"`
	Status          string   `json:"status"`
	Adjusted        bool     `json:"adjusted"`
	MissingProducts []string `json:"missingProducts,omitempty"`
	Message         string   `json:"message"`
}

func (h *OrderStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if h.uc == nil {
		writeJSONError(w, http.StatusInternalServerError, "reconcile usecase is not configured")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "failed to read body")
		return
	}
	_ = r.Body.Close()

	var req updateOrderStatusRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	res, err := h.uc.ApplyStatus(r.Context(), req.OrderID, req.NewStatus)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrReconcileOrderIDRequired),
			errors.Is(err, usecase.ErrReconcileStatusRequired),
			errors.Is(err, orderdom.ErrInvalidStatus):
			writeJSONError(w, http.StatusBadRequest, "orderId and newStatus are required")
		case errors.Is(err, orderdom.ErrNotFound):
			writeJSONError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, orderdom.ErrInconsistent):
			// Stock moved but the status write did not land; an operator has
			// to look at this one, so it must not read like a generic 500.
			writeJSONError(w, http.StatusInternalServerError, "inconsistent: stock adjusted but status not persisted")
		default:
			writeJSONError(w, http.StatusBadGateway, "order store unavailable")
		}
		return
	}

	msg := "order status updated"
	if res.Adjusted {
		msg = "order status updated and stock adjusted"
	}

	writeJSON(w, http.StatusOK, updateOrderStatusResponse{
		OrderID:         res.Order.ID,
		Status:          string(res.Order.Status),
		Adjusted:        res.Adjusted,
		MissingProducts: res.MissingProducts,
		Message:         msg,
	})
}
