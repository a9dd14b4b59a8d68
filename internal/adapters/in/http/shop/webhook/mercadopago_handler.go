// backend/internal/adapters/in/http/shop/webhook/mercadopago_handler.go
package webhook

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	usecase "coliseum/internal/application/usecase"
)

// MercadoPagoHandler receives payment notifications from Mercado Pago and
// drives order reconciliation through the notification usecase.
//
// Response codes matter here: Mercado Pago retries anything that is not 2xx,
// so only transient dependency failures return 500. Malformed or irrelevant
// notifications are acknowledged with 200 to stop redelivery.
type MercadoPagoHandler struct {
	uc *usecase.NotificationUsecase
}

func NewMercadoPagoHandler(uc *usecase.NotificationUsecase) http.Handler {
	return &MercadoPagoHandler{uc: uc}
}

const maxWebhookBodyBytes = 64 << 10

type webhookRequest struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

type webhookResponse struct {
	Received bool   `json:"received"`
	OrderID  string `json:"orderId,omitempty"`
	Status   string `json:"status,omitempty"`
}

func (h *MercadoPagoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.uc == nil {
		http.Error(w, "webhook usecase is not configured", http.StatusInternalServerError)
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
	if err != nil {
		log.Printf("[webhook] WARN: failed to read body: %v", err)
		writeAck(w, webhookResponse{Received: true})
		return
	}

	var req webhookRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		log.Printf("[webhook] WARN: unparseable notification body (%d bytes)", len(raw))
		writeAck(w, webhookResponse{Received: true})
		return
	}

	out, err := h.uc.HandlePaymentNotification(r.Context(), usecase.WebhookInput{
		Type:    req.Type,
		DataID:  req.Data.ID,
		RawBody: string(raw),
	})
	if err != nil {
		log.Printf("[webhook] ERROR: notification %s/%s: %v", req.Type, req.Data.ID, err)
		http.Error(w, "notification processing failed", http.StatusInternalServerError)
		return
	}

	resp := webhookResponse{Received: true}
	if !out.Ignored {
		resp.OrderID = out.OrderID
		resp.Status = out.AppliedStatus
	}
	writeAck(w, resp)
}

func writeAck(w http.ResponseWriter, resp webhookResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}
