// backend/internal/adapters/in/http/shop/router.go
package shop

import (
	"log"
	"net/http"
)

// Deps is the storefront handler set.
type Deps struct {
	Product     http.Handler
	Checkout    http.Handler
	OrderStatus http.Handler
	Upload      http.Handler
	Webhook     http.Handler
}

// handleSafe registers pattern with h.
// If h is nil, it logs and registers NotFoundHandler instead (so Cloud Run won't crash).
func handleSafe(mux *http.ServeMux, pattern string, h http.Handler, name string) {
	if h == nil {
		log.Printf("[shop.router] WARN: nil handler: %s pattern=%s (registering NotFoundHandler)", name, pattern)
		h = http.NotFoundHandler()
	}
	mux.Handle(pattern, h)
}

// Register registers storefront routes onto mux.
func Register(mux *http.ServeMux, deps Deps) {
	if mux == nil {
		return
	}

	// products (GET list, POST create)
	handleSafe(mux, "/api/products", deps.Product, "Product")
	handleSafe(mux, "/api/products/", deps.Product, "Product")

	// checkout (POST)
	handleSafe(mux, "/api/checkout", deps.Checkout, "Checkout")

	// order status reconciliation (POST)
	handleSafe(mux, "/api/orders/status", deps.OrderStatus, "OrderStatus")

	// product image upload (POST multipart)
	handleSafe(mux, "/api/upload", deps.Upload, "Upload")

	// payment provider notifications (POST)
	handleSafe(mux, "/api/webhook", deps.Webhook, "Webhook")
	handleSafe(mux, "/api/webhook/", deps.Webhook, "Webhook")
}
