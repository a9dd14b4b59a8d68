// backend/internal/adapters/in/http/shop/handler/product_handler.go
package shopHandler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	usecase "coliseum/internal/application/usecase"
	productdom "coliseum/internal/domain/product"
)

// ProductHandler serves the catalog:
//   - GET  /api/products       (public)
//   - POST /api/products       (admin; router wraps this route in AdminAuth)
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

func NewProductHandler(uc *usecase.ProductUsecase) http.Handler {
	return &ProductHandler{uc: uc}
}

type productResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toProductResponse(p productdom.Product) productResponse {
	return productResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (h *ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeJSONError(w, http.StatusInternalServerError, "product usecase is not configured")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.post(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	products, err := h.uc.List(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusBadGateway, "failed to fetch products")
		return
	}

	// Always an array, never null; the storefront iterates the response.
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

type createProductRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	ImageURL string  `json:"imageUrl"`
}

func (h *ProductHandler) post(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "failed to read body")
		return
	}
	_ = r.Body.Close()

	var req createProductRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	p, err := h.uc.Create(r.Context(), usecase.CreateProductInput{
		Name:     req.Name,
		Price:    req.Price,
		Stock:    req.Stock,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, productdom.ErrInvalidName),
			errors.Is(err, productdom.ErrInvalidPrice),
			errors.Is(err, productdom.ErrInvalidStock):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		default:
			writeJSONError(w, http.StatusBadGateway, "failed to create product")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toProductResponse(p))
}
