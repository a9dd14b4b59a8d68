// backend/internal/adapters/in/http/shop/handler/upload_handler.go
package shopHandler

import (
	"errors"
	"io"
	"net/http"

	usecase "coliseum/internal/application/usecase"
)

// UploadHandler serves POST /api/upload: multipart product image upload.
// Admin-only; the router wraps it in AdminAuth.
type UploadHandler struct {
	uc *usecase.UploadUsecase
}

func NewUploadHandler(uc *usecase.UploadUsecase) http.Handler {
	return &UploadHandler{uc: uc}
}

type uploadResponse struct {
	URL string `json:"url"`
}

func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if h.uc == nil {
		writeJSONError(w, http.StatusInternalServerError, "upload usecase is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, usecase.MaxUploadBytes+1)
	if err := r.ParseMultipartForm(usecase.MaxUploadBytes); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "no file received")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	url, err := h.uc.UploadProductImage(r.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUploadEmptyFile), errors.Is(err, usecase.ErrUploadTooLarge):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		default:
			writeJSONError(w, http.StatusBadGateway, "image upload failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{URL: url})
}
