// backend/internal/application/usecase/upload_usecase.go
package usecase

import (
	"context"
	"errors"
)

// ImageStore is an outbound port backed by the GCS adapter.
type ImageStore interface {
	Upload(ctx context.Context, fileName, contentType string, data []byte) (string, error)
}

// UploadUsecase stores product images and hands back their public URL.
type UploadUsecase struct {
	images ImageStore
}

func NewUploadUsecase(images ImageStore) *UploadUsecase {
	return &UploadUsecase{images: images}
}

var (
	ErrUploadStoreMissing = errors.New("upload: image store is not configured")
	ErrUploadEmptyFile    = errors.New("upload: no file received")
	ErrUploadTooLarge     = errors.New("upload: file exceeds size limit")
)

// MaxUploadBytes caps a single product image.
const MaxUploadBytes = 10 << 20 // 10MB

func (u *UploadUsecase) UploadProductImage(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	if u.images == nil {
		return "", ErrUploadStoreMissing
	}
	if len(data) == 0 {
		return "", ErrUploadEmptyFile
	}
	if len(data) > MaxUploadBytes {
		return "", ErrUploadTooLarge
	}
	return u.images.Upload(ctx, fileName, contentType, data)
}
