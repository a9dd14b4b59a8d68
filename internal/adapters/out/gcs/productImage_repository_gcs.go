// backend/internal/adapters/out/gcs/productImage_repository_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	gcscommon "coliseum/internal/adapters/out/gcs/common"
)

// ProductImageRepositoryGCS stores product images under products/ in a single
// bucket.
//
// Public access:
//   - The bucket is expected to carry IAM "allUsers: Storage Object Viewer"
//     (uniform access), so uploaded objects are publicly readable without
//     per-object ACL changes.
type ProductImageRepositoryGCS struct {
	Client *storage.Client
	Bucket string
}

func NewProductImageRepositoryGCS(client *storage.Client, bucket string) *ProductImageRepositoryGCS {
	return &ProductImageRepositoryGCS{
		Client: client,
		Bucket: strings.TrimSpace(bucket),
	}
}

const productImagePrefix = "products/"

// Upload writes data as a new object and returns its public URL.
// Object names are unique per upload; images are immutable once written.
func (r *ProductImageRepositoryGCS) Upload(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("productImage_repository_gcs: storage client is nil")
	}
	if strings.TrimSpace(r.Bucket) == "" {
		return "", errors.New("productImage_repository_gcs: bucket is empty")
	}
	if len(data) == 0 {
		return "", errors.New("productImage_repository_gcs: empty file")
	}

	objPath := productImagePrefix + objectName(fileName)

	oh := r.Client.Bucket(r.Bucket).Object(objPath)
	w := oh.NewWriter(ctx)
	if ct := strings.TrimSpace(contentType); ct != "" {
		w.ContentType = ct
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("productImage_repository_gcs: write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("productImage_repository_gcs: close writer: %w", err)
	}

	return gcscommon.GCSPublicURL(r.Bucket, objPath, ""), nil
}

// objectName builds "<unix-ms>_<uuid><ext>"; the original file name only
// contributes its extension, so user input never shapes object paths.
func objectName(fileName string) string {
	ext := strings.ToLower(path.Ext(strings.TrimSpace(fileName)))
	return fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
}
