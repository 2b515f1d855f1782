package ports

import (
	"context"
	"io"

	"github.com/wanderlust-travel/wanderlust/internal/core/domain"
)

// BlobStore uploads listing images to object storage and returns the public
// reference stored on the listing document.
type BlobStore interface {
	UploadImage(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (domain.Image, error)
	RemoveImage(ctx context.Context, filename string) error
}
