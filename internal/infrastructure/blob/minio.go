// Package blob stores uploaded listing images in S3-compatible object
// storage (MinIO).
package blob

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/wanderlust-travel/wanderlust/internal/core/domain"
)

// minioAPI is the slice of *minio.Client the store uses; tests substitute a
// fake without a running MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucket, object string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucket, object string, opts minio.RemoveObjectOptions) error
}

type minioWrapper struct{ c *minio.Client }

func (w minioWrapper) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return w.c.BucketExists(ctx, bucket)
}
func (w minioWrapper) MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error {
	return w.c.MakeBucket(ctx, bucket, opts)
}
func (w minioWrapper) PutObject(ctx context.Context, bucket, object string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return w.c.PutObject(ctx, bucket, object, r, size, opts)
}
func (w minioWrapper) RemoveObject(ctx context.Context, bucket, object string, opts minio.RemoveObjectOptions) error {
	return w.c.RemoveObject(ctx, bucket, object, opts)
}

// ImageStore uploads listing images and returns the {url, filename} pair
// stored on the listing document.
type ImageStore struct {
	api     minioAPI
	bucket  string
	baseURL string
}

// NewImageStore wraps a real *minio.Client and ensures the bucket exists.
// baseURL is the public endpoint objects are served from.
func NewImageStore(ctx context.Context, client *minio.Client, bucket, baseURL string) (*ImageStore, error) {
	return newImageStoreWithAPI(ctx, minioWrapper{c: client}, bucket, baseURL)
}

func newImageStoreWithAPI(ctx context.Context, api minioAPI, bucket, baseURL string) (*ImageStore, error) {
	s := &ImageStore{api: api, bucket: bucket, baseURL: baseURL}

	exists, err := api.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := api.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}
	return s, nil
}

// UploadImage stores the file under a unique object name derived from the
// original filename's extension and returns the public reference.
func (s *ImageStore) UploadImage(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (domain.Image, error) {
	object := "listing-" + uuid.NewString() + path.Ext(filename)

	_, err := s.api.PutObject(ctx, s.bucket, object, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return domain.Image{}, fmt.Errorf("upload image: %w", err)
	}

	return domain.Image{
		URL:      fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, object),
		Filename: object,
	}, nil
}

// RemoveImage deletes an uploaded object. Removing a missing object is not
// an error.
func (s *ImageStore) RemoveImage(ctx context.Context, filename string) error {
	if err := s.api.RemoveObject(ctx, s.bucket, filename, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}
