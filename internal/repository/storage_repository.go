package repository

import (
	"context"
	"io"
)

// StorageRepository is the object-store contract the services depend on.
// MinIORepository is the production implementation.
type StorageRepository interface {
	UploadObject(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) error
	DownloadObject(ctx context.Context, bucket, key string) (io.ReadCloser, int64, error)
	DeleteObject(ctx context.Context, bucket, key string) error
	ObjectExists(ctx context.Context, bucket, key string) (bool, error)
}
