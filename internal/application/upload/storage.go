package upload

import (
	"context"
	"time"
)

// ConfirmResult reports what the storage backend actually observed when an
// upload was confirmed. ThumbnailKey is empty when thumbnail generation
// failed; the record is still created without one.
type ConfirmResult struct {
	StorageKey   string
	ThumbnailKey string
	ContentType  string
	Size         int64
}

// ObjectStorageService is the contract with the object storage backend.
// Implemented by the infrastructure layer (S3 compatible stores).
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for a direct client upload
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading an object
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// ConfirmUpload verifies the object exists and generates its thumbnail.
	// Returns ErrNotFound when the object was never uploaded.
	ConfirmUpload(ctx context.Context, storageKey, thumbnailKey string) (*ConfirmResult, error)

	// DeleteObjects removes objects, skipping keys that are already gone.
	// Failures are reported but callers treat them as non-fatal.
	DeleteObjects(ctx context.Context, keys []string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}
