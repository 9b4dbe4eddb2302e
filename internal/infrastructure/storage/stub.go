package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/propertyhub/backend/internal/application/upload"
	"github.com/propertyhub/backend/internal/domain/shared"
)

// memoryObject is a stored object with its metadata
type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryObjectStorage is an in-memory implementation of ObjectStorageService
// for development and tests. Presigned URLs are fake but stable; uploads are
// simulated with Put.
type MemoryObjectStorage struct {
	mu      sync.RWMutex
	objects map[string]memoryObject

	// BaseURL is the base URL for generated upload/download URLs
	BaseURL string
}

// NewMemoryObjectStorage creates a new in-memory object storage
func NewMemoryObjectStorage() *MemoryObjectStorage {
	return &MemoryObjectStorage{
		objects: make(map[string]memoryObject),
		BaseURL: "https://storage.example.com",
	}
}

// Ensure MemoryObjectStorage implements ObjectStorageService
var _ upload.ObjectStorageService = (*MemoryObjectStorage)(nil)

// Put stores an object directly, simulating a client upload against a
// presigned URL.
func (s *MemoryObjectStorage) Put(storageKey string, data []byte, contentType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storageKey] = memoryObject{data: data, contentType: contentType}
}

// GenerateUploadURL generates a fake presigned upload URL
func (s *MemoryObjectStorage) GenerateUploadURL(
	_ context.Context,
	storageKey, _ string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/upload/" + storageKey, expiresAt, nil
}

// GenerateDownloadURL generates a fake presigned download URL
func (s *MemoryObjectStorage) GenerateDownloadURL(
	_ context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/download/" + storageKey, expiresAt, nil
}

// ConfirmUpload verifies the object was stored with Put. Image objects get a
// copy stored under the thumbnail key in place of a real resize.
func (s *MemoryObjectStorage) ConfirmUpload(_ context.Context, storageKey, thumbnailKey string) (*upload.ConfirmResult, error) {
	if storageKey == "" {
		return nil, errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[storageKey]
	if !ok {
		return nil, shared.ErrNotFound
	}

	result := &upload.ConfirmResult{
		StorageKey:  storageKey,
		ContentType: obj.contentType,
		Size:        int64(len(obj.data)),
	}

	if thumbnailKey != "" && upload.IsImageContentType(obj.contentType) {
		s.objects[thumbnailKey] = memoryObject{data: obj.data, contentType: "image/jpeg"}
		result.ThumbnailKey = thumbnailKey
	}

	return result, nil
}

// DeleteObjects removes objects, ignoring keys that are already gone
func (s *MemoryObjectStorage) DeleteObjects(_ context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.objects, key)
	}
	return nil
}

// ObjectExists checks if an object was stored
func (s *MemoryObjectStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.objects[storageKey]
	return ok, nil
}
