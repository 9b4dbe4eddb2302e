// Package upload implements the storage-key conventions shared by the photo
// and receipt upload flows. Keys embed the owning tenant as their leading
// path segment; the confirm step parses it back out and checks it against
// the caller before any row is created.
package upload

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propertyhub/backend/internal/domain/shared"
)

// Category is the second path segment of a storage key
type Category string

const (
	CategoryPhotos   Category = "photos"
	CategoryReceipts Category = "receipts"
)

// IsValid checks if the category is known
func (c Category) IsValid() bool {
	return c == CategoryPhotos || c == CategoryReceipts
}

// MaxUploadSize is the maximum accepted upload size (25MB)
const MaxUploadSize = 25 * 1024 * 1024

// PhotoContentTypes is the whitelist for property photos.
// SVG is excluded because it can carry scripts.
var PhotoContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ReceiptContentTypes is the whitelist for receipts; scans and PDFs.
var ReceiptContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// IsAllowedContentType checks a content type against the whitelist for the category
func IsAllowedContentType(category Category, contentType string) bool {
	ct := strings.ToLower(contentType)
	switch category {
	case CategoryPhotos:
		return PhotoContentTypes[ct]
	case CategoryReceipts:
		return ReceiptContentTypes[ct]
	default:
		return false
	}
}

// IsImageContentType reports whether the content type is an image
func IsImageContentType(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(contentType), "image/")
}

// BuildKey generates a storage key of the form
// {tenantId}/{category}/{year}/{generatedId}{ext}. The extension is taken
// from the original file name.
func BuildKey(tenantID uuid.UUID, category Category, fileName string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("%s/%s/%d/%s%s",
		tenantID.String(),
		category,
		now.Year(),
		uuid.New().String(),
		ext,
	)
}

// ThumbnailKeyFor derives the parallel thumbnail key for a storage key by
// inserting a thumbnails segment before the object name.
func ThumbnailKeyFor(storageKey string) string {
	dir, name := path.Split(storageKey)
	return dir + "thumbnails/" + name
}

// ParseTenantID extracts the tenant ID from the leading path segment of a
// storage key. A key that does not have the expected shape is a validation
// failure; comparing the returned tenant against the caller is the caller's
// job and a mismatch there is an authorization failure.
func ParseTenantID(storageKey string) (uuid.UUID, error) {
	if storageKey == "" || strings.HasPrefix(storageKey, "/") || strings.Contains(storageKey, "..") {
		return uuid.Nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Malformed storage key")
	}
	segments := strings.Split(storageKey, "/")
	if len(segments) < 4 {
		return uuid.Nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Malformed storage key")
	}
	tenantID, err := uuid.Parse(segments[0])
	if err != nil {
		return uuid.Nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Malformed storage key")
	}
	return tenantID, nil
}

// VerifyTenant parses the key's tenant segment and checks it against the
// caller. Mismatches report an authorization error without revealing whether
// the key belongs to a real tenant.
func VerifyTenant(storageKey string, callerTenant uuid.UUID) error {
	keyTenant, err := ParseTenantID(storageKey)
	if err != nil {
		return err
	}
	if keyTenant != callerTenant {
		return shared.NewDomainError("STORAGE_KEY_TENANT_MISMATCH", "Storage key does not belong to the caller")
	}
	return nil
}
