package media

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propertyhub/backend/internal/domain/shared"
)

// MaxPhotoFileSize is the maximum allowed photo size (25MB)
const MaxPhotoFileSize = 25 * 1024 * 1024

// PropertyPhoto is an image attached to a property. Photos are hard-deleted
// together with their backing storage objects; they carry no financial
// references that would need an audit trail.
type PropertyPhoto struct {
	shared.TenantAggregateRoot
	PropertyID   uuid.UUID  // Owning property
	FileName     string     // Original file name
	FileSize     int64      // File size in bytes
	ContentType  string     // MIME type (e.g., "image/jpeg")
	StorageKey   string     // Key of the full-size object
	ThumbnailKey string     // Key of the thumbnail object, empty if generation failed
	DisplayOrder int        // Presentation order (0-based)
	IsPrimary    bool       // Representative image for the property
	UploadedBy   *uuid.UUID // User who uploaded the file
}

// NewPropertyPhoto creates a photo record for a confirmed upload.
// displayOrder and isPrimary are decided by the caller from the current
// photo set of the property.
func NewPropertyPhoto(
	tenantID uuid.UUID,
	propertyID uuid.UUID,
	fileName string,
	fileSize int64,
	contentType string,
	storageKey string,
	thumbnailKey string,
	displayOrder int,
	isPrimary bool,
	uploadedBy *uuid.UUID,
) (*PropertyPhoto, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT_ID", "Tenant ID cannot be empty")
	}
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY_ID", "Property ID cannot be empty")
	}
	if err := validateFileName(fileName); err != nil {
		return nil, err
	}
	if err := validateFileSize(fileSize); err != nil {
		return nil, err
	}
	if err := validateContentType(contentType); err != nil {
		return nil, err
	}
	if err := validateStorageKey(storageKey); err != nil {
		return nil, err
	}
	if displayOrder < 0 {
		return nil, shared.NewDomainError("INVALID_DISPLAY_ORDER", "Display order cannot be negative")
	}

	photo := &PropertyPhoto{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PropertyID:          propertyID,
		FileName:            fileName,
		FileSize:            fileSize,
		ContentType:         contentType,
		StorageKey:          storageKey,
		ThumbnailKey:        thumbnailKey,
		DisplayOrder:        displayOrder,
		IsPrimary:           isPrimary,
		UploadedBy:          uploadedBy,
	}

	photo.AddDomainEvent(NewPropertyPhotoAddedEvent(photo))

	return photo, nil
}

// MarkPrimary designates this photo as the property's primary photo
func (p *PropertyPhoto) MarkPrimary() {
	if p.IsPrimary {
		return
	}
	p.IsPrimary = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPropertyPhotoPrimaryChangedEvent(p))
}

// ClearPrimary removes the primary designation from this photo
func (p *PropertyPhoto) ClearPrimary() {
	if !p.IsPrimary {
		return
	}
	p.IsPrimary = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetDisplayOrder sets the presentation order of the photo
func (p *PropertyPhoto) SetDisplayOrder(order int) error {
	if order < 0 {
		return shared.NewDomainError("INVALID_DISPLAY_ORDER", "Display order cannot be negative")
	}
	p.DisplayOrder = order
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// HasThumbnail returns true if a thumbnail object exists for this photo
func (p *PropertyPhoto) HasThumbnail() bool {
	return p.ThumbnailKey != ""
}

// StorageKeys returns all object keys backing this photo
func (p *PropertyPhoto) StorageKeys() []string {
	keys := []string{p.StorageKey}
	if p.ThumbnailKey != "" {
		keys = append(keys, p.ThumbnailKey)
	}
	return keys
}

// validation functions

func validateFileName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot exceed 255 characters")
	}
	for _, r := range name {
		if r < 32 || r == 127 {
			return shared.NewDomainError("INVALID_FILE_NAME", "File name contains invalid characters")
		}
	}
	if strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot contain path separators")
	}
	return nil
}

func validateFileSize(size int64) error {
	if size <= 0 {
		return shared.NewDomainError("INVALID_FILE_SIZE", "File size must be greater than 0")
	}
	if size > MaxPhotoFileSize {
		return shared.NewDomainError("FILE_TOO_LARGE", "File size cannot exceed 25MB")
	}
	return nil
}

func validateContentType(contentType string) error {
	if contentType == "" {
		return shared.NewDomainError("INVALID_CONTENT_TYPE", "Content type cannot be empty")
	}
	if len(contentType) > 100 {
		return shared.NewDomainError("INVALID_CONTENT_TYPE", "Content type cannot exceed 100 characters")
	}
	if !strings.Contains(contentType, "/") ||
		strings.HasPrefix(contentType, "/") || strings.HasSuffix(contentType, "/") {
		return shared.NewDomainError("INVALID_CONTENT_TYPE", "Content type must be in type/subtype format")
	}
	return nil
}

func validateStorageKey(key string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}
	if len(key) > 500 {
		return shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot exceed 500 characters")
	}
	// Prevent path traversal and absolute paths
	if strings.Contains(key, "..") {
		return shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot contain path traversal sequences")
	}
	if strings.HasPrefix(key, "/") {
		return shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key must be a relative path")
	}
	return nil
}
