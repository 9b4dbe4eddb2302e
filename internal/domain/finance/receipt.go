package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propertyhub/backend/internal/domain/shared"
)

// MaxReceiptFileSize is the maximum allowed receipt size (25MB)
const MaxReceiptFileSize = 25 * 1024 * 1024

// Receipt is an uploaded financial document. A receipt starts unprocessed
// and can be converted into a linked expense exactly once; after that its
// processing fields are immutable. Receipts are soft-deleted because a
// processed receipt may already back an expense used in reporting.
type Receipt struct {
	shared.TenantAggregateRoot
	FileName     string     // Original file name
	FileSize     int64      // File size in bytes
	ContentType  string     // MIME type
	StorageKey   string     // Key of the uploaded object
	ThumbnailKey string     // Key of the thumbnail object, empty if generation failed
	PropertyID   *uuid.UUID // Associated property, set at upload or at processing
	ExpenseID    *uuid.UUID // Expense created by processing
	ProcessedAt  *time.Time // When the receipt was processed
	DeletedAt    *time.Time // Soft-delete timestamp
	UploadedBy   *uuid.UUID // User who uploaded the file
}

// NewReceipt creates a receipt record for a confirmed upload
func NewReceipt(
	tenantID uuid.UUID,
	fileName string,
	fileSize int64,
	contentType string,
	storageKey string,
	thumbnailKey string,
	propertyID *uuid.UUID,
	uploadedBy *uuid.UUID,
) (*Receipt, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT_ID", "Tenant ID cannot be empty")
	}
	if err := validateReceiptFileName(fileName); err != nil {
		return nil, err
	}
	if fileSize <= 0 {
		return nil, shared.NewDomainError("INVALID_FILE_SIZE", "File size must be greater than 0")
	}
	if fileSize > MaxReceiptFileSize {
		return nil, shared.NewDomainError("FILE_TOO_LARGE", "File size cannot exceed 25MB")
	}
	if err := validateReceiptContentType(contentType); err != nil {
		return nil, err
	}
	if err := validateReceiptStorageKey(storageKey); err != nil {
		return nil, err
	}

	receipt := &Receipt{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		FileName:            fileName,
		FileSize:            fileSize,
		ContentType:         contentType,
		StorageKey:          storageKey,
		ThumbnailKey:        thumbnailKey,
		PropertyID:          propertyID,
		UploadedBy:          uploadedBy,
	}

	receipt.AddDomainEvent(NewReceiptUploadedEvent(receipt))

	return receipt, nil
}

// IsProcessed returns true once the receipt has been converted to an expense
func (r *Receipt) IsProcessed() bool {
	return r.ProcessedAt != nil
}

// IsDeleted returns true if the receipt has been soft-deleted
func (r *Receipt) IsDeleted() bool {
	return r.DeletedAt != nil
}

// Process links the receipt to the expense created from it. The transition
// is allowed at most once; the repository re-checks the unprocessed state at
// write time so concurrent callers cannot both succeed.
func (r *Receipt) Process(expenseID, propertyID uuid.UUID) error {
	if r.IsDeleted() {
		return shared.ErrNotFound
	}
	if r.IsProcessed() {
		return shared.NewDomainError("RECEIPT_ALREADY_PROCESSED", "Receipt has already been processed")
	}
	if expenseID == uuid.Nil {
		return shared.NewDomainError("INVALID_EXPENSE_ID", "Expense ID cannot be empty")
	}
	if propertyID == uuid.Nil {
		return shared.NewDomainError("INVALID_PROPERTY_ID", "Property ID cannot be empty")
	}

	now := time.Now()
	r.ProcessedAt = &now
	r.ExpenseID = &expenseID
	r.PropertyID = &propertyID
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewReceiptLinkedEvent(r))

	return nil
}

// SoftDelete marks the receipt as deleted
func (r *Receipt) SoftDelete() error {
	if r.IsDeleted() {
		return shared.NewDomainError("RECEIPT_ALREADY_DELETED", "Receipt is already deleted")
	}

	now := time.Now()
	r.DeletedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewReceiptDeletedEvent(r))

	return nil
}

// HasThumbnail returns true if a thumbnail object exists for this receipt
func (r *Receipt) HasThumbnail() bool {
	return r.ThumbnailKey != ""
}

// StorageKeys returns all object keys backing this receipt
func (r *Receipt) StorageKeys() []string {
	keys := []string{r.StorageKey}
	if r.ThumbnailKey != "" {
		keys = append(keys, r.ThumbnailKey)
	}
	return keys
}

func validateReceiptFileName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot exceed 255 characters")
	}
	if strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot contain path separators")
	}
	return nil
}

func validateReceiptContentType(contentType string) error {
	if contentType == "" {
		return shared.NewDomainError("INVALID_CONTENT_TYPE", "Content type cannot be empty")
	}
	if !strings.Contains(contentType, "/") ||
		strings.HasPrefix(contentType, "/") || strings.HasSuffix(contentType, "/") {
		return shared.NewDomainError("INVALID_CONTENT_TYPE", "Content type must be in type/subtype format")
	}
	return nil
}

func validateReceiptStorageKey(key string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}
	if len(key) > 500 {
		return shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot exceed 500 characters")
	}
	if strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key must be a relative path without traversal sequences")
	}
	return nil
}
