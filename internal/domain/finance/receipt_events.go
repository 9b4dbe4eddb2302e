package finance

import (
	"github.com/google/uuid"
	"github.com/propertyhub/backend/internal/domain/shared"
)

// Aggregate type constant for Receipt
const AggregateTypeReceipt = "Receipt"

// Event type constants for Receipt
const (
	EventTypeReceiptUploaded = "ReceiptUploaded"
	EventTypeReceiptLinked   = "ReceiptLinked"
	EventTypeReceiptDeleted  = "ReceiptDeleted"
)

// ReceiptUploadedEvent is published when a confirmed upload becomes a receipt record
type ReceiptUploadedEvent struct {
	shared.BaseDomainEvent
	ReceiptID   uuid.UUID  `json:"receipt_id"`
	PropertyID  *uuid.UUID `json:"property_id,omitempty"`
	FileName    string     `json:"file_name"`
	ContentType string     `json:"content_type"`
	FileSize    int64      `json:"file_size"`
	StorageKey  string     `json:"storage_key"`
}

// NewReceiptUploadedEvent creates a new ReceiptUploadedEvent
func NewReceiptUploadedEvent(receipt *Receipt) *ReceiptUploadedEvent {
	return &ReceiptUploadedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeReceiptUploaded,
			AggregateTypeReceipt,
			receipt.ID,
			receipt.TenantID,
		),
		ReceiptID:   receipt.ID,
		PropertyID:  receipt.PropertyID,
		FileName:    receipt.FileName,
		ContentType: receipt.ContentType,
		FileSize:    receipt.FileSize,
		StorageKey:  receipt.StorageKey,
	}
}

// ReceiptLinkedEvent is published after a receipt has been processed into an
// expense. It is stored with the processing transaction and relayed to the
// notification service after commit.
type ReceiptLinkedEvent struct {
	shared.BaseDomainEvent
	ReceiptID  uuid.UUID `json:"receipt_id"`
	ExpenseID  uuid.UUID `json:"expense_id"`
	PropertyID uuid.UUID `json:"property_id"`
}

// NewReceiptLinkedEvent creates a new ReceiptLinkedEvent
func NewReceiptLinkedEvent(receipt *Receipt) *ReceiptLinkedEvent {
	evt := &ReceiptLinkedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeReceiptLinked,
			AggregateTypeReceipt,
			receipt.ID,
			receipt.TenantID,
		),
		ReceiptID: receipt.ID,
	}
	if receipt.ExpenseID != nil {
		evt.ExpenseID = *receipt.ExpenseID
	}
	if receipt.PropertyID != nil {
		evt.PropertyID = *receipt.PropertyID
	}
	return evt
}

// ReceiptDeletedEvent is published when a receipt is soft-deleted
type ReceiptDeletedEvent struct {
	shared.BaseDomainEvent
	ReceiptID    uuid.UUID `json:"receipt_id"`
	StorageKey   string    `json:"storage_key"`
	ThumbnailKey string    `json:"thumbnail_key,omitempty"`
}

// NewReceiptDeletedEvent creates a new ReceiptDeletedEvent
func NewReceiptDeletedEvent(receipt *Receipt) *ReceiptDeletedEvent {
	return &ReceiptDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeReceiptDeleted,
			AggregateTypeReceipt,
			receipt.ID,
			receipt.TenantID,
		),
		ReceiptID:    receipt.ID,
		StorageKey:   receipt.StorageKey,
		ThumbnailKey: receipt.ThumbnailKey,
	}
}
