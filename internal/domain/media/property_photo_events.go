package media

import (
	"github.com/google/uuid"
	"github.com/propertyhub/backend/internal/domain/shared"
)

// Aggregate type constant for PropertyPhoto
const AggregateTypePropertyPhoto = "PropertyPhoto"

// Event type constants for PropertyPhoto
const (
	EventTypePropertyPhotoAdded          = "PropertyPhotoAdded"
	EventTypePropertyPhotoPrimaryChanged = "PropertyPhotoPrimaryChanged"
	EventTypePropertyPhotoDeleted        = "PropertyPhotoDeleted"
)

// PropertyPhotoAddedEvent is published when a confirmed upload becomes a photo record
type PropertyPhotoAddedEvent struct {
	shared.BaseDomainEvent
	PhotoID      uuid.UUID `json:"photo_id"`
	PropertyID   uuid.UUID `json:"property_id"`
	FileName     string    `json:"file_name"`
	ContentType  string    `json:"content_type"`
	FileSize     int64     `json:"file_size"`
	StorageKey   string    `json:"storage_key"`
	IsPrimary    bool      `json:"is_primary"`
	DisplayOrder int       `json:"display_order"`
}

// NewPropertyPhotoAddedEvent creates a new PropertyPhotoAddedEvent
func NewPropertyPhotoAddedEvent(photo *PropertyPhoto) *PropertyPhotoAddedEvent {
	return &PropertyPhotoAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypePropertyPhotoAdded,
			AggregateTypePropertyPhoto,
			photo.ID,
			photo.TenantID,
		),
		PhotoID:      photo.ID,
		PropertyID:   photo.PropertyID,
		FileName:     photo.FileName,
		ContentType:  photo.ContentType,
		FileSize:     photo.FileSize,
		StorageKey:   photo.StorageKey,
		IsPrimary:    photo.IsPrimary,
		DisplayOrder: photo.DisplayOrder,
	}
}

// PropertyPhotoPrimaryChangedEvent is published when a photo becomes primary
type PropertyPhotoPrimaryChangedEvent struct {
	shared.BaseDomainEvent
	PhotoID    uuid.UUID `json:"photo_id"`
	PropertyID uuid.UUID `json:"property_id"`
}

// NewPropertyPhotoPrimaryChangedEvent creates a new PropertyPhotoPrimaryChangedEvent
func NewPropertyPhotoPrimaryChangedEvent(photo *PropertyPhoto) *PropertyPhotoPrimaryChangedEvent {
	return &PropertyPhotoPrimaryChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypePropertyPhotoPrimaryChanged,
			AggregateTypePropertyPhoto,
			photo.ID,
			photo.TenantID,
		),
		PhotoID:    photo.ID,
		PropertyID: photo.PropertyID,
	}
}

// PropertyPhotoDeletedEvent is published when a photo row is removed
type PropertyPhotoDeletedEvent struct {
	shared.BaseDomainEvent
	PhotoID      uuid.UUID `json:"photo_id"`
	PropertyID   uuid.UUID `json:"property_id"`
	StorageKey   string    `json:"storage_key"`
	ThumbnailKey string    `json:"thumbnail_key,omitempty"`
	WasPrimary   bool      `json:"was_primary"`
}

// NewPropertyPhotoDeletedEvent creates a new PropertyPhotoDeletedEvent
func NewPropertyPhotoDeletedEvent(photo *PropertyPhoto) *PropertyPhotoDeletedEvent {
	return &PropertyPhotoDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypePropertyPhotoDeleted,
			AggregateTypePropertyPhoto,
			photo.ID,
			photo.TenantID,
		),
		PhotoID:      photo.ID,
		PropertyID:   photo.PropertyID,
		StorageKey:   photo.StorageKey,
		ThumbnailKey: photo.ThumbnailKey,
		WasPrimary:   photo.IsPrimary,
	}
}
