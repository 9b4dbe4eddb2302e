package media

import (
	"time"

	"github.com/google/uuid"
	"github.com/propertyhub/backend/internal/domain/media"
)

// GenerateUploadURLRequest asks for a presigned photo upload URL
type GenerateUploadURLRequest struct {
	PropertyID  uuid.UUID `json:"property_id" binding:"required"`
	FileName    string    `json:"file_name" binding:"required,max=255"`
	ContentType string    `json:"content_type" binding:"required"`
	FileSize    int64     `json:"file_size" binding:"required,gt=0"`
}

// GenerateUploadURLResponse carries the presigned URL and the keys the
// client must echo back at confirm time
type GenerateUploadURLResponse struct {
	UploadURL    string    `json:"upload_url"`
	StorageKey   string    `json:"storage_key"`
	ThumbnailKey string    `json:"thumbnail_key"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// ConfirmUploadRequest turns a completed direct upload into a photo record
type ConfirmUploadRequest struct {
	PropertyID   uuid.UUID `json:"property_id" binding:"required"`
	StorageKey   string    `json:"storage_key" binding:"required"`
	ThumbnailKey string    `json:"thumbnail_key"`
	FileName     string    `json:"file_name" binding:"required,max=255"`
}

// ReorderPhotosRequest carries the full desired ordering of a property's photos
type ReorderPhotosRequest struct {
	PhotoIDs []uuid.UUID `json:"photo_ids" binding:"required,min=1"`
}

// PhotoResponse is the read model of a photo
type PhotoResponse struct {
	ID           uuid.UUID `json:"id"`
	PropertyID   uuid.UUID `json:"property_id"`
	FileName     string    `json:"file_name"`
	FileSize     int64     `json:"file_size"`
	ContentType  string    `json:"content_type"`
	DisplayOrder int       `json:"display_order"`
	IsPrimary    bool      `json:"is_primary"`
	URL          string    `json:"url,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToPhotoResponse converts a domain photo to its read model
func ToPhotoResponse(photo *media.PropertyPhoto) PhotoResponse {
	return PhotoResponse{
		ID:           photo.ID,
		PropertyID:   photo.PropertyID,
		FileName:     photo.FileName,
		FileSize:     photo.FileSize,
		ContentType:  photo.ContentType,
		DisplayOrder: photo.DisplayOrder,
		IsPrimary:    photo.IsPrimary,
		CreatedAt:    photo.CreatedAt,
	}
}

// ToPhotoResponses converts a slice of domain photos
func ToPhotoResponses(photos []media.PropertyPhoto) []PhotoResponse {
	responses := make([]PhotoResponse, len(photos))
	for i := range photos {
		responses[i] = ToPhotoResponse(&photos[i])
	}
	return responses
}
