package media

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/propertyhub/backend/internal/application/upload"
	"github.com/propertyhub/backend/internal/domain/media"
	"github.com/propertyhub/backend/internal/domain/property"
	"github.com/propertyhub/backend/internal/domain/shared"
	"github.com/propertyhub/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// PhotoServiceConfig holds configuration for the photo service
type PhotoServiceConfig struct {
	// UploadURLExpiry is the duration for which upload URLs are valid
	UploadURLExpiry time.Duration
	// DownloadURLExpiry is the duration for which download URLs are valid
	DownloadURLExpiry time.Duration
	// MaxPhotosPerProperty caps the photo set of one property
	MaxPhotosPerProperty int
}

// DefaultPhotoServiceConfig returns the default configuration
func DefaultPhotoServiceConfig() PhotoServiceConfig {
	return PhotoServiceConfig{
		UploadURLExpiry:      15 * time.Minute,
		DownloadURLExpiry:    1 * time.Hour,
		MaxPhotosPerProperty: 50,
	}
}

// PhotoService maintains the display order and primary designation of a
// property's photos, and runs the two-phase upload protocol for them.
type PhotoService struct {
	photoRepo      media.PhotoRepository
	propertyRepo   property.PropertyRepository
	storageService upload.ObjectStorageService
	config         PhotoServiceConfig
	logger         *zap.Logger
}

// NewPhotoService creates a new PhotoService
func NewPhotoService(
	photoRepo media.PhotoRepository,
	propertyRepo property.PropertyRepository,
	storageService upload.ObjectStorageService,
	logger *zap.Logger,
) *PhotoService {
	return &PhotoService{
		photoRepo:      photoRepo,
		propertyRepo:   propertyRepo,
		storageService: storageService,
		config:         DefaultPhotoServiceConfig(),
		logger:         logger,
	}
}

// SetConfig sets the service configuration
func (s *PhotoService) SetConfig(config PhotoServiceConfig) {
	s.config = config
}

// GenerateUploadURL validates the request and returns a presigned upload URL
// with the storage keys the client must echo back on confirm. No photo row
// is created here; the object may never actually be uploaded.
func (s *PhotoService) GenerateUploadURL(
	ctx context.Context,
	tenantID uuid.UUID,
	req GenerateUploadURLRequest,
) (*GenerateUploadURLResponse, error) {
	exists, err := s.propertyRepo.ExistsForTenant(ctx, tenantID, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	if !upload.IsAllowedContentType(upload.CategoryPhotos, req.ContentType) {
		return nil, shared.NewDomainError("DISALLOWED_CONTENT_TYPE",
			fmt.Sprintf("Content type '%s' is not allowed for photos", req.ContentType))
	}
	if req.FileSize <= 0 || req.FileSize > upload.MaxUploadSize {
		return nil, shared.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("File size must be between 1 byte and %d bytes", upload.MaxUploadSize))
	}

	count, err := s.photoRepo.CountByProperty(ctx, tenantID, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.config.MaxPhotosPerProperty) {
		return nil, shared.NewDomainError("PHOTO_LIMIT_EXCEEDED",
			fmt.Sprintf("Maximum %d photos per property allowed", s.config.MaxPhotosPerProperty))
	}

	storageKey := upload.BuildKey(tenantID, upload.CategoryPhotos, req.FileName, time.Now())
	thumbnailKey := upload.ThumbnailKeyFor(storageKey)

	uploadURL, expiresAt, err := s.storageService.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Failed to generate upload URL")
	}

	return &GenerateUploadURLResponse{
		UploadURL:    uploadURL,
		StorageKey:   storageKey,
		ThumbnailKey: thumbnailKey,
		ExpiresAt:    expiresAt,
	}, nil
}

// ConfirmUpload turns a completed direct upload into a durable photo row.
// The storage key's leading segment must match the caller's tenant; this is
// the point where the presigned URL's weaker authorization is re-checked.
// The first photo of a property becomes primary automatically.
func (s *PhotoService) ConfirmUpload(
	ctx context.Context,
	tenantID uuid.UUID,
	req ConfirmUploadRequest,
	uploadedBy *uuid.UUID,
) (*PhotoResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "photo", "confirm_upload",
		telemetry.WithAttribute("property_id", req.PropertyID.String()))
	defer span.End()

	if err := upload.VerifyTenant(req.StorageKey, tenantID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if req.ThumbnailKey != "" {
		if err := upload.VerifyTenant(req.ThumbnailKey, tenantID); err != nil {
			return nil, err
		}
	}

	exists, err := s.propertyRepo.ExistsForTenant(ctx, tenantID, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	// Verify the object landed in storage and build its thumbnail. A failed
	// thumbnail leaves result.ThumbnailKey empty and the photo falls back to
	// the full image.
	result, err := s.storageService.ConfirmUpload(ctx, req.StorageKey, req.ThumbnailKey)
	if err != nil {
		return nil, err
	}

	count, err := s.photoRepo.CountByProperty(ctx, tenantID, req.PropertyID)
	if err != nil {
		return nil, err
	}

	displayOrder := 0
	isPrimary := count == 0
	if count > 0 {
		maxOrder, err := s.photoRepo.MaxDisplayOrder(ctx, tenantID, req.PropertyID)
		if err != nil {
			return nil, err
		}
		displayOrder = maxOrder + 1
	}

	photo, err := media.NewPropertyPhoto(
		tenantID,
		req.PropertyID,
		req.FileName,
		result.Size,
		result.ContentType,
		result.StorageKey,
		result.ThumbnailKey,
		displayOrder,
		isPrimary,
		uploadedBy,
	)
	if err != nil {
		return nil, err
	}

	if err := s.photoRepo.Save(ctx, photo); err != nil {
		return nil, err
	}

	response := ToPhotoResponse(photo)
	s.enrichWithURLs(ctx, &response, photo)
	return &response, nil
}

// GetPhotosForProperty returns all photos of a property in display order
func (s *PhotoService) GetPhotosForProperty(
	ctx context.Context,
	tenantID uuid.UUID,
	propertyID uuid.UUID,
) ([]PhotoResponse, error) {
	exists, err := s.propertyRepo.ExistsForTenant(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	photos, err := s.photoRepo.FindByProperty(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}

	responses := ToPhotoResponses(photos)
	for i := range photos {
		s.enrichWithURLs(ctx, &responses[i], &photos[i])
	}
	return responses, nil
}

// SetPrimary makes the given photo the property's primary photo. The old
// primary is cleared and persisted before the new one is set; combining the
// two writes would trip the partial unique index on the primary flag.
func (s *PhotoService) SetPrimary(
	ctx context.Context,
	tenantID uuid.UUID,
	propertyID uuid.UUID,
	photoID uuid.UUID,
) (*PhotoResponse, error) {
	photo, err := s.photoRepo.FindByIDForTenant(ctx, tenantID, photoID)
	if err != nil {
		return nil, err
	}
	if photo.PropertyID != propertyID {
		return nil, shared.ErrNotFound
	}

	if photo.IsPrimary {
		response := ToPhotoResponse(photo)
		s.enrichWithURLs(ctx, &response, photo)
		return &response, nil
	}

	currentPrimary, err := s.photoRepo.FindPrimary(ctx, tenantID, propertyID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if currentPrimary != nil && currentPrimary.ID != photoID {
		currentPrimary.ClearPrimary()
		if err := s.photoRepo.Save(ctx, currentPrimary); err != nil {
			return nil, err
		}
	}

	photo.MarkPrimary()
	if err := s.photoRepo.Save(ctx, photo); err != nil {
		return nil, err
	}

	response := ToPhotoResponse(photo)
	s.enrichWithURLs(ctx, &response, photo)
	return &response, nil
}

// Delete removes a photo row and its storage objects. When the deleted photo
// was primary, the remaining photo with the lowest display order is promoted
// so the property keeps exactly one primary. Storage deletion failures are
// logged for out-of-band cleanup and never fail the operation.
func (s *PhotoService) Delete(
	ctx context.Context,
	tenantID uuid.UUID,
	propertyID uuid.UUID,
	photoID uuid.UUID,
) error {
	photo, err := s.photoRepo.FindByIDForTenant(ctx, tenantID, photoID)
	if err != nil {
		return err
	}
	if photo.PropertyID != propertyID {
		return shared.ErrNotFound
	}

	wasPrimary := photo.IsPrimary

	if err := s.photoRepo.DeleteForTenant(ctx, tenantID, photoID); err != nil {
		return err
	}

	if wasPrimary {
		remaining, err := s.photoRepo.FindByProperty(ctx, tenantID, propertyID)
		if err != nil {
			return err
		}
		if len(remaining) > 0 {
			// FindByProperty orders by display order; the first photo wins
			successor := &remaining[0]
			successor.MarkPrimary()
			if err := s.photoRepo.Save(ctx, successor); err != nil {
				return err
			}
		}
	}

	if err := s.storageService.DeleteObjects(ctx, photo.StorageKeys()); err != nil {
		s.logger.Warn("failed to delete photo objects from storage",
			zap.String("photo_id", photo.ID.String()),
			zap.String("storage_key", photo.StorageKey),
			zap.Error(err))
	}

	return nil
}

// Reorder assigns display order by position for an explicit full ordering of
// the property's photos. The ID list must be an exact permutation of the
// current photo set; anything else fails validation without mutating state.
func (s *PhotoService) Reorder(
	ctx context.Context,
	tenantID uuid.UUID,
	propertyID uuid.UUID,
	photoIDs []uuid.UUID,
) ([]PhotoResponse, error) {
	existing, err := s.photoRepo.FindByProperty(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return nil, shared.ErrNotFound
	}

	if len(photoIDs) != len(existing) {
		return nil, shared.NewDomainError("INVALID_PHOTO_ORDER",
			fmt.Sprintf("Expected %d photo IDs, got %d", len(existing), len(photoIDs)))
	}

	existingByID := make(map[uuid.UUID]*media.PropertyPhoto, len(existing))
	for i := range existing {
		existingByID[existing[i].ID] = &existing[i]
	}

	seen := make(map[uuid.UUID]bool, len(photoIDs))
	ordered := make([]*media.PropertyPhoto, len(photoIDs))
	for i, id := range photoIDs {
		if seen[id] {
			return nil, shared.NewDomainError("INVALID_PHOTO_ORDER",
				fmt.Sprintf("Photo %s appears more than once", id))
		}
		seen[id] = true

		photo, ok := existingByID[id]
		if !ok {
			return nil, shared.NewDomainError("INVALID_PHOTO_ORDER",
				fmt.Sprintf("Photo %s does not belong to this property", id))
		}
		if err := photo.SetDisplayOrder(i); err != nil {
			return nil, err
		}
		ordered[i] = photo
	}

	if err := s.photoRepo.SaveBatch(ctx, ordered); err != nil {
		return nil, err
	}

	result := make([]media.PropertyPhoto, len(ordered))
	for i, photo := range ordered {
		result[i] = *photo
	}
	responses := ToPhotoResponses(result)
	for i, photo := range ordered {
		s.enrichWithURLs(ctx, &responses[i], photo)
	}
	return responses, nil
}

// enrichWithURLs adds presigned download URLs to a photo response
func (s *PhotoService) enrichWithURLs(ctx context.Context, response *PhotoResponse, photo *media.PropertyPhoto) {
	url, _, err := s.storageService.GenerateDownloadURL(ctx, photo.StorageKey, s.config.DownloadURLExpiry)
	if err == nil {
		response.URL = url
	}

	if photo.ThumbnailKey != "" {
		thumbURL, _, err := s.storageService.GenerateDownloadURL(ctx, photo.ThumbnailKey, s.config.DownloadURLExpiry)
		if err == nil {
			response.ThumbnailURL = thumbURL
		}
	}
}
