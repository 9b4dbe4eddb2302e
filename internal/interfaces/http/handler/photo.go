package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	mediaapp "github.com/propertyhub/backend/internal/application/media"
)

// PhotoHandler handles property photo API endpoints
type PhotoHandler struct {
	BaseHandler
	photoService *mediaapp.PhotoService
}

// NewPhotoHandler creates a new PhotoHandler
func NewPhotoHandler(photoService *mediaapp.PhotoService) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
	}
}

// GeneratePhotoUploadURLRequest represents a request for a presigned photo upload URL
// @Description Request body for generating a presigned photo upload URL
type GeneratePhotoUploadURLRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255" example:"front-door.jpg"`
	ContentType string `json:"content_type" binding:"required" example:"image/jpeg"`
	FileSize    int64  `json:"file_size" binding:"required,gt=0" example:"2048576"`
}

// ConfirmPhotoUploadRequest represents a request to confirm a completed photo upload
// @Description Request body for confirming a direct-to-storage photo upload
type ConfirmPhotoUploadRequest struct {
	StorageKey   string `json:"storage_key" binding:"required" example:"tenants/550e8400-e29b-41d4-a716-446655440001/photos/abc.jpg"`
	ThumbnailKey string `json:"thumbnail_key" example:"tenants/550e8400-e29b-41d4-a716-446655440001/photos/abc_thumb.jpg"`
	FileName     string `json:"file_name" binding:"required,max=255" example:"front-door.jpg"`
}

// ReorderPhotosRequest represents the full desired photo ordering for a property
// @Description Request body for reordering a property's photos
type ReorderPhotosRequest struct {
	PhotoIDs []uuid.UUID `json:"photo_ids" binding:"required,min=1"`
}

// GenerateUploadURL godoc
// @Summary      Generate a photo upload URL
// @Description  Generate a presigned URL for uploading a photo directly to storage
// @Tags         photos
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Property ID" format(uuid)
// @Param        request body GeneratePhotoUploadURLRequest true "Upload URL request"
// @Success      200 {object} dto.Response{data=media.GenerateUploadURLResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id}/photos/upload-url [post]
func (h *PhotoHandler) GenerateUploadURL(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	var req GeneratePhotoUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.photoService.GenerateUploadURL(c.Request.Context(), tenantID, mediaapp.GenerateUploadURLRequest{
		PropertyID:  propertyID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		FileSize:    req.FileSize,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ConfirmUpload godoc
// @Summary      Confirm a photo upload
// @Description  Register a completed direct upload as a property photo
// @Tags         photos
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Property ID" format(uuid)
// @Param        request body ConfirmPhotoUploadRequest true "Upload confirmation request"
// @Success      201 {object} dto.Response{data=media.PhotoResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id}/photos/confirm [post]
func (h *PhotoHandler) ConfirmUpload(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	var req ConfirmPhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var uploadedBy *uuid.UUID
	if userID, err := getUserID(c); err == nil {
		uploadedBy = &userID
	}

	result, err := h.photoService.ConfirmUpload(c.Request.Context(), tenantID, mediaapp.ConfirmUploadRequest{
		PropertyID:   propertyID,
		StorageKey:   req.StorageKey,
		ThumbnailKey: req.ThumbnailKey,
		FileName:     req.FileName,
	}, uploadedBy)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// List godoc
// @Summary      List property photos
// @Description  Retrieve all photos of a property in display order
// @Tags         photos
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Property ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]media.PhotoResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id}/photos [get]
func (h *PhotoHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	result, err := h.photoService.GetPhotosForProperty(c.Request.Context(), tenantID, propertyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// SetPrimary godoc
// @Summary      Set the primary photo
// @Description  Elect a photo as the primary photo of its property
// @Tags         photos
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Property ID" format(uuid)
// @Param        photoId path string true "Photo ID" format(uuid)
// @Success      200 {object} dto.Response{data=media.PhotoResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id}/photos/{photoId}/primary [put]
func (h *PhotoHandler) SetPrimary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	photoID, err := uuid.Parse(c.Param("photoId"))
	if err != nil {
		h.BadRequest(c, "Invalid photo ID format")
		return
	}

	result, err := h.photoService.SetPrimary(c.Request.Context(), tenantID, propertyID, photoID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
// @Summary      Delete a photo
// @Description  Permanently delete a property photo and its stored objects; if the photo was primary, the next photo by display order is promoted
// @Tags         photos
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Property ID" format(uuid)
// @Param        photoId path string true "Photo ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id}/photos/{photoId} [delete]
func (h *PhotoHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	photoID, err := uuid.Parse(c.Param("photoId"))
	if err != nil {
		h.BadRequest(c, "Invalid photo ID format")
		return
	}

	if err := h.photoService.Delete(c.Request.Context(), tenantID, propertyID, photoID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Reorder godoc
// @Summary      Reorder property photos
// @Description  Apply a full ordering to a property's photos; the ID list must contain every active photo exactly once
// @Tags         photos
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Property ID" format(uuid)
// @Param        request body ReorderPhotosRequest true "Photo ordering request"
// @Success      200 {object} dto.Response{data=[]media.PhotoResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id}/photos/order [put]
func (h *PhotoHandler) Reorder(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	var req ReorderPhotosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.photoService.Reorder(c.Request.Context(), tenantID, propertyID, req.PhotoIDs)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
