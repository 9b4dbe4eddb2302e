package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	mediaapp "github.com/propertyhub/backend/internal/application/media"
	"github.com/propertyhub/backend/internal/application/upload"
	"github.com/propertyhub/backend/internal/domain/media"
	"github.com/propertyhub/backend/internal/domain/shared"
	"github.com/propertyhub/backend/internal/interfaces/http/dto"
)

type mockPhotoRepository struct {
	photos    map[uuid.UUID]*media.PropertyPhoto
	returnErr error
}

func newMockPhotoRepository() *mockPhotoRepository {
	return &mockPhotoRepository{
		photos: make(map[uuid.UUID]*media.PropertyPhoto),
	}
}

func (m *mockPhotoRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*media.PropertyPhoto, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	if p, ok := m.photos[id]; ok && p.TenantID == tenantID {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockPhotoRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]media.PropertyPhoto, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	var result []media.PropertyPhoto
	for _, id := range ids {
		if p, ok := m.photos[id]; ok && p.TenantID == tenantID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockPhotoRepository) FindByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]media.PropertyPhoto, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	var result []media.PropertyPhoto
	for _, p := range m.photos {
		if p.TenantID == tenantID && p.PropertyID == propertyID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DisplayOrder < result[j].DisplayOrder
	})
	return result, nil
}

func (m *mockPhotoRepository) FindPrimary(ctx context.Context, tenantID, propertyID uuid.UUID) (*media.PropertyPhoto, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	for _, p := range m.photos {
		if p.TenantID == tenantID && p.PropertyID == propertyID && p.IsPrimary {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockPhotoRepository) CountByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) (int64, error) {
	if m.returnErr != nil {
		return 0, m.returnErr
	}
	var count int64
	for _, p := range m.photos {
		if p.TenantID == tenantID && p.PropertyID == propertyID {
			count++
		}
	}
	return count, nil
}

func (m *mockPhotoRepository) MaxDisplayOrder(ctx context.Context, tenantID, propertyID uuid.UUID) (int, error) {
	if m.returnErr != nil {
		return 0, m.returnErr
	}
	maxOrder := -1
	for _, p := range m.photos {
		if p.TenantID == tenantID && p.PropertyID == propertyID && p.DisplayOrder > maxOrder {
			maxOrder = p.DisplayOrder
		}
	}
	return maxOrder, nil
}

func (m *mockPhotoRepository) Save(ctx context.Context, photo *media.PropertyPhoto) error {
	if m.returnErr != nil {
		return m.returnErr
	}
	m.photos[photo.ID] = photo
	return nil
}

func (m *mockPhotoRepository) SaveBatch(ctx context.Context, photos []*media.PropertyPhoto) error {
	if m.returnErr != nil {
		return m.returnErr
	}
	for _, p := range photos {
		m.photos[p.ID] = p
	}
	return nil
}

func (m *mockPhotoRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	if m.returnErr != nil {
		return m.returnErr
	}
	if p, ok := m.photos[id]; !ok || p.TenantID != tenantID {
		return shared.ErrNotFound
	}
	delete(m.photos, id)
	return nil
}

type mockStorageService struct {
	uploadErr  error
	confirmErr error
	deleted    [][]string
}

func (m *mockStorageService) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	if m.uploadErr != nil {
		return "", time.Time{}, m.uploadErr
	}
	return "https://storage.example.com/upload/" + storageKey, time.Now().Add(expiresIn), nil
}

func (m *mockStorageService) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	return "https://storage.example.com/" + storageKey, time.Now().Add(expiresIn), nil
}

func (m *mockStorageService) ConfirmUpload(ctx context.Context, storageKey, thumbnailKey string) (*upload.ConfirmResult, error) {
	if m.confirmErr != nil {
		return nil, m.confirmErr
	}
	return &upload.ConfirmResult{
		StorageKey:   storageKey,
		ThumbnailKey: thumbnailKey,
		ContentType:  "image/jpeg",
		Size:         2048,
	}, nil
}

func (m *mockStorageService) DeleteObjects(ctx context.Context, keys []string) error {
	m.deleted = append(m.deleted, keys)
	return nil
}

func (m *mockStorageService) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	return true, nil
}

type photoTestEnv struct {
	router       *gin.Engine
	photoRepo    *mockPhotoRepository
	propertyRepo *mockPropertyRepository
	storage      *mockStorageService
	tenantID     uuid.UUID
	propertyID   uuid.UUID
}

func newPhotoTestEnv(t *testing.T) *photoTestEnv {
	t.Helper()

	tenantID := uuid.New()
	propertyRepo := newMockPropertyRepository()
	prop := newTestProperty(t, tenantID)
	propertyRepo.properties[prop.ID] = prop

	photoRepo := newMockPhotoRepository()
	storage := &mockStorageService{}
	service := mediaapp.NewPhotoService(photoRepo, propertyRepo, storage, zap.NewNop())
	h := NewPhotoHandler(service)

	router := gin.New()
	router.POST("/properties/:id/photos/upload-url", h.GenerateUploadURL)
	router.POST("/properties/:id/photos/confirm", h.ConfirmUpload)
	router.GET("/properties/:id/photos", h.List)
	router.PUT("/properties/:id/photos/order", h.Reorder)
	router.PUT("/properties/:id/photos/:photoId/primary", h.SetPrimary)
	router.DELETE("/properties/:id/photos/:photoId", h.Delete)

	return &photoTestEnv{
		router:       router,
		photoRepo:    photoRepo,
		propertyRepo: propertyRepo,
		storage:      storage,
		tenantID:     tenantID,
		propertyID:   prop.ID,
	}
}

func (e *photoTestEnv) addPhoto(t *testing.T, displayOrder int, isPrimary bool) *media.PropertyPhoto {
	t.Helper()
	key := upload.BuildKey(e.tenantID, upload.CategoryPhotos, "photo.jpg", time.Now())
	photo, err := media.NewPropertyPhoto(
		e.tenantID, e.propertyID, "photo.jpg", 2048, "image/jpeg",
		key, upload.ThumbnailKeyFor(key), displayOrder, isPrimary, nil)
	require.NoError(t, err)
	e.photoRepo.photos[photo.ID] = photo
	return photo
}

func (e *photoTestEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", e.tenantID.String())
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestPhotoHandler_GenerateUploadURL(t *testing.T) {
	env := newPhotoTestEnv(t)

	w := env.do(http.MethodPost, "/properties/"+env.propertyID.String()+"/photos/upload-url", map[string]any{
		"file_name":    "front.jpg",
		"content_type": "image/jpeg",
		"file_size":    2048,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.NotEmpty(t, data["upload_url"])
	assert.NotEmpty(t, data["storage_key"])
	assert.NotEmpty(t, data["thumbnail_key"])
}

func TestPhotoHandler_GenerateUploadURL_DisallowedContentType(t *testing.T) {
	env := newPhotoTestEnv(t)

	w := env.do(http.MethodPost, "/properties/"+env.propertyID.String()+"/photos/upload-url", map[string]any{
		"file_name":    "notes.txt",
		"content_type": "text/plain",
		"file_size":    128,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "DISALLOWED_CONTENT_TYPE")
}

func TestPhotoHandler_GenerateUploadURL_UnknownProperty(t *testing.T) {
	env := newPhotoTestEnv(t)

	w := env.do(http.MethodPost, "/properties/"+uuid.NewString()+"/photos/upload-url", map[string]any{
		"file_name":    "front.jpg",
		"content_type": "image/jpeg",
		"file_size":    2048,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPhotoHandler_ConfirmUpload_FirstPhotoBecomesPrimary(t *testing.T) {
	env := newPhotoTestEnv(t)
	key := upload.BuildKey(env.tenantID, upload.CategoryPhotos, "front.jpg", time.Now())

	w := env.do(http.MethodPost, "/properties/"+env.propertyID.String()+"/photos/confirm", map[string]any{
		"storage_key":   key,
		"thumbnail_key": upload.ThumbnailKeyFor(key),
		"file_name":     "front.jpg",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, true, data["is_primary"])
	assert.Equal(t, float64(0), data["display_order"])
}

func TestPhotoHandler_ConfirmUpload_TenantMismatch(t *testing.T) {
	env := newPhotoTestEnv(t)
	foreignKey := upload.BuildKey(uuid.New(), upload.CategoryPhotos, "front.jpg", time.Now())

	w := env.do(http.MethodPost, "/properties/"+env.propertyID.String()+"/photos/confirm", map[string]any{
		"storage_key": foreignKey,
		"file_name":   "front.jpg",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "STORAGE_KEY_TENANT_MISMATCH")
}

func TestPhotoHandler_List(t *testing.T) {
	env := newPhotoTestEnv(t)
	env.addPhoto(t, 0, true)
	env.addPhoto(t, 1, false)

	w := env.do(http.MethodGet, "/properties/"+env.propertyID.String()+"/photos", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	items := resp.Data.([]interface{})
	assert.Len(t, items, 2)

	first := items[0].(map[string]interface{})
	assert.Equal(t, true, first["is_primary"])
}

func TestPhotoHandler_SetPrimary(t *testing.T) {
	env := newPhotoTestEnv(t)
	current := env.addPhoto(t, 0, true)
	next := env.addPhoto(t, 1, false)

	w := env.do(http.MethodPut,
		"/properties/"+env.propertyID.String()+"/photos/"+next.ID.String()+"/primary", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.photoRepo.photos[next.ID].IsPrimary)
	assert.False(t, env.photoRepo.photos[current.ID].IsPrimary)
}

func TestPhotoHandler_SetPrimary_WrongProperty(t *testing.T) {
	env := newPhotoTestEnv(t)
	photo := env.addPhoto(t, 0, true)

	w := env.do(http.MethodPut,
		"/properties/"+uuid.NewString()+"/photos/"+photo.ID.String()+"/primary", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPhotoHandler_Delete_PromotesSuccessor(t *testing.T) {
	env := newPhotoTestEnv(t)
	primary := env.addPhoto(t, 0, true)
	successor := env.addPhoto(t, 1, false)

	w := env.do(http.MethodDelete,
		"/properties/"+env.propertyID.String()+"/photos/"+primary.ID.String(), nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotContains(t, env.photoRepo.photos, primary.ID)
	assert.True(t, env.photoRepo.photos[successor.ID].IsPrimary)
	assert.NotEmpty(t, env.storage.deleted)
}

func TestPhotoHandler_Delete_InvalidPhotoID(t *testing.T) {
	env := newPhotoTestEnv(t)

	w := env.do(http.MethodDelete,
		"/properties/"+env.propertyID.String()+"/photos/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPhotoHandler_Reorder(t *testing.T) {
	env := newPhotoTestEnv(t)
	first := env.addPhoto(t, 0, true)
	second := env.addPhoto(t, 1, false)

	w := env.do(http.MethodPut, "/properties/"+env.propertyID.String()+"/photos/order", map[string]any{
		"photo_ids": []string{second.ID.String(), first.ID.String()},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.photoRepo.photos[second.ID].DisplayOrder)
	assert.Equal(t, 1, env.photoRepo.photos[first.ID].DisplayOrder)
}

func TestPhotoHandler_Reorder_IncompleteSet(t *testing.T) {
	env := newPhotoTestEnv(t)
	first := env.addPhoto(t, 0, true)
	env.addPhoto(t, 1, false)

	w := env.do(http.MethodPut, "/properties/"+env.propertyID.String()+"/photos/order", map[string]any{
		"photo_ids": []string{first.ID.String()},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_PHOTO_ORDER")
}

func TestPhotoHandler_Reorder_EmptyBody(t *testing.T) {
	env := newPhotoTestEnv(t)
	env.addPhoto(t, 0, true)

	w := env.do(http.MethodPut, "/properties/"+env.propertyID.String()+"/photos/order", map[string]any{
		"photo_ids": []string{},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
