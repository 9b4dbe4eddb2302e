package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propertyhub/backend/internal/domain/media"
	"github.com/propertyhub/backend/internal/domain/shared"
	"github.com/propertyhub/backend/internal/infrastructure/persistence/models"
)

// GormPhotoRepository implements media.PhotoRepository using GORM
type GormPhotoRepository struct {
	db *gorm.DB
}

// NewGormPhotoRepository creates a new GormPhotoRepository
func NewGormPhotoRepository(db *gorm.DB) *GormPhotoRepository {
	return &GormPhotoRepository{db: db}
}

// ==================== PhotoReader Interface ====================

// FindByIDForTenant finds a photo by ID within a tenant
func (r *GormPhotoRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*media.PropertyPhoto, error) {
	var model models.PropertyPhotoModel
	if err := r.db.WithContext(ctx).
		Scopes(ForTenant(tenantID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple photos by their IDs within a tenant
func (r *GormPhotoRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]media.PropertyPhoto, error) {
	if len(ids) == 0 {
		return []media.PropertyPhoto{}, nil
	}

	var photoModels []models.PropertyPhotoModel
	if err := r.db.WithContext(ctx).
		Scopes(ForTenant(tenantID)).
		Where("id IN ?", ids).
		Order("display_order ASC").
		Find(&photoModels).Error; err != nil {
		return nil, err
	}

	photos := make([]media.PropertyPhoto, len(photoModels))
	for i, model := range photoModels {
		photos[i] = *model.ToDomain()
	}
	return photos, nil
}

// ==================== PhotoFinder Interface ====================

// FindByProperty returns all photos of a property ordered by display order
func (r *GormPhotoRepository) FindByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]media.PropertyPhoto, error) {
	var photoModels []models.PropertyPhotoModel
	if err := r.db.WithContext(ctx).
		Scopes(ForTenant(tenantID)).
		Where("property_id = ?", propertyID).
		Order("display_order ASC, created_at ASC").
		Find(&photoModels).Error; err != nil {
		return nil, err
	}

	photos := make([]media.PropertyPhoto, len(photoModels))
	for i, model := range photoModels {
		photos[i] = *model.ToDomain()
	}
	return photos, nil
}

// FindPrimary returns the primary photo of a property, or ErrNotFound
func (r *GormPhotoRepository) FindPrimary(ctx context.Context, tenantID, propertyID uuid.UUID) (*media.PropertyPhoto, error) {
	var model models.PropertyPhotoModel
	if err := r.db.WithContext(ctx).
		Scopes(ForTenant(tenantID)).
		Where("property_id = ? AND is_primary = ?", propertyID, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// CountByProperty counts photos of a property
func (r *GormPhotoRepository) CountByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PropertyPhotoModel{}).
		Scopes(ForTenant(tenantID)).
		Where("property_id = ?", propertyID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MaxDisplayOrder returns the highest display order among a property's
// photos, or -1 when the property has none
func (r *GormPhotoRepository) MaxDisplayOrder(ctx context.Context, tenantID, propertyID uuid.UUID) (int, error) {
	var maxOrder *int
	if err := r.db.WithContext(ctx).
		Model(&models.PropertyPhotoModel{}).
		Scopes(ForTenant(tenantID)).
		Where("property_id = ?", propertyID).
		Select("MAX(display_order)").
		Scan(&maxOrder).Error; err != nil {
		return 0, err
	}
	if maxOrder == nil {
		return -1, nil
	}
	return *maxOrder, nil
}

// ==================== PhotoWriter Interface ====================

// Save creates or updates a photo
func (r *GormPhotoRepository) Save(ctx context.Context, photo *media.PropertyPhoto) error {
	model := models.PropertyPhotoModelFromDomain(photo)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveBatch creates or updates multiple photos
func (r *GormPhotoRepository) SaveBatch(ctx context.Context, photos []*media.PropertyPhoto) error {
	if len(photos) == 0 {
		return nil
	}
	photoModels := make([]*models.PropertyPhotoModel, len(photos))
	for i, p := range photos {
		photoModels[i] = models.PropertyPhotoModelFromDomain(p)
	}
	return r.db.WithContext(ctx).Save(photoModels).Error
}

// DeleteForTenant permanently removes a photo row within a tenant
func (r *GormPhotoRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Scopes(ForTenant(tenantID)).
		Delete(&models.PropertyPhotoModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Compile-time interface compliance checks
var _ media.PhotoRepository = (*GormPhotoRepository)(nil)
var _ media.PhotoReader = (*GormPhotoRepository)(nil)
var _ media.PhotoFinder = (*GormPhotoRepository)(nil)
var _ media.PhotoWriter = (*GormPhotoRepository)(nil)
