package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propertyhub/backend/internal/domain/finance"
	"github.com/propertyhub/backend/internal/domain/shared"
	"github.com/propertyhub/backend/internal/infrastructure/persistence/models"
)

// GormReceiptRepository implements finance.ReceiptRepository using GORM.
// All lookups exclude soft-deleted rows; a deleted receipt looks absent.
type GormReceiptRepository struct {
	db *gorm.DB
}

// NewGormReceiptRepository creates a new GormReceiptRepository
func NewGormReceiptRepository(db *gorm.DB) *GormReceiptRepository {
	return &GormReceiptRepository{db: db}
}

// FindByIDForTenant finds a receipt by ID within a tenant
func (r *GormReceiptRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Receipt, error) {
	var model models.ReceiptModel
	if err := r.db.WithContext(ctx).
		Scopes(ForTenant(tenantID), ExcludeDeleted).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists receipts for a tenant, newest first
func (r *GormReceiptRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[finance.Receipt], error) {
	base := r.db.WithContext(ctx).
		Model(&models.ReceiptModel{}).
		Scopes(ForTenant(tenantID), ExcludeDeleted)

	base = r.applyFilters(base, filter)

	return r.paginate(base, filter)
}

// FindUnprocessedForTenant lists receipts that have not been processed yet
func (r *GormReceiptRepository) FindUnprocessedForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[finance.Receipt], error) {
	base := r.db.WithContext(ctx).
		Model(&models.ReceiptModel{}).
		Scopes(ForTenant(tenantID), ExcludeDeleted).
		Where("processed_at IS NULL")

	base = r.applyFilters(base, filter)

	return r.paginate(base, filter)
}

// Save creates or updates a receipt
func (r *GormReceiptRepository) Save(ctx context.Context, receipt *finance.Receipt) error {
	model := models.ReceiptModelFromDomain(receipt)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormReceiptRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("file_name ILIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "property_id":
			if value == nil {
				query = query.Where("property_id IS NULL")
			} else {
				query = query.Where("property_id = ?", value)
			}
		case "content_type":
			query = query.Where("content_type = ?", value)
		}
	}
	return query
}

func (r *GormReceiptRepository) paginate(base *gorm.DB, filter shared.Filter) (shared.Paginated[finance.Receipt], error) {
	var total int64
	if err := base.Count(&total).Error; err != nil {
		return shared.Paginated[finance.Receipt]{}, err
	}

	sortField := ValidateSortField(filter.OrderBy, ReceiptSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)

	var receiptModels []models.ReceiptModel
	if err := base.
		Order(sortField + " " + sortOrder).
		Scopes(Paginate(filter.Page, filter.PageSize)).
		Find(&receiptModels).Error; err != nil {
		return shared.Paginated[finance.Receipt]{}, err
	}

	receipts := make([]finance.Receipt, len(receiptModels))
	for i, model := range receiptModels {
		receipts[i] = *model.ToDomain()
	}
	return shared.NewPaginated(receipts, total, filter.Page, filter.PageSize), nil
}

var _ finance.ReceiptRepository = (*GormReceiptRepository)(nil)
