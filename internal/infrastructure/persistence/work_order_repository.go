package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propertyhub/backend/internal/domain/property"
	"github.com/propertyhub/backend/internal/domain/shared"
	"github.com/propertyhub/backend/internal/infrastructure/persistence/models"
)

// GormWorkOrderRepository implements property.WorkOrderRepository using GORM.
// Soft-deleted work orders look absent from every lookup.
type GormWorkOrderRepository struct {
	db *gorm.DB
}

// NewGormWorkOrderRepository creates a new GormWorkOrderRepository
func NewGormWorkOrderRepository(db *gorm.DB) *GormWorkOrderRepository {
	return &GormWorkOrderRepository{db: db}
}

// FindByIDForTenant finds a work order by ID within a tenant
func (r *GormWorkOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*property.WorkOrder, error) {
	var model models.WorkOrderModel
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

// FindByProperty lists work orders of a property
func (r *GormWorkOrderRepository) FindByProperty(ctx context.Context, tenantID, propertyID uuid.UUID, filter shared.Filter) (shared.Paginated[property.WorkOrder], error) {
	base := r.db.WithContext(ctx).
		Model(&models.WorkOrderModel{}).
		Scopes(ForTenant(tenantID), ExcludeDeleted).
		Where("property_id = ?", propertyID)

	if status, ok := filter.Filters["status"]; ok {
		base = base.Where("status = ?", status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return shared.Paginated[property.WorkOrder]{}, err
	}

	sortField := ValidateSortField(filter.OrderBy, WorkOrderSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)

	var workOrderModels []models.WorkOrderModel
	if err := base.
		Order(sortField + " " + sortOrder).
		Scopes(Paginate(filter.Page, filter.PageSize)).
		Find(&workOrderModels).Error; err != nil {
		return shared.Paginated[property.WorkOrder]{}, err
	}

	workOrders := make([]property.WorkOrder, len(workOrderModels))
	for i, model := range workOrderModels {
		workOrders[i] = *model.ToDomain()
	}
	return shared.NewPaginated(workOrders, total, filter.Page, filter.PageSize), nil
}

// Save creates or updates a work order
func (r *GormWorkOrderRepository) Save(ctx context.Context, workOrder *property.WorkOrder) error {
	model := models.WorkOrderModelFromDomain(workOrder)
	return r.db.WithContext(ctx).Save(model).Error
}

var _ property.WorkOrderRepository = (*GormWorkOrderRepository)(nil)
