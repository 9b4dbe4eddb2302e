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

// GormExpenseRepository implements finance.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByIDForTenant finds an expense by ID within a tenant
func (r *GormExpenseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
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

// FindByProperty lists expenses of a property
func (r *GormExpenseRepository) FindByProperty(ctx context.Context, tenantID, propertyID uuid.UUID, filter shared.Filter) (shared.Paginated[finance.Expense], error) {
	base := r.db.WithContext(ctx).
		Model(&models.ExpenseModel{}).
		Scopes(ForTenant(tenantID)).
		Where("property_id = ?", propertyID)

	if categoryID, ok := filter.Filters["category_id"]; ok {
		base = base.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return shared.Paginated[finance.Expense]{}, err
	}

	sortField := ValidateSortField(filter.OrderBy, ExpenseSortFields, "incurred_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)

	var expenseModels []models.ExpenseModel
	if err := base.
		Order(sortField + " " + sortOrder).
		Scopes(Paginate(filter.Page, filter.PageSize)).
		Find(&expenseModels).Error; err != nil {
		return shared.Paginated[finance.Expense]{}, err
	}

	expenses := make([]finance.Expense, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return shared.NewPaginated(expenses, total, filter.Page, filter.PageSize), nil
}

// CountByProperty counts expenses of a property
func (r *GormExpenseRepository) CountByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ExpenseModel{}).
		Scopes(ForTenant(tenantID)).
		Where("property_id = ?", propertyID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	model := models.ExpenseModelFromDomain(expense)
	return r.db.WithContext(ctx).Save(model).Error
}

var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)
