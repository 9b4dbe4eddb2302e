package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/propertyhub/backend/internal/domain/finance"
	"github.com/propertyhub/backend/internal/domain/property"
	"github.com/propertyhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ExpenseService provides read access to expenses recorded against properties.
// Expenses are only ever created through receipt processing, so there is no
// write surface here.
type ExpenseService struct {
	expenseRepo  finance.ExpenseRepository
	propertyRepo property.PropertyRepository
	logger       *zap.Logger
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(
	expenseRepo finance.ExpenseRepository,
	propertyRepo property.PropertyRepository,
	logger *zap.Logger,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		propertyRepo: propertyRepo,
		logger:       logger,
	}
}

// GetExpense retrieves a single expense scoped to the tenant
func (s *ExpenseService) GetExpense(ctx context.Context, tenantID, expenseID uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForTenant(ctx, tenantID, expenseID)
	if err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// ListByProperty lists a property's expenses. The property lookup runs first
// so a missing or foreign property surfaces as not found rather than an
// empty page.
func (s *ExpenseService) ListByProperty(
	ctx context.Context,
	tenantID, propertyID uuid.UUID,
	filter shared.Filter,
) (*shared.Paginated[ExpenseResponse], error) {
	if _, err := s.propertyRepo.FindByIDForTenant(ctx, tenantID, propertyID); err != nil {
		return nil, err
	}

	page, err := s.expenseRepo.FindByProperty(ctx, tenantID, propertyID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ExpenseResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = ToExpenseResponse(&page.Items[i])
	}

	return &shared.Paginated[ExpenseResponse]{
		Items:      responses,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}
