package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propertyhub/backend/internal/domain/finance"
	"github.com/propertyhub/backend/internal/domain/property"
	"github.com/propertyhub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockExpenseRepository is a mock implementation of finance.ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Expense, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindByProperty(ctx context.Context, tenantID, propertyID uuid.UUID, filter shared.Filter) (shared.Paginated[finance.Expense], error) {
	args := m.Called(ctx, tenantID, propertyID, filter)
	return args.Get(0).(shared.Paginated[finance.Expense]), args.Error(1)
}

func (m *MockExpenseRepository) CountByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, propertyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

var _ finance.ExpenseRepository = (*MockExpenseRepository)(nil)

func newTestExpenseService() (*ExpenseService, *MockExpenseRepository, *MockPropertyRepository) {
	expenses := new(MockExpenseRepository)
	properties := new(MockPropertyRepository)
	service := NewExpenseService(expenses, properties, zap.NewNop())
	return service, expenses, properties
}

func createTestExpense(t *testing.T, tenantID, propertyID uuid.UUID) *finance.Expense {
	t.Helper()
	expense, err := finance.NewExpense(
		tenantID, propertyID, testCategoryID(),
		decimal.NewFromFloat(125.50), time.Now().Add(-24*time.Hour),
		"Water heater repair", nil, nil, nil,
	)
	require.NoError(t, err)
	return expense
}

func TestExpenseService_GetExpense(t *testing.T) {
	service, expenses, _ := newTestExpenseService()
	tenantID := testTenantID()
	expense := createTestExpense(t, tenantID, testPropertyID())

	expenses.On("FindByIDForTenant", mock.Anything, tenantID, expense.ID).Return(expense, nil)

	result, err := service.GetExpense(context.Background(), tenantID, expense.ID)

	require.NoError(t, err)
	assert.Equal(t, expense.ID, result.ID)
	assert.Equal(t, testPropertyID(), result.PropertyID)
	assert.True(t, decimal.NewFromFloat(125.50).Equal(result.Amount))
}

func TestExpenseService_GetExpense_NotFound(t *testing.T) {
	service, expenses, _ := newTestExpenseService()
	tenantID := testTenantID()
	expenseID := uuid.New()

	expenses.On("FindByIDForTenant", mock.Anything, tenantID, expenseID).Return(nil, shared.ErrNotFound)

	result, err := service.GetExpense(context.Background(), tenantID, expenseID)

	require.ErrorIs(t, err, shared.ErrNotFound)
	assert.Nil(t, result)
}

func TestExpenseService_ListByProperty(t *testing.T) {
	service, expenses, properties := newTestExpenseService()
	tenantID := testTenantID()
	propertyID := testPropertyID()
	prop, err := property.NewProperty(tenantID, "12 Oak Street", "12 Oak Street, Springfield", nil)
	require.NoError(t, err)
	expense := createTestExpense(t, tenantID, propertyID)

	properties.On("FindByIDForTenant", mock.Anything, tenantID, propertyID).Return(prop, nil)
	expenses.On("FindByProperty", mock.Anything, tenantID, propertyID, mock.Anything).
		Return(shared.NewPaginated([]finance.Expense{*expense}, 1, 1, 20), nil)

	result, err := service.ListByProperty(context.Background(), tenantID, propertyID, shared.DefaultFilter())

	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, expense.ID, result.Items[0].ID)
	assert.Equal(t, int64(1), result.Total)
}

func TestExpenseService_ListByProperty_PropertyNotFound(t *testing.T) {
	service, expenses, properties := newTestExpenseService()
	tenantID := testTenantID()
	propertyID := uuid.New()

	properties.On("FindByIDForTenant", mock.Anything, tenantID, propertyID).Return(nil, shared.ErrNotFound)

	result, err := service.ListByProperty(context.Background(), tenantID, propertyID, shared.DefaultFilter())

	require.ErrorIs(t, err, shared.ErrNotFound)
	assert.Nil(t, result)
	expenses.AssertNotCalled(t, "FindByProperty")
}
