package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propertyhub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Expense is a cost incurred against a property. Expenses created by receipt
// processing keep a back-reference to the receipt they came from.
type Expense struct {
	shared.TenantAggregateRoot
	PropertyID  uuid.UUID       `json:"property_id"`
	CategoryID  uuid.UUID       `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	IncurredAt  time.Time       `json:"incurred_at"`
	Description string          `json:"description"`
	ReceiptID   *uuid.UUID      `json:"receipt_id,omitempty"`
	WorkOrderID *uuid.UUID      `json:"work_order_id,omitempty"`
}

// NewExpense creates a new expense record
func NewExpense(
	tenantID uuid.UUID,
	propertyID uuid.UUID,
	categoryID uuid.UUID,
	amount decimal.Decimal,
	incurredAt time.Time,
	description string,
	receiptID *uuid.UUID,
	workOrderID *uuid.UUID,
	createdBy *uuid.UUID,
) (*Expense, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT_ID", "Tenant ID cannot be empty")
	}
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY_ID", "Property ID cannot be empty")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY_ID", "Category ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be greater than 0")
	}
	if incurredAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Expense date cannot be empty")
	}
	description = strings.TrimSpace(description)
	if len(description) > 1000 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 1000 characters")
	}

	expense := &Expense{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PropertyID:          propertyID,
		CategoryID:          categoryID,
		Amount:              amount,
		IncurredAt:          incurredAt,
		Description:         description,
		ReceiptID:           receiptID,
		WorkOrderID:         workOrderID,
	}
	if createdBy != nil {
		expense.SetCreatedBy(*createdBy)
	}

	return expense, nil
}

// HasReceipt returns true if the expense was created from a receipt
func (e *Expense) HasReceipt() bool {
	return e.ReceiptID != nil
}
