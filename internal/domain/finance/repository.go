package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/propertyhub/backend/internal/domain/shared"
)

// ReceiptRepository provides access to receipt records. All lookups exclude
// soft-deleted rows and rows of other tenants; both look absent.
type ReceiptRepository interface {
	// FindByIDForTenant finds a receipt by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Receipt, error)

	// FindAllForTenant lists receipts for a tenant, newest first
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[Receipt], error)

	// FindUnprocessedForTenant lists receipts that have not been processed yet
	FindUnprocessedForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[Receipt], error)

	// Save creates or updates a receipt
	Save(ctx context.Context, receipt *Receipt) error
}

// ExpenseRepository provides access to expense records
type ExpenseRepository interface {
	// FindByIDForTenant finds an expense by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Expense, error)

	// FindByProperty lists expenses of a property
	FindByProperty(ctx context.Context, tenantID, propertyID uuid.UUID, filter shared.Filter) (shared.Paginated[Expense], error)

	// CountByProperty counts expenses of a property
	CountByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) (int64, error)

	// Save creates or updates an expense
	Save(ctx context.Context, expense *Expense) error
}

// CategoryRepository provides access to the global expense category table
type CategoryRepository interface {
	// FindByID finds a category by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ExpenseCategory, error)

	// FindAll lists all categories ordered by name
	FindAll(ctx context.Context) ([]ExpenseCategory, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *ExpenseCategory) error
}

// ReceiptProcessingStore performs the processing effect as one unit: insert
// the expense, flip the receipt to processed with a write-time recheck that
// it is still unprocessed, and stage the receipt's domain events in the
// outbox. When the recheck fails (another caller processed the receipt
// first) the store returns ErrConflict and nothing is persisted.
type ReceiptProcessingStore interface {
	ProcessReceipt(ctx context.Context, receipt *Receipt, expense *Expense) error
}
