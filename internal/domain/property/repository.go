package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/propertyhub/backend/internal/domain/shared"
)

// PropertyRepository provides access to property records
type PropertyRepository interface {
	// FindByIDForTenant finds a property by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Property, error)

	// FindAllForTenant lists properties of a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[Property], error)

	// ExistsForTenant reports whether a property exists within a tenant
	ExistsForTenant(ctx context.Context, tenantID, id uuid.UUID) (bool, error)

	// Save creates or updates a property
	Save(ctx context.Context, property *Property) error
}

// WorkOrderRepository provides access to work order records. Lookups exclude
// soft-deleted rows.
type WorkOrderRepository interface {
	// FindByIDForTenant finds a work order by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*WorkOrder, error)

	// FindByProperty lists work orders of a property
	FindByProperty(ctx context.Context, tenantID, propertyID uuid.UUID, filter shared.Filter) (shared.Paginated[WorkOrder], error)

	// Save creates or updates a work order
	Save(ctx context.Context, workOrder *WorkOrder) error
}
