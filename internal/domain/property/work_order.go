package property

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propertyhub/backend/internal/domain/shared"
)

// WorkOrderStatus represents the status of a work order
type WorkOrderStatus string

const (
	WorkOrderStatusOpen      WorkOrderStatus = "OPEN"
	WorkOrderStatusCompleted WorkOrderStatus = "COMPLETED"
)

// WorkOrder is a maintenance task tied to one property. Work orders are
// soft-deleted; expenses created from receipts may reference them.
type WorkOrder struct {
	shared.TenantAggregateRoot
	PropertyID  uuid.UUID       `json:"property_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      WorkOrderStatus `json:"status"`
	DeletedAt   *time.Time      `json:"deleted_at,omitempty"`
}

// NewWorkOrder creates a new work order for a property
func NewWorkOrder(tenantID, propertyID uuid.UUID, title, description string, createdBy *uuid.UUID) (*WorkOrder, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT_ID", "Tenant ID cannot be empty")
	}
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY_ID", "Property ID cannot be empty")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_WORK_ORDER_TITLE", "Work order title cannot be empty")
	}

	workOrder := &WorkOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PropertyID:          propertyID,
		Title:               title,
		Description:         description,
		Status:              WorkOrderStatusOpen,
	}
	if createdBy != nil {
		workOrder.SetCreatedBy(*createdBy)
	}

	return workOrder, nil
}

// IsDeleted returns true if the work order has been soft-deleted
func (w *WorkOrder) IsDeleted() bool {
	return w.DeletedAt != nil
}

// Complete marks the work order as completed
func (w *WorkOrder) Complete() error {
	if w.Status == WorkOrderStatusCompleted {
		return shared.NewDomainError("ALREADY_COMPLETED", "Work order is already completed")
	}
	w.Status = WorkOrderStatusCompleted
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
	return nil
}

// SoftDelete marks the work order as deleted
func (w *WorkOrder) SoftDelete() error {
	if w.IsDeleted() {
		return shared.NewDomainError("ALREADY_DELETED", "Work order is already deleted")
	}
	now := time.Now()
	w.DeletedAt = &now
	w.UpdatedAt = now
	w.IncrementVersion()
	return nil
}
