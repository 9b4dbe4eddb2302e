package property

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propertyhub/backend/internal/domain/shared"
)

// PropertyStatus represents the lifecycle status of a property
type PropertyStatus string

const (
	PropertyStatusActive   PropertyStatus = "ACTIVE"
	PropertyStatusArchived PropertyStatus = "ARCHIVED"
)

// IsValid checks if the status is a valid PropertyStatus
func (s PropertyStatus) IsValid() bool {
	return s == PropertyStatusActive || s == PropertyStatusArchived
}

// Property is a rental unit owned by a tenant account. Photos, expenses,
// receipts and work orders all hang off a property.
type Property struct {
	shared.TenantAggregateRoot
	Name    string         `json:"name"`
	Address string         `json:"address"`
	Status  PropertyStatus `json:"status"`
}

// NewProperty creates a new property
func NewProperty(tenantID uuid.UUID, name, address string, createdBy *uuid.UUID) (*Property, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT_ID", "Tenant ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PROPERTY_NAME", "Property name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_PROPERTY_NAME", "Property name cannot exceed 200 characters")
	}

	property := &Property{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Address:             strings.TrimSpace(address),
		Status:              PropertyStatusActive,
	}
	if createdBy != nil {
		property.SetCreatedBy(*createdBy)
	}

	return property, nil
}

// Archive moves the property out of active use
func (p *Property) Archive() error {
	if p.Status == PropertyStatusArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "Property is already archived")
	}
	p.Status = PropertyStatusArchived
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Rename updates the property name
func (p *Property) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_PROPERTY_NAME", "Property name cannot be empty")
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}
