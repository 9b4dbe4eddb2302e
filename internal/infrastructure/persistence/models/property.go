package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/propertyhub/backend/internal/domain/property"
)

// PropertyModel is the persistence model for the Property domain entity.
type PropertyModel struct {
	TenantAggregateModel
	Name    string                  `gorm:"type:varchar(200);not null"`
	Address string                  `gorm:"type:varchar(500)"`
	Status  property.PropertyStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property entity
func (m *PropertyModel) ToDomain() *property.Property {
	p := &property.Property{
		Name:    m.Name,
		Address: m.Address,
		Status:  m.Status,
	}
	m.PopulateTenantAggregateRoot(&p.TenantAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Property entity
func (m *PropertyModel) FromDomain(p *property.Property) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Name = p.Name
	m.Address = p.Address
	m.Status = p.Status
}

// PropertyModelFromDomain creates a new persistence model from a domain Property entity
func PropertyModelFromDomain(p *property.Property) *PropertyModel {
	m := &PropertyModel{}
	m.FromDomain(p)
	return m
}

// WorkOrderModel is the persistence model for the WorkOrder domain entity.
// DeletedAt carries the soft-delete timestamp; queries exclude deleted rows.
type WorkOrderModel struct {
	TenantAggregateModel
	PropertyID  uuid.UUID                `gorm:"type:uuid;not null;index"`
	Title       string                   `gorm:"type:varchar(200);not null"`
	Description string                   `gorm:"type:text"`
	Status      property.WorkOrderStatus `gorm:"type:varchar(20);not null;default:'OPEN'"`
	DeletedAt   *time.Time               `gorm:"index"`
}

// TableName returns the table name for GORM
func (WorkOrderModel) TableName() string {
	return "work_orders"
}

// ToDomain converts the persistence model to a domain WorkOrder entity
func (m *WorkOrderModel) ToDomain() *property.WorkOrder {
	w := &property.WorkOrder{
		PropertyID:  m.PropertyID,
		Title:       m.Title,
		Description: m.Description,
		Status:      m.Status,
		DeletedAt:   m.DeletedAt,
	}
	m.PopulateTenantAggregateRoot(&w.TenantAggregateRoot)
	return w
}

// FromDomain populates the persistence model from a domain WorkOrder entity
func (m *WorkOrderModel) FromDomain(w *property.WorkOrder) {
	m.FromDomainTenantAggregateRoot(w.TenantAggregateRoot)
	m.PropertyID = w.PropertyID
	m.Title = w.Title
	m.Description = w.Description
	m.Status = w.Status
	m.DeletedAt = w.DeletedAt
}

// WorkOrderModelFromDomain creates a new persistence model from a domain WorkOrder entity
func WorkOrderModelFromDomain(w *property.WorkOrder) *WorkOrderModel {
	m := &WorkOrderModel{}
	m.FromDomain(w)
	return m
}
