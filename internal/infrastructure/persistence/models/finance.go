package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propertyhub/backend/internal/domain/finance"
)

// ReceiptModel is the persistence model for the Receipt domain entity.
// The processed_at/expense_id pair moves together; a CHECK constraint in the
// schema rejects rows where only one is set.
type ReceiptModel struct {
	AggregateModel
	TenantID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	FileName     string     `gorm:"column:file_name;type:varchar(255);not null"`
	FileSize     int64      `gorm:"column:file_size;type:bigint;not null"`
	ContentType  string     `gorm:"column:content_type;type:varchar(100);not null"`
	StorageKey   string     `gorm:"column:storage_key;type:varchar(500);not null"`
	ThumbnailKey string     `gorm:"column:thumbnail_key;type:varchar(500)"`
	PropertyID   *uuid.UUID `gorm:"type:uuid;index"`
	ExpenseID    *uuid.UUID `gorm:"type:uuid"`
	ProcessedAt  *time.Time `gorm:"index"`
	DeletedAt    *time.Time `gorm:"index"`
	UploadedBy   *uuid.UUID `gorm:"column:uploaded_by;type:uuid"`
}

// TableName returns the table name for GORM
func (ReceiptModel) TableName() string {
	return "receipts"
}

// ToDomain converts the persistence model to a domain Receipt entity
func (m *ReceiptModel) ToDomain() *finance.Receipt {
	r := &finance.Receipt{
		FileName:     m.FileName,
		FileSize:     m.FileSize,
		ContentType:  m.ContentType,
		StorageKey:   m.StorageKey,
		ThumbnailKey: m.ThumbnailKey,
		PropertyID:   m.PropertyID,
		ExpenseID:    m.ExpenseID,
		ProcessedAt:  m.ProcessedAt,
		DeletedAt:    m.DeletedAt,
		UploadedBy:   m.UploadedBy,
	}
	r.ID = m.ID
	r.CreatedAt = m.CreatedAt
	r.UpdatedAt = m.UpdatedAt
	r.Version = m.Version
	r.TenantID = m.TenantID
	return r
}

// FromDomain populates the persistence model from a domain Receipt entity
func (m *ReceiptModel) FromDomain(r *finance.Receipt) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.TenantID = r.TenantID
	m.FileName = r.FileName
	m.FileSize = r.FileSize
	m.ContentType = r.ContentType
	m.StorageKey = r.StorageKey
	m.ThumbnailKey = r.ThumbnailKey
	m.PropertyID = r.PropertyID
	m.ExpenseID = r.ExpenseID
	m.ProcessedAt = r.ProcessedAt
	m.DeletedAt = r.DeletedAt
	m.UploadedBy = r.UploadedBy
}

// ReceiptModelFromDomain creates a new persistence model from a domain Receipt entity
func ReceiptModelFromDomain(r *finance.Receipt) *ReceiptModel {
	m := &ReceiptModel{}
	m.FromDomain(r)
	return m
}

// ExpenseModel is the persistence model for the Expense domain entity.
type ExpenseModel struct {
	TenantAggregateModel
	PropertyID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	IncurredAt  time.Time       `gorm:"not null"`
	Description string          `gorm:"type:varchar(1000)"`
	ReceiptID   *uuid.UUID      `gorm:"type:uuid;index"`
	WorkOrderID *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity
func (m *ExpenseModel) ToDomain() *finance.Expense {
	e := &finance.Expense{
		PropertyID:  m.PropertyID,
		CategoryID:  m.CategoryID,
		Amount:      m.Amount,
		IncurredAt:  m.IncurredAt,
		Description: m.Description,
		ReceiptID:   m.ReceiptID,
		WorkOrderID: m.WorkOrderID,
	}
	m.PopulateTenantAggregateRoot(&e.TenantAggregateRoot)
	return e
}

// FromDomain populates the persistence model from a domain Expense entity
func (m *ExpenseModel) FromDomain(e *finance.Expense) {
	m.FromDomainTenantAggregateRoot(e.TenantAggregateRoot)
	m.PropertyID = e.PropertyID
	m.CategoryID = e.CategoryID
	m.Amount = e.Amount
	m.IncurredAt = e.IncurredAt
	m.Description = e.Description
	m.ReceiptID = e.ReceiptID
	m.WorkOrderID = e.WorkOrderID
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense entity
func ExpenseModelFromDomain(e *finance.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}

// ExpenseCategoryModel is the persistence model for the global ExpenseCategory
// reference table. Categories carry no tenant column.
type ExpenseCategoryModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ExpenseCategoryModel) TableName() string {
	return "expense_categories"
}

// ToDomain converts the persistence model to a domain ExpenseCategory entity
func (m *ExpenseCategoryModel) ToDomain() *finance.ExpenseCategory {
	return &finance.ExpenseCategory{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain ExpenseCategory entity
func (m *ExpenseCategoryModel) FromDomain(c *finance.ExpenseCategory) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Description = c.Description
}

// ExpenseCategoryModelFromDomain creates a new persistence model from a domain ExpenseCategory entity
func ExpenseCategoryModelFromDomain(c *finance.ExpenseCategory) *ExpenseCategoryModel {
	m := &ExpenseCategoryModel{}
	m.FromDomain(c)
	return m
}
