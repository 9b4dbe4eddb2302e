package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/propertyhub/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// GenerateReceiptUploadURLRequest asks for a presigned receipt upload URL
type GenerateReceiptUploadURLRequest struct {
	FileName    string     `json:"file_name" binding:"required,max=255"`
	ContentType string     `json:"content_type" binding:"required"`
	FileSize    int64      `json:"file_size" binding:"required,gt=0"`
	PropertyID  *uuid.UUID `json:"property_id"`
}

// GenerateReceiptUploadURLResponse carries the presigned URL and the keys the
// client must echo back at confirm time
type GenerateReceiptUploadURLResponse struct {
	UploadURL    string    `json:"upload_url"`
	StorageKey   string    `json:"storage_key"`
	ThumbnailKey string    `json:"thumbnail_key"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// CreateReceiptRequest turns a completed direct upload into a receipt record
type CreateReceiptRequest struct {
	StorageKey   string     `json:"storage_key" binding:"required"`
	ThumbnailKey string     `json:"thumbnail_key"`
	FileName     string     `json:"file_name" binding:"required,max=255"`
	PropertyID   *uuid.UUID `json:"property_id"`
}

// ProcessReceiptRequest converts an unprocessed receipt into a linked expense
type ProcessReceiptRequest struct {
	CategoryID  uuid.UUID       `json:"category_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	IncurredAt  time.Time       `json:"incurred_at" binding:"required"`
	Description string          `json:"description" binding:"max=1000"`
	PropertyID  *uuid.UUID      `json:"property_id"`
	WorkOrderID *uuid.UUID      `json:"work_order_id"`
}

// ReceiptResponse is the read model of a receipt
type ReceiptResponse struct {
	ID           uuid.UUID  `json:"id"`
	FileName     string     `json:"file_name"`
	FileSize     int64      `json:"file_size"`
	ContentType  string     `json:"content_type"`
	PropertyID   *uuid.UUID `json:"property_id,omitempty"`
	ExpenseID    *uuid.UUID `json:"expense_id,omitempty"`
	ProcessedAt  *time.Time `json:"processed_at,omitempty"`
	URL          string     `json:"url,omitempty"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ExpenseResponse is the read model of an expense
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	PropertyID  uuid.UUID       `json:"property_id"`
	CategoryID  uuid.UUID       `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	IncurredAt  time.Time       `json:"incurred_at"`
	Description string          `json:"description,omitempty"`
	ReceiptID   *uuid.UUID      `json:"receipt_id,omitempty"`
	WorkOrderID *uuid.UUID      `json:"work_order_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ProcessReceiptResponse reports the outcome of processing a receipt
type ProcessReceiptResponse struct {
	Receipt ReceiptResponse `json:"receipt"`
	Expense ExpenseResponse `json:"expense"`
}

// CategoryResponse is the read model of an expense category
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// ToReceiptResponse converts a domain receipt to its read model
func ToReceiptResponse(receipt *finance.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ID:          receipt.ID,
		FileName:    receipt.FileName,
		FileSize:    receipt.FileSize,
		ContentType: receipt.ContentType,
		PropertyID:  receipt.PropertyID,
		ExpenseID:   receipt.ExpenseID,
		ProcessedAt: receipt.ProcessedAt,
		CreatedAt:   receipt.CreatedAt,
	}
}

// ToExpenseResponse converts a domain expense to its read model
func ToExpenseResponse(expense *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          expense.ID,
		PropertyID:  expense.PropertyID,
		CategoryID:  expense.CategoryID,
		Amount:      expense.Amount,
		IncurredAt:  expense.IncurredAt,
		Description: expense.Description,
		ReceiptID:   expense.ReceiptID,
		WorkOrderID: expense.WorkOrderID,
		CreatedAt:   expense.CreatedAt,
	}
}

// ToCategoryResponse converts a domain category to its read model
func ToCategoryResponse(category *finance.ExpenseCategory) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
	}
}
