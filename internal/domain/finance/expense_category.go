package finance

import (
	"strings"

	"github.com/propertyhub/backend/internal/domain/shared"
)

// ExpenseCategory classifies expenses. Categories are global reference data,
// not tenant-owned rows.
type ExpenseCategory struct {
	shared.BaseEntity
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewExpenseCategory creates a new expense category
func NewExpenseCategory(name, description string) (*ExpenseCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot exceed 100 characters")
	}

	return &ExpenseCategory{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
	}, nil
}
