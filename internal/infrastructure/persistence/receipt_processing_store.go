package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/propertyhub/backend/internal/domain/finance"
	"github.com/propertyhub/backend/internal/domain/shared"
	"github.com/propertyhub/backend/internal/infrastructure/persistence/models"
)

// GormReceiptProcessingStore implements finance.ReceiptProcessingStore.
// Processing is one transaction: insert the expense, flip the receipt to
// processed, and stage the pending domain events in the outbox. The receipt
// update re-checks the unprocessed state at write time so concurrent callers
// cannot both succeed; the loser observes zero affected rows and gets
// ErrConflict with nothing persisted.
type GormReceiptProcessingStore struct {
	db         *gorm.DB
	eventSaver shared.OutboxEventSaver
}

// NewGormReceiptProcessingStore creates a new GormReceiptProcessingStore.
// eventSaver may be nil when outbox staging is disabled.
func NewGormReceiptProcessingStore(db *gorm.DB, eventSaver shared.OutboxEventSaver) *GormReceiptProcessingStore {
	return &GormReceiptProcessingStore{db: db, eventSaver: eventSaver}
}

// ProcessReceipt persists the processing effect atomically
func (s *GormReceiptProcessingStore) ProcessReceipt(ctx context.Context, receipt *finance.Receipt, expense *finance.Expense) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		expenseModel := models.ExpenseModelFromDomain(expense)
		if err := tx.Create(expenseModel).Error; err != nil {
			return err
		}

		result := tx.Model(&models.ReceiptModel{}).
			Where("id = ? AND tenant_id = ? AND processed_at IS NULL AND deleted_at IS NULL",
				receipt.ID, receipt.TenantID).
			Updates(map[string]interface{}{
				"processed_at": receipt.ProcessedAt,
				"expense_id":   receipt.ExpenseID,
				"property_id":  receipt.PropertyID,
				"version":      receipt.Version,
				"updated_at":   time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConflict
		}

		if s.eventSaver != nil {
			events := append(receipt.GetDomainEvents(), expense.GetDomainEvents()...)
			if err := s.eventSaver.SaveEvents(ctx, tx, events...); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	receipt.ClearDomainEvents()
	expense.ClearDomainEvents()
	return nil
}

var _ finance.ReceiptProcessingStore = (*GormReceiptProcessingStore)(nil)
