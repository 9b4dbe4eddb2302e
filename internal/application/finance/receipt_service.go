package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/propertyhub/backend/internal/application/upload"
	"github.com/propertyhub/backend/internal/domain/finance"
	"github.com/propertyhub/backend/internal/domain/property"
	"github.com/propertyhub/backend/internal/domain/shared"
	"github.com/propertyhub/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ReceiptServiceConfig holds configuration for the receipt service
type ReceiptServiceConfig struct {
	// UploadURLExpiry is the duration for which upload URLs are valid
	UploadURLExpiry time.Duration
	// DownloadURLExpiry is the duration for which download URLs are valid
	DownloadURLExpiry time.Duration
}

// DefaultReceiptServiceConfig returns the default configuration
func DefaultReceiptServiceConfig() ReceiptServiceConfig {
	return ReceiptServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: 1 * time.Hour,
	}
}

// ReceiptService runs the receipt lifecycle: two-phase upload, one-time
// processing into a linked expense, and soft deletion.
type ReceiptService struct {
	receiptRepo     finance.ReceiptRepository
	categoryRepo    finance.CategoryRepository
	propertyRepo    property.PropertyRepository
	workOrderRepo   property.WorkOrderRepository
	processingStore finance.ReceiptProcessingStore
	storageService  upload.ObjectStorageService
	config          ReceiptServiceConfig
	logger          *zap.Logger
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(
	receiptRepo finance.ReceiptRepository,
	categoryRepo finance.CategoryRepository,
	propertyRepo property.PropertyRepository,
	workOrderRepo property.WorkOrderRepository,
	processingStore finance.ReceiptProcessingStore,
	storageService upload.ObjectStorageService,
	logger *zap.Logger,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo:     receiptRepo,
		categoryRepo:    categoryRepo,
		propertyRepo:    propertyRepo,
		workOrderRepo:   workOrderRepo,
		processingStore: processingStore,
		storageService:  storageService,
		config:          DefaultReceiptServiceConfig(),
		logger:          logger,
	}
}

// SetConfig sets the service configuration
func (s *ReceiptService) SetConfig(config ReceiptServiceConfig) {
	s.config = config
}

// GenerateUploadURL validates the request and returns a presigned upload URL.
// No receipt row is created here; the object may never actually be uploaded.
func (s *ReceiptService) GenerateUploadURL(
	ctx context.Context,
	tenantID uuid.UUID,
	req GenerateReceiptUploadURLRequest,
) (*GenerateReceiptUploadURLResponse, error) {
	if req.PropertyID != nil {
		exists, err := s.propertyRepo.ExistsForTenant(ctx, tenantID, *req.PropertyID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.ErrNotFound
		}
	}

	if !upload.IsAllowedContentType(upload.CategoryReceipts, req.ContentType) {
		return nil, shared.NewDomainError("DISALLOWED_CONTENT_TYPE",
			fmt.Sprintf("Content type '%s' is not allowed for receipts", req.ContentType))
	}
	if req.FileSize <= 0 || req.FileSize > upload.MaxUploadSize {
		return nil, shared.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("File size must be between 1 byte and %d bytes", upload.MaxUploadSize))
	}

	storageKey := upload.BuildKey(tenantID, upload.CategoryReceipts, req.FileName, time.Now())
	thumbnailKey := upload.ThumbnailKeyFor(storageKey)

	uploadURL, expiresAt, err := s.storageService.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Failed to generate upload URL")
	}

	return &GenerateReceiptUploadURLResponse{
		UploadURL:    uploadURL,
		StorageKey:   storageKey,
		ThumbnailKey: thumbnailKey,
		ExpiresAt:    expiresAt,
	}, nil
}

// CreateReceiptRecord turns a completed direct upload into a durable receipt
// row. The storage key's leading segment must match the caller's tenant.
func (s *ReceiptService) CreateReceiptRecord(
	ctx context.Context,
	tenantID uuid.UUID,
	req CreateReceiptRequest,
	uploadedBy *uuid.UUID,
) (*ReceiptResponse, error) {
	if err := upload.VerifyTenant(req.StorageKey, tenantID); err != nil {
		return nil, err
	}
	if req.ThumbnailKey != "" {
		if err := upload.VerifyTenant(req.ThumbnailKey, tenantID); err != nil {
			return nil, err
		}
	}

	if req.PropertyID != nil {
		exists, err := s.propertyRepo.ExistsForTenant(ctx, tenantID, *req.PropertyID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.ErrNotFound
		}
	}

	result, err := s.storageService.ConfirmUpload(ctx, req.StorageKey, req.ThumbnailKey)
	if err != nil {
		return nil, err
	}

	receipt, err := finance.NewReceipt(
		tenantID,
		req.FileName,
		result.Size,
		result.ContentType,
		result.StorageKey,
		result.ThumbnailKey,
		req.PropertyID,
		uploadedBy,
	)
	if err != nil {
		return nil, err
	}

	if err := s.receiptRepo.Save(ctx, receipt); err != nil {
		return nil, err
	}

	response := ToReceiptResponse(receipt)
	s.enrichWithURLs(ctx, &response, receipt)
	return &response, nil
}

// GetReceipt returns a single receipt
func (s *ReceiptService) GetReceipt(ctx context.Context, tenantID, receiptID uuid.UUID) (*ReceiptResponse, error) {
	receipt, err := s.receiptRepo.FindByIDForTenant(ctx, tenantID, receiptID)
	if err != nil {
		return nil, err
	}

	response := ToReceiptResponse(receipt)
	s.enrichWithURLs(ctx, &response, receipt)
	return &response, nil
}

// ListReceipts lists a tenant's receipts, optionally only unprocessed ones
func (s *ReceiptService) ListReceipts(
	ctx context.Context,
	tenantID uuid.UUID,
	filter shared.Filter,
	unprocessedOnly bool,
) (*shared.Paginated[ReceiptResponse], error) {
	var (
		page shared.Paginated[finance.Receipt]
		err  error
	)
	if unprocessedOnly {
		page, err = s.receiptRepo.FindUnprocessedForTenant(ctx, tenantID, filter)
	} else {
		page, err = s.receiptRepo.FindAllForTenant(ctx, tenantID, filter)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]ReceiptResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = ToReceiptResponse(&page.Items[i])
		s.enrichWithURLs(ctx, &responses[i], &page.Items[i])
	}

	return &shared.Paginated[ReceiptResponse]{
		Items:      responses,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// ProcessReceipt converts an unprocessed receipt into a linked expense. The
// preconditions are checked in a fixed order so callers get stable errors:
// receipt exists, receipt unprocessed, property exists, category exists, work
// order (when given) exists and belongs to the same property. The write goes
// through the processing store, which re-checks the unprocessed state so
// concurrent callers cannot both succeed.
func (s *ReceiptService) ProcessReceipt(
	ctx context.Context,
	tenantID uuid.UUID,
	receiptID uuid.UUID,
	req ProcessReceiptRequest,
	processedBy *uuid.UUID,
) (*ProcessReceiptResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "receipt", "process",
		telemetry.WithAttribute("receipt_id", receiptID.String()))
	defer span.End()

	receipt, err := s.receiptRepo.FindByIDForTenant(ctx, tenantID, receiptID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if receipt.IsProcessed() {
		return nil, shared.NewDomainError("RECEIPT_ALREADY_PROCESSED", "Receipt has already been processed")
	}

	propertyID := receipt.PropertyID
	if req.PropertyID != nil {
		propertyID = req.PropertyID
	}
	if propertyID == nil {
		return nil, shared.NewDomainError("PROPERTY_REQUIRED",
			"A property must be given for a receipt that has none")
	}
	exists, err := s.propertyRepo.ExistsForTenant(ctx, tenantID, *propertyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	// Categories are global, not tenant-owned
	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	if req.WorkOrderID != nil {
		workOrder, err := s.workOrderRepo.FindByIDForTenant(ctx, tenantID, *req.WorkOrderID)
		if err != nil {
			return nil, err
		}
		if workOrder.PropertyID != *propertyID {
			return nil, shared.NewDomainError("WORK_ORDER_PROPERTY_MISMATCH",
				"Work order belongs to a different property")
		}
	}

	expense, err := finance.NewExpense(
		tenantID,
		*propertyID,
		req.CategoryID,
		req.Amount,
		req.IncurredAt,
		req.Description,
		&receipt.ID,
		req.WorkOrderID,
		processedBy,
	)
	if err != nil {
		return nil, err
	}

	if err := receipt.Process(expense.ID, *propertyID); err != nil {
		return nil, err
	}

	if err := s.processingStore.ProcessReceipt(ctx, receipt, expense); err != nil {
		return nil, err
	}

	receiptResponse := ToReceiptResponse(receipt)
	s.enrichWithURLs(ctx, &receiptResponse, receipt)

	return &ProcessReceiptResponse{
		Receipt: receiptResponse,
		Expense: ToExpenseResponse(expense),
	}, nil
}

// DeleteReceipt soft-deletes a receipt. The row survives for audit purposes;
// the backing storage objects are removed best-effort, with failures logged
// for out-of-band cleanup.
func (s *ReceiptService) DeleteReceipt(ctx context.Context, tenantID, receiptID uuid.UUID) error {
	receipt, err := s.receiptRepo.FindByIDForTenant(ctx, tenantID, receiptID)
	if err != nil {
		return err
	}

	if err := receipt.SoftDelete(); err != nil {
		return err
	}

	if err := s.receiptRepo.Save(ctx, receipt); err != nil {
		return err
	}

	if err := s.storageService.DeleteObjects(ctx, receipt.StorageKeys()); err != nil {
		s.logger.Warn("failed to delete receipt objects from storage",
			zap.String("receipt_id", receipt.ID.String()),
			zap.String("storage_key", receipt.StorageKey),
			zap.Error(err))
	}

	return nil
}

// ListCategories returns all expense categories
func (s *ReceiptService) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses, nil
}

// enrichWithURLs adds presigned download URLs to a receipt response
func (s *ReceiptService) enrichWithURLs(ctx context.Context, response *ReceiptResponse, receipt *finance.Receipt) {
	url, _, err := s.storageService.GenerateDownloadURL(ctx, receipt.StorageKey, s.config.DownloadURLExpiry)
	if err == nil {
		response.URL = url
	}

	if receipt.ThumbnailKey != "" {
		thumbURL, _, err := s.storageService.GenerateDownloadURL(ctx, receipt.ThumbnailKey, s.config.DownloadURLExpiry)
		if err == nil {
			response.ThumbnailURL = thumbURL
		}
	}
}
