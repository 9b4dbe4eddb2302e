package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/propertyhub/backend/internal/domain/property"
	"github.com/propertyhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PropertyService provides the property surface the media and finance
// services hang off
type PropertyService struct {
	propertyRepo property.PropertyRepository
	logger       *zap.Logger
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(propertyRepo property.PropertyRepository, logger *zap.Logger) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		logger:       logger,
	}
}

// Create creates a new property for a tenant
func (s *PropertyService) Create(
	ctx context.Context,
	tenantID uuid.UUID,
	req CreatePropertyRequest,
	createdBy *uuid.UUID,
) (*PropertyResponse, error) {
	prop, err := property.NewProperty(tenantID, req.Name, req.Address, createdBy)
	if err != nil {
		return nil, err
	}

	if err := s.propertyRepo.Save(ctx, prop); err != nil {
		return nil, err
	}

	response := ToPropertyResponse(prop)
	return &response, nil
}

// Get returns a single property
func (s *PropertyService) Get(ctx context.Context, tenantID, propertyID uuid.UUID) (*PropertyResponse, error) {
	prop, err := s.propertyRepo.FindByIDForTenant(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}

	response := ToPropertyResponse(prop)
	return &response, nil
}

// List lists a tenant's properties
func (s *PropertyService) List(
	ctx context.Context,
	tenantID uuid.UUID,
	filter shared.Filter,
) (*shared.Paginated[PropertyResponse], error) {
	page, err := s.propertyRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	return &shared.Paginated[PropertyResponse]{
		Items:      ToPropertyResponses(page.Items),
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}
