package media

import (
	"context"

	"github.com/google/uuid"
)

// PhotoReader defines the interface for reading individual photos by ID
type PhotoReader interface {
	// FindByIDForTenant finds a photo by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PropertyPhoto, error)

	// FindByIDs finds multiple photos by their IDs within a tenant
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]PropertyPhoto, error)
}

// PhotoFinder defines the interface for querying the photo set of a property
type PhotoFinder interface {
	// FindByProperty returns all photos of a property ordered by display order
	FindByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]PropertyPhoto, error)

	// FindPrimary returns the primary photo of a property, or ErrNotFound
	FindPrimary(ctx context.Context, tenantID, propertyID uuid.UUID) (*PropertyPhoto, error)

	// CountByProperty counts photos of a property
	CountByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) (int64, error)

	// MaxDisplayOrder returns the highest display order among a property's
	// photos, or -1 when the property has none
	MaxDisplayOrder(ctx context.Context, tenantID, propertyID uuid.UUID) (int, error)
}

// PhotoWriter defines the interface for photo persistence
type PhotoWriter interface {
	// Save creates or updates a photo
	Save(ctx context.Context, photo *PropertyPhoto) error

	// SaveBatch creates or updates multiple photos
	SaveBatch(ctx context.Context, photos []*PropertyPhoto) error

	// DeleteForTenant permanently removes a photo row within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// PhotoRepository combines all photo persistence capabilities
type PhotoRepository interface {
	PhotoReader
	PhotoFinder
	PhotoWriter
}
