package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/propertyhub/backend/internal/domain/property"
	"github.com/propertyhub/backend/internal/domain/shared"
	"github.com/propertyhub/backend/internal/infrastructure/persistence/models"
)

func setupPropertyRepository(t *testing.T) *GormPropertyRepository {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.PropertyModel{}))

	return NewGormPropertyRepository(db)
}

func newStoredProperty(t *testing.T, repo *GormPropertyRepository, tenantID uuid.UUID, name string) *property.Property {
	t.Helper()

	p, err := property.NewProperty(tenantID, name, "12 Elm Street", nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), p))
	return p
}

func TestGormPropertyRepository_SaveAndFindByIDForTenant(t *testing.T) {
	repo := setupPropertyRepository(t)
	ctx := context.Background()

	tenantID := uuid.New()
	p := newStoredProperty(t, repo, tenantID, "Elm Street Duplex")

	t.Run("finds stored property", func(t *testing.T) {
		found, err := repo.FindByIDForTenant(ctx, tenantID, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Elm Street Duplex", found.Name)
		assert.Equal(t, property.PropertyStatusActive, found.Status)
	})

	t.Run("other tenant sees nothing", func(t *testing.T) {
		_, err := repo.FindByIDForTenant(ctx, uuid.New(), p.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("save persists updates", func(t *testing.T) {
		require.NoError(t, p.Archive())
		require.NoError(t, repo.Save(ctx, p))

		found, err := repo.FindByIDForTenant(ctx, tenantID, p.ID)
		require.NoError(t, err)
		assert.Equal(t, property.PropertyStatusArchived, found.Status)
	})
}

func TestGormPropertyRepository_FindAllForTenant(t *testing.T) {
	repo := setupPropertyRepository(t)
	ctx := context.Background()

	tenantID := uuid.New()
	newStoredProperty(t, repo, tenantID, "Birch Apartments")
	newStoredProperty(t, repo, tenantID, "Aspen House")
	newStoredProperty(t, repo, uuid.New(), "Foreign Property")

	archived := newStoredProperty(t, repo, tenantID, "Cedar Cottage")
	require.NoError(t, archived.Archive())
	require.NoError(t, repo.Save(ctx, archived))

	filter := shared.DefaultFilter()
	filter.OrderBy = "name"
	filter.OrderDir = "asc"

	t.Run("lists only the tenant's properties", func(t *testing.T) {
		page, err := repo.FindAllForTenant(ctx, tenantID, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		require.Len(t, page.Items, 3)
		assert.Equal(t, "Aspen House", page.Items[0].Name)
		assert.Equal(t, "Birch Apartments", page.Items[1].Name)
		assert.Equal(t, "Cedar Cottage", page.Items[2].Name)
	})

	t.Run("filters by status", func(t *testing.T) {
		statusFilter := filter
		statusFilter.Filters = map[string]interface{}{"status": "ARCHIVED"}

		page, err := repo.FindAllForTenant(ctx, tenantID, statusFilter)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Cedar Cottage", page.Items[0].Name)
	})
}

func TestGormPropertyRepository_ExistsForTenant(t *testing.T) {
	repo := setupPropertyRepository(t)
	ctx := context.Background()

	tenantID := uuid.New()
	p := newStoredProperty(t, repo, tenantID, "Elm Street Duplex")

	exists, err := repo.ExistsForTenant(ctx, tenantID, p.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForTenant(ctx, uuid.New(), p.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsForTenant(ctx, tenantID, uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)
}
