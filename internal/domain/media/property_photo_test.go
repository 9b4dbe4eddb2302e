package media

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPropertyPhoto(t *testing.T) {
	tenantID := uuid.New()
	propertyID := uuid.New()
	userID := uuid.New()

	t.Run("creates photo with valid inputs", func(t *testing.T) {
		photo, err := NewPropertyPhoto(
			tenantID,
			propertyID,
			"front_door.jpg",
			1024*500, // 500KB
			"image/jpeg",
			tenantID.String()+"/photos/2026/abc.jpg",
			tenantID.String()+"/photos/2026/thumbnails/abc.jpg",
			0,
			true,
			&userID,
		)
		require.NoError(t, err)
		require.NotNil(t, photo)

		assert.Equal(t, tenantID, photo.TenantID)
		assert.Equal(t, propertyID, photo.PropertyID)
		assert.Equal(t, "front_door.jpg", photo.FileName)
		assert.Equal(t, int64(1024*500), photo.FileSize)
		assert.Equal(t, "image/jpeg", photo.ContentType)
		assert.True(t, photo.IsPrimary)
		assert.Equal(t, 0, photo.DisplayOrder)
		assert.Equal(t, &userID, photo.UploadedBy)
		assert.NotEmpty(t, photo.ID)
		assert.Equal(t, 1, photo.GetVersion())
		assert.True(t, photo.HasThumbnail())
	})

	t.Run("allows empty thumbnail key", func(t *testing.T) {
		photo, err := NewPropertyPhoto(
			tenantID, propertyID,
			"kitchen.png", 2048, "image/png",
			tenantID.String()+"/photos/2026/def.png", "",
			1, false, nil,
		)
		require.NoError(t, err)
		assert.False(t, photo.HasThumbnail())
		assert.Equal(t, []string{photo.StorageKey}, photo.StorageKeys())
	})

	t.Run("publishes PropertyPhotoAdded event", func(t *testing.T) {
		photo, err := NewPropertyPhoto(
			tenantID, propertyID,
			"roof.jpg", 1024, "image/jpeg",
			tenantID.String()+"/photos/2026/ghi.jpg", "",
			2, false, &userID,
		)
		require.NoError(t, err)

		events := photo.GetDomainEvents()
		require.Len(t, events, 1)
		added, ok := events[0].(*PropertyPhotoAddedEvent)
		require.True(t, ok)
		assert.Equal(t, EventTypePropertyPhotoAdded, added.EventType())
		assert.Equal(t, photo.ID, added.PhotoID)
		assert.Equal(t, propertyID, added.PropertyID)
	})

	t.Run("rejects empty tenant ID", func(t *testing.T) {
		_, err := NewPropertyPhoto(
			uuid.Nil, propertyID,
			"a.jpg", 1024, "image/jpeg", "t/photos/2026/a.jpg", "", 0, false, nil,
		)
		assert.Error(t, err)
	})

	t.Run("rejects empty property ID", func(t *testing.T) {
		_, err := NewPropertyPhoto(
			tenantID, uuid.Nil,
			"a.jpg", 1024, "image/jpeg", "t/photos/2026/a.jpg", "", 0, false, nil,
		)
		assert.Error(t, err)
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		_, err := NewPropertyPhoto(
			tenantID, propertyID,
			"big.jpg", MaxPhotoFileSize+1, "image/jpeg", "t/photos/2026/big.jpg", "", 0, false, nil,
		)
		assert.Error(t, err)
	})

	t.Run("rejects file name with path separators", func(t *testing.T) {
		_, err := NewPropertyPhoto(
			tenantID, propertyID,
			"../evil.jpg", 1024, "image/jpeg", "t/photos/2026/a.jpg", "", 0, false, nil,
		)
		assert.Error(t, err)
	})

	t.Run("rejects storage key with traversal sequences", func(t *testing.T) {
		_, err := NewPropertyPhoto(
			tenantID, propertyID,
			"a.jpg", 1024, "image/jpeg", "t/../other/a.jpg", "", 0, false, nil,
		)
		assert.Error(t, err)
	})

	t.Run("rejects malformed content type", func(t *testing.T) {
		for _, ct := range []string{"", "jpeg", "/jpeg", "image/"} {
			_, err := NewPropertyPhoto(
				tenantID, propertyID,
				"a.jpg", 1024, ct, "t/photos/2026/a.jpg", "", 0, false, nil,
			)
			assert.Error(t, err, "content type %q should be rejected", ct)
		}
	})

	t.Run("rejects negative display order", func(t *testing.T) {
		_, err := NewPropertyPhoto(
			tenantID, propertyID,
			"a.jpg", 1024, "image/jpeg", "t/photos/2026/a.jpg", "", -1, false, nil,
		)
		assert.Error(t, err)
	})
}

func TestPropertyPhoto_MarkPrimary(t *testing.T) {
	tenantID := uuid.New()
	propertyID := uuid.New()

	newPhoto := func(primary bool) *PropertyPhoto {
		photo, err := NewPropertyPhoto(
			tenantID, propertyID,
			"a.jpg", 1024, "image/jpeg", "t/photos/2026/a.jpg", "", 0, primary, nil,
		)
		require.NoError(t, err)
		photo.ClearDomainEvents()
		return photo
	}

	t.Run("promotes non-primary photo", func(t *testing.T) {
		photo := newPhoto(false)
		photo.MarkPrimary()

		assert.True(t, photo.IsPrimary)
		assert.Equal(t, 2, photo.GetVersion())
		events := photo.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypePropertyPhotoPrimaryChanged, events[0].EventType())
	})

	t.Run("is a no-op when already primary", func(t *testing.T) {
		photo := newPhoto(true)
		photo.MarkPrimary()

		assert.True(t, photo.IsPrimary)
		assert.Equal(t, 1, photo.GetVersion())
		assert.Empty(t, photo.GetDomainEvents())
	})
}

func TestPropertyPhoto_ClearPrimary(t *testing.T) {
	tenantID := uuid.New()
	propertyID := uuid.New()

	photo, err := NewPropertyPhoto(
		tenantID, propertyID,
		"a.jpg", 1024, "image/jpeg", "t/photos/2026/a.jpg", "", 0, true, nil,
	)
	require.NoError(t, err)

	photo.ClearPrimary()
	assert.False(t, photo.IsPrimary)

	// Clearing again does not bump the version
	version := photo.GetVersion()
	photo.ClearPrimary()
	assert.Equal(t, version, photo.GetVersion())
}

func TestPropertyPhoto_SetDisplayOrder(t *testing.T) {
	tenantID := uuid.New()
	propertyID := uuid.New()

	photo, err := NewPropertyPhoto(
		tenantID, propertyID,
		"a.jpg", 1024, "image/jpeg", "t/photos/2026/a.jpg", "", 0, false, nil,
	)
	require.NoError(t, err)

	require.NoError(t, photo.SetDisplayOrder(3))
	assert.Equal(t, 3, photo.DisplayOrder)

	assert.Error(t, photo.SetDisplayOrder(-1))
	assert.Equal(t, 3, photo.DisplayOrder)
}
