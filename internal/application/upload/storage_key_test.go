package upload

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildKey(t *testing.T) {
	tenantID := uuid.New()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	key := BuildKey(tenantID, CategoryPhotos, "Front Door.JPG", now)

	segments := strings.Split(key, "/")
	require.Len(t, segments, 4)
	assert.Equal(t, tenantID.String(), segments[0])
	assert.Equal(t, "photos", segments[1])
	assert.Equal(t, "2026", segments[2])
	assert.True(t, strings.HasSuffix(segments[3], ".jpg"), "extension should be lowercased")

	generated := strings.TrimSuffix(segments[3], ".jpg")
	_, err := uuid.Parse(generated)
	assert.NoError(t, err, "object name should be a generated UUID")
}

func TestBuildKey_RoundTripsThroughParse(t *testing.T) {
	tenantID := uuid.New()

	key := BuildKey(tenantID, CategoryReceipts, "receipt.pdf", time.Now())

	parsed, err := ParseTenantID(key)
	require.NoError(t, err)
	assert.Equal(t, tenantID, parsed)
}

func TestThumbnailKeyFor(t *testing.T) {
	tenantID := uuid.New()
	key := tenantID.String() + "/photos/2026/abc.jpg"

	thumb := ThumbnailKeyFor(key)
	assert.Equal(t, tenantID.String()+"/photos/2026/thumbnails/abc.jpg", thumb)

	// Thumbnail keys still carry the tenant as the leading segment
	parsed, err := ParseTenantID(thumb)
	require.NoError(t, err)
	assert.Equal(t, tenantID, parsed)
}

func TestParseTenantID_RejectsMalformedKeys(t *testing.T) {
	cases := []string{
		"",
		"/absolute/photos/2026/a.jpg",
		"not-a-uuid/photos/2026/a.jpg",
		uuid.New().String() + "/photos/a.jpg", // too few segments
		uuid.New().String() + "/photos/../2026/a.jpg",
	}
	for _, key := range cases {
		_, err := ParseTenantID(key)
		assert.Error(t, err, "key %q should be rejected", key)
	}
}

func TestVerifyTenant(t *testing.T) {
	caller := uuid.New()
	other := uuid.New()

	t.Run("accepts caller's own key", func(t *testing.T) {
		key := BuildKey(caller, CategoryPhotos, "a.jpg", time.Now())
		assert.NoError(t, VerifyTenant(key, caller))
	})

	t.Run("rejects another tenant's key", func(t *testing.T) {
		key := BuildKey(other, CategoryPhotos, "a.jpg", time.Now())
		err := VerifyTenant(key, caller)
		require.Error(t, err)
		assert.NotContains(t, err.Error(), other.String(), "error must not leak the owning tenant")
	})
}

func TestIsAllowedContentType(t *testing.T) {
	assert.True(t, IsAllowedContentType(CategoryPhotos, "image/jpeg"))
	assert.True(t, IsAllowedContentType(CategoryPhotos, "IMAGE/PNG"))
	assert.False(t, IsAllowedContentType(CategoryPhotos, "application/pdf"))
	assert.False(t, IsAllowedContentType(CategoryPhotos, "image/svg+xml"))

	assert.True(t, IsAllowedContentType(CategoryReceipts, "application/pdf"))
	assert.False(t, IsAllowedContentType(CategoryReceipts, "application/zip"))

	assert.False(t, IsAllowedContentType(Category("other"), "image/jpeg"))
}
