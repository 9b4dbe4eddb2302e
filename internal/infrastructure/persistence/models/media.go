package models

import (
	"github.com/google/uuid"

	"github.com/propertyhub/backend/internal/domain/media"
)

// PropertyPhotoModel is the persistence model for the PropertyPhoto domain entity.
// The partial unique index on (property_id) WHERE is_primary backs the
// at-most-one-primary invariant at the database level.
type PropertyPhotoModel struct {
	AggregateModel
	TenantID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	PropertyID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	FileName     string     `gorm:"column:file_name;type:varchar(255);not null"`
	FileSize     int64      `gorm:"column:file_size;type:bigint;not null"`
	ContentType  string     `gorm:"column:content_type;type:varchar(100);not null"`
	StorageKey   string     `gorm:"column:storage_key;type:varchar(500);not null"`
	ThumbnailKey string     `gorm:"column:thumbnail_key;type:varchar(500)"`
	DisplayOrder int        `gorm:"column:display_order;type:integer;not null;default:0"`
	IsPrimary    bool       `gorm:"column:is_primary;not null;default:false"`
	UploadedBy   *uuid.UUID `gorm:"column:uploaded_by;type:uuid"`
}

// TableName returns the table name for GORM
func (PropertyPhotoModel) TableName() string {
	return "property_photos"
}

// ToDomain converts the persistence model to a domain PropertyPhoto entity.
// Photos use uploaded_by instead of created_by, so the embedded CreatedBy
// stays nil.
func (m *PropertyPhotoModel) ToDomain() *media.PropertyPhoto {
	p := &media.PropertyPhoto{
		PropertyID:   m.PropertyID,
		FileName:     m.FileName,
		FileSize:     m.FileSize,
		ContentType:  m.ContentType,
		StorageKey:   m.StorageKey,
		ThumbnailKey: m.ThumbnailKey,
		DisplayOrder: m.DisplayOrder,
		IsPrimary:    m.IsPrimary,
		UploadedBy:   m.UploadedBy,
	}
	p.ID = m.ID
	p.CreatedAt = m.CreatedAt
	p.UpdatedAt = m.UpdatedAt
	p.Version = m.Version
	p.TenantID = m.TenantID
	return p
}

// FromDomain populates the persistence model from a domain PropertyPhoto entity
func (m *PropertyPhotoModel) FromDomain(p *media.PropertyPhoto) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.TenantID = p.TenantID
	m.PropertyID = p.PropertyID
	m.FileName = p.FileName
	m.FileSize = p.FileSize
	m.ContentType = p.ContentType
	m.StorageKey = p.StorageKey
	m.ThumbnailKey = p.ThumbnailKey
	m.DisplayOrder = p.DisplayOrder
	m.IsPrimary = p.IsPrimary
	m.UploadedBy = p.UploadedBy
}

// PropertyPhotoModelFromDomain creates a new persistence model from a domain PropertyPhoto entity
func PropertyPhotoModelFromDomain(p *media.PropertyPhoto) *PropertyPhotoModel {
	m := &PropertyPhotoModel{}
	m.FromDomain(p)
	return m
}
