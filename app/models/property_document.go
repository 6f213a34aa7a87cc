package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PropertyDocument is a contract, deed, or similar file kept in the S3
// document store and referenced by its object key.
type PropertyDocument struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UUID         string         `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	PropertyID   uint           `gorm:"not null;index" json:"property_id"`
	ObjectKey    string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"object_key"`
	FileName     string         `gorm:"type:varchar(255);not null" json:"file_name"`
	ContentType  string         `gorm:"type:varchar(100)" json:"content_type"`
	FileSize     int64          `gorm:"type:bigint" json:"file_size"`
	UploadedByID uint           `gorm:"index" json:"uploaded_by_id"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate fills generated fields before the row is written.
func (d *PropertyDocument) BeforeCreate(tx *gorm.DB) error {
	if d.UUID == "" {
		d.UUID = uuid.New().String()
	}
	return nil
}
