package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PropertyPhoto is a listing photo stored on local disk together with its
// generated thumbnail.
type PropertyPhoto struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UUID       string         `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	PropertyID uint           `gorm:"not null;index" json:"property_id"`
	FilePath   string         `gorm:"type:varchar(255);not null" json:"file_path"`
	ThumbPath  string         `gorm:"type:varchar(255)" json:"thumb_path"`
	FileName   string         `gorm:"type:varchar(255);not null" json:"file_name"`
	FileType   string         `gorm:"type:varchar(50)" json:"file_type"`
	FileSize   int64          `gorm:"type:bigint" json:"file_size"`
	Width      int            `gorm:"type:int" json:"width"`
	Height     int            `gorm:"type:int" json:"height"`
	CapturedAt *time.Time     `gorm:"type:datetime" json:"captured_at"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate fills generated fields before the row is written.
func (p *PropertyPhoto) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	return nil
}
