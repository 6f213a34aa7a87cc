package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LEAD_SOURCE_FACEBOOK  = "Facebook"
	LEAD_SOURCE_INSTAGRAM = "Instagram"
	LEAD_SOURCE_MANUAL    = "Manual"

	LEAD_STAGE_NEW       = "New"
	LEAD_STAGE_CONTACTED = "Contacted"
	LEAD_STAGE_QUALIFIED = "Qualified"
	LEAD_STAGE_WON       = "Won"
	LEAD_STAGE_LOST      = "Lost"

	// LEAD_PHONE_PLACEHOLDER is stored instead of rejecting a lead whose
	// submission carried no phone field at all.
	LEAD_PHONE_PLACEHOLDER = "No phone provided"
)

// JSON stores raw JSON documents in a database column
type JSON json.RawMessage

// Value implements the driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

// Scan implements the sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = JSON("{}")
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("invalid scan source")
	}
	*j = JSON(bytes)
	return nil
}

// MarshalJSON implements the json.Marshaler interface
func (j JSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (j *JSON) UnmarshalJSON(data []byte) error {
	*j = JSON(data)
	return nil
}

// Lead is a sales contact. Webhook-ingested leads carry the provider's
// lead-event id in ExternalID; at most one lead exists per external id and a
// repeated delivery never mutates an existing row.
type Lead struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	UUID              string         `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	Name              string         `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=1,max=150"`
	Phone             string         `gorm:"type:varchar(50);not null" json:"phone" validate:"required,max=50"`
	Email             string         `gorm:"type:varchar(200);default:null" json:"email" validate:"omitempty,email,max=200"`
	Budget            string         `gorm:"type:varchar(100);default:null" json:"budget" validate:"max=100"`
	PreferredLocation string         `gorm:"type:varchar(200);default:null" json:"preferred_location" validate:"max=200"`
	Source            string         `gorm:"type:varchar(20);not null;index" json:"source" validate:"oneof=Facebook Instagram Manual"`
	Stage             string         `gorm:"type:varchar(30);not null;default:'New';index" json:"stage" validate:"oneof=New Contacted Qualified Won Lost"`
	Notes             string         `gorm:"type:text" json:"notes"`
	AssignedToID      *uint          `gorm:"index" json:"assigned_to_id"`
	ExternalID        string         `gorm:"type:varchar(191);uniqueIndex;default:null" json:"external_id"`
	ExternalMeta      *JSON          `gorm:"type:json" json:"external_meta,omitempty"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (l *Lead) Validate() error {
	v := validator.New()

	return v.Struct(l)
}

// BeforeCreate fills generated fields before the row is written.
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.UUID == "" {
		l.UUID = uuid.New().String()
	}
	if l.Stage == "" {
		l.Stage = LEAD_STAGE_NEW
	}
	return nil
}

// ApplyIntakeDefaults fills the required fields a raw lead draft may leave
// empty: the phone placeholder and the initial stage.
func (l *Lead) ApplyIntakeDefaults() {
	if l.Phone == "" {
		l.Phone = LEAD_PHONE_PLACEHOLDER
	}
	if l.Stage == "" {
		l.Stage = LEAD_STAGE_NEW
	}
}
