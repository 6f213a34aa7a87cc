package models

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propnest/PropNest/internal/pkg/shortener"
)

const (
	PROPERTY_TYPE_APARTMENT  = "apartment"
	PROPERTY_TYPE_HOUSE      = "house"
	PROPERTY_TYPE_PLOT       = "plot"
	PROPERTY_TYPE_COMMERCIAL = "commercial"

	PROPERTY_STATUS_AVAILABLE = "available"
	PROPERTY_STATUS_RESERVED  = "reserved"
	PROPERTY_STATUS_SOLD      = "sold"
)

// Property is a listing managed by the back office.
type Property struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UUID        string         `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title" validate:"required,min=3,max=255"`
	Description string         `gorm:"type:text" json:"description"`
	Type        string         `gorm:"type:varchar(30);not null;index" json:"type" validate:"oneof=apartment house plot commercial"`
	Status      string         `gorm:"type:varchar(30);not null;default:'available';index" json:"status" validate:"oneof=available reserved sold"`
	Price       int64          `gorm:"type:bigint;not null;default:0" json:"price" validate:"gte=0"`
	Location    string         `gorm:"type:varchar(200);index" json:"location" validate:"max=200"`
	Bedrooms    int            `gorm:"type:int;default:0" json:"bedrooms" validate:"gte=0,lte=50"`
	AreaSqft    int            `gorm:"type:int;default:0" json:"area_sqft" validate:"gte=0"`
	OwnerID     *uint          `gorm:"index" json:"owner_id"`
	Owner       *Owner         `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Property) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// BeforeCreate fills generated fields before the row is written.
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	return nil
}

// RefCode derives the human-facing reference code from the numeric id. It is
// computed on the fly and never stored.
func (p *Property) RefCode() string {
	return fmt.Sprintf("PN-%s", shortener.EncodeID(p.ID))
}
