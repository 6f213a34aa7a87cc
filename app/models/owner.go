package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Owner is the person a property belongs to.
type Owner struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=1,max=150"`
	Phone     string         `gorm:"type:varchar(50)" json:"phone" validate:"max=50"`
	Email     string         `gorm:"type:varchar(200);default:null" json:"email" validate:"omitempty,email,max=200"`
	Notes     string         `gorm:"type:text" json:"notes"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Owner) Validate() error {
	v := validator.New()

	return v.Struct(o)
}
