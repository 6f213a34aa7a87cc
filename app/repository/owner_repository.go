package repository

import (
	"gorm.io/gorm"

	"github.com/propnest/PropNest/app/models"
)

// ownerRepository implements the OwnerRepository interface
type ownerRepository struct {
	db *gorm.DB
}

// NewOwnerRepository creates a new owner repository instance
func NewOwnerRepository(db *gorm.DB) OwnerRepository {
	return &ownerRepository{db: db}
}

// Create creates a new owner in the database
func (r *ownerRepository) Create(owner *models.Owner) error {
	return r.db.Create(owner).Error
}

// GetByID retrieves an owner by their ID
func (r *ownerRepository) GetByID(id uint) (*models.Owner, error) {
	var owner models.Owner
	err := r.db.First(&owner, id).Error
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

// List retrieves a paginated list of owners
func (r *ownerRepository) List(offset, limit int) ([]models.Owner, error) {
	var owners []models.Owner
	query := r.db.Order("created_at DESC")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&owners).Error
	return owners, err
}

// Count returns the total number of owners
func (r *ownerRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Owner{}).Count(&count).Error
	return count, err
}
