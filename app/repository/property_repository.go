package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/propnest/PropNest/app/models"
)

// propertyRepository implements the PropertyRepository interface
type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository instance
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

// Create creates a new property in the database
func (r *propertyRepository) Create(property *models.Property) error {
	return r.db.Create(property).Error
}

// GetByID retrieves a property by its ID
func (r *propertyRepository) GetByID(id uint) (*models.Property, error) {
	var property models.Property
	err := r.db.Preload("Owner").First(&property, id).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// GetByUUID retrieves a property by its UUID
func (r *propertyRepository) GetByUUID(uuid string) (*models.Property, error) {
	var property models.Property
	err := r.db.Preload("Owner").Where("uuid = ?", uuid).First(&property).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// Update updates an existing property in the database
func (r *propertyRepository) Update(property *models.Property) error {
	return r.db.Save(property).Error
}

// Delete soft deletes a property by its ID
func (r *propertyRepository) Delete(id uint) error {
	return r.db.Delete(&models.Property{}, id).Error
}

// List retrieves a filtered, paginated list of properties
func (r *propertyRepository) List(filter PropertyFilter) ([]models.Property, error) {
	var properties []models.Property
	query := r.db.Preload("Owner").Order("created_at DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Location != "" {
		pattern := "%" + strings.TrimSpace(filter.Location) + "%"
		query = query.Where("location LIKE ?", pattern)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	err := query.Find(&properties).Error
	return properties, err
}

// Count returns the total number of properties
func (r *propertyRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Property{}).Count(&count).Error
	return count, err
}

// CountByStatus returns property totals grouped by listing status
func (r *propertyRepository) CountByStatus() (map[string]int64, error) {
	type row struct {
		Key   string
		Total int64
	}
	var rows []row
	err := r.db.Model(&models.Property{}).
		Select("status AS `key`, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, rw := range rows {
		result[rw.Key] = rw.Total
	}
	return result, nil
}
