package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/propnest/PropNest/app/models"
)

// staffUserRepository implements the StaffUserRepository interface
type staffUserRepository struct {
	db *gorm.DB
}

// NewStaffUserRepository creates a new staff user repository instance
func NewStaffUserRepository(db *gorm.DB) StaffUserRepository {
	return &staffUserRepository{db: db}
}

// Create creates a new staff user in the database
func (r *staffUserRepository) Create(user *models.StaffUser) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a staff user by their ID
func (r *staffUserRepository) GetByID(id uint) (*models.StaffUser, error) {
	var user models.StaffUser
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a staff user by their email address
func (r *staffUserRepository) GetByEmail(email string) (*models.StaffUser, error) {
	var user models.StaffUser
	err := r.db.Where("email = ?", strings.TrimSpace(email)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates an existing staff user in the database
func (r *staffUserRepository) Update(user *models.StaffUser) error {
	return r.db.Save(user).Error
}

// List retrieves a paginated list of staff users
func (r *staffUserRepository) List(offset, limit int) ([]models.StaffUser, error) {
	var users []models.StaffUser
	query := r.db.Order("created_at DESC")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&users).Error
	return users, err
}

// Count returns the total number of staff users
func (r *staffUserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.StaffUser{}).Count(&count).Error
	return count, err
}

// apiKeyRepository implements the ApiKeyRepository interface
type apiKeyRepository struct {
	db *gorm.DB
}

// NewApiKeyRepository creates a new API key repository instance
func NewApiKeyRepository(db *gorm.DB) ApiKeyRepository {
	return &apiKeyRepository{db: db}
}

// Create creates a new API key record in the database
func (r *apiKeyRepository) Create(key *models.ApiKey) error {
	return r.db.Create(key).Error
}

// GetActiveByHash resolves an API key hash to its record and owning staff
// user. Revoked (soft-deleted) keys are excluded by gorm's default scope.
func (r *apiKeyRepository) GetActiveByHash(hash string) (*models.ApiKey, *models.StaffUser, error) {
	trimmed := strings.TrimSpace(hash)
	if trimmed == "" {
		return nil, nil, gorm.ErrRecordNotFound
	}
	var key models.ApiKey
	if err := r.db.Where("key_hash = ?", trimmed).First(&key).Error; err != nil {
		return nil, nil, err
	}
	var user models.StaffUser
	if err := r.db.First(&user, key.StaffUserID).Error; err != nil {
		return nil, nil, err
	}
	return &key, &user, nil
}

// ListByStaffUser retrieves all keys issued to a staff user
func (r *apiKeyRepository) ListByStaffUser(staffUserID uint) ([]models.ApiKey, error) {
	var keys []models.ApiKey
	err := r.db.Where("staff_user_id = ?", staffUserID).Order("created_at DESC").Find(&keys).Error
	return keys, err
}

// Revoke soft deletes an API key so it can no longer authenticate
func (r *apiKeyRepository) Revoke(id uint) error {
	res := r.db.Delete(&models.ApiKey{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// TouchUsage updates the last-used timestamp best-effort
func (r *apiKeyRepository) TouchUsage(id uint) error {
	now := time.Now()
	return r.db.Model(&models.ApiKey{}).Where("id = ?", id).Update("last_used_at", &now).Error
}
