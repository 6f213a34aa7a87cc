package repository

import (
	"gorm.io/gorm"

	"github.com/propnest/PropNest/app/models"
)

// LeadFilter narrows lead listings.
type LeadFilter struct {
	Stage  string
	Source string
	Offset int
	Limit  int
}

// PropertyFilter narrows property listings.
type PropertyFilter struct {
	Status   string
	Type     string
	Location string
	Offset   int
	Limit    int
}

// LeadRepository defines the interface for lead-related database operations.
// FindByExternalID returns (nil, nil) when no lead carries the id, so callers
// can distinguish absence from storage failure without a sentinel error.
type LeadRepository interface {
	Create(lead *models.Lead) error
	CreateIfAbsent(lead *models.Lead) (bool, *models.Lead, error)
	GetByID(id uint) (*models.Lead, error)
	GetByUUID(uuid string) (*models.Lead, error)
	FindByExternalID(externalID string) (*models.Lead, error)
	Update(lead *models.Lead) error
	UpdateStage(id uint, stage string) error
	List(filter LeadFilter) ([]models.Lead, error)
	Count() (int64, error)
	CountByStage() (map[string]int64, error)
	CountBySource() (map[string]int64, error)
}

// OwnerRepository defines the interface for owner-related database operations
type OwnerRepository interface {
	Create(owner *models.Owner) error
	GetByID(id uint) (*models.Owner, error)
	List(offset, limit int) ([]models.Owner, error)
	Count() (int64, error)
}

// PropertyRepository defines the interface for property-related database operations
type PropertyRepository interface {
	Create(property *models.Property) error
	GetByID(id uint) (*models.Property, error)
	GetByUUID(uuid string) (*models.Property, error)
	Update(property *models.Property) error
	Delete(id uint) error
	List(filter PropertyFilter) ([]models.Property, error)
	Count() (int64, error)
	CountByStatus() (map[string]int64, error)
}

// PropertyPhotoRepository defines the interface for listing-photo records
type PropertyPhotoRepository interface {
	Create(photo *models.PropertyPhoto) error
	GetByUUID(uuid string) (*models.PropertyPhoto, error)
	ListByPropertyID(propertyID uint) ([]models.PropertyPhoto, error)
	Delete(id uint) error
}

// PropertyDocumentRepository defines the interface for document records
type PropertyDocumentRepository interface {
	Create(doc *models.PropertyDocument) error
	GetByUUID(uuid string) (*models.PropertyDocument, error)
	ListByPropertyID(propertyID uint) ([]models.PropertyDocument, error)
	Delete(id uint) error
}

// StaffUserRepository defines the interface for staff account operations
type StaffUserRepository interface {
	Create(user *models.StaffUser) error
	GetByID(id uint) (*models.StaffUser, error)
	GetByEmail(email string) (*models.StaffUser, error)
	Update(user *models.StaffUser) error
	List(offset, limit int) ([]models.StaffUser, error)
	Count() (int64, error)
}

// ApiKeyRepository defines the interface for staff API key operations
type ApiKeyRepository interface {
	Create(key *models.ApiKey) error
	GetActiveByHash(hash string) (*models.ApiKey, *models.StaffUser, error)
	ListByStaffUser(staffUserID uint) ([]models.ApiKey, error)
	Revoke(id uint) error
	TouchUsage(id uint) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	Lead             LeadRepository
	Owner            OwnerRepository
	Property         PropertyRepository
	PropertyPhoto    PropertyPhotoRepository
	PropertyDocument PropertyDocumentRepository
	StaffUser        StaffUserRepository
	ApiKey           ApiKeyRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Lead:             NewLeadRepository(db),
		Owner:            NewOwnerRepository(db),
		Property:         NewPropertyRepository(db),
		PropertyPhoto:    NewPropertyPhotoRepository(db),
		PropertyDocument: NewPropertyDocumentRepository(db),
		StaffUser:        NewStaffUserRepository(db),
		ApiKey:           NewApiKeyRepository(db),
	}
}
