package repository

import (
	"gorm.io/gorm"

	"github.com/propnest/PropNest/app/models"
)

// propertyPhotoRepository implements the PropertyPhotoRepository interface
type propertyPhotoRepository struct {
	db *gorm.DB
}

// NewPropertyPhotoRepository creates a new listing-photo repository instance
func NewPropertyPhotoRepository(db *gorm.DB) PropertyPhotoRepository {
	return &propertyPhotoRepository{db: db}
}

// Create creates a new photo record in the database
func (r *propertyPhotoRepository) Create(photo *models.PropertyPhoto) error {
	return r.db.Create(photo).Error
}

// GetByUUID retrieves a photo by its UUID
func (r *propertyPhotoRepository) GetByUUID(uuid string) (*models.PropertyPhoto, error) {
	var photo models.PropertyPhoto
	err := r.db.Where("uuid = ?", uuid).First(&photo).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// ListByPropertyID retrieves all photos attached to a property
func (r *propertyPhotoRepository) ListByPropertyID(propertyID uint) ([]models.PropertyPhoto, error) {
	var photos []models.PropertyPhoto
	err := r.db.Where("property_id = ?", propertyID).Order("created_at ASC").Find(&photos).Error
	return photos, err
}

// Delete soft deletes a photo record by its ID
func (r *propertyPhotoRepository) Delete(id uint) error {
	return r.db.Delete(&models.PropertyPhoto{}, id).Error
}

// propertyDocumentRepository implements the PropertyDocumentRepository interface
type propertyDocumentRepository struct {
	db *gorm.DB
}

// NewPropertyDocumentRepository creates a new document repository instance
func NewPropertyDocumentRepository(db *gorm.DB) PropertyDocumentRepository {
	return &propertyDocumentRepository{db: db}
}

// Create creates a new document record in the database
func (r *propertyDocumentRepository) Create(doc *models.PropertyDocument) error {
	return r.db.Create(doc).Error
}

// GetByUUID retrieves a document by its UUID
func (r *propertyDocumentRepository) GetByUUID(uuid string) (*models.PropertyDocument, error) {
	var doc models.PropertyDocument
	err := r.db.Where("uuid = ?", uuid).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListByPropertyID retrieves all documents attached to a property
func (r *propertyDocumentRepository) ListByPropertyID(propertyID uint) ([]models.PropertyDocument, error) {
	var docs []models.PropertyDocument
	err := r.db.Where("property_id = ?", propertyID).Order("created_at DESC").Find(&docs).Error
	return docs, err
}

// Delete soft deletes a document record by its ID
func (r *propertyDocumentRepository) Delete(id uint) error {
	return r.db.Delete(&models.PropertyDocument{}, id).Error
}
