package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/propnest/PropNest/app/models"
)

// leadRepository implements the LeadRepository interface
type leadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository instance
func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepository{db: db}
}

// Create creates a new lead in the database
func (r *leadRepository) Create(lead *models.Lead) error {
	return r.db.Create(lead).Error
}

// CreateIfAbsent inserts a lead unless a row with its external id already
// exists. The unique index on external_id backs the conflict check, so two
// near-simultaneous inserts for the same id settle to a single row. Returns
// whether a row was created plus the stored lead.
func (r *leadRepository) CreateIfAbsent(lead *models.Lead) (bool, *models.Lead, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_id"}},
		DoNothing: true,
	}).Create(lead)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.Lead
	if err := r.db.Where("external_id = ?", lead.ExternalID).First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

// GetByID retrieves a lead by its ID
func (r *leadRepository) GetByID(id uint) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.First(&lead, id).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// GetByUUID retrieves a lead by its UUID
func (r *leadRepository) GetByUUID(uuid string) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.Where("uuid = ?", uuid).First(&lead).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// FindByExternalID looks a lead up by the provider's lead-event id. A missing
// row is not an error: the result is (nil, nil).
func (r *leadRepository) FindByExternalID(externalID string) (*models.Lead, error) {
	trimmed := strings.TrimSpace(externalID)
	if trimmed == "" {
		return nil, nil
	}
	var lead models.Lead
	err := r.db.Where("external_id = ?", trimmed).First(&lead).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lead, nil
}

// Update updates an existing lead in the database. The provider identity
// columns are set once at intake and never rewritten here.
func (r *leadRepository) Update(lead *models.Lead) error {
	return r.db.Omit("external_id", "external_meta").Save(lead).Error
}

// UpdateStage moves a lead to another pipeline stage
func (r *leadRepository) UpdateStage(id uint, stage string) error {
	return r.db.Model(&models.Lead{}).Where("id = ?", id).Update("stage", stage).Error
}

// List retrieves a filtered, paginated list of leads
func (r *leadRepository) List(filter LeadFilter) ([]models.Lead, error) {
	var leads []models.Lead
	query := r.db.Order("created_at DESC")
	if filter.Stage != "" {
		query = query.Where("stage = ?", filter.Stage)
	}
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	err := query.Find(&leads).Error
	return leads, err
}

// Count returns the total number of leads
func (r *leadRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Lead{}).Count(&count).Error
	return count, err
}

// CountByStage returns lead totals grouped by pipeline stage
func (r *leadRepository) CountByStage() (map[string]int64, error) {
	return r.countGrouped("stage")
}

// CountBySource returns lead totals grouped by source platform
func (r *leadRepository) CountBySource() (map[string]int64, error) {
	return r.countGrouped("source")
}

func (r *leadRepository) countGrouped(column string) (map[string]int64, error) {
	type row struct {
		Key   string
		Total int64
	}
	var rows []row
	err := r.db.Model(&models.Lead{}).
		Select(column + " AS `key`, COUNT(*) AS total").
		Group(column).
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
