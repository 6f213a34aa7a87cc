package statistics

import (
	"encoding/json"
	"log"
	"time"

	"github.com/propnest/PropNest/app/models"
	"github.com/propnest/PropNest/app/repository"
	"github.com/propnest/PropNest/internal/pkg/cache"
	"github.com/propnest/PropNest/internal/pkg/database"
)

const (
	CacheKeyOverview = "statistics:crm:overview"
	CacheExpiration  = 60 * time.Second
)

// Overview bundles the aggregate CRM numbers shown on the admin dashboard.
type Overview struct {
	TotalLeads         int64            `json:"total_leads"`
	LeadsToday         int64            `json:"leads_today"`
	LeadsByStage       map[string]int64 `json:"leads_by_stage"`
	LeadsBySource      map[string]int64 `json:"leads_by_source"`
	TotalProperties    int64            `json:"total_properties"`
	PropertiesByStatus map[string]int64 `json:"properties_by_status"`
	TotalOwners        int64            `json:"total_owners"`
	GeneratedAt        time.Time        `json:"generated_at"`
}

// GetOverview returns the cached overview, rebuilding it from the database
// when the cached copy is missing or expired.
func GetOverview() (*Overview, error) {
	if raw, err := cache.Get(CacheKeyOverview); err == nil && raw != "" {
		var cached Overview
		if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
			return &cached, nil
		}
	}
	return RefreshOverview()
}

// RefreshOverview recomputes every total and stores the result in Redis.
func RefreshOverview() (*Overview, error) {
	repos := repository.GetGlobalRepositories()

	totalLeads, err := repos.Lead.Count()
	if err != nil {
		return nil, err
	}
	leadsByStage, err := repos.Lead.CountByStage()
	if err != nil {
		return nil, err
	}
	leadsBySource, err := repos.Lead.CountBySource()
	if err != nil {
		return nil, err
	}
	totalProperties, err := repos.Property.Count()
	if err != nil {
		return nil, err
	}
	propertiesByStatus, err := repos.Property.CountByStatus()
	if err != nil {
		return nil, err
	}
	totalOwners, err := repos.Owner.Count()
	if err != nil {
		return nil, err
	}

	// Today's leads need a time-bounded count the repositories do not carry.
	var leadsToday int64
	todayStart := time.Now().Truncate(24 * time.Hour)
	if err := database.GetDB().Model(&models.Lead{}).Where("created_at >= ?", todayStart).Count(&leadsToday).Error; err != nil {
		return nil, err
	}

	overview := &Overview{
		TotalLeads:         totalLeads,
		LeadsToday:         leadsToday,
		LeadsByStage:       leadsByStage,
		LeadsBySource:      leadsBySource,
		TotalProperties:    totalProperties,
		PropertiesByStatus: propertiesByStatus,
		TotalOwners:        totalOwners,
		GeneratedAt:        time.Now(),
	}

	raw, err := json.Marshal(overview)
	if err != nil {
		return nil, err
	}
	if err := cache.Set(CacheKeyOverview, string(raw), CacheExpiration); err != nil {
		log.Printf("Error caching CRM overview: %v", err)
	}

	return overview, nil
}
