package leadgen

import (
	"encoding/json"
	"strings"

	"github.com/propnest/PropNest/app/models"
)

// fallbackLeadName is stored when the form carried no usable name field.
const fallbackLeadName = "Unknown"

// Candidate form-field names per lead attribute, in resolution order.
var (
	nameKeys     = []string{"full_name", "name"}
	phoneKeys    = []string{"phone_number", "phone"}
	emailKeys    = []string{"email"}
	budgetKeys   = []string{"budget"}
	locationKeys = []string{"location", "preferred_location"}
)

// ExtractLead maps the free-form field data of a fetched lead detail onto a
// Lead draft. Field names match case-insensitively and the first value wins
// when a field carries several. Phone may stay empty here; the intake
// defaults applied at the persistence step fill the placeholder.
func ExtractLead(detail *LeadDetail, change ChangeValue) models.Lead {
	fields := indexFields(detail.Fields)

	name := firstValue(fields, nameKeys...)
	if name == "" {
		first := firstValue(fields, "first_name")
		last := firstValue(fields, "last_name")
		if first != "" && last != "" {
			name = first + " " + last
		}
	}
	if name == "" {
		name = fallbackLeadName
	}

	return models.Lead{
		Name:              name,
		Phone:             firstValue(fields, phoneKeys...),
		Email:             firstValue(fields, emailKeys...),
		Budget:            firstValue(fields, budgetKeys...),
		PreferredLocation: firstValue(fields, locationKeys...),
		Source:            DeriveSource(change.AdID),
		Stage:             models.LEAD_STAGE_NEW,
		ExternalID:        strings.TrimSpace(change.LeadEventID),
		ExternalMeta:      buildExternalMeta(detail, change),
	}
}

// DeriveSource classifies a lead by its ad placement. Substring matching on
// the ad id is a heuristic and can misclassify; anything not recognizably
// Instagram counts as Facebook.
func DeriveSource(adID string) string {
	if strings.Contains(strings.ToLower(adID), "instagram") {
		return models.LEAD_SOURCE_INSTAGRAM
	}
	return models.LEAD_SOURCE_FACEBOOK
}

// indexFields builds a lowercase field-name to first-value map. The first
// occurrence wins when a name repeats.
func indexFields(fields []LeadField) map[string]string {
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		key := strings.ToLower(strings.TrimSpace(f.Name))
		if key == "" || len(f.Values) == 0 {
			continue
		}
		if _, ok := m[key]; ok {
			continue
		}
		m[key] = strings.TrimSpace(f.Values[0])
	}
	return m
}

func firstValue(fields map[string]string, keys ...string) string {
	for _, key := range keys {
		if v := fields[key]; v != "" {
			return v
		}
	}
	return ""
}

// externalMeta is the audit payload stored alongside an ingested lead.
type externalMeta struct {
	Platform    string      `json:"platform"`
	LeadEventID string      `json:"lead_event_id"`
	AccountID   string      `json:"account_id,omitempty"`
	FormID      string      `json:"form_id,omitempty"`
	AdGroupID   string      `json:"adgroup_id,omitempty"`
	AdID        string      `json:"ad_id,omitempty"`
	CreatedTime int64       `json:"created_time,omitempty"`
	FieldData   []LeadField `json:"field_data,omitempty"`
}

func buildExternalMeta(detail *LeadDetail, change ChangeValue) *models.JSON {
	meta := externalMeta{
		Platform:    DeriveSource(change.AdID),
		LeadEventID: change.LeadEventID,
		AccountID:   change.AccountID,
		FormID:      change.FormID,
		AdGroupID:   change.AdGroupID,
		AdID:        change.AdID,
		CreatedTime: change.CreatedTime,
		FieldData:   detail.Fields,
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return nil
	}
	doc := models.JSON(raw)
	return &doc
}
