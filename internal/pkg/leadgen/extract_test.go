package leadgen

import (
	"encoding/json"
	"testing"

	"github.com/propnest/PropNest/app/models"
)

func detailWithFields(fields ...LeadField) *LeadDetail {
	return &LeadDetail{
		ID:          "L1",
		CreatedTime: "2026-08-20T10:15:00+0000",
		Fields:      fields,
	}
}

func field(name string, values ...string) LeadField {
	return LeadField{Name: name, Values: values}
}

func TestExtractLead_NamePrecedence(t *testing.T) {
	tests := []struct {
		name   string
		fields []LeadField
		want   string
	}{
		{
			"full_name wins over composed name",
			[]LeadField{field("full_name", "Asha Rao"), field("first_name", "A."), field("last_name", "Rao")},
			"Asha Rao",
		},
		{
			"name used when full_name absent",
			[]LeadField{field("name", "Ravi Kumar"), field("first_name", "R.")},
			"Ravi Kumar",
		},
		{
			"first and last composed",
			[]LeadField{field("first_name", "Meera"), field("last_name", "Shah")},
			"Meera Shah",
		},
		{
			"first name alone is not enough",
			[]LeadField{field("first_name", "Meera")},
			"Unknown",
		},
		{
			"no name fields",
			[]LeadField{field("email", "x@example.com")},
			"Unknown",
		},
	}

	for _, tt := range tests {
		lead := ExtractLead(detailWithFields(tt.fields...), ChangeValue{LeadEventID: "L1"})
		if lead.Name != tt.want {
			t.Fatalf("%s: got name %q, want %q", tt.name, lead.Name, tt.want)
		}
	}
}

func TestExtractLead_CaseInsensitiveFirstValue(t *testing.T) {
	detail := detailWithFields(
		field("Full_Name", "Asha Rao", "ignored second value"),
		field("PHONE_NUMBER", "9999999999"),
		field("Email", "asha@example.com"),
	)

	lead := ExtractLead(detail, ChangeValue{LeadEventID: "L1"})
	if lead.Name != "Asha Rao" {
		t.Fatalf("got name %q, want %q", lead.Name, "Asha Rao")
	}
	if lead.Phone != "9999999999" {
		t.Fatalf("got phone %q, want %q", lead.Phone, "9999999999")
	}
	if lead.Email != "asha@example.com" {
		t.Fatalf("got email %q, want %q", lead.Email, "asha@example.com")
	}
}

func TestExtractLead_OptionalFields(t *testing.T) {
	detail := detailWithFields(
		field("full_name", "Asha Rao"),
		field("phone", "8888888888"),
		field("budget", "50L-75L"),
		field("preferred_location", "Whitefield"),
	)

	lead := ExtractLead(detail, ChangeValue{LeadEventID: "L1"})
	if lead.Phone != "8888888888" {
		t.Fatalf("expected phone fallback field, got %q", lead.Phone)
	}
	if lead.Budget != "50L-75L" {
		t.Fatalf("got budget %q", lead.Budget)
	}
	if lead.PreferredLocation != "Whitefield" {
		t.Fatalf("got location %q", lead.PreferredLocation)
	}

	// location beats preferred_location when both are present.
	detail = detailWithFields(field("full_name", "X"), field("location", "Indiranagar"), field("preferred_location", "Whitefield"))
	if lead := ExtractLead(detail, ChangeValue{}); lead.PreferredLocation != "Indiranagar" {
		t.Fatalf("got location %q, want %q", lead.PreferredLocation, "Indiranagar")
	}
}

func TestExtractLead_PhoneLeftEmptyForIntakeDefaults(t *testing.T) {
	detail := detailWithFields(field("full_name", "Asha Rao"))

	lead := ExtractLead(detail, ChangeValue{LeadEventID: "L1"})
	if lead.Phone != "" {
		t.Fatalf("extractor must not fill the placeholder itself, got %q", lead.Phone)
	}

	lead.ApplyIntakeDefaults()
	if lead.Phone != models.LEAD_PHONE_PLACEHOLDER {
		t.Fatalf("got phone %q, want placeholder %q", lead.Phone, models.LEAD_PHONE_PLACEHOLDER)
	}
}

func TestDeriveSource(t *testing.T) {
	tests := []struct {
		adID string
		want string
	}{
		{"ad_instagram_23981", models.LEAD_SOURCE_INSTAGRAM},
		{"INSTAGRAM_STORY_1", models.LEAD_SOURCE_INSTAGRAM},
		{"fb_feed_23981", models.LEAD_SOURCE_FACEBOOK},
		{"", models.LEAD_SOURCE_FACEBOOK},
	}

	for _, tt := range tests {
		if got := DeriveSource(tt.adID); got != tt.want {
			t.Fatalf("DeriveSource(%q) = %q, want %q", tt.adID, got, tt.want)
		}
	}
}

func TestExtractLead_StageAndIDs(t *testing.T) {
	detail := detailWithFields(field("full_name", "Asha Rao"))
	change := ChangeValue{
		LeadEventID: " L1 ",
		AccountID:   "page-77",
		FormID:      "form-3",
		AdID:        "ad_instagram_1",
		CreatedTime: 1755683700,
	}

	lead := ExtractLead(detail, change)
	if lead.Stage != models.LEAD_STAGE_NEW {
		t.Fatalf("got stage %q, want %q", lead.Stage, models.LEAD_STAGE_NEW)
	}
	if lead.ExternalID != "L1" {
		t.Fatalf("got external id %q, want trimmed %q", lead.ExternalID, "L1")
	}
	if lead.Source != models.LEAD_SOURCE_INSTAGRAM {
		t.Fatalf("got source %q", lead.Source)
	}
}

func TestExtractLead_ExternalMetaPreservesAudit(t *testing.T) {
	detail := detailWithFields(field("full_name", "Asha Rao"), field("custom_question", "3 BHK"))
	change := ChangeValue{
		LeadEventID: "L1",
		AccountID:   "page-77",
		FormID:      "form-3",
		AdGroupID:   "set-9",
		AdID:        "ad-1",
		CreatedTime: 1755683700,
	}

	lead := ExtractLead(detail, change)
	if lead.ExternalMeta == nil {
		t.Fatalf("expected external meta to be set")
	}

	var meta struct {
		Platform    string      `json:"platform"`
		LeadEventID string      `json:"lead_event_id"`
		AccountID   string      `json:"account_id"`
		FormID      string      `json:"form_id"`
		FieldData   []LeadField `json:"field_data"`
	}
	if err := json.Unmarshal([]byte(*lead.ExternalMeta), &meta); err != nil {
		t.Fatalf("external meta is not valid JSON: %v", err)
	}
	if meta.LeadEventID != "L1" || meta.AccountID != "page-77" || meta.FormID != "form-3" {
		t.Fatalf("meta ids not preserved: %+v", meta)
	}
	if meta.Platform != models.LEAD_SOURCE_FACEBOOK {
		t.Fatalf("got platform %q", meta.Platform)
	}
	if len(meta.FieldData) != 2 {
		t.Fatalf("expected raw field data preserved, got %d fields", len(meta.FieldData))
	}
}
