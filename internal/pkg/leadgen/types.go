package leadgen

// Wire types for the Meta lead ads webhook. One HTTP delivery carries one
// WebhookEnvelope; entries and changes keep the provider's array order. All
// of these are transient and never persisted as-is (the audit copy lives in
// models.Lead.ExternalMeta).

const (
	// ObjectPage is the subscribed resource class; deliveries for any other
	// object type are ignored.
	ObjectPage = "page"

	// FieldLeadgen marks the one change type this pipeline acts on. Other
	// field tags (feed, mention, ...) are expected traffic and skipped
	// without logging.
	FieldLeadgen = "leadgen"
)

// WebhookEnvelope is the top-level delivery payload.
type WebhookEnvelope struct {
	ObjectType string  `json:"object"`
	Entries    []Entry `json:"entry"`
}

// Entry groups the changes reported for one page/account.
type Entry struct {
	SourceID  string   `json:"id"`
	Timestamp int64    `json:"time"`
	Changes   []Change `json:"changes"`
}

// Change is a single event inside an entry.
type Change struct {
	Field string      `json:"field"`
	Value ChangeValue `json:"value"`
}

// ChangeValue carries the identifiers of one lead-generation event. The
// LeadEventID is the idempotency key: it joins the webhook notification to
// the Graph API detail fetch and to the stored lead's external id.
type ChangeValue struct {
	LeadEventID string `json:"leadgen_id"`
	AccountID   string `json:"page_id"`
	FormID      string `json:"form_id"`
	AdGroupID   string `json:"adgroup_id,omitempty"`
	AdID        string `json:"ad_id,omitempty"`
	CreatedTime int64  `json:"created_time"`
}

// LeadDetail is the full lead record fetched from the Graph API. Field names
// are free-form strings chosen by whoever designed the lead form, so they
// must be matched case-insensitively.
type LeadDetail struct {
	ID          string      `json:"id"`
	CreatedTime string      `json:"created_time"`
	Fields      []LeadField `json:"field_data"`
}

// LeadField is one answered question of a lead form.
type LeadField struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}
