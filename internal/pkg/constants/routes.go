package constants

// Static route constants
const (
	UploadsRoute = "/uploads"
	PublicRoute  = "/"
	// Upload path without leading slash for URL construction
	UploadsPath = "uploads"

	// Webhook endpoint Meta calls for handshake and lead delivery
	LeadWebhookRoute = "/webhooks/meta/leads"
)
