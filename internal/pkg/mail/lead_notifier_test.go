package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/propnest/PropNest/app/models"
	"github.com/propnest/PropNest/internal/pkg/env"
)

func setNotifierEnv(t *testing.T, enabled, recipient string) {
	t.Helper()
	if env.Env == nil {
		env.Env = map[string]string{}
	}
	env.Env["LEAD_NOTIFY_ENABLED"] = enabled
	env.Env["LEAD_NOTIFY_EMAIL"] = recipient
	t.Cleanup(func() {
		delete(env.Env, "LEAD_NOTIFY_ENABLED")
		delete(env.Env, "LEAD_NOTIFY_EMAIL")
	})
}

func TestNewLeadNotifierFromEnv(t *testing.T) {
	setNotifierEnv(t, "true", "sales@propnest.test")
	n := NewLeadNotifierFromEnv()
	assert.True(t, n.enabled)
	assert.Equal(t, "sales@propnest.test", n.recipient)
}

func TestNewLeadNotifierFromEnv_DisabledWithoutRecipient(t *testing.T) {
	setNotifierEnv(t, "true", "")
	assert.False(t, NewLeadNotifierFromEnv().enabled)
}

func TestNewLeadNotifierFromEnv_DisabledByFlag(t *testing.T) {
	setNotifierEnv(t, "false", "sales@propnest.test")
	assert.False(t, NewLeadNotifierFromEnv().enabled)
}

func TestNotifyNewLead_NoopWhenDisabled(t *testing.T) {
	n := &LeadNotifier{enabled: false}
	// Must not attempt any SMTP traffic.
	n.NotifyNewLead(&models.Lead{Name: "A"})

	var nilNotifier *LeadNotifier
	nilNotifier.NotifyNewLead(&models.Lead{Name: "A"})
}

func TestRenderLeadMail(t *testing.T) {
	lead := &models.Lead{
		Name:              "Dana Idris",
		Phone:             "+1 555 0100",
		Budget:            "$450k",
		PreferredLocation: "Riverside",
		Source:            models.LEAD_SOURCE_FACEBOOK,
		Stage:             models.LEAD_STAGE_NEW,
	}

	body := renderLeadMail(lead)

	assert.Contains(t, body, "Dana Idris")
	assert.Contains(t, body, "+1 555 0100")
	assert.Contains(t, body, "Riverside")
	assert.NotContains(t, body, "Email", "empty fields are omitted")
}

func TestRenderLeadMail_EscapesHTML(t *testing.T) {
	lead := &models.Lead{
		Name:   "<script>alert(1)</script>",
		Phone:  "1",
		Source: models.LEAD_SOURCE_MANUAL,
		Stage:  models.LEAD_STAGE_NEW,
	}

	body := renderLeadMail(lead)

	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}
