package mail

import (
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/propnest/PropNest/app/models"
	"github.com/propnest/PropNest/internal/pkg/env"
)

// LeadNotifier mails the back office about every freshly ingested lead.
// Delivery is best effort: a failed mail is logged and forgotten, the lead
// is already stored.
type LeadNotifier struct {
	recipient string
	enabled   bool
}

// NewLeadNotifierFromEnv reads LEAD_NOTIFY_ENABLED and LEAD_NOTIFY_EMAIL.
// The notifier stays silent unless both are set.
func NewLeadNotifierFromEnv() *LeadNotifier {
	recipient := strings.TrimSpace(env.GetEnv("LEAD_NOTIFY_EMAIL", ""))
	enabled := strings.EqualFold(env.GetEnv("LEAD_NOTIFY_ENABLED", "false"), "true")

	return &LeadNotifier{
		recipient: recipient,
		enabled:   enabled && recipient != "",
	}
}

// NotifyNewLead sends the new-lead mail.
func (n *LeadNotifier) NotifyNewLead(lead *models.Lead) {
	if n == nil || !n.enabled || lead == nil {
		return
	}

	subject := fmt.Sprintf("New lead: %s (%s)", lead.Name, lead.Source)
	if err := SendMail(n.recipient, subject, renderLeadMail(lead)); err != nil {
		log.Printf("lead notification for %s failed: %v", lead.UUID, err)
	}
}

func renderLeadMail(lead *models.Lead) string {
	rows := []struct {
		label string
		value string
	}{
		{"Name", lead.Name},
		{"Phone", lead.Phone},
		{"Email", lead.Email},
		{"Budget", lead.Budget},
		{"Preferred location", lead.PreferredLocation},
		{"Source", lead.Source},
		{"Stage", lead.Stage},
	}

	var b strings.Builder
	b.WriteString("<h2>New lead received</h2><table>")
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		b.WriteString("<tr><td><strong>")
		b.WriteString(html.EscapeString(row.label))
		b.WriteString("</strong></td><td>")
		b.WriteString(html.EscapeString(row.value))
		b.WriteString("</td></tr>")
	}
	b.WriteString("</table>")
	return b.String()
}
