package leadgen

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2/log"

	"github.com/propnest/PropNest/app/models"
	"github.com/propnest/PropNest/internal/pkg/metrics/counter"
)

// LeadStore is the narrow persistence surface the pipeline needs: an
// existence probe by external id and a conflict-safe insert.
type LeadStore interface {
	// FindByExternalID returns (nil, nil) when no lead carries the id.
	FindByExternalID(externalID string) (*models.Lead, error)
	// CreateIfAbsent inserts unless a lead with the same external id already
	// exists. It reports whether a row was written and returns the stored
	// lead either way.
	CreateIfAbsent(lead *models.Lead) (bool, *models.Lead, error)
}

// Notifier is told about every newly created lead, best effort.
type Notifier interface {
	NotifyNewLead(lead *models.Lead)
}

// ProcessResult summarizes one processed delivery.
type ProcessResult struct {
	Created    int
	Duplicates int
	Skipped    int
	Failures   int
}

// Service walks acknowledged webhook deliveries and turns their
// lead-generation changes into stored leads.
type Service struct {
	store    LeadStore
	fetcher  DetailFetcher
	notifier Notifier
}

// NewService creates the ingestion service from injected collaborators. The
// notifier may be nil.
func NewService(store LeadStore, fetcher DetailFetcher, notifier Notifier) *Service {
	return &Service{store: store, fetcher: fetcher, notifier: notifier}
}

// ProcessEnvelope handles one acknowledged delivery. Entries and their
// changes are processed in provider order and every failure is contained to
// the change it occurred in. The HTTP response was sent before this runs, so
// nothing here reaches the provider.
func (s *Service) ProcessEnvelope(ctx context.Context, envelope *WebhookEnvelope) ProcessResult {
	var res ProcessResult
	if envelope == nil {
		return res
	}
	if envelope.ObjectType != ObjectPage {
		log.Debugf("[Leadgen] ignoring delivery for object %q", envelope.ObjectType)
		return res
	}

	for _, entry := range envelope.Entries {
		for _, change := range entry.Changes {
			if change.Field != FieldLeadgen {
				continue
			}
			s.processChange(ctx, change.Value, &res)
		}
	}

	counter.Bump(counter.FieldProcessed)
	return res
}

func (s *Service) processChange(ctx context.Context, value ChangeValue, res *ProcessResult) {
	id := strings.TrimSpace(value.LeadEventID)
	if id == "" {
		log.Warn("[Leadgen] change without lead event id skipped")
		res.Skipped++
		return
	}

	detail, err := s.fetcher.FetchLead(ctx, id)
	if err != nil {
		log.Warnf("[Leadgen] lead detail unavailable for %s: %v", id, err)
		counter.Bump(counter.FieldFetchSkips)
		res.Skipped++
		return
	}

	lead := ExtractLead(detail, value)
	lead.ApplyIntakeDefaults()

	existing, err := s.store.FindByExternalID(id)
	if err != nil {
		log.Errorf("[Leadgen] lead lookup failed for %s: %v", id, err)
		counter.Bump(counter.FieldStoreFailures)
		res.Failures++
		return
	}
	if existing != nil {
		log.Debugf("[Leadgen] lead %s already stored, skipping", id)
		counter.Bump(counter.FieldDuplicates)
		res.Duplicates++
		return
	}

	created, stored, err := s.store.CreateIfAbsent(&lead)
	if err != nil {
		log.Errorf("[Leadgen] lead insert failed for %s: %v", id, err)
		counter.Bump(counter.FieldStoreFailures)
		res.Failures++
		return
	}
	if !created {
		log.Debugf("[Leadgen] lead %s already stored, skipping", id)
		counter.Bump(counter.FieldDuplicates)
		res.Duplicates++
		return
	}

	log.Infof("[Leadgen] stored lead %s (name=%s source=%s)", id, stored.Name, stored.Source)
	counter.Bump(counter.FieldLeadsCreated)
	res.Created++

	if s.notifier != nil {
		s.notifier.NotifyNewLead(stored)
	}
}
