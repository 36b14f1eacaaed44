package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nesthome/lead-service/internal/domain"
	"github.com/nesthome/lead-service/internal/events"
)

// DocumentStore reads leads from the realtime document database.
type DocumentStore interface {
	FetchAllLeads(ctx context.Context) ([]domain.Lead, error)
}

// TabularStore reads and appends leads in the spreadsheet store.
type TabularStore interface {
	FetchAllLeads(ctx context.Context) ([]domain.Lead, error)
	AppendLead(ctx context.Context, lead domain.Lead) error
	SpreadsheetURL() string
}

// Notifier delivers operator alerts.
type Notifier interface {
	SendLeadAlert(ctx context.Context, lead domain.Lead) error
	SendContactAlert(ctx context.Context, contact domain.ContactMessage) error
}

// LeadCounts is the observability breakdown returned with the merged list.
// Source counts are taken before deduplication.
type LeadCounts struct {
	Total        int `json:"total"`
	FromFirebase int `json:"fromFirebase"`
	FromSheets   int `json:"fromSheets"`
}

// PushResult carries one outcome flag per downstream side effect so failure
// information is reported without failing the submission.
type PushResult struct {
	SheetsSynced bool
	EmailSent    bool
}

// LeadDependencies encapsulates the collaborators of the lead service. Any of
// them may be nil when the matching integration is not configured.
type LeadDependencies struct {
	Documents  DocumentStore
	Tabular    TabularStore
	Notifier   Notifier
	Dispatcher events.Dispatcher
}

// LeadService owns the lead write path (sync gateway) and the admin read path
// (merge view).
type LeadService struct {
	docs       DocumentStore
	tabular    TabularStore
	notifier   Notifier
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewLeadService builds the service.
func NewLeadService(deps LeadDependencies, logger *zap.Logger) *LeadService {
	return &LeadService{
		docs:       deps.Documents,
		tabular:    deps.Tabular,
		notifier:   deps.Notifier,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Push performs the two independent side effects of a submission, appending
// the lead to the tabular store and alerting the operator, concurrently. Each
// outcome is reported as a flag; neither failure rejects the lead.
func (s *LeadService) Push(ctx context.Context, lead domain.Lead) PushResult {
	var result PushResult
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		result.SheetsSynced = s.appendToSheet(ctx, lead)
	}()
	go func() {
		defer wg.Done()
		result.EmailSent = s.alertOperator(ctx, lead)
	}()
	wg.Wait()

	s.publish(ctx, events.Event{
		Type:   events.EventLeadReceived,
		LeadID: lead.ID,
		Payload: map[string]any{
			"sheetsSynced": result.SheetsSynced,
			"emailSent":    result.EmailSent,
		},
	})
	return result
}

// List merges both external sources into one deduplicated list sorted newest
// first. A source outage degrades completeness, never availability: the
// failed source contributes zero leads.
func (s *LeadService) List(ctx context.Context) ([]domain.Lead, LeadCounts) {
	var (
		wg          sync.WaitGroup
		docLeads    []domain.Lead
		sheetsLeads []domain.Lead
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		docLeads = s.fetch(ctx, "firebase", s.docs)
	}()
	go func() {
		defer wg.Done()
		sheetsLeads = s.fetch(ctx, "sheets", s.tabular)
	}()
	wg.Wait()

	// Document-store records win on id conflicts; tabular rows only fill
	// ids the document store does not know.
	merged := make(map[string]struct{}, len(docLeads)+len(sheetsLeads))
	ordered := make([]domain.Lead, 0, len(docLeads)+len(sheetsLeads))
	for _, lead := range docLeads {
		if _, seen := merged[lead.ID]; seen {
			continue
		}
		merged[lead.ID] = struct{}{}
		ordered = append(ordered, lead)
	}
	for _, lead := range sheetsLeads {
		if _, seen := merged[lead.ID]; seen {
			continue
		}
		merged[lead.ID] = struct{}{}
		ordered = append(ordered, lead)
	}

	sortLeadsNewestFirst(ordered)

	return ordered, LeadCounts{
		Total:        len(ordered),
		FromFirebase: len(docLeads),
		FromSheets:   len(sheetsLeads),
	}
}

// SyncAll bulk-appends loosely-shaped leads to the tabular store, applying
// the submission defaults per lead. Leads still missing a required field
// after defaulting are counted as failed, not rejected wholesale. No operator
// alerts are sent on this path.
func (s *LeadService) SyncAll(ctx context.Context, raws []domain.Lead) (synced, failed, total int) {
	total = len(raws)
	now := time.Now()

	for _, raw := range raws {
		lead := raw
		if lead.Name == "" {
			lead.Name = "Unknown"
		}
		if lead.City == "" {
			lead.City = "Unknown"
		}
		if lead.Timeline == "" {
			lead.Timeline = "Not specified"
		}
		lead.Normalize(now)

		if lead.Name == "" || lead.Mobile == "" || lead.City == "" {
			s.logger.Warn("skipping lead with missing required fields", zap.String("lead_id", lead.ID))
			failed++
			continue
		}

		if s.appendToSheet(ctx, lead) {
			synced++
		} else {
			failed++
		}
	}

	s.logger.Info("bulk sync complete",
		zap.Int("synced", synced), zap.Int("failed", failed), zap.Int("total", total))
	return synced, failed, total
}

// SpreadsheetURL reports the operator sheet URL; ok is false when the tabular
// store is not configured.
func (s *LeadService) SpreadsheetURL() (url string, ok bool) {
	if s.tabular == nil {
		return "", false
	}
	return s.tabular.SpreadsheetURL(), true
}

type leadFetcher interface {
	FetchAllLeads(ctx context.Context) ([]domain.Lead, error)
}

func (s *LeadService) fetch(ctx context.Context, source string, fetcher leadFetcher) []domain.Lead {
	if fetcher == nil {
		s.logger.Debug("lead source not configured", zap.String("source", source))
		return nil
	}
	leads, err := fetcher.FetchAllLeads(ctx)
	if err != nil {
		s.logger.Error("lead fetch failed",
			zap.String("source", source), zap.String("operation", "fetch_all"), zap.Error(err))
		return nil
	}
	return leads
}

func (s *LeadService) appendToSheet(ctx context.Context, lead domain.Lead) bool {
	if s.tabular == nil {
		s.logger.Warn("sheets sync skipped: tabular store not configured")
		return false
	}
	if err := s.tabular.AppendLead(ctx, lead); err != nil {
		s.logger.Error("lead sync failed",
			zap.String("source", "sheets"), zap.String("operation", "append"),
			zap.String("lead_id", lead.ID), zap.Error(err))
		return false
	}
	s.publish(ctx, events.Event{Type: events.EventLeadSynced, LeadID: lead.ID})
	return true
}

func (s *LeadService) alertOperator(ctx context.Context, lead domain.Lead) bool {
	if s.notifier == nil {
		s.logger.Warn("lead alert skipped: email not configured")
		return false
	}
	if err := s.notifier.SendLeadAlert(ctx, lead); err != nil {
		s.logger.Error("lead alert failed",
			zap.String("source", "email"), zap.String("operation", "send_lead_alert"),
			zap.String("lead_id", lead.ID), zap.Error(err))
		return false
	}
	s.publish(ctx, events.Event{Type: events.EventLeadAlerted, LeadID: lead.ID})
	return true
}

func (s *LeadService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// sortLeadsNewestFirst orders by submission time descending. Leads whose
// timestamp does not parse sort after all dated ones; equal keys keep input
// order.
func sortLeadsNewestFirst(leads []domain.Lead) {
	type entry struct {
		lead domain.Lead
		t    time.Time
		ok   bool
	}
	entries := make([]entry, len(leads))
	for i, lead := range leads {
		t, ok := lead.SubmittedTime()
		entries[i] = entry{lead: lead, t: t, ok: ok}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.ok != b.ok {
			return a.ok
		}
		if !a.ok {
			return false
		}
		return a.t.After(b.t)
	})
	for i, e := range entries {
		leads[i] = e.lead
	}
}
