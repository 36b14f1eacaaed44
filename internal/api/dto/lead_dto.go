package dto

import "github.com/nesthome/lead-service/internal/domain"

// LeadSubmission is the form payload; id, submittedAt, and status are
// optional and defaulted server-side.
type LeadSubmission struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Mobile      string `json:"mobile"`
	City        string `json:"city"`
	Timeline    string `json:"timeline"`
	SubmittedAt string `json:"submittedAt"`
	Status      string `json:"status"`
}

// ToLead maps the submission onto the domain model.
func (s LeadSubmission) ToLead() domain.Lead {
	return domain.Lead{
		ID:          s.ID,
		Name:        s.Name,
		Mobile:      s.Mobile,
		City:        s.City,
		Timeline:    s.Timeline,
		SubmittedAt: s.SubmittedAt,
		Status:      s.Status,
	}
}

// BulkLead is one loosely-shaped entry of a bulk sync; startMonth is the
// legacy field name for timeline.
type BulkLead struct {
	LeadSubmission
	StartMonth string `json:"startMonth"`
}

// ToLead maps the entry, falling back to startMonth for the timeline.
func (b BulkLead) ToLead() domain.Lead {
	lead := b.LeadSubmission.ToLead()
	if lead.Timeline == "" {
		lead.Timeline = b.StartMonth
	}
	return lead
}

// BulkSyncRequest payload for POST /api/sync-all-leads.
type BulkSyncRequest struct {
	Leads []BulkLead `json:"leads"`
}
