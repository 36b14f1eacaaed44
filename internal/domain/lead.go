package domain

import (
	"time"

	"github.com/google/uuid"
)

// StatusNew is the status assigned to freshly submitted leads.
const StatusNew = "New"

// Lead is a prospective customer's submitted contact/interest record. The id
// is the dedup key across both external stores.
type Lead struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Mobile      string `json:"mobile"`
	City        string `json:"city"`
	Timeline    string `json:"timeline"`
	SubmittedAt string `json:"submittedAt"`
	Status      string `json:"status"`
}

// Validate checks submission rules and returns field-level details for every
// violation, or nil when the lead is acceptable.
func (l Lead) Validate() map[string]any {
	details := map[string]any{}
	if l.Name == "" {
		details["name"] = "Name is required"
	}
	if len(l.Mobile) < 10 {
		details["mobile"] = "Valid mobile required"
	}
	if l.City == "" {
		details["city"] = "City is required"
	}
	if l.Timeline == "" {
		details["timeline"] = "Timeline required"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// Normalize fills the generated and defaulted fields of a validated lead.
func (l *Lead) Normalize(now time.Time) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.SubmittedAt == "" {
		l.SubmittedAt = now.UTC().Format(time.RFC3339)
	}
	if l.Status == "" {
		l.Status = StatusNew
	}
}

// SubmittedTime parses the submission timestamp. The second return value is
// false when the timestamp is absent or unparsable; such leads sort after all
// dated ones in the merge view.
func (l Lead) SubmittedTime() (time.Time, bool) {
	if l.SubmittedAt == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, l.SubmittedAt); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", l.SubmittedAt); err == nil {
		return t, true
	}
	return time.Time{}, false
}
