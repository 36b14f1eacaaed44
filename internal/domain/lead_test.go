package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadValidate(t *testing.T) {
	valid := Lead{Name: "Jo", Mobile: "9999999999", City: "Pune", Timeline: "exploring"}
	assert.Nil(t, valid.Validate())

	tests := []struct {
		name  string
		lead  Lead
		field string
	}{
		{"missing name", Lead{Mobile: "9999999999", City: "Pune", Timeline: "t"}, "name"},
		{"short mobile", Lead{Name: "Jo", Mobile: "123", City: "Pune", Timeline: "t"}, "mobile"},
		{"missing city", Lead{Name: "Jo", Mobile: "9999999999", Timeline: "t"}, "city"},
		{"missing timeline", Lead{Name: "Jo", Mobile: "9999999999", City: "Pune"}, "timeline"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			details := tc.lead.Validate()
			require.NotNil(t, details)
			assert.Contains(t, details, tc.field)
		})
	}
}

func TestLeadNormalize(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	lead := Lead{Name: "Jo", Mobile: "9999999999", City: "Pune", Timeline: "exploring"}
	lead.Normalize(now)

	_, err := uuid.Parse(lead.ID)
	assert.NoError(t, err, "generated id is a UUID")
	assert.Equal(t, "2024-06-01T12:00:00Z", lead.SubmittedAt)
	assert.Equal(t, StatusNew, lead.Status)
}

func TestLeadNormalize_KeepsProvidedFields(t *testing.T) {
	lead := Lead{ID: "lead-1", SubmittedAt: "2024-01-02T00:00:00Z", Status: "Contacted"}
	lead.Normalize(time.Now())

	assert.Equal(t, "lead-1", lead.ID)
	assert.Equal(t, "2024-01-02T00:00:00Z", lead.SubmittedAt)
	assert.Equal(t, "Contacted", lead.Status)
}

func TestLeadSubmittedTime(t *testing.T) {
	rfc := Lead{SubmittedAt: "2024-01-02T10:30:00Z"}
	got, ok := rfc.SubmittedTime()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC), got)

	dateOnly := Lead{SubmittedAt: "2024-01-02"}
	_, ok = dateOnly.SubmittedTime()
	assert.True(t, ok, "bare dates still parse")

	for _, bad := range []string{"", "yesterday", "02/01/2024"} {
		_, ok := Lead{SubmittedAt: bad}.SubmittedTime()
		assert.False(t, ok, "submittedAt=%q", bad)
	}
}
