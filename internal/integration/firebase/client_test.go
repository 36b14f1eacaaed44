package firebase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nesthome/lead-service/internal/domain"
)

type staticTokens struct{}

func (staticTokens) Token(context.Context) (string, error) {
	return "test-token", nil
}

func newTestClient(databaseURL string) *Client {
	return &Client{
		databaseURL: databaseURL,
		tokens:      staticTokens{},
		client:      http.DefaultClient,
		logger:      zap.NewNop(),
	}
}

func TestFetchAllLeads(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/leads.json", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{
			"-Nabc1": {"name":"Jo","mobile":"9999999999","city":"Pune","timeline":"exploring","status":"New","submittedAt":"2024-01-15T10:30:00Z"},
			"-Nabc2": {"mobile":"8888888888","startMonth":"June"}
		}`))
	}))
	defer server.Close()

	leads, err := newTestClient(server.URL).FetchAllLeads(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 2)

	byID := make(map[string]domain.Lead, len(leads))
	for _, lead := range leads {
		byID[lead.ID] = lead
	}

	full := byID["-Nabc1"]
	assert.Equal(t, "Jo", full.Name)
	assert.Equal(t, "exploring", full.Timeline)
	assert.Equal(t, "2024-01-15T10:30:00Z", full.SubmittedAt)

	sparse := byID["-Nabc2"]
	assert.Equal(t, "Unknown", sparse.Name)
	assert.Equal(t, "Unknown", sparse.City)
	assert.Equal(t, "June", sparse.Timeline, "startMonth is the legacy timeline field")
	assert.Equal(t, domain.StatusNew, sparse.Status)
	assert.NotEmpty(t, sparse.SubmittedAt)
}

func TestFetchAllLeads_EmptyDatabase(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer server.Close()

	leads, err := newTestClient(server.URL).FetchAllLeads(context.Background())
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestFetchAllLeads_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "permission denied", http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchAllLeads(context.Background())
	assert.Error(t, err)
}

func TestNormalizeRaw(t *testing.T) {
	t.Run("timeline preferred over startMonth", func(t *testing.T) {
		lead := normalizeRaw("id", rawLead{Timeline: "3-6 months", StartMonth: "June"})
		assert.Equal(t, "3-6 months", lead.Timeline)
	})

	t.Run("neither present", func(t *testing.T) {
		lead := normalizeRaw("id", rawLead{})
		assert.Equal(t, "Not specified", lead.Timeline)
	})

	t.Run("existing status kept", func(t *testing.T) {
		lead := normalizeRaw("id", rawLead{Status: "Contacted"})
		assert.Equal(t, "Contacted", lead.Status)
	})
}
