// Package firebase is the document-store client: leads live as keyed objects
// under /leads in a Firebase Realtime Database, read via its REST API.
package firebase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/nesthome/lead-service/internal/config"
	"github.com/nesthome/lead-service/internal/domain"
	"github.com/nesthome/lead-service/internal/integration/googleauth"
)

const (
	scopeDatabase   = "https://www.googleapis.com/auth/firebase.database"
	scopeUserEmail  = "https://www.googleapis.com/auth/userinfo.email"
	requestDeadline = 15 * time.Second
)

// tokenSource mints bearer tokens; satisfied by googleauth.TokenSource.
type tokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client reads leads from the realtime database. This service never writes to
// Firebase; the website writes there directly.
type Client struct {
	databaseURL string
	tokens      tokenSource
	client      *http.Client
	logger      *zap.Logger
}

// New builds the client from configuration.
func New(cfg config.FirebaseConfig, logger *zap.Logger) (*Client, error) {
	creds, err := googleauth.LoadCredentials(cfg.ServiceAccountJSON, cfg.ServiceAccountPath,
		cfg.ClientEmail, cfg.PrivateKey)
	if err != nil {
		return nil, err
	}
	tokens, err := googleauth.NewTokenSource(creds, scopeDatabase, scopeUserEmail)
	if err != nil {
		return nil, err
	}
	return &Client{
		databaseURL: cfg.DatabaseURL,
		tokens:      tokens,
		client:      &http.Client{Timeout: requestDeadline},
		logger:      logger,
	}, nil
}

// rawLead is the loosely-shaped record the website writes; startMonth is the
// legacy name for timeline.
type rawLead struct {
	Name        string `json:"name"`
	Mobile      string `json:"mobile"`
	City        string `json:"city"`
	Timeline    string `json:"timeline"`
	StartMonth  string `json:"startMonth"`
	Status      string `json:"status"`
	SubmittedAt string `json:"submittedAt"`
}

// FetchAllLeads returns every lead under /leads, keyed object ids becoming
// lead ids. An empty database yields an empty slice.
func (c *Client) FetchAllLeads(ctx context.Context) ([]domain.Lead, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.databaseURL+"/leads.json", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("firebase read returned %s", resp.Status)
	}

	// The database returns JSON null when the path is empty.
	var records map[string]rawLead
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, err
	}

	leads := make([]domain.Lead, 0, len(records))
	for id, raw := range records {
		leads = append(leads, normalizeRaw(id, raw))
	}
	return leads, nil
}

func normalizeRaw(id string, raw rawLead) domain.Lead {
	timeline := raw.Timeline
	if timeline == "" {
		timeline = raw.StartMonth
	}
	if timeline == "" {
		timeline = "Not specified"
	}

	submittedAt := raw.SubmittedAt
	if submittedAt == "" {
		submittedAt = time.Now().UTC().Format(time.RFC3339)
	}

	lead := domain.Lead{
		ID:          id,
		Name:        raw.Name,
		Mobile:      raw.Mobile,
		City:        raw.City,
		Timeline:    timeline,
		Status:      raw.Status,
		SubmittedAt: submittedAt,
	}
	if lead.Name == "" {
		lead.Name = "Unknown"
	}
	if lead.City == "" {
		lead.City = "Unknown"
	}
	if lead.Status == "" {
		lead.Status = domain.StatusNew
	}
	return lead
}
