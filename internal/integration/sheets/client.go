// Package sheets is the tabular-store client: leads live as rows of a Google
// spreadsheet, one row per lead in the Leads sheet.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/nesthome/lead-service/internal/config"
	"github.com/nesthome/lead-service/internal/domain"
	"github.com/nesthome/lead-service/internal/integration/googleauth"
)

const (
	scopeSpreadsheets = "https://www.googleapis.com/auth/spreadsheets"
	apiBaseURL        = "https://sheets.googleapis.com"
	appendRange       = "Leads!A:G"
	readRange         = "Leads!A2:G"
	sheetDateLayout   = "02 Jan 2006, 3:04 PM"
	requestDeadline   = 15 * time.Second
)

// Row layout: Date, Name, Mobile, City, Timeline, Status, Lead ID.
const (
	colDate = iota
	colName
	colMobile
	colCity
	colTimeline
	colStatus
	colLeadID
)

// ist is the timezone lead dates are rendered in for the operator's sheet.
var ist = time.FixedZone("IST", 5*3600+1800)

// tokenSource mints bearer tokens; satisfied by googleauth.TokenSource.
type tokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client talks to the Sheets REST API for a single configured spreadsheet.
type Client struct {
	spreadsheetID string
	tokens        tokenSource
	client        *http.Client
	baseURL       string
	logger        *zap.Logger
}

// New builds the client; it fails fast on bad credentials rather than on the
// first request.
func New(cfg config.SheetsConfig, logger *zap.Logger) (*Client, error) {
	creds, err := googleauth.LoadCredentials(cfg.ServiceAccountJSON, cfg.ServiceAccountPath,
		cfg.ClientEmail, cfg.PrivateKey)
	if err != nil {
		return nil, err
	}
	tokens, err := googleauth.NewTokenSource(creds, scopeSpreadsheets)
	if err != nil {
		return nil, err
	}
	return &Client{
		spreadsheetID: cfg.SpreadsheetID,
		tokens:        tokens,
		client:        &http.Client{Timeout: requestDeadline},
		baseURL:       apiBaseURL,
		logger:        logger,
	}, nil
}

// AppendLead inserts the lead as a new row.
func (c *Client) AppendLead(ctx context.Context, lead domain.Lead) error {
	body := map[string]any{
		"values": [][]string{{
			formatSheetDate(lead),
			lead.Name,
			lead.Mobile,
			lead.City,
			lead.Timeline,
			lead.Status,
			lead.ID,
		}},
	}

	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s:append?valueInputOption=RAW&insertDataOption=INSERT_ROWS",
		c.baseURL, c.spreadsheetID, url.PathEscape(appendRange))

	resp, err := c.do(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sheets append returned %s", resp.Status)
	}
	return nil
}

// FetchAllLeads reads every data row and maps it back to a lead. Rows without
// a lead id are skipped.
func (c *Client) FetchAllLeads(ctx context.Context) ([]domain.Lead, error) {
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s",
		c.baseURL, c.spreadsheetID, url.PathEscape(readRange))

	resp, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheets read returned %s", resp.Status)
	}

	var payload struct {
		Values [][]string `json:"values"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	leads := make([]domain.Lead, 0, len(payload.Values))
	for _, row := range payload.Values {
		if lead, ok := rowToLead(row); ok {
			leads = append(leads, lead)
		}
	}
	return leads, nil
}

// SpreadsheetURL returns the browser URL of the operator's spreadsheet.
func (c *Client) SpreadsheetURL() string {
	return "https://docs.google.com/spreadsheets/d/" + c.spreadsheetID
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any) (*http.Response, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.client.Do(req)
}

func formatSheetDate(lead domain.Lead) string {
	if t, ok := lead.SubmittedTime(); ok {
		return t.In(ist).Format(sheetDateLayout)
	}
	return lead.SubmittedAt
}

func rowToLead(row []string) (domain.Lead, bool) {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	id := cell(colLeadID)
	if id == "" {
		return domain.Lead{}, false
	}

	lead := domain.Lead{
		ID:          id,
		Name:        fallback(cell(colName), "Unknown"),
		Mobile:      cell(colMobile),
		City:        fallback(cell(colCity), "Unknown"),
		Timeline:    fallback(cell(colTimeline), "Not specified"),
		Status:      fallback(cell(colStatus), domain.StatusNew),
		SubmittedAt: cell(colDate),
	}

	// Rows store the operator-facing IST rendering; recover a sortable
	// timestamp where it parses, otherwise keep the raw cell.
	if t, err := time.ParseInLocation(sheetDateLayout, cell(colDate), ist); err == nil {
		lead.SubmittedAt = t.UTC().Format(time.RFC3339)
	}
	return lead, true
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
