// Package email delivers operator notifications through the Resend REST API.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/nesthome/lead-service/internal/config"
	"github.com/nesthome/lead-service/internal/domain"
)

const (
	apiBaseURL      = "https://api.resend.com"
	requestDeadline = 15 * time.Second
)

// timelineLabels maps the form's timeline values to operator-facing labels.
var timelineLabels = map[string]string{
	"within-1-month": "Within 1 month",
	"1-3-months":     "1-3 months",
	"3-6-months":     "3-6 months",
	"exploring":      "Just exploring",
}

var leadTemplate = template.Must(template.New("lead").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="background:#2d5a4a;color:#fff;padding:16px;">New Lead Received</h1>
  <table style="width:100%;border-collapse:collapse;">
    <tr><td style="padding:8px;font-weight:bold;">Name</td><td style="padding:8px;">{{.Name}}</td></tr>
    <tr><td style="padding:8px;font-weight:bold;">Mobile</td><td style="padding:8px;"><a href="tel:{{.Mobile}}">{{.Mobile}}</a></td></tr>
    <tr><td style="padding:8px;font-weight:bold;">City</td><td style="padding:8px;">{{.City}}</td></tr>
    <tr><td style="padding:8px;font-weight:bold;">Timeline</td><td style="padding:8px;color:#d4af37;">{{.Timeline}}</td></tr>
    <tr><td style="padding:8px;font-weight:bold;">Submitted At</td><td style="padding:8px;">{{.SubmittedAt}}</td></tr>
  </table>
  <p style="color:#666;font-size:12px;">Automated notification from the lead system.</p>
</div>`))

var contactTemplate = template.Must(template.New("contact").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="background:#2d5a4a;color:#fff;padding:16px;">New Contact Message</h1>
  <table style="width:100%;border-collapse:collapse;">
    <tr><td style="padding:8px;font-weight:bold;">From</td><td style="padding:8px;">{{.Name}}</td></tr>
    <tr><td style="padding:8px;font-weight:bold;">Email</td><td style="padding:8px;"><a href="mailto:{{.Email}}">{{.Email}}</a></td></tr>
    <tr><td style="padding:8px;font-weight:bold;vertical-align:top;">Message</td><td style="padding:8px;white-space:pre-wrap;">{{.Message}}</td></tr>
  </table>
  <p style="color:#666;font-size:12px;">Sent from the website contact form.</p>
</div>`))

// Client sends notification emails to a fixed recipient set.
type Client struct {
	apiKey  string
	from    string
	to      []string
	client  *http.Client
	baseURL string
	logger  *zap.Logger
}

// New constructs the client from configuration.
func New(cfg config.EmailConfig, logger *zap.Logger) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		from:    fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail),
		to:      cfg.To,
		client:  &http.Client{Timeout: requestDeadline},
		baseURL: apiBaseURL,
		logger:  logger,
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// SendLeadAlert mails the operator about a new lead.
func (c *Client) SendLeadAlert(ctx context.Context, lead domain.Lead) error {
	view := struct {
		Name, Mobile, City, Timeline, SubmittedAt string
	}{
		Name:        lead.Name,
		Mobile:      lead.Mobile,
		City:        lead.City,
		Timeline:    timelineLabel(lead.Timeline),
		SubmittedAt: lead.SubmittedAt,
	}

	var body bytes.Buffer
	if err := leadTemplate.Execute(&body, view); err != nil {
		return err
	}

	return c.send(ctx, sendRequest{
		From:    c.from,
		To:      c.to,
		Subject: fmt.Sprintf("New Lead: %s from %s", lead.Name, lead.City),
		HTML:    body.String(),
	})
}

// SendContactAlert mails a contact-form message to the operator, reply-to set
// to the sender.
func (c *Client) SendContactAlert(ctx context.Context, contact domain.ContactMessage) error {
	var body bytes.Buffer
	if err := contactTemplate.Execute(&body, contact); err != nil {
		return err
	}

	return c.send(ctx, sendRequest{
		From:    c.from,
		To:      c.to,
		Subject: fmt.Sprintf("New Message from %s", contact.Name),
		HTML:    body.String(),
		ReplyTo: contact.Email,
	})
}

func (c *Client) send(ctx context.Context, payload sendRequest) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("resend returned %s", resp.Status)
	}

	var result struct {
		ID string `json:"id"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&result)
	c.logger.Debug("email sent", zap.String("email_id", result.ID))
	return nil
}

func timelineLabel(timeline string) string {
	if label, ok := timelineLabels[timeline]; ok {
		return label
	}
	return timeline
}
