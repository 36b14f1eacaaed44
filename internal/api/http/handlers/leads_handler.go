package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nesthome/lead-service/internal/api/dto"
	"github.com/nesthome/lead-service/internal/domain"
	"github.com/nesthome/lead-service/internal/service"
	apperrors "github.com/nesthome/lead-service/pkg/util"
)

// LeadsHandler exposes the lead submission, listing, and sync endpoints.
type LeadsHandler struct {
	leads *service.LeadService
}

// NewLeadsHandler constructs handler.
func NewLeadsHandler(leadService *service.LeadService) *LeadsHandler {
	return &LeadsHandler{leads: leadService}
}

// Submit handles POST /api/leads. The lead is accepted once validation
// passes; downstream outcomes are reported as flags, never as a rejection.
func (h *LeadsHandler) Submit(c *fiber.Ctx) error {
	var req dto.LeadSubmission
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid lead data", map[string]any{"body": "malformed JSON"})
	}

	lead := req.ToLead()
	if details := lead.Validate(); details != nil {
		return apperrors.NewValidationError("Invalid lead data", details)
	}
	lead.Normalize(time.Now())

	result := h.leads.Push(c.Context(), lead)

	return c.JSON(fiber.Map{
		"success":               true,
		"leadId":                lead.ID,
		"googleSheetsSynced":    result.SheetsSynced,
		"emailNotificationSent": result.EmailSent,
	})
}

// List handles GET /api/leads (session-gated).
func (h *LeadsHandler) List(c *fiber.Ctx) error {
	leads, counts := h.leads.List(c.Context())

	// Serialize the empty list as [], not null.
	if leads == nil {
		leads = []domain.Lead{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"leads":   leads,
		"counts":  counts,
	})
}

// SyncAll handles POST /api/sync-all-leads.
func (h *LeadsHandler) SyncAll(c *fiber.Ctx) error {
	var req dto.BulkSyncRequest
	if err := c.BodyParser(&req); err != nil || req.Leads == nil {
		return apperrors.NewValidationError("No leads provided", nil)
	}

	raws := make([]domain.Lead, 0, len(req.Leads))
	for _, entry := range req.Leads {
		raws = append(raws, entry.ToLead())
	}

	synced, failed, total := h.leads.SyncAll(c.Context(), raws)

	return c.JSON(fiber.Map{
		"success": true,
		"synced":  synced,
		"failed":  failed,
		"total":   total,
	})
}

// SpreadsheetURL handles GET /api/spreadsheet-url.
func (h *LeadsHandler) SpreadsheetURL(c *fiber.Ctx) error {
	url, ok := h.leads.SpreadsheetURL()
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"url":   nil,
			"error": "Failed to get spreadsheet URL",
		})
	}
	return c.JSON(fiber.Map{"url": url})
}
