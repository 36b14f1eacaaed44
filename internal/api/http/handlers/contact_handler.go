package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nesthome/lead-service/internal/api/dto"
	"github.com/nesthome/lead-service/internal/service"
	apperrors "github.com/nesthome/lead-service/pkg/util"
)

// ContactHandler exposes the contact-form endpoint.
type ContactHandler struct {
	contact *service.ContactService
}

// NewContactHandler constructs handler.
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contact: contactService}
}

// Submit handles POST /api/contact. Email is the only delivery mechanism for
// contact messages, so a delivery failure fails the request.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid contact data", map[string]any{"body": "malformed JSON"})
	}

	contact := req.ToContact()
	if details := contact.Validate(); details != nil {
		return apperrors.NewValidationError("Invalid contact data", details)
	}

	if !h.contact.Send(c.Context(), contact) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success":   false,
			"emailSent": false,
			"error":     "Failed to send email. Please try WhatsApp instead.",
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"emailSent": true,
	})
}
