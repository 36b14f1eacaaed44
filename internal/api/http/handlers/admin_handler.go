package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nesthome/lead-service/internal/api/dto"
	"github.com/nesthome/lead-service/internal/auth"
	"github.com/nesthome/lead-service/internal/service"
	apperrors "github.com/nesthome/lead-service/pkg/util"
)

const minPasswordLength = 6

// AdminHandler exposes the admin authentication endpoints.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: adminService}
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request", map[string]any{"body": "malformed JSON"})
	}
	if req.Password == "" {
		return apperrors.NewValidationError("Invalid request", map[string]any{"password": "Password is required"})
	}

	sessionID, ok, err := h.admin.Login(c.Context(), req.Password)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if !ok {
		return apperrors.NewUnauthorized("Invalid password")
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"sessionId": sessionID,
		"message":   "Login successful",
	})
}

// Logout handles POST /api/admin/logout. The token is optional; logout always
// succeeds.
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	h.admin.Logout(c.Context(), c.Get(auth.SessionHeader))
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

// ChangePassword handles POST /api/admin/change-password (session-gated).
func (h *AdminHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request", map[string]any{"body": "malformed JSON"})
	}

	details := map[string]any{}
	if req.CurrentPassword == "" {
		details["currentPassword"] = "Current password is required"
	}
	if len(req.NewPassword) < minPasswordLength {
		details["newPassword"] = "New password must be at least 6 characters"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("Invalid request", details)
	}

	ok, err := h.admin.ChangePassword(c.Context(), req.CurrentPassword, req.NewPassword)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if !ok {
		return apperrors.NewUnauthorized("Current password is incorrect")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password updated successfully",
	})
}

// Verify handles GET /api/admin/verify (session-gated).
func (h *AdminHandler) Verify(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":       true,
		"authenticated": true,
	})
}
