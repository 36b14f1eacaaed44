package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nesthome/lead-service/internal/api/http/handlers"
	"github.com/nesthome/lead-service/internal/auth"
)

// availableEndpoints is the documented surface returned on non-API 404s.
var availableEndpoints = []string{
	"GET /api/health",
	"POST /api/admin/login",
	"POST /api/admin/logout",
	"POST /api/admin/change-password",
	"GET /api/admin/verify",
	"GET /api/leads",
	"POST /api/leads",
	"POST /api/sync-all-leads",
	"GET /api/spreadsheet-url",
	"POST /api/contact",
}

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Admin   *handlers.AdminHandler
	Leads   *handlers.LeadsHandler
	Contact *handlers.ContactHandler
	Gate    *auth.AdminGate
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group("/api")
	api.Get("/health", cfg.Health.Check)

	admin := api.Group("/admin")
	admin.Post("/login", cfg.Admin.Login)
	admin.Post("/logout", cfg.Admin.Logout)
	admin.Post("/change-password", cfg.Gate.Handle, cfg.Admin.ChangePassword)
	admin.Get("/verify", cfg.Gate.Handle, cfg.Admin.Verify)

	api.Get("/leads", cfg.Gate.Handle, cfg.Leads.List)
	api.Post("/leads", cfg.Leads.Submit)
	api.Post("/sync-all-leads", cfg.Leads.SyncAll)
	api.Get("/spreadsheet-url", cfg.Leads.SpreadsheetURL)

	api.Post("/contact", cfg.Contact.Submit)

	app.Use(notFoundHandler)
}

// notFoundHandler distinguishes unknown API routes from non-API paths; the
// frontend is deployed separately, so the latter get the endpoint catalog.
func notFoundHandler(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Path(), "/api") {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "API endpoint not found",
			"message": "Check the API documentation for available endpoints.",
		})
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":              "Not Found",
		"message":            "This is an API-only server. Frontend is deployed separately.",
		"availableEndpoints": availableEndpoints,
	})
}
