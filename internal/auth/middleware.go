package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/nesthome/lead-service/pkg/util"
)

// SessionHeader carries the opaque admin session token. Header lookup is
// case-insensitive per HTTP.
const SessionHeader = "X-Session-Id"

// AdminGate guards sensitive routes with a fresh session validation per
// request. It holds no state of its own.
type AdminGate struct {
	sessions *SessionManager
}

// NewAdminGate constructs the middleware.
func NewAdminGate(sessions *SessionManager) *AdminGate {
	return &AdminGate{sessions: sessions}
}

// Handle rejects requests without a live session before any handler runs.
func (g *AdminGate) Handle(c *fiber.Ctx) error {
	sessionID := c.Get(SessionHeader)
	if sessionID == "" || !g.sessions.Validate(c.Context(), sessionID) {
		return apperrors.NewUnauthorized("Unauthorized. Please login.")
	}
	return c.Next()
}
