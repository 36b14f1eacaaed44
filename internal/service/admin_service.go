package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/nesthome/lead-service/internal/auth"
)

// AdminService coordinates the admin login, logout, and credential rotation
// flows over the credential store and session manager.
type AdminService struct {
	creds    *auth.CredentialStore
	sessions *auth.SessionManager
	logger   *zap.Logger
}

// NewAdminService builds the service.
func NewAdminService(creds *auth.CredentialStore, sessions *auth.SessionManager, logger *zap.Logger) *AdminService {
	return &AdminService{creds: creds, sessions: sessions, logger: logger}
}

// Login verifies the password and issues a session. ok is false on a wrong
// password; err reports token generation failure only.
func (s *AdminService) Login(ctx context.Context, password string) (sessionID string, ok bool, err error) {
	if !s.creds.Verify(password) {
		return "", false, nil
	}
	sessionID, err = s.sessions.Create(ctx, auth.AdminUserID)
	if err != nil {
		return "", false, err
	}
	s.logger.Info("admin login")
	return sessionID, true, nil
}

// Logout destroys the session; a missing or unknown token is a no-op.
func (s *AdminService) Logout(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	s.sessions.Destroy(ctx, sessionID)
}

// ChangePassword rotates the admin credential after verifying the current
// one. ok is false when the current password does not match.
func (s *AdminService) ChangePassword(_ context.Context, currentPassword, newPassword string) (ok bool, err error) {
	if !s.creds.Verify(currentPassword) {
		return false, nil
	}
	if err := s.creds.Update(newPassword); err != nil {
		return false, err
	}
	return true, nil
}
