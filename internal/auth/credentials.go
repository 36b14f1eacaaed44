package auth

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/nesthome/lead-service/internal/config"
)

// CredentialStore holds the single admin credential in process memory. The
// digest is seeded lazily from configuration on first access and survives
// only for the process lifetime; persistence is an external concern.
type CredentialStore struct {
	mu     sync.Mutex
	cfg    config.AuthConfig
	logger *zap.Logger
	digest string
}

// NewCredentialStore builds the store; no hashing happens until first use.
func NewCredentialStore(cfg config.AuthConfig, logger *zap.Logger) *CredentialStore {
	return &CredentialStore{cfg: cfg, logger: logger}
}

// Current returns the stored admin digest, deriving it from configuration on
// first call. ADMIN_PASSWORD containing a ":" is treated as pre-hashed;
// otherwise it is hashed once. Without it the default password is hashed.
func (s *CredentialStore) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.digest != "" {
		return s.digest
	}

	switch {
	case s.cfg.AdminPassword != "" && isDigest(s.cfg.AdminPassword):
		s.digest = s.cfg.AdminPassword
	case s.cfg.AdminPassword != "":
		s.digest = s.mustHash(s.cfg.AdminPassword)
	default:
		s.digest = s.mustHash(s.cfg.AdminDefaultPassword)
	}
	s.logger.Info("admin credential initialized")
	return s.digest
}

// Verify checks a candidate password against the current credential.
func (s *CredentialStore) Verify(password string) bool {
	return VerifyPassword(password, s.Current())
}

// Update replaces the cached digest with a hash of the new secret. The change
// is not persisted beyond the process.
func (s *CredentialStore) Update(newPassword string) error {
	digest, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.digest = digest
	s.mu.Unlock()
	s.logger.Info("admin credential updated")
	return nil
}

func (s *CredentialStore) mustHash(password string) string {
	digest, err := HashPassword(password)
	if err != nil {
		s.logger.Fatal("hash admin credential", zap.Error(err))
	}
	return digest
}

func isDigest(value string) bool {
	return strings.Contains(value, ":")
}
