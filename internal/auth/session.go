package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"go.uber.org/zap"
)

// AdminUserID is the single admin principal sessions are issued for.
const AdminUserID = "admin"

const tokenBytes = 32

// Session is an issued admin session. Sessions are immutable once created;
// expiry is checked lazily on access.
type Session struct {
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionStore abstracts where active sessions live. The default memory store
// loses sessions on restart; the Redis store survives it.
type SessionStore interface {
	Put(ctx context.Context, id string, sess Session) error
	Get(ctx context.Context, id string) (Session, bool, error)
	Delete(ctx context.Context, id string) error
	Sweep(ctx context.Context, now time.Time) error
}

// SessionManager issues, validates, and revokes opaque session tokens.
type SessionManager struct {
	store  SessionStore
	ttl    time.Duration
	logger *zap.Logger

	now func() time.Time
}

// NewSessionManager builds a manager over the given store.
func NewSessionManager(store SessionStore, ttl time.Duration, logger *zap.Logger) *SessionManager {
	return &SessionManager{store: store, ttl: ttl, logger: logger, now: time.Now}
}

// WithClock overrides the manager's time source, for tests.
func (m *SessionManager) WithClock(now func() time.Time) *SessionManager {
	m.now = now
	return m
}

// Create issues a fresh opaque token valid for the configured TTL and, as a
// side effect, sweeps expired sessions from the active set.
func (m *SessionManager) Create(ctx context.Context, userID string) (string, error) {
	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)

	now := m.now()
	if err := m.store.Put(ctx, token, Session{UserID: userID, ExpiresAt: now.Add(m.ttl)}); err != nil {
		return "", err
	}

	if err := m.store.Sweep(ctx, now); err != nil {
		m.logger.Warn("session sweep failed", zap.Error(err))
	}
	return token, nil
}

// Validate reports whether the token identifies a live session. An expired
// session is removed on the way out.
func (m *SessionManager) Validate(ctx context.Context, token string) bool {
	sess, ok, err := m.store.Get(ctx, token)
	if err != nil {
		m.logger.Warn("session lookup failed", zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if m.now().After(sess.ExpiresAt) {
		if err := m.store.Delete(ctx, token); err != nil {
			m.logger.Warn("expired session cleanup failed", zap.Error(err))
		}
		return false
	}
	return true
}

// Destroy removes the session unconditionally; no-op if absent.
func (m *SessionManager) Destroy(ctx context.Context, token string) {
	if err := m.store.Delete(ctx, token); err != nil {
		m.logger.Warn("session destroy failed", zap.Error(err))
	}
}

// memorySessionStore keeps the active set in a mutex-guarded map.
type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemorySessionStore creates the default in-process session store.
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{sessions: make(map[string]Session)}
}

func (s *memorySessionStore) Put(_ context.Context, id string, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = sess
	return nil
}

func (s *memorySessionStore) Get(_ context.Context, id string) (Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok, nil
}

func (s *memorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *memorySessionStore) Sweep(_ context.Context, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
		}
	}
	return nil
}
