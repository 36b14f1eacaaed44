package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nesthome/lead-service/internal/config"
)

const sessionKeyPrefix = "session:"

// redisSessionStore keeps the active set in Redis, letting key TTLs enforce
// expiry. Selected with SESSION_STORE=redis; sessions then survive restarts.
type redisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore connects to Redis and returns a TTL-backed store.
func NewRedisSessionStore(cfg config.RedisConfig, logger *zap.Logger) SessionStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr))
	}

	return &redisSessionStore{client: client}
}

func (s *redisSessionStore) Put(ctx context.Context, id string, sess Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}
	return s.client.Set(ctx, sessionKeyPrefix+id, payload, ttl).Err()
}

func (s *redisSessionStore) Get(ctx context.Context, id string) (Session, bool, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, err
	}
	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return Session{}, false, err
	}
	return sess, true, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKeyPrefix+id).Err()
}

// Sweep is a no-op; Redis evicts expired session keys itself.
func (s *redisSessionStore) Sweep(context.Context, time.Time) error {
	return nil
}
