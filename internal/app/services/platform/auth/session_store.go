package auth

import (
	"context"
	"fmt"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
)

// RedisSessionStore keeps the platform token pair of every app session in
// redis so any replica can serve the session.
type RedisSessionStore struct {
	redisRepo contracts.RedisRepository
	ttl       time.Duration
}

func NewRedisSessionStore(repo contracts.RedisRepository, ttl time.Duration) contracts.PlatformSessionStore {
	return &RedisSessionStore{redisRepo: repo, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf(constvars.RedisKeyPlatformSessionFormat, sessionID)
}

func (s *RedisSessionStore) Load(ctx context.Context, sessionID string) (*models.PlatformSession, error) {
	raw, err := s.redisRepo.Get(ctx, sessionKey(sessionID))
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	session := new(models.PlatformSession)
	if err := json.Unmarshal([]byte(raw), session); err != nil {
		return nil, exceptions.ErrPlatformSessionUnreadable(err, sessionID)
	}
	return session, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, sessionID string, session *models.PlatformSession) error {
	return s.redisRepo.Set(ctx, sessionKey(sessionID), session, s.ttl)
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.redisRepo.Delete(ctx, sessionKey(sessionID))
}
