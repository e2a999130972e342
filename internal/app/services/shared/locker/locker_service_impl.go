package locker

import (
	"context"
	"fmt"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/utils"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// lockService is a best-effort mutual exclusion across replicas. A lock is a
// redis key holding a random owner token and expires on its own if the owner
// never releases it.
type lockService struct {
	redisRepo contracts.RedisRepository
	Log       *zap.Logger
	newToken  func() string
}

func NewLockService(repo contracts.RedisRepository, logger *zap.Logger) contracts.LockerService {
	return &lockService{
		redisRepo: repo,
		Log:       logger,
		newToken:  uuid.NewString,
	}
}

// TryLock returns the owner token to pass to Unlock when the lock is acquired.
func (s *lockService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	if expiration <= 0 {
		return false, "", exceptions.ErrRedisSet(fmt.Errorf("lock %s requested without expiration", key))
	}

	owner := s.newToken()
	acquired, err := s.redisRepo.TrySetNX(ctx, key, owner, expiration)
	if err != nil {
		s.Log.Error("lockService.TryLock error calling redisRepo.TrySetNX",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return false, "", err
	}
	if !acquired {
		return false, "", nil
	}

	s.Log.Debug("lockService.TryLock acquired",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingRedisKey, key),
		zap.Duration(constvars.LoggingLockExpirationTimeKey, expiration),
	)
	return true, owner, nil
}

// Unlock releases key only if owner still holds it. A lock that already
// expired releases nothing and is not an error.
func (s *lockService) Unlock(ctx context.Context, key, owner string) error {
	released, err := s.redisRepo.DeleteIfEquals(ctx, key, owner)
	if err != nil {
		s.Log.Error("lockService.Unlock error calling redisRepo.DeleteIfEquals",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return exceptions.ErrRedisUnlock(err)
	}

	if !released {
		s.Log.Warn("lockService.Unlock lock expired or taken over before release",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingRedisKey, key),
			zap.String(constvars.LoggingLockValueKey, owner),
		)
	}
	return nil
}
