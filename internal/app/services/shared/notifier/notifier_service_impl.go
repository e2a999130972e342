package notifier

import (
	"context"
	"fmt"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// notifierService keeps a redis list of pending notifications per app session.
// The SPA drains the list and renders each entry as a toast.
type notifierService struct {
	redisRepo   contracts.RedisRepository
	ttl         time.Duration
	maxPerDrain int
	now         func() time.Time
	Log         *zap.Logger
}

func NewNotifierService(repo contracts.RedisRepository, ttl time.Duration, maxPerDrain int, logger *zap.Logger) contracts.Notifier {
	if maxPerDrain <= 0 {
		maxPerDrain = 50
	}
	return &notifierService{
		redisRepo:   repo,
		ttl:         ttl,
		maxPerDrain: maxPerDrain,
		now:         time.Now,
		Log:         logger,
	}
}

func (s *notifierService) Success(ctx context.Context, message string) {
	s.push(ctx, models.NotificationSuccess, message)
}

func (s *notifierService) Error(ctx context.Context, message string) {
	s.push(ctx, models.NotificationError, message)
}

func (s *notifierService) Info(ctx context.Context, message string) {
	s.push(ctx, models.NotificationInfo, message)
}

func (s *notifierService) push(ctx context.Context, level models.NotificationLevel, message string) {
	requestID := utils.GetRequestID(ctx)
	sessionID := utils.GetAppSessionID(ctx)
	if sessionID == "" {
		s.Log.Debug("notifierService.push no app session in context, notification dropped",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("level", string(level)),
		)
		return
	}

	notification := models.Notification{
		ID:        utils.NewULID(),
		Level:     level,
		Message:   message,
		CreatedAt: s.now().UTC(),
	}
	payload, err := json.Marshal(notification)
	if err != nil {
		s.Log.Error("notifierService.push error marshaling notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}

	key := fmt.Sprintf(constvars.RedisKeyNotificationsFormat, sessionID)
	if err := s.redisRepo.PushToList(ctx, key, string(payload)); err != nil {
		s.Log.Error("notifierService.push error calling redisRepo.PushToList",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppSessionIDKey, sessionID),
			zap.Error(err),
		)
		return
	}
	if s.ttl > 0 {
		if err := s.redisRepo.Expire(ctx, key, s.ttl); err != nil {
			s.Log.Warn("notifierService.push error calling redisRepo.Expire",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}
}

// Drain removes at most maxPerDrain notifications in the order they were
// queued. A failed drain leaves the queue untouched.
func (s *notifierService) Drain(ctx context.Context, sessionID string) ([]models.Notification, error) {
	requestID := utils.GetRequestID(ctx)
	key := fmt.Sprintf(constvars.RedisKeyNotificationsFormat, sessionID)

	raws, err := s.redisRepo.PopListRange(ctx, key, int64(s.maxPerDrain))
	if err != nil {
		s.Log.Error("notifierService.Drain error calling redisRepo.PopListRange",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppSessionIDKey, sessionID),
			zap.Error(err),
		)
		return nil, err
	}

	notifications := make([]models.Notification, 0, len(raws))
	for _, raw := range raws {
		var notification models.Notification
		if err := json.Unmarshal([]byte(raw), &notification); err != nil {
			s.Log.Warn("notifierService.Drain skipping unreadable notification",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			continue
		}
		notifications = append(notifications, notification)
	}

	s.Log.Debug("notifierService.Drain succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(notifications)),
	)
	return notifications, nil
}
