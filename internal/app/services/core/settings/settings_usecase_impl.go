package settings

import (
	"context"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Defaults returns a fresh copy of the values used for keys that were never saved.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"platform_name":                "MediSync",
		"platform_description":         "Plateforme de gestion de rendez-vous médicaux",
		"registration_enabled":         true,
		"max_appointments_per_day":     10,
		"appointment_duration_minutes": 30,
		"reminder_hours_before":        24,
		"notification_enabled":         true,
		"maintenance_mode":             false,
		"contact_email":                "contact@medisync.example.com",
		"contact_phone":                "",
	}
}

type settingsUsecase struct {
	SettingsRepository contracts.SettingsRepository
	RedisRepository    contracts.RedisRepository
	AuditLogger        contracts.AuditLogger
	CacheTTL           time.Duration
	Log                *zap.Logger
	now                func() time.Time
}

func NewSettingsUsecase(
	settingsRepository contracts.SettingsRepository,
	redisRepository contracts.RedisRepository,
	auditLogger contracts.AuditLogger,
	cacheTTL time.Duration,
	logger *zap.Logger,
) contracts.SettingsUsecase {
	return &settingsUsecase{
		SettingsRepository: settingsRepository,
		RedisRepository:    redisRepository,
		AuditLogger:        auditLogger,
		CacheTTL:           cacheTTL,
		Log:                logger,
		now:                time.Now,
	}
}

// Get merges stored values over the defaults. A cache miss or a broken cache
// entry falls through to the platform.
func (uc *settingsUsecase) Get(ctx context.Context) (map[string]interface{}, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("settingsUsecase.Get called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if cached := uc.readCache(ctx); cached != nil {
		return cached, nil
	}

	stored, err := uc.SettingsRepository.FindAll(ctx)
	if err != nil {
		uc.Log.Error("settingsUsecase.Get error fetching settings",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	merged := Defaults()
	for _, setting := range stored {
		merged[setting.SettingKey] = setting.SettingValue
	}

	if err := uc.RedisRepository.Set(ctx, constvars.RedisKeyPlatformSettings, merged, uc.CacheTTL); err != nil {
		uc.Log.Warn("settingsUsecase.Get error caching settings",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	uc.Log.Info("settingsUsecase.Get succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(stored)),
	)
	return merged, nil
}

func (uc *settingsUsecase) Save(ctx context.Context, values map[string]interface{}) (map[string]interface{}, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("settingsUsecase.Save called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(values)),
	)

	updatedAt := uc.now().UTC()
	rows := make([]models.PlatformSetting, 0, len(values))
	for key, value := range values {
		rows = append(rows, models.PlatformSetting{
			SettingKey:   key,
			SettingValue: value,
			UpdatedAt:    &updatedAt,
		})
	}

	if err := uc.SettingsRepository.Upsert(ctx, rows); err != nil {
		uc.Log.Error("settingsUsecase.Save error upserting settings",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := uc.RedisRepository.Delete(ctx, constvars.RedisKeyPlatformSettings); err != nil {
		uc.Log.Warn("settingsUsecase.Save error invalidating cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	uc.AuditLogger.Record(ctx, "settings.saved", constvars.TablePlatformSettings, "", map[string]interface{}{"keys": keys})

	return uc.Get(ctx)
}

func (uc *settingsUsecase) readCache(ctx context.Context) map[string]interface{} {
	raw, err := uc.RedisRepository.Get(ctx, constvars.RedisKeyPlatformSettings)
	if err != nil || raw == "" {
		return nil
	}

	var cached map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		uc.Log.Warn("settingsUsecase.readCache error decoding cached settings",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingRedisKey, constvars.RedisKeyPlatformSettings),
			zap.Error(exceptions.ErrCannotParseJSON(err)),
		)
		return nil
	}
	return cached
}
