package config

import (
	"medisync-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "medisync"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "medisync"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "medisync"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
			AccessLogFileName:   utils.GetEnvString("LOGGER_ACCESS_LOG_FILENAME", "access.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Europe/Paris"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			AllowedOrigins:             utils.GetEnvStringSlice("APP_ALLOWED_ORIGINS", []string{"*"}),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 20),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			OperatorAPIKeyHash:         utils.GetEnvString("APP_OPERATOR_API_KEY_HASH", ""),
		},
		Platform: AppPlatform{
			BaseUrl:                 utils.GetEnvString("PLATFORM_BASE_URL", "http://localhost:54321"),
			AnonKey:                 utils.GetEnvString("PLATFORM_ANON_KEY", ""),
			RequestTimeoutInSeconds: utils.GetEnvInt("PLATFORM_REQUEST_TIMEOUT_IN_SECONDS", 10),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "medisync-secret"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 168),
		},
		Session: AppSession{
			StoreTTLInHours:          utils.GetEnvInt("SESSION_STORE_TTL_IN_HOURS", 168),
			RefreshMarginInSeconds:   utils.GetEnvInt("SESSION_REFRESH_MARGIN_IN_SECONDS", 60),
			RefreshLockTTLInSeconds:  utils.GetEnvInt("SESSION_REFRESH_LOCK_TTL_IN_SECONDS", 10),
			IdleResolverTTLInMinutes: utils.GetEnvInt("SESSION_IDLE_RESOLVER_TTL_IN_MINUTES", 30),
			SweepIntervalInSeconds:   utils.GetEnvInt("SESSION_SWEEP_INTERVAL_IN_SECONDS", 60),
			SettleTimeoutInSeconds:   utils.GetEnvInt("SESSION_SETTLE_TIMEOUT_IN_SECONDS", 5),
		},
		Minio: AppMinio{
			AvatarBucketName:        utils.GetEnvString("MINIO_AVATAR_BUCKET_NAME", "avatars"),
			AvatarMaxUploadSizeInMB: utils.GetEnvInt64("MINIO_AVATAR_MAX_UPLOAD_SIZE_IN_MB", 2),
			PublicBaseUrl:           utils.GetEnvString("MINIO_PUBLIC_BASE_URL", "http://localhost:9000"),
		},
		RabbitMQ: AppRabbitMQ{
			AppointmentEventsQueue: utils.GetEnvString("RABBITMQ_APPOINTMENT_EVENTS_QUEUE", "appointment_events"),
		},
		Audit: AppAudit{
			Collection: utils.GetEnvString("AUDIT_COLLECTION", "audit_logs"),
			BufferSize: utils.GetEnvInt("AUDIT_BUFFER_SIZE", 100),
		},
		Notification: AppNotification{
			TTLInMinutes: utils.GetEnvInt("NOTIFICATION_TTL_IN_MINUTES", 10),
			MaxPerDrain:  utils.GetEnvInt("NOTIFICATION_MAX_PER_DRAIN", 20),
		},
		SignIn: AppSignIn{
			MaxAttempts:          utils.GetEnvInt("SIGN_IN_MAX_ATTEMPTS", 5),
			AttemptWindowSeconds: utils.GetEnvInt("SIGN_IN_ATTEMPT_WINDOW_SECONDS", 60),
			BlockTimeInMinutes:   utils.GetEnvInt("SIGN_IN_BLOCK_TIME_IN_MINUTES", 5),
		},
		Settings: AppSettings{
			CacheTTLInMinutes: utils.GetEnvInt("SETTINGS_CACHE_TTL_IN_MINUTES", 15),
		},
	}
}
