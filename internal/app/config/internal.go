package config

type InternalConfig struct {
	App          App             `mapstructure:"app"`
	Platform     AppPlatform     `mapstructure:"platform"`
	JWT          AppJWT          `mapstructure:"jwt"`
	Session      AppSession      `mapstructure:"session"`
	Minio        AppMinio        `mapstructure:"minio"`
	RabbitMQ     AppRabbitMQ     `mapstructure:"rabbitmq"`
	Audit        AppAudit        `mapstructure:"audit"`
	Notification AppNotification `mapstructure:"notification"`
	SignIn       AppSignIn       `mapstructure:"sign_in"`
	Settings     AppSettings     `mapstructure:"settings"`
}

type App struct {
	Env                        string   `mapstructure:"env"`
	Port                       string   `mapstructure:"port"`
	Version                    string   `mapstructure:"version"`
	Timezone                   string   `mapstructure:"timezone"`
	EndpointPrefix             string   `mapstructure:"endpoint_prefix"`
	AllowedOrigins             []string `mapstructure:"allowed_origins"`
	MaxRequests                int      `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds   int      `mapstructure:"shutdown_timeout_in_seconds"`
	RequestTimeoutInSeconds    int      `mapstructure:"request_timeout_in_seconds"`
	RequestBodyLimitInMegabyte int      `mapstructure:"request_body_limit_in_megabyte"`
	OperatorAPIKeyHash         string   `mapstructure:"operator_api_key_hash"`
}

type AppPlatform struct {
	BaseUrl                 string `mapstructure:"base_url"`
	AnonKey                 string `mapstructure:"anon_key"`
	RequestTimeoutInSeconds int    `mapstructure:"request_timeout_in_seconds"`
}

type AppJWT struct {
	Secret        string `mapstructure:"secret"`
	ExpTimeInHour int    `mapstructure:"exp_time_in_hour"`
}

type AppSession struct {
	StoreTTLInHours          int `mapstructure:"store_ttl_in_hours"`
	RefreshMarginInSeconds   int `mapstructure:"refresh_margin_in_seconds"`
	RefreshLockTTLInSeconds  int `mapstructure:"refresh_lock_ttl_in_seconds"`
	IdleResolverTTLInMinutes int `mapstructure:"idle_resolver_ttl_in_minutes"`
	SweepIntervalInSeconds   int `mapstructure:"sweep_interval_in_seconds"`
	SettleTimeoutInSeconds   int `mapstructure:"settle_timeout_in_seconds"`
}

type AppMinio struct {
	AvatarBucketName        string `mapstructure:"avatar_bucket_name"`
	AvatarMaxUploadSizeInMB int64  `mapstructure:"avatar_max_upload_size_in_mb"`
	PublicBaseUrl           string `mapstructure:"public_base_url"`
}

type AppRabbitMQ struct {
	AppointmentEventsQueue string `mapstructure:"appointment_events_queue"`
}

type AppAudit struct {
	Collection string `mapstructure:"collection"`
	BufferSize int    `mapstructure:"buffer_size"`
}

type AppNotification struct {
	TTLInMinutes int `mapstructure:"ttl_in_minutes"`
	MaxPerDrain  int `mapstructure:"max_per_drain"`
}

type AppSignIn struct {
	MaxAttempts          int `mapstructure:"max_attempts"`
	AttemptWindowSeconds int `mapstructure:"attempt_window_seconds"`
	BlockTimeInMinutes   int `mapstructure:"block_time_in_minutes"`
}

type AppSettings struct {
	CacheTTLInMinutes int `mapstructure:"cache_ttl_in_minutes"`
}
