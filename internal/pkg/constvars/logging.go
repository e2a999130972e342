package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingAppSessionIDKey       = "app_session_id"
	LoggingSubjectIDKey          = "subject_id"
	LoggingEmailKey              = "email"
	LoggingAuthEventKey          = "auth_event"
	LoggingResolverStateKey      = "resolver_state"
	LoggingGenerationKey         = "generation"
	LoggingIsAdminKey            = "is_admin"
	LoggingFiltersKey            = "filters"
	LoggingAppointmentIDKey      = "appointment_id"
	LoggingAppointmentStatusKey  = "appointment_status"
	LoggingEntityIDKey           = "entity_id"
	LoggingTableKey              = "table"
	LoggingQueryKey              = "query"
	LoggingURLKey                = "url"
	LoggingStatusCodeKey         = "status_code"
	LoggingResponseLengthKey     = "response_length"
	LoggingCountKey              = "count"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration"
	LoggingQueueNameKey          = "queue_name"
	LoggingBucketNameKey         = "bucket_name"
	LoggingObjectNameKey         = "object_name"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingRawQueryKey           = "raw_query"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingDecisionKey           = "decision"
	LoggingLocationKey           = "location"
)
