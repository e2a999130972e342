package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY             ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY   ContextKey = "is_client_request_id"
	CONTEXT_APP_SESSION_ID_KEY         ContextKey = "app_session_id"
	CONTEXT_RESOLVER_KEY               ContextKey = "identity_resolver"
	CONTEXT_PLATFORM_ACCESS_TOKEN_KEY  ContextKey = "platform_access_token"
	CONTEXT_API_KEY_AUTHENTICATED_FLAG ContextKey = "api_key_authenticated"
	CONTEXT_SUBJECT_ID_KEY             ContextKey = "subject_id"
)

const (
	REQUEST_ID_PREFIX = "MDSYNC_SVC_"
)

const (
	ResourceAuth                 = "auth"
	ResourceAppointments         = "appointments"
	ResourcePractitioners        = "practitioners"
	ResourceHealthCenters        = "health-centers"
	ResourcePractitionerCenters  = "practitioner-centers"
	ResourcePatients             = "patients"
	ResourceSettings             = "settings"
	ResourceDashboard            = "dashboard"
	ResourceNotifications        = "notifications"
	ResourceNavigation           = "navigation"
	ResourceProfile              = "profile"
	ResourceOperations           = "operations"
	AppointmentEventStatusChange = "appointment.status_changed"
	AppointmentEventCreated      = "appointment.created"
	AppointmentEventDeleted      = "appointment.deleted"
)

const (
	RedisKeyPlatformSessionFormat = "platform_session:%s"
	RedisKeyRefreshLockFormat     = "platform_session_refresh_lock:%s"
	RedisKeyNotificationsFormat   = "notifications:%s"
	RedisKeyPlatformSettings      = "platform_settings"
)

const (
	DefaultRequestTimeoutInSeconds      = 10
	DefaultSettleTimeoutInSeconds       = 5
	DefaultAvatarMaxUploadSizeInMB      = 2
	DefaultEventConfirmTimeoutInSeconds = 5
	MultipartOverheadInBytes            = 1 << 16
)

const (
	QueryParamPath           = "path"
	QueryParamStatus         = "status"
	QueryParamDateFrom       = "date_from"
	QueryParamDateTo         = "date_to"
	QueryParamCenterID       = "center_id"
	QueryParamPractitionerID = "practitioner_id"
	QueryParamPatientName    = "patient_name"
	FormFieldAvatar          = "avatar"
)
