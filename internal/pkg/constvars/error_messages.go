package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":           "is required",
	"email":              "must be a valid email",
	"min":                "must be at least %s characters long",
	"max":                "maximum at %s characters long",
	"oneof":              "must be one of [%s]",
	"gte":                "must be greater than or equal to %s",
	"lte":                "must be less than or equal to %s",
	"uuid":               "must be a valid UUID",
	"datetime":           "must follow the %s layout",
	"appointment_status": "must be a known appointment status",
	"user_type":          "must be one of [patient, doctor, facility]",
	"gtfield":            "must be after %s",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"oneof":    true,
	"gte":      true,
	"lte":      true,
	"datetime": true,
	"gtfield":  true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientInvalidUsernameOrPassword     = "invalid email or password"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientNotAdministrator              = "this account has no administrator rights"
	ErrClientPlatformUnavailable           = "the medical records service is unavailable, please retry"
	ErrClientResourceNotFound              = "the requested resource does not exist"
	ErrClientHealthCenterHasPractitioners  = "this health center still has affiliated practitioners, remove them first"
	ErrClientAffiliationAlreadyExists      = "this practitioner is already affiliated with this health center"
	ErrClientPractitionerAlreadyExists     = "this user is already registered as a practitioner"
	ErrClientInvalidImageFormat            = "invalid image format, only jpeg, png and webp are accepted"
	ErrClientImageTooLarge                 = "image exceeds the allowed size"
	ErrClientTooManyRequests               = "too many requests, you are temporarily blocked"
	ErrClientAppointmentOperationFailed    = "the appointment could not be saved"
)

// Error messages for developers
const (
	ErrDevInvalidInput                   = "invalid input"
	ErrDevValidationFailed               = "validation failed"
	ErrDevURLParamIDValidationFailed     = "url param %s validation failed"
	ErrDevCannotParseJSON                = "cannot parse JSON"
	ErrDevCannotMarshalJSON              = "cannot marshal JSON"
	ErrDevCannotParseMultipartForm       = "cannot parse multipart form"
	ErrDevImageValidationFailed          = "image validation failed"
	ErrDevImageTooLarge                  = "image exceeds %d bytes"
	ErrDevServerDeadlineExceeded         = "server deadline exceeded"
	ErrDevMissingRequestID               = "request id missing from context"
	ErrDevMissingResolver                = "identity resolver missing from context"
	ErrDevAuthTokenMissing               = "auth token missing"
	ErrDevAuthTokenInvalid               = "auth token invalid"
	ErrDevAuthSigningMethod              = "unexpected signing method"
	ErrDevAuthGenerateToken              = "failed to generate auth token"
	ErrDevAPIKeyMissing                  = "api key missing"
	ErrDevAPIKeyInvalid                  = "api key does not match the configured hash"
	ErrDevInvalidCredentials             = "platform rejected the credentials"
	ErrDevNotAdministrator               = "privilege check returned false for subject"
	ErrDevNoPlatformSession              = "no platform session for app session"
	ErrDevPlatformRequest                = "platform request to %s failed"
	ErrDevPlatformUnexpectedStatus       = "platform responded %d on %s: %s"
	ErrDevPlatformDecodeResponse         = "cannot decode platform response from %s"
	ErrDevPlatformContentRange           = "cannot parse content-range %q"
	ErrDevPlatformNoRows                 = "platform returned no row for %s"
	ErrDevCreateHTTPRequest              = "cannot create http request"
	ErrDevSendHTTPRequest                = "cannot send http request"
	ErrDevRedisDeleteData                = "cannot delete redis data"
	ErrDevRedisGetData                   = "cannot get redis data"
	ErrDevRedisGetNoData                 = "no redis data for key %s"
	ErrDevRedisSetData                   = "cannot set redis data"
	ErrDevRedisExpire                    = "cannot set redis expiry"
	ErrDevRedisRightPushToList           = "cannot push to redis list"
	ErrDevRedisLeftPopList               = "cannot pop from redis list"
	ErrDevRedisUnlock                    = "cannot release redis lock"
	ErrDevRabbitMQPublishMessage         = "cannot publish message to queue %s"
	ErrDevMinioFailedToCreateObject      = "cannot create object in bucket %s"
	ErrDevMongoDBInsertDocument          = "cannot insert mongo document"
	ErrDevHealthCenterHasPractitioners   = "health center %s has %d affiliations"
	ErrDevAffiliationAlreadyExists       = "affiliation practitioner=%s center=%s already exists"
	ErrDevPractitionerAlreadyExists      = "user %s is already a practitioner"
	ErrDevResourceNotFound               = "%s %s not found"
	ErrDevAppointmentInvalidTimeRange    = "appointment start_time must be before end_time"
	ErrDevAppointmentUnknownStatus       = "unknown appointment status %q"
	ErrDevAppointmentOperationFailed     = "appointment %s failed for %s"
	ErrDevResolverDisposed               = "identity resolver already disposed"
	ErrDevResolverNotSettled             = "identity resolver did not settle before deadline"
	ErrDevRateLimited                    = "rate limit exceeded for %s"
	ErrDevSessionRegistryAcquireFailed   = "cannot acquire resolver for session %s"
	ErrDevPlatformSessionStoreUnreadable = "stored platform session for %s is unreadable"
)
