package constvars

const (
	ResponseUnknown = "unknown"

	SignUpSuccessMessage             = "account created, check your email to confirm it"
	SignInSuccessMessage             = "successfully signed in"
	SignOutSuccessMessage            = "successfully signed out"
	GetSessionSuccessMessage         = "get session successfully"
	GetLandingSuccessMessage         = "get landing view successfully"
	GetNavigationDecisionMessage     = "get navigation decision successfully"
	GetNotificationsSuccessMessage   = "get notifications successfully"
	UploadAvatarSuccessMessage       = "avatar uploaded successfully"
	GetAppointmentsSuccessMessage    = "get appointments successfully"
	CountAppointmentsSuccessMessage  = "count appointments successfully"
	GetAppointmentStatusesMessage    = "get appointment statuses successfully"
	CreateAppointmentSuccessMessage  = "appointment created successfully"
	UpdateAppointmentStatusMessage   = "appointment status updated successfully"
	DeleteAppointmentSuccessMessage  = "appointment deleted successfully"
	GetPractitionersSuccessMessage   = "get practitioners successfully"
	GetAvailableUsersSuccessMessage  = "get available users successfully"
	CreatePractitionerSuccessMessage = "practitioner created successfully"
	UpdatePractitionerSuccessMessage = "practitioner updated successfully"
	DeletePractitionerSuccessMessage = "practitioner deleted successfully"
	GetHealthCentersSuccessMessage   = "get health centers successfully"
	CreateHealthCenterSuccessMessage = "health center created successfully"
	UpdateHealthCenterSuccessMessage = "health center updated successfully"
	DeleteHealthCenterSuccessMessage = "health center deleted successfully"
	GetAffiliationsSuccessMessage    = "get practitioner-center affiliations successfully"
	CreateAffiliationSuccessMessage  = "practitioner-center affiliation created successfully"
	DeleteAffiliationSuccessMessage  = "practitioner-center affiliation deleted successfully"
	GetPatientsSuccessMessage        = "get patients successfully"
	UpdatePatientSuccessMessage      = "patient updated successfully"
	DeactivatePatientSuccessMessage  = "patient deactivated successfully"
	GetSettingsSuccessMessage        = "get settings successfully"
	SaveSettingsSuccessMessage       = "settings saved successfully"
	GetDashboardStatsSuccessMessage  = "get dashboard statistics successfully"
	PurgeSessionsSuccessMessage      = "sessions purged successfully"
	ResolverLoadingMessage           = "session is still being resolved"
	RedirectLoginMessage             = "authentication required"
	RedirectDefaultMessage           = "redirected to the default view"
)
