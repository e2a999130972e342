package constvars

const (
	PlatformAuthPath = "/auth/v1"
	PlatformRestPath = "/rest/v1"
	PlatformRPCPath  = "/rest/v1/rpc"
)

const (
	TableProfiles            = "profiles"
	TablePractitioners       = "practitioners"
	TableHealthCenters       = "health_centers"
	TablePractitionerCenters = "practitioner_centers"
	TableAppointments        = "appointments"
	TablePlatformSettings    = "platform_settings"
	ViewAppointments         = "appointments_view"
)

const (
	RPCIsAdmin = "is_admin"
)

const (
	PreferCountExact           = "count=exact"
	PreferReturnRepresentation = "return=representation"
	PreferReturnMinimal        = "return=minimal"
	PreferMergeDuplicates      = "resolution=merge-duplicates"
)
