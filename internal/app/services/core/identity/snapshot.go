package identity

import "medisync-service/internal/app/models"

type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoading       State = "loading"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

// Snapshot is an immutable view of the resolver. IsAdmin is false until the
// privilege check for the current subject has completed.
type Snapshot struct {
	State   State
	Session *models.PlatformSession
	User    *models.PlatformUser
	Profile *models.UserProfile
	IsAdmin bool
}

func (s Snapshot) IsLoading() bool {
	return s.State == StateUninitialized || s.State == StateLoading
}

func (s Snapshot) HasSession() bool {
	return s.Session != nil
}

func (s Snapshot) SubjectID() string {
	return s.Session.SubjectID()
}
