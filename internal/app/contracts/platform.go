package contracts

import (
	"context"
	"medisync-service/internal/app/models"
)

// AuthChangeListener is invoked synchronously while the auth client holds its
// session lock. Implementations must not call back into the client.
type AuthChangeListener func(event models.AuthEvent, session *models.PlatformSession)

type PlatformAuthClient interface {
	GetSession(ctx context.Context) (*models.PlatformSession, error)
	GetUser(ctx context.Context) (*models.PlatformUser, error)
	OnAuthStateChange(listener AuthChangeListener) (unsubscribe func())
	SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) error
	SignInWithPassword(ctx context.Context, email, password string) (*models.PlatformSession, error)
	SignOut(ctx context.Context) error
}

type PlatformAuthFactory interface {
	ForSession(sessionID string) PlatformAuthClient
}

type PlatformSessionStore interface {
	Load(ctx context.Context, sessionID string) (*models.PlatformSession, error)
	Save(ctx context.Context, sessionID string, session *models.PlatformSession) error
	Delete(ctx context.Context, sessionID string) error
}

type PrivilegeChecker interface {
	IsAdmin(ctx context.Context, subjectID string) (bool, error)
}
