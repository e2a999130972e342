package responses

import "medisync-service/internal/app/models"

type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SessionState mirrors what the SPA needs from the identity resolver.
type SessionState struct {
	State     string              `json:"state"`
	IsLoading bool                `json:"is_loading"`
	IsAdmin   bool                `json:"is_admin"`
	User      *SessionUser        `json:"user"`
	Profile   *models.UserProfile `json:"profile"`
	ExpiresAt int64               `json:"expires_at,omitempty"`
}

type SignIn struct {
	Token     string        `json:"token"`
	Session   *SessionState `json:"session"`
	LandingTo string        `json:"landing_to"`
}

type SignOut struct {
	RedirectTo string `json:"redirect_to"`
}

type Landing struct {
	RedirectTo string `json:"redirect_to"`
}

type Avatar struct {
	AvatarURL string `json:"avatar_url"`
}

type PurgeSessions struct {
	Purged int `json:"purged"`
}
