package models

import "time"

type PlatformUser struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	CreatedAt    *time.Time             `json:"created_at,omitempty"`
}

// PlatformSession is the token pair the platform auth service issues on sign-in and refresh.
type PlatformSession struct {
	AccessToken  string       `json:"access_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	ExpiresAt    int64        `json:"expires_at"`
	RefreshToken string       `json:"refresh_token"`
	User         PlatformUser `json:"user"`
}

func (s *PlatformSession) SubjectID() string {
	if s == nil {
		return ""
	}
	return s.User.ID
}

func (s *PlatformSession) ExpiresWithin(now time.Time, margin time.Duration) bool {
	if s.ExpiresAt == 0 {
		return false
	}
	return !now.Add(margin).Before(time.Unix(s.ExpiresAt, 0))
}

// MetadataString returns a non-empty string metadata value.
func (u PlatformUser) MetadataString(key string) (string, bool) {
	raw, ok := u.UserMetadata[key]
	if !ok {
		return "", false
	}
	value, ok := raw.(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

type AuthEvent string

const (
	AuthEventSignedIn       AuthEvent = "SIGNED_IN"
	AuthEventTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
	AuthEventSignedOut      AuthEvent = "SIGNED_OUT"
)
