package models

import "time"

// ProfileRecord is a row of the platform's profiles table.
type ProfileRecord struct {
	ID          string     `json:"id"`
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	AvatarURL   *string    `json:"avatar_url"`
	UserType    string     `json:"user_type"`
	Gender      *string    `json:"gender"`
	DateOfBirth *string    `json:"date_of_birth"`
	Address     *string    `json:"address"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// UserProfile is the resolved view of the signed-in user.
type UserProfile struct {
	ID        string    `json:"id"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	AvatarURL *string   `json:"avatar_url"`
	UserType  Role      `json:"user_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r ProfileRecord) DisplayName() string {
	name := ""
	if r.FirstName != nil {
		name = *r.FirstName
	}
	if r.LastName != nil {
		if name != "" {
			name += " "
		}
		name += *r.LastName
	}
	if name == "" {
		return r.ID
	}
	return name
}
