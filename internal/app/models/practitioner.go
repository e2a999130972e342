package models

import "time"

// PractitionerRecord is a row of the practitioners table.
type PractitionerRecord struct {
	ID              string     `json:"id"`
	Speciality      string     `json:"speciality"`
	ExperienceYears int        `json:"experience_years"`
	Description     *string    `json:"description"`
	UserID          string     `json:"user_id"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

type PractitionerWithProfile struct {
	ID              string  `json:"id"`
	Speciality      string  `json:"speciality"`
	ExperienceYears int     `json:"experience_years"`
	Description     *string `json:"description"`
	UserID          string  `json:"user_id"`
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	AvatarURL       *string `json:"avatar_url"`
}

type AvailableUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewPractitionerWithProfile(record PractitionerRecord, profile *ProfileRecord) PractitionerWithProfile {
	result := PractitionerWithProfile{
		ID:              record.ID,
		Speciality:      record.Speciality,
		ExperienceYears: record.ExperienceYears,
		Description:     record.Description,
		UserID:          record.UserID,
	}
	if profile != nil {
		result.FirstName = profile.FirstName
		result.LastName = profile.LastName
		result.AvatarURL = profile.AvatarURL
	}
	return result
}
