package models

import "time"

type HealthCenter struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	City      string     `json:"city"`
	Country   string     `json:"country"`
	Phone     *string    `json:"phone"`
	Email     *string    `json:"email"`
	CreatedBy *string    `json:"created_by,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// PractitionerCenterRecord is a row of practitioner_centers with its embedded parents.
type PractitionerCenterRecord struct {
	ID             string `json:"id"`
	PractitionerID string `json:"practitioner_id"`
	CenterID       string `json:"center_id"`
	Practitioner   *struct {
		Speciality string `json:"speciality"`
		UserID     string `json:"user_id"`
	} `json:"practitioner,omitempty"`
	Center *struct {
		Name string `json:"name"`
		City string `json:"city"`
	} `json:"center,omitempty"`
}

type PractitionerCenter struct {
	ID                     string  `json:"id"`
	PractitionerID         string  `json:"practitioner_id"`
	CenterID               string  `json:"center_id"`
	PractitionerSpeciality string  `json:"practitioner_speciality"`
	PractitionerUserID     string  `json:"practitioner_user_id"`
	CenterName             string  `json:"center_name"`
	CenterCity             string  `json:"center_city"`
	PractitionerFirstName  *string `json:"practitioner_first_name"`
	PractitionerLastName   *string `json:"practitioner_last_name"`
	PractitionerAvatarURL  *string `json:"practitioner_avatar_url"`
}
