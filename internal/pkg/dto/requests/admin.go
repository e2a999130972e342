package requests

type CreatePractitioner struct {
	Speciality      string  `json:"speciality" validate:"required,max=120"`
	ExperienceYears int     `json:"experience_years" validate:"gte=0,lte=80"`
	Description     *string `json:"description" validate:"omitempty,max=2000"`
	UserID          string  `json:"user_id" validate:"required,uuid"`
}

type UpdatePractitioner struct {
	Speciality      string  `json:"speciality" validate:"required,max=120"`
	ExperienceYears int     `json:"experience_years" validate:"gte=0,lte=80"`
	Description     *string `json:"description" validate:"omitempty,max=2000"`
}

type HealthCenter struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Address string  `json:"address" validate:"required,max=300"`
	City    string  `json:"city" validate:"required,max=120"`
	Country string  `json:"country" validate:"required,max=120"`
	Phone   *string `json:"phone" validate:"omitempty,max=40"`
	Email   *string `json:"email" validate:"omitempty,email"`
}

type CreateAffiliation struct {
	PractitionerID string `json:"practitioner_id" validate:"required,uuid"`
	CenterID       string `json:"center_id" validate:"required,uuid"`
}

type UpdatePatient struct {
	FirstName   *string `json:"first_name" validate:"omitempty,max=100"`
	LastName    *string `json:"last_name" validate:"omitempty,max=100"`
	Gender      *string `json:"gender" validate:"omitempty,max=40"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Address     *string `json:"address" validate:"omitempty,max=300"`
}
