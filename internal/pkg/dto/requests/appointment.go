package requests

import "time"

type CreateAppointment struct {
	StartTime      time.Time `json:"start_time" validate:"required"`
	EndTime        time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	Reason         *string   `json:"reason" validate:"omitempty,max=500"`
	Notes          *string   `json:"notes" validate:"omitempty,max=2000"`
	Status         string    `json:"status" validate:"omitempty,appointment_status"`
	PatientID      string    `json:"patient_id" validate:"required,uuid"`
	PractitionerID string    `json:"practitioner_id" validate:"required,uuid"`
	CenterID       string    `json:"center_id" validate:"required,uuid"`
}

type UpdateAppointmentStatus struct {
	Status string `json:"status" validate:"required,appointment_status"`
}
