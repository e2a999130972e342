package models

import "time"

type AppointmentStatus string

const (
	AppointmentStatusScheduled               AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed               AppointmentStatus = "confirmed"
	AppointmentStatusArrived                 AppointmentStatus = "arrived"
	AppointmentStatusInProgress              AppointmentStatus = "in_progress"
	AppointmentStatusCompleted               AppointmentStatus = "completed"
	AppointmentStatusCancelledByPatient      AppointmentStatus = "cancelled_by_patient"
	AppointmentStatusCancelledByPractitioner AppointmentStatus = "cancelled_by_practitioner"
	AppointmentStatusNoShow                  AppointmentStatus = "no_show"
)

// AppointmentStatusAll disables the status filter.
const AppointmentStatusAll = "all"

var AppointmentStatuses = []AppointmentStatus{
	AppointmentStatusScheduled,
	AppointmentStatusConfirmed,
	AppointmentStatusArrived,
	AppointmentStatusInProgress,
	AppointmentStatusCompleted,
	AppointmentStatusCancelledByPatient,
	AppointmentStatusCancelledByPractitioner,
	AppointmentStatusNoShow,
}

func (s AppointmentStatus) IsValid() bool {
	for _, status := range AppointmentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Appointment is a row of the denormalized appointments view.
type Appointment struct {
	ID                     string            `json:"id"`
	StartTime              time.Time         `json:"start_time"`
	EndTime                time.Time         `json:"end_time"`
	Reason                 *string           `json:"reason"`
	Notes                  *string           `json:"notes"`
	Status                 AppointmentStatus `json:"status"`
	CreatedAt              time.Time         `json:"created_at"`
	UpdatedAt              time.Time         `json:"updated_at"`
	PatientID              string            `json:"patient_id"`
	PatientFirstName       *string           `json:"patient_first_name"`
	PatientLastName        *string           `json:"patient_last_name"`
	PractitionerID         string            `json:"practitioner_id"`
	PractitionerSpeciality *string           `json:"practitioner_speciality"`
	PractitionerFirstName  *string           `json:"practitioner_first_name"`
	PractitionerLastName   *string           `json:"practitioner_last_name"`
	CenterID               string            `json:"center_id"`
	CenterName             *string           `json:"center_name"`
	CenterCity             *string           `json:"center_city"`
}

type AppointmentFilters struct {
	Status         string `json:"status,omitempty"`
	DateFrom       string `json:"date_from,omitempty"`
	DateTo         string `json:"date_to,omitempty"`
	CenterID       string `json:"center_id,omitempty"`
	PractitionerID string `json:"practitioner_id,omitempty"`
	PatientName    string `json:"patient_name,omitempty"`
}

// NewAppointment is the insert payload for the appointments table.
type NewAppointment struct {
	StartTime      time.Time         `json:"start_time"`
	EndTime        time.Time         `json:"end_time"`
	Reason         *string           `json:"reason,omitempty"`
	Notes          *string           `json:"notes,omitempty"`
	Status         AppointmentStatus `json:"status"`
	PatientID      string            `json:"patient_id"`
	PractitionerID string            `json:"practitioner_id"`
	CenterID       string            `json:"center_id"`
	CreatedBy      *string           `json:"created_by,omitempty"`
}

// AppointmentRecord is a row of the appointments table.
type AppointmentRecord struct {
	ID             string            `json:"id"`
	StartTime      time.Time         `json:"start_time"`
	EndTime        time.Time         `json:"end_time"`
	Reason         *string           `json:"reason"`
	Notes          *string           `json:"notes"`
	Status         AppointmentStatus `json:"status"`
	PatientID      string            `json:"patient_id"`
	PractitionerID string            `json:"practitioner_id"`
	CenterID       string            `json:"center_id"`
	CreatedBy      *string           `json:"created_by"`
	UpdatedBy      *string           `json:"updated_by"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type AppointmentStatusPresentation struct {
	Status AppointmentStatus `json:"status"`
	Label  string            `json:"label"`
	Color  string            `json:"color"`
}

// AppointmentEvent is published to the appointment events queue after a mutation.
type AppointmentEvent struct {
	ID            string            `json:"id"`
	Type          string            `json:"type"`
	AppointmentID string            `json:"appointment_id"`
	Status        AppointmentStatus `json:"status,omitempty"`
	ActorID       string            `json:"actor_id,omitempty"`
	OccurredAt    time.Time         `json:"occurred_at"`
}
