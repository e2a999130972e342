package models

import "time"

type PlatformSetting struct {
	ID           string      `json:"id,omitempty"`
	SettingKey   string      `json:"setting_key"`
	SettingValue interface{} `json:"setting_value"`
	UpdatedAt    *time.Time  `json:"updated_at,omitempty"`
}

type DashboardStats struct {
	TotalPatients        int                       `json:"total_patients"`
	TotalPractitioners   int                       `json:"total_practitioners"`
	TotalCenters         int                       `json:"total_centers"`
	TotalAppointments    int                       `json:"total_appointments"`
	AppointmentsByStatus map[AppointmentStatus]int `json:"appointments_by_status"`
}
