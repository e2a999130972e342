package contracts

import (
	"context"
	"medisync-service/internal/app/models"
)

type AppointmentRepository interface {
	FindAll(ctx context.Context, filters models.AppointmentFilters) ([]models.Appointment, error)
	Count(ctx context.Context, filters models.AppointmentFilters) (int, error)
	UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) error
	Delete(ctx context.Context, id string) error
	Create(ctx context.Context, appointment models.NewAppointment) (*models.AppointmentRecord, error)
}

// AppointmentUsecase never returns errors to its callers: failures are
// logged, surfaced as notifications and replaced by a safe default.
type AppointmentUsecase interface {
	List(ctx context.Context, filters models.AppointmentFilters) []models.Appointment
	Count(ctx context.Context, filters models.AppointmentFilters) int
	UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) bool
	Delete(ctx context.Context, id string) bool
	Create(ctx context.Context, appointment models.NewAppointment) *models.AppointmentRecord
	StatusPresentation(status string) models.AppointmentStatusPresentation
	StatusCatalog() []models.AppointmentStatusPresentation
}
