package appointments

import (
	"context"
	"errors"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/app/services/platform/rest"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

const dateOnlyLayout = "2006-01-02"

type AppointmentPlatformRepository struct {
	Client *rest.Client
	Log    *zap.Logger
	now    func() time.Time
}

func NewAppointmentPlatformRepository(client *rest.Client, logger *zap.Logger) contracts.AppointmentRepository {
	return &AppointmentPlatformRepository{
		Client: client,
		Log:    logger,
		now:    time.Now,
	}
}

// applyFilters adds the filter set to q. Both start_time bounds are
// inclusive; a date-only upper bound covers that whole day.
func applyFilters(q *rest.Query, filters models.AppointmentFilters) *rest.Query {
	if filters.Status != "" && filters.Status != models.AppointmentStatusAll {
		q.Eq("status", filters.Status)
	}
	if filters.DateFrom != "" {
		q.Gte("start_time", filters.DateFrom)
	}
	if filters.DateTo != "" {
		if day, err := time.Parse(dateOnlyLayout, filters.DateTo); err == nil {
			q.Lt("start_time", day.AddDate(0, 0, 1).Format(dateOnlyLayout))
		} else {
			q.Lte("start_time", filters.DateTo)
		}
	}
	if filters.CenterID != "" {
		q.Eq("center_id", filters.CenterID)
	}
	if filters.PractitionerID != "" {
		q.Eq("practitioner_id", filters.PractitionerID)
	}
	if filters.PatientName != "" {
		q.Or(
			rest.ILikeCondition("patient_first_name", filters.PatientName),
			rest.ILikeCondition("patient_last_name", filters.PatientName),
		)
	}
	return q
}

func (repo *AppointmentPlatformRepository) FindAll(ctx context.Context, filters models.AppointmentFilters) ([]models.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	repo.Log.Info("AppointmentPlatformRepository.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingFiltersKey, filters),
	)

	q := applyFilters(rest.From(constvars.ViewAppointments).Select("*"), filters).Order("start_time", false)

	appointments := make([]models.Appointment, 0)
	if err := repo.Client.Select(ctx, q, &appointments); err != nil {
		repo.Log.Error("AppointmentPlatformRepository.FindAll error selecting appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	repo.Log.Info("AppointmentPlatformRepository.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(appointments)),
	)
	return appointments, nil
}

func (repo *AppointmentPlatformRepository) Count(ctx context.Context, filters models.AppointmentFilters) (int, error) {
	requestID := utils.GetRequestID(ctx)
	repo.Log.Info("AppointmentPlatformRepository.Count called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingFiltersKey, filters),
	)

	count, err := repo.Client.Count(ctx, applyFilters(rest.From(constvars.ViewAppointments), filters))
	if err != nil {
		repo.Log.Error("AppointmentPlatformRepository.Count error counting appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return 0, err
	}
	return count, nil
}

func (repo *AppointmentPlatformRepository) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	requestID := utils.GetRequestID(ctx)
	repo.Log.Info("AppointmentPlatformRepository.UpdateStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, id),
		zap.String(constvars.LoggingAppointmentStatusKey, string(status)),
	)

	payload := map[string]interface{}{
		"status":     status,
		"updated_at": repo.now().UTC(),
	}
	if subjectID := utils.GetSubjectID(ctx); subjectID != "" {
		payload["updated_by"] = subjectID
	}

	rows, err := repo.Client.Update(ctx, rest.From(constvars.TableAppointments).Eq("id", id), payload, nil)
	if err != nil {
		repo.Log.Error("AppointmentPlatformRepository.UpdateStatus error updating appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	if rows == 0 {
		return exceptions.ErrResourceNotFound(errors.New("no row updated"), constvars.ResourceAppointments, id)
	}
	return nil
}

func (repo *AppointmentPlatformRepository) Delete(ctx context.Context, id string) error {
	requestID := utils.GetRequestID(ctx)
	repo.Log.Info("AppointmentPlatformRepository.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, id),
	)

	rows, err := repo.Client.Delete(ctx, rest.From(constvars.TableAppointments).Eq("id", id))
	if err != nil {
		repo.Log.Error("AppointmentPlatformRepository.Delete error deleting appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	if rows == 0 {
		return exceptions.ErrResourceNotFound(errors.New("no row deleted"), constvars.ResourceAppointments, id)
	}
	return nil
}

func (repo *AppointmentPlatformRepository) Create(ctx context.Context, appointment models.NewAppointment) (*models.AppointmentRecord, error) {
	requestID := utils.GetRequestID(ctx)
	repo.Log.Info("AppointmentPlatformRepository.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var record models.AppointmentRecord
	if err := repo.Client.Insert(ctx, constvars.TableAppointments, appointment, &record); err != nil {
		repo.Log.Error("AppointmentPlatformRepository.Create error inserting appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if record.ID == "" {
		return nil, exceptions.ErrPlatformNoRows(nil, constvars.TableAppointments)
	}
	return &record, nil
}
