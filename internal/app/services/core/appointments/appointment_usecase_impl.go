package appointments

import (
	"context"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	Notifier              contracts.Notifier
	EventPublisher        contracts.AppointmentEventPublisher
	AuditLogger           contracts.AuditLogger
	Log                   *zap.Logger
	now                   func() time.Time
}

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	notifier contracts.Notifier,
	eventPublisher contracts.AppointmentEventPublisher,
	auditLogger contracts.AuditLogger,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	return &appointmentUsecase{
		AppointmentRepository: appointmentRepository,
		Notifier:              notifier,
		EventPublisher:        eventPublisher,
		AuditLogger:           auditLogger,
		Log:                   logger,
		now:                   time.Now,
	}
}

func (uc *appointmentUsecase) List(ctx context.Context, filters models.AppointmentFilters) []models.Appointment {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.List called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingFiltersKey, filters),
	)

	appointments, err := uc.AppointmentRepository.FindAll(ctx, filters)
	if err != nil {
		uc.Log.Error("appointmentUsecase.List error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.Notifier.Error(ctx, constvars.NotifyAppointmentsFetchFailed)
		return []models.Appointment{}
	}

	uc.Log.Info("appointmentUsecase.List succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(appointments)),
	)
	return appointments
}

func (uc *appointmentUsecase) Count(ctx context.Context, filters models.AppointmentFilters) int {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.Count called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingFiltersKey, filters),
	)

	count, err := uc.AppointmentRepository.Count(ctx, filters)
	if err != nil {
		uc.Log.Error("appointmentUsecase.Count error counting appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.Notifier.Error(ctx, constvars.NotifyAppointmentsFetchFailed)
		return 0
	}
	return count
}

// UpdateStatus applies any known status regardless of the current one.
func (uc *appointmentUsecase) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) bool {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.UpdateStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, id),
		zap.String(constvars.LoggingAppointmentStatusKey, string(status)),
	)

	if !status.IsValid() {
		err := exceptions.ErrAppointmentUnknownStatus(nil, string(status))
		uc.Log.Error("appointmentUsecase.UpdateStatus rejected status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.Notifier.Error(ctx, constvars.NotifyStatusUpdateFailed)
		return false
	}

	if err := uc.AppointmentRepository.UpdateStatus(ctx, id, status); err != nil {
		uc.Log.Error("appointmentUsecase.UpdateStatus error updating appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.Notifier.Error(ctx, constvars.NotifyStatusUpdateFailed)
		return false
	}

	uc.afterMutation(ctx, constvars.AppointmentEventStatusChange, id, status)
	uc.Notifier.Success(ctx, constvars.NotifyStatusUpdated)
	uc.Log.Info("appointmentUsecase.UpdateStatus succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, id),
	)
	return true
}

func (uc *appointmentUsecase) Delete(ctx context.Context, id string) bool {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, id),
	)

	if err := uc.AppointmentRepository.Delete(ctx, id); err != nil {
		uc.Log.Error("appointmentUsecase.Delete error deleting appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.Notifier.Error(ctx, constvars.NotifyAppointmentDeleteFailed)
		return false
	}

	uc.afterMutation(ctx, constvars.AppointmentEventDeleted, id, "")
	uc.Notifier.Success(ctx, constvars.NotifyAppointmentDeleted)
	uc.Log.Info("appointmentUsecase.Delete succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, id),
	)
	return true
}

func (uc *appointmentUsecase) Create(ctx context.Context, appointment models.NewAppointment) *models.AppointmentRecord {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if !appointment.StartTime.Before(appointment.EndTime) {
		err := exceptions.ErrAppointmentInvalidTimeRange(nil)
		uc.Log.Error("appointmentUsecase.Create rejected time range",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.Notifier.Error(ctx, constvars.NotifyAppointmentCreateFailed)
		return nil
	}
	if appointment.Status == "" {
		appointment.Status = models.AppointmentStatusScheduled
	}
	if !appointment.Status.IsValid() {
		err := exceptions.ErrAppointmentUnknownStatus(nil, string(appointment.Status))
		uc.Log.Error("appointmentUsecase.Create rejected status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.Notifier.Error(ctx, constvars.NotifyAppointmentCreateFailed)
		return nil
	}
	if subjectID := utils.GetSubjectID(ctx); subjectID != "" && appointment.CreatedBy == nil {
		appointment.CreatedBy = &subjectID
	}

	record, err := uc.AppointmentRepository.Create(ctx, appointment)
	if err != nil {
		uc.Log.Error("appointmentUsecase.Create error creating appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.Notifier.Error(ctx, constvars.NotifyAppointmentCreateFailed)
		return nil
	}

	uc.afterMutation(ctx, constvars.AppointmentEventCreated, record.ID, record.Status)
	uc.Notifier.Success(ctx, constvars.NotifyAppointmentCreated)
	uc.Log.Info("appointmentUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, record.ID),
	)
	return record
}

func (uc *appointmentUsecase) StatusPresentation(status string) models.AppointmentStatusPresentation {
	return Presentation(status)
}

func (uc *appointmentUsecase) StatusCatalog() []models.AppointmentStatusPresentation {
	return Catalog()
}

// afterMutation publishes the appointment event and records the audit entry.
// Neither can fail the mutation that already happened.
func (uc *appointmentUsecase) afterMutation(ctx context.Context, eventType, appointmentID string, status models.AppointmentStatus) {
	requestID := utils.GetRequestID(ctx)
	event := models.AppointmentEvent{
		ID:            utils.NewULID(),
		Type:          eventType,
		AppointmentID: appointmentID,
		Status:        status,
		ActorID:       utils.GetSubjectID(ctx),
		OccurredAt:    uc.now().UTC(),
	}

	if err := uc.EventPublisher.Publish(ctx, event); err != nil {
		uc.Log.Error("appointmentUsecase.afterMutation error publishing event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
	}

	metadata := map[string]interface{}{"event_id": event.ID}
	if status != "" {
		metadata["status"] = string(status)
	}
	uc.AuditLogger.Record(ctx, eventType, constvars.TableAppointments, appointmentID, metadata)
}
