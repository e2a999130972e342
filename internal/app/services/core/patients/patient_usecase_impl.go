package patients

import (
	"context"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/dto/requests"
	"medisync-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type patientUsecase struct {
	ProfileRepository contracts.ProfileRepository
	AuditLogger       contracts.AuditLogger
	Log               *zap.Logger
}

func NewPatientUsecase(
	profileRepository contracts.ProfileRepository,
	auditLogger contracts.AuditLogger,
	logger *zap.Logger,
) contracts.PatientUsecase {
	return &patientUsecase{
		ProfileRepository: profileRepository,
		AuditLogger:       auditLogger,
		Log:               logger,
	}
}

func (uc *patientUsecase) List(ctx context.Context) ([]models.ProfileRecord, error) {
	uc.Log.Info("patientUsecase.List called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
	)
	return uc.ProfileRepository.FindPatients(ctx)
}

func (uc *patientUsecase) Update(ctx context.Context, id string, request *requests.UpdatePatient) (*models.ProfileRecord, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("patientUsecase.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	profile, err := uc.ProfileRepository.Update(ctx, id, request)
	if err != nil {
		uc.Log.Error("patientUsecase.Update error updating profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.AuditLogger.Record(ctx, "patient.updated", constvars.TableProfiles, id, nil)
	return profile, nil
}

// Deactivate is a soft delete: the profile stays but no longer counts as a patient.
func (uc *patientUsecase) Deactivate(ctx context.Context, id string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("patientUsecase.Deactivate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	if err := uc.ProfileRepository.SetUserType(ctx, id, models.ProfileTypeInactive); err != nil {
		uc.Log.Error("patientUsecase.Deactivate error setting user type",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.AuditLogger.Record(ctx, "patient.deactivated", constvars.TableProfiles, id, map[string]interface{}{
		"user_type": models.ProfileTypeInactive,
	})
	return nil
}
