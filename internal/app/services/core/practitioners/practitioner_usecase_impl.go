package practitioners

import (
	"context"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/dto/requests"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type practitionerUsecase struct {
	PractitionerRepository contracts.PractitionerRepository
	ProfileRepository      contracts.ProfileRepository
	AuditLogger            contracts.AuditLogger
	Log                    *zap.Logger
}

func NewPractitionerUsecase(
	practitionerRepository contracts.PractitionerRepository,
	profileRepository contracts.ProfileRepository,
	auditLogger contracts.AuditLogger,
	logger *zap.Logger,
) contracts.PractitionerUsecase {
	return &practitionerUsecase{
		PractitionerRepository: practitionerRepository,
		ProfileRepository:      profileRepository,
		AuditLogger:            auditLogger,
		Log:                    logger,
	}
}

// List merges each practitioner with the name and avatar of its profile.
func (uc *practitionerUsecase) List(ctx context.Context) ([]models.PractitionerWithProfile, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("practitionerUsecase.List called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	records, err := uc.PractitionerRepository.FindAll(ctx)
	if err != nil {
		uc.Log.Error("practitionerUsecase.List error fetching practitioners",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	userIDs := make([]string, 0, len(records))
	for _, record := range records {
		if record.UserID != "" {
			userIDs = append(userIDs, record.UserID)
		}
	}
	profiles, err := uc.ProfileRepository.FindByIDs(ctx, userIDs)
	if err != nil {
		uc.Log.Error("practitionerUsecase.List error fetching profiles",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	byID := make(map[string]*models.ProfileRecord, len(profiles))
	for i := range profiles {
		byID[profiles[i].ID] = &profiles[i]
	}

	result := make([]models.PractitionerWithProfile, 0, len(records))
	for _, record := range records {
		result = append(result, models.NewPractitionerWithProfile(record, byID[record.UserID]))
	}

	uc.Log.Info("practitionerUsecase.List succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(result)),
	)
	return result, nil
}

// AvailableUsers lists non-admin profiles that are not practitioners yet.
func (uc *practitionerUsecase) AvailableUsers(ctx context.Context) ([]models.AvailableUser, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("practitionerUsecase.AvailableUsers called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	profiles, err := uc.ProfileRepository.FindNonAdmin(ctx)
	if err != nil {
		return nil, err
	}
	taken, err := uc.PractitionerRepository.FindUserIDs(ctx)
	if err != nil {
		return nil, err
	}

	takenSet := make(map[string]struct{}, len(taken))
	for _, id := range taken {
		takenSet[id] = struct{}{}
	}

	users := make([]models.AvailableUser, 0, len(profiles))
	for _, profile := range profiles {
		if _, ok := takenSet[profile.ID]; ok {
			continue
		}
		users = append(users, models.AvailableUser{ID: profile.ID, Name: profile.DisplayName()})
	}
	return users, nil
}

func (uc *practitionerUsecase) Create(ctx context.Context, request *requests.CreatePractitioner) (*models.PractitionerRecord, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("practitionerUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, request.UserID),
	)

	exists, err := uc.PractitionerRepository.ExistsForUser(ctx, request.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, exceptions.ErrPractitionerAlreadyExists(nil, request.UserID)
	}

	practitioner, err := uc.PractitionerRepository.Create(ctx, request)
	if err != nil {
		uc.Log.Error("practitionerUsecase.Create error creating practitioner",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.AuditLogger.Record(ctx, "practitioner.created", constvars.TablePractitioners, practitioner.ID, map[string]interface{}{"user_id": practitioner.UserID})
	return practitioner, nil
}

func (uc *practitionerUsecase) Update(ctx context.Context, id string, request *requests.UpdatePractitioner) (*models.PractitionerRecord, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("practitionerUsecase.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	practitioner, err := uc.PractitionerRepository.Update(ctx, id, request)
	if err != nil {
		uc.Log.Error("practitionerUsecase.Update error updating practitioner",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.AuditLogger.Record(ctx, "practitioner.updated", constvars.TablePractitioners, id, nil)
	return practitioner, nil
}

func (uc *practitionerUsecase) Delete(ctx context.Context, id string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("practitionerUsecase.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	if err := uc.PractitionerRepository.Delete(ctx, id); err != nil {
		uc.Log.Error("practitionerUsecase.Delete error deleting practitioner",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.AuditLogger.Record(ctx, "practitioner.deleted", constvars.TablePractitioners, id, nil)
	return nil
}
