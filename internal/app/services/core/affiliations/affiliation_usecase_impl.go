package affiliations

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

type affiliationUsecase struct {
	AffiliationRepository contracts.AffiliationRepository
	ProfileRepository     contracts.ProfileRepository
	AuditLogger           contracts.AuditLogger
	Log                   *zap.Logger
}

func NewAffiliationUsecase(
	affiliationRepository contracts.AffiliationRepository,
	profileRepository contracts.ProfileRepository,
	auditLogger contracts.AuditLogger,
	logger *zap.Logger,
) contracts.AffiliationUsecase {
	return &affiliationUsecase{
		AffiliationRepository: affiliationRepository,
		ProfileRepository:     profileRepository,
		AuditLogger:           auditLogger,
		Log:                   logger,
	}
}

func (uc *affiliationUsecase) List(ctx context.Context) ([]models.PractitionerCenter, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("affiliationUsecase.List called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	records, err := uc.AffiliationRepository.FindAll(ctx)
	if err != nil {
		uc.Log.Error("affiliationUsecase.List error fetching affiliations",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	userIDs := make([]string, 0, len(records))
	for _, record := range records {
		if record.Practitioner != nil && record.Practitioner.UserID != "" {
			userIDs = append(userIDs, record.Practitioner.UserID)
		}
	}
	profiles, err := uc.ProfileRepository.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.ProfileRecord, len(profiles))
	for _, profile := range profiles {
		byID[profile.ID] = profile
	}

	result := make([]models.PractitionerCenter, 0, len(records))
	for _, record := range records {
		item := models.PractitionerCenter{
			ID:             record.ID,
			PractitionerID: record.PractitionerID,
			CenterID:       record.CenterID,
		}
		if record.Practitioner != nil {
			item.PractitionerSpeciality = record.Practitioner.Speciality
			item.PractitionerUserID = record.Practitioner.UserID
			if profile, ok := byID[record.Practitioner.UserID]; ok {
				item.PractitionerFirstName = profile.FirstName
				item.PractitionerLastName = profile.LastName
				item.PractitionerAvatarURL = profile.AvatarURL
			}
		}
		if record.Center != nil {
			item.CenterName = record.Center.Name
			item.CenterCity = record.Center.City
		}
		result = append(result, item)
	}
	return result, nil
}

func (uc *affiliationUsecase) Create(ctx context.Context, request *requests.CreateAffiliation) (*models.PractitionerCenterRecord, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("affiliationUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	exists, err := uc.AffiliationRepository.Exists(ctx, request.PractitionerID, request.CenterID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, exceptions.ErrAffiliationAlreadyExists(nil, request.PractitionerID, request.CenterID)
	}

	record, err := uc.AffiliationRepository.Create(ctx, request)
	if err != nil {
		uc.Log.Error("affiliationUsecase.Create error creating affiliation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.AuditLogger.Record(ctx, "affiliation.created", constvars.TablePractitionerCenters, record.ID, map[string]interface{}{
		"practitioner_id": request.PractitionerID,
		"center_id":       request.CenterID,
	})
	return record, nil
}

func (uc *affiliationUsecase) Delete(ctx context.Context, id string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("affiliationUsecase.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	if err := uc.AffiliationRepository.Delete(ctx, id); err != nil {
		return err
	}
	uc.AuditLogger.Record(ctx, "affiliation.deleted", constvars.TablePractitionerCenters, id, nil)
	return nil
}
