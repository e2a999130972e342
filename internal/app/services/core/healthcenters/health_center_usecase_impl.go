package healthcenters

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

type healthCenterUsecase struct {
	HealthCenterRepository contracts.HealthCenterRepository
	AffiliationRepository  contracts.AffiliationRepository
	AuditLogger            contracts.AuditLogger
	Log                    *zap.Logger
}

func NewHealthCenterUsecase(
	healthCenterRepository contracts.HealthCenterRepository,
	affiliationRepository contracts.AffiliationRepository,
	auditLogger contracts.AuditLogger,
	logger *zap.Logger,
) contracts.HealthCenterUsecase {
	return &healthCenterUsecase{
		HealthCenterRepository: healthCenterRepository,
		AffiliationRepository:  affiliationRepository,
		AuditLogger:            auditLogger,
		Log:                    logger,
	}
}

func (uc *healthCenterUsecase) List(ctx context.Context) ([]models.HealthCenter, error) {
	uc.Log.Info("healthCenterUsecase.List called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
	)
	return uc.HealthCenterRepository.FindAll(ctx)
}

func (uc *healthCenterUsecase) Create(ctx context.Context, request *requests.HealthCenter) (*models.HealthCenter, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("healthCenterUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	center, err := uc.HealthCenterRepository.Create(ctx, request, utils.GetSubjectID(ctx))
	if err != nil {
		uc.Log.Error("healthCenterUsecase.Create error creating health center",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.AuditLogger.Record(ctx, "health_center.created", constvars.TableHealthCenters, center.ID, map[string]interface{}{"name": center.Name})
	return center, nil
}

func (uc *healthCenterUsecase) Update(ctx context.Context, id string, request *requests.HealthCenter) (*models.HealthCenter, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("healthCenterUsecase.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	center, err := uc.HealthCenterRepository.Update(ctx, id, request)
	if err != nil {
		uc.Log.Error("healthCenterUsecase.Update error updating health center",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.AuditLogger.Record(ctx, "health_center.updated", constvars.TableHealthCenters, id, nil)
	return center, nil
}

// Delete refuses to remove a center that still has affiliated practitioners.
func (uc *healthCenterUsecase) Delete(ctx context.Context, id string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("healthCenterUsecase.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	affiliations, err := uc.AffiliationRepository.CountByCenter(ctx, id)
	if err != nil {
		return err
	}
	if affiliations > 0 {
		uc.Log.Info("healthCenterUsecase.Delete refused, center has affiliations",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingCountKey, affiliations),
		)
		return exceptions.ErrHealthCenterHasPractitioners(nil, id, affiliations)
	}

	if err := uc.HealthCenterRepository.Delete(ctx, id); err != nil {
		uc.Log.Error("healthCenterUsecase.Delete error deleting health center",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.AuditLogger.Record(ctx, "health_center.deleted", constvars.TableHealthCenters, id, nil)
	return nil
}
