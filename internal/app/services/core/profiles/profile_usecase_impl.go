package profiles

import (
	"context"
	"io"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type profileUsecase struct {
	ProfileRepository contracts.ProfileRepository
	AvatarStorage     contracts.AvatarStorage
	AuditLogger       contracts.AuditLogger
	Log               *zap.Logger
}

func NewProfileUsecase(
	profileRepository contracts.ProfileRepository,
	avatarStorage contracts.AvatarStorage,
	auditLogger contracts.AuditLogger,
	logger *zap.Logger,
) contracts.ProfileUsecase {
	return &profileUsecase{
		ProfileRepository: profileRepository,
		AvatarStorage:     avatarStorage,
		AuditLogger:       auditLogger,
		Log:               logger,
	}
}

func (uc *profileUsecase) UploadAvatar(ctx context.Context, userID string, file io.Reader, size int64, contentType string) (string, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("profileUsecase.UploadAvatar called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, userID),
	)

	avatarURL, err := uc.AvatarStorage.UploadAvatar(ctx, userID, file, size, contentType)
	if err != nil {
		uc.Log.Error("profileUsecase.UploadAvatar error uploading to storage",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", err
	}

	if err := uc.ProfileRepository.SetAvatarURL(ctx, userID, avatarURL); err != nil {
		uc.Log.Error("profileUsecase.UploadAvatar error saving avatar url",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", err
	}

	uc.AuditLogger.Record(ctx, "profile.avatar_updated", constvars.TableProfiles, userID, map[string]interface{}{"avatar_url": avatarURL})
	uc.Log.Info("profileUsecase.UploadAvatar succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, userID),
	)
	return avatarURL, nil
}
