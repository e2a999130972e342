package controllers

import (
	"context"
	"fmt"
	"medisync-service/internal/app/config"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/dto/responses"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type ProfileController struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	ProfileUsecase contracts.ProfileUsecase
}

func NewProfileController(logger *zap.Logger, internalConfig *config.InternalConfig, profileUsecase contracts.ProfileUsecase) *ProfileController {
	return &ProfileController{
		Log:            logger,
		InternalConfig: internalConfig,
		ProfileUsecase: profileUsecase,
	}
}

// UploadAvatar stores the multipart "avatar" file for the signed-in subject.
func (ctrl *ProfileController) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	maxSizeInMB := ctrl.InternalConfig.Minio.AvatarMaxUploadSizeInMB
	if maxSizeInMB <= 0 {
		maxSizeInMB = constvars.DefaultAvatarMaxUploadSizeInMB
	}
	limit := maxSizeInMB << 20

	r.Body = http.MaxBytesReader(w, r.Body, limit+constvars.MultipartOverheadInBytes)
	if err := r.ParseMultipartForm(limit); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	file, fileHeader, err := r.FormFile(constvars.FormFieldAvatar)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer file.Close()

	if fileHeader.Size > limit {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrImageTooLarge(fmt.Errorf("avatar is %d bytes", fileHeader.Size), limit))
		return
	}
	if err := utils.ValidateImage(fileHeader, maxSizeInMB); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrImageValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	subjectID := utils.GetSubjectID(ctx)
	if subjectID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrNoPlatformSession(nil))
		return
	}

	avatarURL, err := ctrl.ProfileUsecase.UploadAvatar(ctx, subjectID, file, fileHeader.Size, utils.ImageContentType(fileHeader))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UploadAvatarSuccessMessage, responses.Avatar{AvatarURL: avatarURL})
}
