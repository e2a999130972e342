package controllers

import (
	"context"
	"errors"
	"medisync-service/internal/app/config"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/utils"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type SettingsController struct {
	Log             *zap.Logger
	InternalConfig  *config.InternalConfig
	SettingsUsecase contracts.SettingsUsecase
}

func NewSettingsController(logger *zap.Logger, internalConfig *config.InternalConfig, settingsUsecase contracts.SettingsUsecase) *SettingsController {
	return &SettingsController{
		Log:             logger,
		InternalConfig:  internalConfig,
		SettingsUsecase: settingsUsecase,
	}
}

func (ctrl *SettingsController) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	settings, err := ctrl.SettingsUsecase.Get(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSettingsSuccessMessage, settings)
}

// Save upserts the posted key/value pairs and answers the merged settings.
func (ctrl *SettingsController) Save(w http.ResponseWriter, r *http.Request) {
	values := make(map[string]interface{})
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if len(values) == 0 {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(errors.New("no settings given")))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	settings, err := ctrl.SettingsUsecase.Save(ctx, values)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SaveSettingsSuccessMessage, settings)
}
