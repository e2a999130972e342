package controllers

import (
	"context"
	"medisync-service/internal/app/config"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/dto/requests"
	"medisync-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type HealthCenterController struct {
	Log                 *zap.Logger
	InternalConfig      *config.InternalConfig
	HealthCenterUsecase contracts.HealthCenterUsecase
}

func NewHealthCenterController(logger *zap.Logger, internalConfig *config.InternalConfig, healthCenterUsecase contracts.HealthCenterUsecase) *HealthCenterController {
	return &HealthCenterController{
		Log:                 logger,
		InternalConfig:      internalConfig,
		HealthCenterUsecase: healthCenterUsecase,
	}
}

func (ctrl *HealthCenterController) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	centers, err := ctrl.HealthCenterUsecase.List(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetHealthCentersSuccessMessage, centers)
}

func (ctrl *HealthCenterController) Create(w http.ResponseWriter, r *http.Request) {
	// Bind body to request
	request := new(requests.HealthCenter)
	if err := bindJSON(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	center, err := ctrl.HealthCenterUsecase.Create(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateHealthCenterSuccessMessage, center)
}

func (ctrl *HealthCenterController) Update(w http.ResponseWriter, r *http.Request) {
	centerID, err := urlParamID(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Bind body to request
	request := new(requests.HealthCenter)
	if err := bindJSON(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	center, err := ctrl.HealthCenterUsecase.Update(ctx, centerID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateHealthCenterSuccessMessage, center)
}

// Delete is refused with 409 while practitioners are still affiliated.
func (ctrl *HealthCenterController) Delete(w http.ResponseWriter, r *http.Request) {
	centerID, err := urlParamID(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	if err := ctrl.HealthCenterUsecase.Delete(ctx, centerID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteHealthCenterSuccessMessage, nil)
}
