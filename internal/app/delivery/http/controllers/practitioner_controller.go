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

type PractitionerController struct {
	Log                 *zap.Logger
	InternalConfig      *config.InternalConfig
	PractitionerUsecase contracts.PractitionerUsecase
}

func NewPractitionerController(logger *zap.Logger, internalConfig *config.InternalConfig, practitionerUsecase contracts.PractitionerUsecase) *PractitionerController {
	return &PractitionerController{
		Log:                 logger,
		InternalConfig:      internalConfig,
		PractitionerUsecase: practitionerUsecase,
	}
}

func (ctrl *PractitionerController) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	practitioners, err := ctrl.PractitionerUsecase.List(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPractitionersSuccessMessage, practitioners)
}

// AvailableUsers lists non-admin users that can still be promoted to practitioner.
func (ctrl *PractitionerController) AvailableUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	users, err := ctrl.PractitionerUsecase.AvailableUsers(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAvailableUsersSuccessMessage, users)
}

func (ctrl *PractitionerController) Create(w http.ResponseWriter, r *http.Request) {
	// Bind body to request
	request := new(requests.CreatePractitioner)
	if err := bindJSON(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	practitioner, err := ctrl.PractitionerUsecase.Create(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreatePractitionerSuccessMessage, practitioner)
}

func (ctrl *PractitionerController) Update(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := urlParamID(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Bind body to request
	request := new(requests.UpdatePractitioner)
	if err := bindJSON(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	practitioner, err := ctrl.PractitionerUsecase.Update(ctx, practitionerID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdatePractitionerSuccessMessage, practitioner)
}

func (ctrl *PractitionerController) Delete(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := urlParamID(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	if err := ctrl.PractitionerUsecase.Delete(ctx, practitionerID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeletePractitionerSuccessMessage, nil)
}
