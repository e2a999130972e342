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

type PatientController struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	PatientUsecase contracts.PatientUsecase
}

func NewPatientController(logger *zap.Logger, internalConfig *config.InternalConfig, patientUsecase contracts.PatientUsecase) *PatientController {
	return &PatientController{
		Log:            logger,
		InternalConfig: internalConfig,
		PatientUsecase: patientUsecase,
	}
}

func (ctrl *PatientController) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	patients, err := ctrl.PatientUsecase.List(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPatientsSuccessMessage, patients)
}

func (ctrl *PatientController) Update(w http.ResponseWriter, r *http.Request) {
	patientID, err := urlParamID(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Bind body to request
	request := new(requests.UpdatePatient)
	if err := bindJSON(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	patient, err := ctrl.PatientUsecase.Update(ctx, patientID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdatePatientSuccessMessage, patient)
}

// Deactivate is the soft delete: the profile stays, its user type becomes inactive.
func (ctrl *PatientController) Deactivate(w http.ResponseWriter, r *http.Request) {
	patientID, err := urlParamID(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	if err := ctrl.PatientUsecase.Deactivate(ctx, patientID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeactivatePatientSuccessMessage, nil)
}
