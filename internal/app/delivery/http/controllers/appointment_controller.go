package controllers

import (
	"context"
	"errors"
	"medisync-service/internal/app/config"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/dto/requests"
	"medisync-service/internal/pkg/dto/responses"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type AppointmentController struct {
	Log                *zap.Logger
	InternalConfig     *config.InternalConfig
	AppointmentUsecase contracts.AppointmentUsecase
}

func NewAppointmentController(logger *zap.Logger, internalConfig *config.InternalConfig, appointmentUsecase contracts.AppointmentUsecase) *AppointmentController {
	return &AppointmentController{
		Log:                logger,
		InternalConfig:     internalConfig,
		AppointmentUsecase: appointmentUsecase,
	}
}

// List never fails: a platform error has already been notified and yields an empty list.
func (ctrl *AppointmentController) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	appointments := ctrl.AppointmentUsecase.List(ctx, filtersFromQuery(r))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentsSuccessMessage, appointments)
}

func (ctrl *AppointmentController) Count(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	count := ctrl.AppointmentUsecase.Count(ctx, filtersFromQuery(r))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CountAppointmentsSuccessMessage, responses.Count{Count: count})
}

func (ctrl *AppointmentController) Statuses(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentStatusesMessage, ctrl.AppointmentUsecase.StatusCatalog())
}

func (ctrl *AppointmentController) Create(w http.ResponseWriter, r *http.Request) {
	// Bind body to request
	request := new(requests.CreateAppointment)
	if err := bindJSON(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	record := ctrl.AppointmentUsecase.Create(ctx, models.NewAppointment{
		StartTime:      request.StartTime,
		EndTime:        request.EndTime,
		Reason:         request.Reason,
		Notes:          request.Notes,
		Status:         models.AppointmentStatus(request.Status),
		PatientID:      request.PatientID,
		PractitionerID: request.PractitionerID,
		CenterID:       request.CenterID,
	})
	if record == nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrAppointmentOperationFailed(errors.New("create returned no record"), "create", request.PatientID))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateAppointmentSuccessMessage, record)
}

func (ctrl *AppointmentController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := urlParamID(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Bind body to request
	request := new(requests.UpdateAppointmentStatus)
	if err := bindJSON(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	status := models.AppointmentStatus(request.Status)
	if !ctrl.AppointmentUsecase.UpdateStatus(ctx, appointmentID, status) {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrAppointmentOperationFailed(errors.New("status update was not applied"), "update_status", appointmentID))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateAppointmentStatusMessage, ctrl.AppointmentUsecase.StatusPresentation(string(status)))
}

func (ctrl *AppointmentController) Delete(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := urlParamID(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	if !ctrl.AppointmentUsecase.Delete(ctx, appointmentID) {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrAppointmentOperationFailed(errors.New("delete was not applied"), "delete", appointmentID))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteAppointmentSuccessMessage, nil)
}

func filtersFromQuery(r *http.Request) models.AppointmentFilters {
	query := r.URL.Query()
	return models.AppointmentFilters{
		Status:         query.Get(constvars.QueryParamStatus),
		DateFrom:       query.Get(constvars.QueryParamDateFrom),
		DateTo:         query.Get(constvars.QueryParamDateTo),
		CenterID:       query.Get(constvars.QueryParamCenterID),
		PractitionerID: query.Get(constvars.QueryParamPractitionerID),
		PatientName:    query.Get(constvars.QueryParamPatientName),
	}
}
