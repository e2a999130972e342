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

type AffiliationController struct {
	Log                *zap.Logger
	InternalConfig     *config.InternalConfig
	AffiliationUsecase contracts.AffiliationUsecase
}

func NewAffiliationController(logger *zap.Logger, internalConfig *config.InternalConfig, affiliationUsecase contracts.AffiliationUsecase) *AffiliationController {
	return &AffiliationController{
		Log:                logger,
		InternalConfig:     internalConfig,
		AffiliationUsecase: affiliationUsecase,
	}
}

func (ctrl *AffiliationController) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	affiliations, err := ctrl.AffiliationUsecase.List(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAffiliationsSuccessMessage, affiliations)
}

func (ctrl *AffiliationController) Create(w http.ResponseWriter, r *http.Request) {
	// Bind body to request
	request := new(requests.CreateAffiliation)
	if err := bindJSON(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	affiliation, err := ctrl.AffiliationUsecase.Create(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateAffiliationSuccessMessage, affiliation)
}

func (ctrl *AffiliationController) Delete(w http.ResponseWriter, r *http.Request) {
	affiliationID, err := urlParamID(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	if err := ctrl.AffiliationUsecase.Delete(ctx, affiliationID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteAffiliationSuccessMessage, nil)
}
