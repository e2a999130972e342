package controllers

import (
	"context"
	"medisync-service/internal/app/config"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type DashboardController struct {
	Log              *zap.Logger
	InternalConfig   *config.InternalConfig
	DashboardUsecase contracts.DashboardUsecase
}

func NewDashboardController(logger *zap.Logger, internalConfig *config.InternalConfig, dashboardUsecase contracts.DashboardUsecase) *DashboardController {
	return &DashboardController{
		Log:              logger,
		InternalConfig:   internalConfig,
		DashboardUsecase: dashboardUsecase,
	}
}

func (ctrl *DashboardController) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	stats, err := ctrl.DashboardUsecase.Stats(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDashboardStatsSuccessMessage, stats)
}
