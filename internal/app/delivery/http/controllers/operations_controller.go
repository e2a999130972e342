package controllers

import (
	"context"
	"medisync-service/internal/app/config"
	"medisync-service/internal/app/services/core/session"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/dto/responses"
	"medisync-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

// OperationsController serves operator-only maintenance endpoints.
type OperationsController struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	Registry       *session.Registry
}

func NewOperationsController(logger *zap.Logger, internalConfig *config.InternalConfig, registry *session.Registry) *OperationsController {
	return &OperationsController{
		Log:            logger,
		InternalConfig: internalConfig,
		Registry:       registry,
	}
}

// PurgeSessions disposes every live resolver and deletes every stored platform session.
func (ctrl *OperationsController) PurgeSessions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	purged, err := ctrl.Registry.PurgeAll(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	ctrl.Log.Info("OperationsController.PurgeSessions succeeded",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.Int(constvars.LoggingCountKey, purged),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PurgeSessionsSuccessMessage, responses.PurgeSessions{Purged: purged})
}
