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

type NotificationController struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	Notifier       contracts.Notifier
}

func NewNotificationController(logger *zap.Logger, internalConfig *config.InternalConfig, notifier contracts.Notifier) *NotificationController {
	return &NotificationController{
		Log:            logger,
		InternalConfig: internalConfig,
		Notifier:       notifier,
	}
}

// Drain returns and removes the pending notifications of the caller's session.
func (ctrl *NotificationController) Drain(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	notifications, err := ctrl.Notifier.Drain(ctx, utils.GetAppSessionID(ctx))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetNotificationsSuccessMessage, notifications)
}
