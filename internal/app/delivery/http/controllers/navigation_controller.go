package controllers

import (
	"medisync-service/internal/app/config"
	"medisync-service/internal/app/services/core/guard"
	"medisync-service/internal/app/services/core/identity"
	"medisync-service/internal/app/services/core/session"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/dto/responses"
	"medisync-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type NavigationController struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
}

func NewNavigationController(logger *zap.Logger, internalConfig *config.InternalConfig) *NavigationController {
	return &NavigationController{
		Log:            logger,
		InternalConfig: internalConfig,
	}
}

// Decide answers the guard decision for ?path= against the current snapshot.
// A resolver that is still loading yields render_loading instead of blocking.
func (ctrl *NavigationController) Decide(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get(constvars.QueryParamPath)
	if location == "" {
		location = guard.DefaultPath
	}

	snapshot := identity.Snapshot{State: identity.StateAnonymous}
	if resolver, err := session.ResolverFrom(r.Context()); err == nil {
		snapshot = resolver.Snapshot()
	}

	decision := guard.DecideFor(snapshot, location)
	ctrl.Log.Info("NavigationController.Decide succeeded",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
		zap.String(constvars.LoggingLocationKey, location),
		zap.String(constvars.LoggingDecisionKey, string(decision.Outcome)),
	)

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetNavigationDecisionMessage, responses.Redirect{
		Decision:   string(decision.Outcome),
		RedirectTo: decision.Location,
		From:       decision.From,
	})
}
