package middlewares

import (
	"context"
	"medisync-service/internal/app/services/core/guard"
	"medisync-service/internal/app/services/core/identity"
	"medisync-service/internal/app/services/core/session"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/dto/responses"
	"medisync-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

// RequireView lets the request through only when the route guard renders it.
// Requests without a resolver are treated as anonymous.
func (m *Middlewares) RequireView(requirement guard.Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			snapshot := identity.Snapshot{State: identity.StateAnonymous}
			if resolver, err := session.ResolverFrom(ctx); err == nil {
				waitCtx, cancel := context.WithTimeout(ctx, m.settleTimeout())
				snapshot, _ = resolver.WaitSettled(waitCtx)
				cancel()
			}

			decision := guard.Decide(guard.InputFrom(snapshot), requirement, r.URL.RequestURI())
			if decision.Outcome == guard.Render {
				next.ServeHTTP(w, r)
				return
			}

			m.Log.Info("Middlewares.RequireView blocked request",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingDecisionKey, string(decision.Outcome)),
				zap.String(constvars.LoggingLocationKey, decision.Location),
			)
			WriteDecision(w, decision)
		})
	}
}

// WriteDecision answers a non-render guard decision.
func WriteDecision(w http.ResponseWriter, decision guard.Decision) {
	redirect := &responses.Redirect{
		Decision:   string(decision.Outcome),
		RedirectTo: decision.Location,
		From:       decision.From,
	}

	switch decision.Outcome {
	case guard.RenderLoading:
		w.Header().Set(constvars.HeaderRetryAfter, "1")
		utils.BuildRedirectResponse(w, constvars.StatusAccepted, constvars.ResolverLoadingMessage, redirect)
	case guard.RedirectLogin:
		utils.BuildRedirectResponse(w, constvars.StatusUnauthorized, constvars.RedirectLoginMessage, redirect)
	default:
		utils.BuildRedirectResponse(w, constvars.StatusForbidden, constvars.RedirectDefaultMessage, redirect)
	}
}
