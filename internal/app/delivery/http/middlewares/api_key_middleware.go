package middlewares

import (
	"context"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

// RequireOperatorAPIKey guards operator endpoints. The configured value is a
// bcrypt hash of the key.
func (m *Middlewares) RequireOperatorAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get(constvars.HeaderXAPIKey)
		if apiKey == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrAPIKeyMissing(nil))
			return
		}

		if !utils.CheckSecretHash(apiKey, m.InternalConfig.App.OperatorAPIKeyHash) {
			m.Log.Warn("Middlewares.RequireOperatorAPIKey rejected key",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrAPIKeyInvalid(nil))
			return
		}

		m.Log.Info("Middlewares.RequireOperatorAPIKey accepted key",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
			zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingMethodKey, r.Method),
		)

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_API_KEY_AUTHENTICATED_FLAG, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
