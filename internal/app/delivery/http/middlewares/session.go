package middlewares

import (
	"context"
	"medisync-service/internal/app/services/core/session"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/utils"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Authenticate requires a valid app session token and attaches the session's
// identity resolver to the request.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		sessionID, err := utils.ParseSessionJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.attachSession(r.Context(), sessionID)))
	})
}

// OptionalAuthenticate behaves like Authenticate but opens a fresh app session
// when the request carries no usable token. Sign-up and sign-in go through it.
func (m *Middlewares) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if token := bearerToken(r); token != "" {
			parsed, err := utils.ParseSessionJWT(token, m.InternalConfig.JWT.Secret)
			if err != nil {
				m.Log.Info("Middlewares.OptionalAuthenticate ignoring unusable token",
					zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
					zap.Error(err),
				)
			}
			sessionID = parsed
		}
		if sessionID == "" {
			sessionID = utils.NewULID()
		}

		next.ServeHTTP(w, r.WithContext(m.attachSession(r.Context(), sessionID)))
	})
}

// IdentifySession attaches the session when the token is usable and otherwise
// lets the request through as anonymous.
func (m *Middlewares) IdentifySession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		sessionID, err := utils.ParseSessionJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.attachSession(r.Context(), sessionID)))
	})
}

func (m *Middlewares) attachSession(ctx context.Context, sessionID string) context.Context {
	ctx = utils.WithAppSessionID(ctx, sessionID)

	acquireCtx, cancel := context.WithTimeout(ctx, m.settleTimeout())
	resolver := m.Registry.Acquire(acquireCtx, sessionID)
	cancel()
	ctx = session.WithResolver(ctx, resolver)

	snapshot := resolver.Snapshot()
	if !snapshot.HasSession() {
		return ctx
	}

	current, err := resolver.Session(ctx)
	if err != nil || current == nil {
		m.Log.Warn("Middlewares.attachSession using last known platform session",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingAppSessionIDKey, sessionID),
			zap.Error(err),
		)
		current = snapshot.Session
	}

	ctx = utils.WithPlatformAccessToken(ctx, current.AccessToken)
	return utils.WithSubjectID(ctx, current.SubjectID())
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get(constvars.HeaderAuthorization)
	if !strings.HasPrefix(header, constvars.HeaderBearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, constvars.HeaderBearerPrefix))
}
