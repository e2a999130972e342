package middlewares

import (
	"medisync-service/internal/app/config"
	"medisync-service/internal/app/services/core/guard"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/dto/responses"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestSignInLimiterBlocksAfterBudget(t *testing.T) {
	limiter := NewSignInLimiter(config.AppSignIn{MaxAttempts: 2, AttemptWindowSeconds: 60, BlockTimeInMinutes: 5}, zap.NewNop())
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	handler := limiter.Limit(okHandler)

	send := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin", nil)
		req.RemoteAddr = remote
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1001").Code)

	blocked := send("10.0.0.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "300", blocked.Header().Get(constvars.HeaderRetryAfter))

	assert.Equal(t, http.StatusOK, send("10.0.0.2:1000").Code, "other clients keep their own attempts")

	now = now.Add(4 * time.Minute)
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1003").Code)

	now = now.Add(2 * time.Minute)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1004").Code, "block lifts after block time")
}

func TestRequireViewWithoutResolver(t *testing.T) {
	m := &Middlewares{Log: zap.NewNop(), InternalConfig: &config.InternalConfig{}}

	t.Run("public view renders", func(t *testing.T) {
		rr := httptest.NewRecorder()
		m.RequireView(guard.RequireNone)(okHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/navigation", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("admin view redirects to login", func(t *testing.T) {
		rr := httptest.NewRecorder()
		m.RequireView(guard.RequireAdmin)(okHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/practitioners?x=1", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, guard.LoginPath, rr.Header().Get(constvars.HeaderLocation))

		var body struct {
			Success bool               `json:"success"`
			Data    responses.Redirect `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, string(guard.RedirectLogin), body.Data.Decision)
		assert.Equal(t, "/api/v1/practitioners?x=1", body.Data.From)
	})
}

func TestWriteDecision(t *testing.T) {
	cases := []struct {
		name     string
		decision guard.Decision
		status   int
		location string
	}{
		{name: "loading", decision: guard.Decision{Outcome: guard.RenderLoading}, status: http.StatusAccepted},
		{name: "login", decision: guard.Decision{Outcome: guard.RedirectLogin, Location: guard.LoginPath, From: "/app/x"}, status: http.StatusUnauthorized, location: guard.LoginPath},
		{name: "default", decision: guard.Decision{Outcome: guard.RedirectDefault, Location: guard.DefaultPath}, status: http.StatusForbidden, location: guard.DefaultPath},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteDecision(rr, tc.decision)
			assert.Equal(t, tc.status, rr.Code)
			assert.Equal(t, tc.location, rr.Header().Get(constvars.HeaderLocation))
		})
	}
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	m := &Middlewares{Log: zap.NewNop(), InternalConfig: &config.InternalConfig{JWT: config.AppJWT{Secret: "secret"}}}

	rr := httptest.NewRecorder()
	m.Authenticate(okHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil)
	req.Header.Set(constvars.HeaderAuthorization, "Bearer not-a-jwt")
	rr = httptest.NewRecorder()
	m.Authenticate(okHandler).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	m := &Middlewares{Log: zap.NewNop()}

	rr := httptest.NewRecorder()
	m.RequestIDMiddleware(okHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rr.Header().Get(constvars.HeaderXRequestID), constvars.REQUEST_ID_PREFIX)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constvars.HeaderXRequestID, "client-id")
	rr = httptest.NewRecorder()
	m.RequestIDMiddleware(okHandler).ServeHTTP(rr, req)
	assert.Equal(t, "client-id", rr.Header().Get(constvars.HeaderXRequestID))
}
