package middlewares

import (
	"medisync-service/internal/app/config"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/utils"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRequireOperatorAPIKey(t *testing.T) {
	logger := zap.NewNop()

	testAPIKey := "test-operator-api-key-12345"
	hash, err := utils.HashSecret(testAPIKey)
	require.NoError(t, err)

	middlewares := &Middlewares{
		Log: logger,
		InternalConfig: &config.InternalConfig{
			App: config.App{OperatorAPIKeyHash: hash},
		},
	}

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authenticated, ok := r.Context().Value(constvars.CONTEXT_API_KEY_AUTHENTICATED_FLAG).(bool)
		assert.True(t, ok, "api key flag should be set")
		assert.True(t, authenticated, "api key flag should be true")

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})

	t.Run("Valid API Key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/operations/sessions/purge", nil)
		req.Header.Set(constvars.HeaderXAPIKey, testAPIKey)

		rr := httptest.NewRecorder()
		middlewares.RequireOperatorAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "should return 200 OK for valid API key")
		assert.Equal(t, "success", rr.Body.String())
	})

	t.Run("Missing API Key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/operations/sessions/purge", nil)

		rr := httptest.NewRecorder()
		middlewares.RequireOperatorAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 for missing API key")
	})

	t.Run("Invalid API Key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/operations/sessions/purge", nil)
		req.Header.Set(constvars.HeaderXAPIKey, "invalid-api-key")

		rr := httptest.NewRecorder()
		middlewares.RequireOperatorAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 for invalid API key")
	})

	t.Run("Case Sensitivity", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/operations/sessions/purge", nil)
		req.Header.Set(constvars.HeaderXAPIKey, "TEST-OPERATOR-API-KEY-12345")

		rr := httptest.NewRecorder()
		middlewares.RequireOperatorAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 for case-mismatched API key")
	})

	t.Run("No Hash Configured", func(t *testing.T) {
		unconfigured := &Middlewares{Log: logger, InternalConfig: &config.InternalConfig{}}
		req := httptest.NewRequest("POST", "/api/v1/operations/sessions/purge", nil)
		req.Header.Set(constvars.HeaderXAPIKey, testAPIKey)

		rr := httptest.NewRecorder()
		unconfigured.RequireOperatorAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should reject every key when no hash is configured")
	})
}
