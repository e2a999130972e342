package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInstrumentLabelsByRoutePattern(t *testing.T) {
	Init()

	router := chi.NewRouter()
	router.Use(Instrument)
	router.Get("/appointments/{appointmentID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/appointments/{appointmentID}", "418"))

	for _, id := range []string{"a1", "a2"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/appointments/"+id, nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/appointments/{appointmentID}", "418"))
	assert.Equal(t, float64(2), after-before)
}

func TestInitIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Init()
		Init()
	})
}

func TestMoveResolverState(t *testing.T) {
	Init()
	anonymous := resolversByState.WithLabelValues("anonymous")
	authenticated := resolversByState.WithLabelValues("authenticated")
	anonymousBefore := testutil.ToFloat64(anonymous)
	authenticatedBefore := testutil.ToFloat64(authenticated)

	MoveResolverState("", "anonymous")
	MoveResolverState("anonymous", "authenticated")
	assert.Equal(t, anonymousBefore, testutil.ToFloat64(anonymous))
	assert.Equal(t, authenticatedBefore+1, testutil.ToFloat64(authenticated))

	MoveResolverState("authenticated", "")
	assert.Equal(t, authenticatedBefore, testutil.ToFloat64(authenticated))
}
