package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsRequestsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/policies/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/policies/"+id, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	count := testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "/api/policies/:id", "200"))
	assert.Equal(t, float64(2), count)
}

func TestIndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.ObserveLogin("success")
	assert.Equal(t, float64(1), testutil.ToFloat64(a.LoginAttempts.WithLabelValues("success")))
	assert.Equal(t, float64(0), testutil.ToFloat64(b.LoginAttempts.WithLabelValues("success")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveCleanupFailure()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "campaign_photo_cleanup_failures_total 1"))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveLogin("failure")
	m.ObserveCleanupFailure()
}
