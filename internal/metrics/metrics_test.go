package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/api/category/:userId", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/category/:userId", http.StatusOK, 30*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/category/:userId", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/category/:userId", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/category/:userId", "404")))
}

func TestIndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.RateLimitHit("/api/article")

	assert.Equal(t, 1.0, testutil.ToFloat64(a.rateLimitHits.WithLabelValues("/api/article")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.rateLimitHits.WithLabelValues("/api/article")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.EnqueueFailed()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "fitquest_job_enqueue_failures_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}
