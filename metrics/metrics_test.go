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

func TestObserveOperation(t *testing.T) {
	srv, err := New("biosdk", "127.0.0.1:0")
	require.NoError(t, err)

	srv.Metrics.ObserveOperation("segment", "success", 10*time.Millisecond)
	srv.Metrics.ObserveOperation("segment", "success", 20*time.Millisecond)
	srv.Metrics.ObserveOperation("segment", "BIOSDK_LIB_EXCEPTION", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(srv.Metrics.Operations.WithLabelValues("segment", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(srv.Metrics.Operations.WithLabelValues("segment", "BIOSDK_LIB_EXCEPTION")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveOperation("init", "success", time.Second)
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	srv, err := New("biosdk", "127.0.0.1:0")
	require.NoError(t, err)
	srv.Metrics.ObserveOperation("match", "success", time.Millisecond)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `biosdk_operations_total{operation="match",outcome="success"} 1`)
	assert.Contains(t, string(body), "biosdk_operation_duration_seconds")
}
