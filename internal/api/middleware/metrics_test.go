package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/pkg/metrics"
)

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegisterer("test", reg)

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/blocks/{blockId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}).Methods(http.MethodPatch)

	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPatch, "/blocks/"+id, nil))
	}

	families, err := reg.Gather()
	require.NoError(t, err)

	labels := map[string]string{}
	var total float64
	for _, f := range families {
		if f.GetName() != "http_requests_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			total += metric.GetCounter().GetValue()
			for _, l := range metric.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, total)
	assert.Equal(t, "/blocks/{blockId}", labels["route"])
	assert.Equal(t, "409", labels["status"])
}

func TestMetricsMiddleware_NilMetrics(t *testing.T) {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(nil))
	r.HandleFunc("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
