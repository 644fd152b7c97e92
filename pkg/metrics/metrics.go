package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBIdle            prometheus.Gauge
	DBWaitCount       prometheus.Gauge

	CalendarMovesTotal    *prometheus.CounterVec
	NotificationsTotal    *prometheus.CounterVec
	LayoutComputeDuration prometheus.Histogram
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики в указанном реестре (в тестах prometheus.NewRegistry())
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: labels,
		}),
		DBInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}),
		DBIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: labels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),
		CalendarMovesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_moves_total",
			Help:        "Calendar event moves by event kind and result",
			ConstLabels: labels,
		}, []string{"kind", "result"}),
		NotificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_notifications_total",
			Help:        "Client notifications about rescheduled appointments",
			ConstLabels: labels,
		}, []string{"result"}),
		LayoutComputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "calendar_layout_duration_seconds",
			Help:        "Time spent composing a day calendar view",
			ConstLabels: labels,
			Buckets:     []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.CalendarMovesTotal,
		m.NotificationsTotal,
		m.LayoutComputeDuration,
	)

	return m
}

// RecordMove учитывает попытку переноса события
func (m *Metrics) RecordMove(kind, result string) {
	if m == nil {
		return
	}
	m.CalendarMovesTotal.WithLabelValues(kind, result).Inc()
}

// RecordNotification учитывает отправку уведомления клиенту
func (m *Metrics) RecordNotification(result string) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(result).Inc()
}

// ObserveLayout учитывает время построения календаря
func (m *Metrics) ObserveLayout(d time.Duration) {
	if m == nil {
		return
	}
	m.LayoutComputeDuration.Observe(d.Seconds())
}
