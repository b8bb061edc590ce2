package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueriesTotal    *prometheus.CounterVec
	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBIdle            prometheus.Gauge

	// Бизнес-метрики
	BookingsCreated    prometheus.Counter
	BookingTransitions *prometheus.CounterVec
	BookingsByStatus   *prometheus.GaugeVec
	WizardSessions     prometheus.Gauge
}

// New создает метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer создает метрики в указанном реестре (используется в тестах)
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),
		DBInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),
		BookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of created bookings",
			ConstLabels: constLabels,
		}),
		BookingTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_transitions_total",
			Help:        "Booking status transitions by outcome",
			ConstLabels: constLabels,
		}, []string{"from", "to", "result"}),
		BookingsByStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "bookings_by_status",
			Help:        "Number of bookings per status",
			ConstLabels: constLabels,
		}, []string{"status"}),
		WizardSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "wizard_sessions_active",
			Help:        "Number of in-progress booking wizard sessions",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueriesTotal,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.BookingsCreated,
		m.BookingTransitions,
		m.BookingsByStatus,
		m.WizardSessions,
	)

	return m
}

// Методы ниже безопасны для nil-получателя: при выключенных метриках ничего не делают

// IncBookingsCreated увеличивает счетчик созданных бронирований
func (m *Metrics) IncBookingsCreated() {
	if m == nil {
		return
	}
	m.BookingsCreated.Inc()
}

// ObserveTransition учитывает попытку смены статуса (result: ok, rejected, conflict, error)
func (m *Metrics) ObserveTransition(from, to, result string) {
	if m == nil {
		return
	}
	m.BookingTransitions.WithLabelValues(from, to, result).Inc()
}

// SetBookingsByStatus обновляет gauge количества бронирований по статусам
func (m *Metrics) SetBookingsByStatus(counts map[string]int) {
	if m == nil {
		return
	}
	for status, count := range counts {
		m.BookingsByStatus.WithLabelValues(status).Set(float64(count))
	}
}

// SetWizardSessions обновляет количество активных сессий записи
func (m *Metrics) SetWizardSessions(n int) {
	if m == nil {
		return
	}
	m.WizardSessions.Set(float64(n))
}
