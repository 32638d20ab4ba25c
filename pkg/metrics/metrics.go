package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	BookingOutcomes      *prometheus.CounterVec
	BookingCommitAttempt *prometheus.HistogramVec
	SlotsGenerated       *prometheus.HistogramVec
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном registry
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),

		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		BookingOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_outcomes_total",
			Help: "Booking attempts by outcome (booked, slot_taken, closed, error)",
		}, []string{"service", "outcome"}),

		BookingCommitAttempt: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "booking_commit_attempts",
			Help:    "Number of commit attempts per booking",
			Buckets: []float64{1, 2, 3, 4, 5},
		}, []string{"service"}),

		SlotsGenerated: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "available_slots_returned",
			Help:    "Number of available slots returned per query",
			Buckets: []float64{0, 1, 4, 8, 16, 32, 64, 128},
		}, []string{"service"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.BookingOutcomes,
		m.BookingCommitAttempt,
		m.SlotsGenerated,
	)

	return m
}

// ObserveHTTP записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTP(service, method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(service, method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(service, method, route).Observe(elapsed.Seconds())
}

// ObserveQuery записывает длительность запроса к БД
func (m *Metrics) ObserveQuery(service, operation string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(service, operation).Observe(elapsed.Seconds())
}

// IncBookingOutcome увеличивает счетчик исходов бронирования
func (m *Metrics) IncBookingOutcome(service, outcome string) {
	if m == nil {
		return
	}
	m.BookingOutcomes.WithLabelValues(service, outcome).Inc()
}

// ObserveCommitAttempts записывает количество попыток коммита бронирования
func (m *Metrics) ObserveCommitAttempts(service string, attempts int) {
	if m == nil {
		return
	}
	m.BookingCommitAttempt.WithLabelValues(service).Observe(float64(attempts))
}

// ObserveSlots записывает количество возвращенных слотов
func (m *Metrics) ObserveSlots(service string, count int) {
	if m == nil {
		return
	}
	m.SlotsGenerated.WithLabelValues(service).Observe(float64(count))
}
