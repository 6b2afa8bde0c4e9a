package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sansol"

// Metrics holds Prometheus metrics for the promo service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	Redemptions      *prometheus.CounterVec
	Reveals          *prometheus.CounterVec
	Registrations    *prometheus.CounterVec
	ClaimRetries     prometheus.Counter
}

// NewMetrics creates the metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Number of requests currently being processed",
			},
		),
		Redemptions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "promo",
				Name:      "redemptions_total",
				Help:      "Redemption attempts by outcome",
			},
			[]string{"outcome"},
		),
		Reveals: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "promo",
				Name:      "reveals_total",
				Help:      "Prize reveals by outcome",
			},
			[]string{"outcome"},
		),
		Registrations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "promo",
				Name:      "registrations_total",
				Help:      "Participant registrations by outcome",
			},
			[]string{"outcome"},
		),
		ClaimRetries: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "promo",
				Name:      "claim_retries_total",
				Help:      "Claim transactions retried after a transient store failure",
			},
		),
	}
}

func (m *Metrics) ObserveRedemption(outcome string) {
	if m == nil {
		return
	}
	m.Redemptions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveReveal(outcome string) {
	if m == nil {
		return
	}
	m.Reveals.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveRegistration(outcome string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveClaimRetry() {
	if m == nil {
		return
	}
	m.ClaimRetries.Inc()
}
