package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PaymentMetrics records payment attempts and booking releases.
type PaymentMetrics struct {
	attempts *prometheus.CounterVec
	duration *prometheus.HistogramVec
	releases *prometheus.CounterVec
}

// NewPaymentMetrics registers the payment metrics on the provided registerer.
func NewPaymentMetrics(reg prometheus.Registerer) *PaymentMetrics {
	if reg == nil {
		return &PaymentMetrics{}
	}
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_attempts_total",
		Help: "Payment submissions by terminal result.",
	}, []string{"result"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "payment_duration_seconds",
		Help:    "Duration of payment submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})
	releases := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_releases_total",
		Help: "Booking release requests by trigger.",
	}, []string{"trigger"})
	reg.MustRegister(attempts, duration, releases)
	return &PaymentMetrics{
		attempts: attempts,
		duration: duration,
		releases: releases,
	}
}

// ObserveAttempt records one payment submission with its terminal result.
func (p *PaymentMetrics) ObserveAttempt(result string, elapsed time.Duration) {
	if p == nil || p.attempts == nil {
		return
	}
	label := normalizeLabel(result)
	p.attempts.WithLabelValues(label).Inc()
	p.duration.WithLabelValues(label).Observe(elapsed.Seconds())
}

// IncRelease counts one release request for the named trigger.
func (p *PaymentMetrics) IncRelease(trigger string) {
	if p == nil || p.releases == nil {
		return
	}
	p.releases.WithLabelValues(normalizeLabel(trigger)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
