// Package observability owns the Prometheus collectors exported on /metrics.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "extracurricular"

var (
	signupsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "roster",
		Name:      "signups_total",
		Help:      "Number of successful activity sign-ups, labeled by activity.",
	}, []string{"activity"})

	removalsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "roster",
		Name:      "removals_total",
		Help:      "Number of participants removed from activities, labeled by activity.",
	}, []string{"activity"})

	rejectionsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "roster",
		Name:      "rejections_total",
		Help:      "Roster mutations rejected by the registry, labeled by reason.",
	}, []string{"reason"})

	participantsGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "roster",
		Name:      "participants",
		Help:      "Current number of participants enrolled per activity.",
	}, []string{"activity"})

	publishFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "events",
		Name:      "publish_failures_total",
		Help:      "Roster events that could not be delivered to Kafka.",
	})

	publishedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Roster events delivered to Kafka.",
	})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency of HTTP requests by method, route and status.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(
		signupsCounter,
		removalsCounter,
		rejectionsCounter,
		participantsGauge,
		publishFailures,
		publishedCounter,
		httpDuration,
	)
}

// RecordSignup counts a sign-up and updates the roster size gauge.
func RecordSignup(activity string, participants int) {
	signupsCounter.WithLabelValues(activity).Inc()
	participantsGauge.WithLabelValues(activity).Set(float64(participants))
}

// RecordRemoval counts a removal and updates the roster size gauge.
func RecordRemoval(activity string, participants int) {
	removalsCounter.WithLabelValues(activity).Inc()
	participantsGauge.WithLabelValues(activity).Set(float64(participants))
}

// RecordRejection counts a rejected roster mutation.
func RecordRejection(reason string) {
	rejectionsCounter.WithLabelValues(reason).Inc()
}

// SetParticipants sets the roster size gauge, used when the registry is seeded.
func SetParticipants(activity string, participants int) {
	participantsGauge.WithLabelValues(activity).Set(float64(participants))
}

// ForgetActivity drops the roster size series of an activity that no longer exists.
func ForgetActivity(activity string) {
	participantsGauge.DeleteLabelValues(activity)
}

// RecordPublished counts a delivered roster event.
func RecordPublished() {
	publishedCounter.Inc()
}

// RecordPublishFailure counts a roster event that failed delivery.
func RecordPublishFailure() {
	publishFailures.Inc()
}

// ObserveHTTPRequest records request latency.
func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
