// Package metrics exposes Prometheus instrumentation for the brief service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/freelancehub/brief-service/internal/brief"
	"github.com/freelancehub/brief-service/internal/wizard"
)

var (
	briefSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brief_submissions_total",
			Help: "Total number of brief submissions labeled by outcome",
		},
		[]string{"status"},
	)
	wizardTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_transitions_total",
			Help: "Total number of wizard step transitions",
		},
		[]string{"from", "to"},
	)
	pricingCalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_calculations_total",
			Help: "Total number of estimate calculations labeled by project type",
		},
		[]string{"project_type"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency distributions",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Total number of owner notifications labeled by outcome",
		},
		[]string{"status"},
	)
)

func init() {
	wizard.RegisterTransitionRecorder(RecordStepTransition)
}

// RecordSubmission increments the submission counter.
func RecordSubmission(status string) {
	if status == "" {
		status = "unknown"
	}

	briefSubmissionsTotal.WithLabelValues(status).Inc()
}

// RecordStepTransition tracks wizard step transitions.
func RecordStepTransition(from, to string) {
	if from == "" {
		from = "unknown"
	}
	if to == "" {
		to = "unknown"
	}

	wizardTransitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordPricingCalculation tracks estimate calculations per project type. The
// label is resolved against the known project types, mirroring the landing
// fallback of the calculator, so client input can never mint new series.
func RecordPricingCalculation(projectType string) {
	if _, ok := brief.ValidProjectTypes[projectType]; !ok {
		projectType = brief.ProjectTypeLanding
	}

	pricingCalculationsTotal.WithLabelValues(projectType).Inc()
}

// ObserveHTTPRequest records the latency of a handled HTTP request.
func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unknown"
	}

	httpRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// RecordNotification increments the owner-notification counter.
func RecordNotification(status string) {
	if status == "" {
		status = "unknown"
	}

	notificationsTotal.WithLabelValues(status).Inc()
}
