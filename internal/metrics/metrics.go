// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Decision label values.
const (
	DecisionAllowed  = "allowed"
	DecisionExcluded = "excluded"
)

var (
	// Filter Metrics
	FilterDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentgate_filter_decisions_total",
			Help: "Total number of per-item filter decisions",
		},
		[]string{"rating", "source", "decision"},
	)

	ClassificationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contentgate_classification_failures_total",
			Help: "Total number of classifications that fell back to the conservative default rating",
		},
	)

	DeclaredRatingInvalid = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contentgate_declared_rating_invalid_total",
			Help: "Total number of declared content ratings ignored as invalid",
		},
	)

	// Analysis Metrics
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contentgate_analysis_stage_duration_seconds",
			Help:    "Duration of analysis stages in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"stage"},
	)

	StageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentgate_analysis_stage_failures_total",
			Help: "Total number of contained analysis stage failures",
		},
		[]string{"stage"},
	)

	ItemsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentgate_items_loaded_total",
			Help: "Total number of content items read from input documents",
		},
		[]string{"kind"},
	)

	ExportFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contentgate_export_failures_total",
			Help: "Total number of failed result exports",
		},
	)

	// Audit Metrics
	AuditWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentgate_audit_writes_total",
			Help: "Total number of audit ledger writes",
		},
		[]string{"backend", "status"},
	)

	// HTTP Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentgate_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contentgate_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "contentgate_http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// RecordFilterDecision records one item's filter decision.
func RecordFilterDecision(rating, source string, allowed bool) {
	decision := DecisionExcluded
	if allowed {
		decision = DecisionAllowed
	}
	FilterDecisions.WithLabelValues(rating, source, decision).Inc()
}

// RecordClassificationFailure records a conservative-default fallback.
func RecordClassificationFailure() {
	ClassificationFailures.Inc()
}

// RecordDeclaredRatingInvalid records an ignored declared rating.
func RecordDeclaredRatingInvalid() {
	DeclaredRatingInvalid.Inc()
}

// RecordStage records an analysis stage's duration and failure, if any.
func RecordStage(stage string, duration time.Duration, err error) {
	StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
	if err != nil {
		StageFailures.WithLabelValues(stage).Inc()
	}
}

// RecordItemsLoaded records the number of items of a kind read from input.
func RecordItemsLoaded(kind string, count int) {
	if count > 0 {
		ItemsLoaded.WithLabelValues(kind).Add(float64(count))
	}
}

// RecordExportFailure records a failed export.
func RecordExportFailure() {
	ExportFailures.Inc()
}

// RecordAuditWrite records an audit ledger write for a backend.
func RecordAuditWrite(backend string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	AuditWrites.WithLabelValues(backend, status).Inc()
}

// RecordAPIRequest records an HTTP request metric.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, fmt.Sprintf("%d", status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active HTTP requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// WriteTextfile writes the default registry in Prometheus text format to
// path. The file is replaced atomically.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
