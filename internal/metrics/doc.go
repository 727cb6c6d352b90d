// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

/*
Package metrics provides Prometheus instrumentation for Contentgate.

Collectors are registered on the default registry through promauto at package
initialization. Components record through the Record* helpers rather than
touching collectors directly.

# Available Metrics

Filtering:
  - contentgate_filter_decisions_total: one per item per filter pass (counter)
    Labels: rating, source, decision ("allowed" or "excluded")
  - contentgate_classification_failures_total: classifications that fell back
    to the conservative default (counter)
  - contentgate_declared_rating_invalid_total: declared ratings that were not
    part of the rating scale and were ignored (counter)

Analysis:
  - contentgate_analysis_stage_duration_seconds: stage latency (histogram)
    Labels: stage
  - contentgate_analysis_stage_failures_total: contained stage failures (counter)
    Labels: stage
  - contentgate_items_loaded_total: items read from input documents (counter)
    Labels: kind ("posts" or "stories")
  - contentgate_export_failures_total: failed result exports (counter)

Audit:
  - contentgate_audit_writes_total: audit ledger writes (counter)
    Labels: backend, status

HTTP:
  - contentgate_http_requests_total: requests served (counter)
    Labels: method, route, status
  - contentgate_http_request_duration_seconds: request latency (histogram)
    Labels: method, route
  - contentgate_http_requests_in_flight: active requests (gauge)

# Export

The HTTP server exposes the default registry at /metrics. One-shot CLI runs
can persist the same data with WriteTextfile for the node_exporter textfile
collector:

	contentgate --data input.json --age 21 --verified true --metrics-file /var/lib/node_exporter/contentgate.prom
*/
package metrics
