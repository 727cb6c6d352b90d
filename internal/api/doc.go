// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

/*
Package api provides the HTTP surface for Contentgate.

Routes:

	POST /api/ml/homepage              analyze posts and stories for one viewer
	GET  /api/v1/health                liveness probe
	GET  /api/v1/ratings               rating scale with descriptions
	POST /api/v1/ratings/classify      rate a single piece of content
	GET  /api/v1/audit/decisions       query the filter decision ledger
	GET  /api/v1/audit/decisions/{id}  fetch one decision
	GET  /metrics                      Prometheus exposition

The homepage route keeps the document shape of the analysis CLI: the response
body is the analysis output itself and failures are {"error": "..."}. The
/api/v1 routes use the APIResponse envelope.

Every request derives its own AllowedSet from the request body, so no viewer
state is shared between requests.

Middleware stack (outermost first): RequestIDWithLogging, RealIP, Recoverer,
APISecurityHeaders, PrometheusMetrics, CORS, Compress (JSON only). Rate limiting
via go-chi/httprate applies to /api routes except health.
*/
package api
