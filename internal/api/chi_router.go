// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/contentgate/internal/config"
)

// NewRouter builds the chi router. A nil middleware factory uses
// DefaultChiMiddlewareConfig.
func NewRouter(h *Handler, mw *ChiMiddleware) http.Handler {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}

	r := chi.NewRouter()

	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(APISecurityHeaders())
	r.Use(PrometheusMetrics)
	r.Use(mw.CORS())
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/api/v1/health", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit())

		r.Post("/api/ml/homepage", h.Homepage)

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/ratings", h.Ratings)
			r.Post("/ratings/classify", h.Classify)

			r.Route("/audit/decisions", func(r chi.Router) {
				r.Get("/", h.ListDecisions)
				r.Get("/{id}", h.GetDecision)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	return r
}

// NewHTTPServer builds the http.Server for handler from the server section.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Timeout,
		IdleTimeout:       60 * time.Second,
	}
}
