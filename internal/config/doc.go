// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

/*
Package config provides centralized configuration management for Contentgate.

# Configuration Sources

Configuration is layered with Koanf v2, later layers winning:

 1. Defaults from defaultConfig()
 2. An optional YAML file (--config, CONFIG_PATH, or the first of
    DefaultConfigPaths that exists)
 3. Environment variables listed in envTransformFunc

Unmapped environment variables are ignored.

# Sections

  - logging: level, format, caller
  - rating: extra mature keywords (can only make ratings stricter)
  - analysis: TF-IDF vectoriser settings and stage result sizes
  - engagement: logistic model weights and bias
  - audit: rating decision ledger (memory or badger)
  - metrics: optional Prometheus textfile export path
  - server: HTTP bind address, timeouts, CORS and rate limiting

# Environment Variables

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: include caller location (default: false)

Rating:
  - RATING_EXTRA_KEYWORDS: comma-separated extra mature keywords

Analysis:
  - TFIDF_MAX_FEATURES, TFIDF_MIN_NGRAM, TFIDF_MAX_NGRAM, TFIDF_STOP_WORDS
  - ANALYSIS_TOP_TOPICS, ANALYSIS_SUGGESTED_TOPICS, ANALYSIS_POSTING_HOURS

Engagement:
  - ENGAGEMENT_WEIGHTS: comma-separated weights, ordered by sorted feature name
  - ENGAGEMENT_BIAS

Audit:
  - AUDIT_ENABLED, AUDIT_BACKEND (memory|badger), AUDIT_PATH, AUDIT_MAX_DECISIONS

Metrics:
  - METRICS_TEXTFILE, METRICS_TEXTFILE_INTERVAL (serve mode rewrite period, default 15s)

Server:
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, HTTP_MAX_BODY_BYTES, HTTP_SHUTDOWN_TIMEOUT
  - CORS_ORIGINS, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
*/
package config
