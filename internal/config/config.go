// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/tomtom215/contentgate/internal/analysis"
	"github.com/tomtom215/contentgate/internal/engagement"
	"github.com/tomtom215/contentgate/internal/features"
	"github.com/tomtom215/contentgate/internal/logging"
)

// Config holds all application configuration.
type Config struct {
	Logging    LoggingConfig     `koanf:"logging"`
	Rating     RatingConfig      `koanf:"rating"`
	Analysis   AnalysisConfig    `koanf:"analysis"`
	Engagement engagement.Config `koanf:"engagement"`
	Audit      AuditConfig       `koanf:"audit"`
	Metrics    MetricsConfig     `koanf:"metrics"`
	Server     ServerConfig      `koanf:"server"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// RatingConfig extends the mature keyword set.
type RatingConfig struct {
	ExtraKeywords []string `koanf:"extra_keywords" validate:"dive,min=2,max=64"`
}

// AnalysisConfig holds the feature extractor and pipeline settings.
type AnalysisConfig struct {
	TFIDF    features.TFIDFConfig `koanf:"tfidf"`
	Pipeline analysis.Options     `koanf:"pipeline"`
}

// AuditConfig controls the rating decision ledger.
type AuditConfig struct {
	Enabled bool `koanf:"enabled"`

	// Backend is memory or badger.
	Backend string `koanf:"backend" validate:"omitempty,oneof=memory badger"`

	// Path is the badger directory. Required for the badger backend.
	Path string `koanf:"path"`

	// MaxDecisions bounds the memory backend.
	MaxDecisions int `koanf:"max_decisions" validate:"min=0"`
}

// MetricsConfig controls metric export for one-shot CLI runs.
type MetricsConfig struct {
	// Textfile, when set, receives the Prometheus text exposition after a run.
	Textfile string `koanf:"textfile"`

	// TextfileInterval is how often serve mode rewrites Textfile.
	TextfileInterval time.Duration `koanf:"textfile_interval"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout      time.Duration `koanf:"timeout"`
	MaxBodyBytes int64         `koanf:"max_body_bytes" validate:"min=1"`

	// ShutdownTimeout bounds graceful shutdown of in-flight requests.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingSettings converts the logging section for logging.Init. Output
// always goes to stderr so stdout stays reserved for the JSON payload.
func (c *Config) LoggingSettings() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.Caller = c.Logging.Caller
	cfg.Output = os.Stderr
	return cfg
}
