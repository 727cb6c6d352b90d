// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/tomtom215/contentgate/internal/audit"
	"github.com/tomtom215/contentgate/internal/validation"
)

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateRating(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateEngagement(); err != nil {
		return err
	}
	if err := c.validateAudit(); err != nil {
		return err
	}
	return c.validateServer()
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func (c *Config) validateRating() error {
	for _, kw := range c.Rating.ExtraKeywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("RATING_EXTRA_KEYWORDS must not contain blank keywords")
		}
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	t := c.Analysis.TFIDF
	if t.MaxFeatures < 0 {
		return fmt.Errorf("TFIDF_MAX_FEATURES must be non-negative")
	}
	if t.MinN < 1 || t.MaxN < t.MinN || t.MaxN > 5 {
		return fmt.Errorf("TFIDF n-gram range must satisfy 1 <= min <= max <= 5, got (%d, %d)", t.MinN, t.MaxN)
	}
	return nil
}

func (c *Config) validateEngagement() error {
	for i, w := range c.Engagement.Weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("ENGAGEMENT_WEIGHTS[%d] must be finite", i)
		}
	}
	if math.IsNaN(c.Engagement.Bias) || math.IsInf(c.Engagement.Bias, 0) {
		return fmt.Errorf("ENGAGEMENT_BIAS must be finite")
	}
	return nil
}

func (c *Config) validateAudit() error {
	if !c.Audit.Enabled {
		return nil
	}
	if c.Audit.Backend == audit.BackendBadger && c.Audit.Path == "" {
		return fmt.Errorf("AUDIT_PATH is required when AUDIT_BACKEND=badger")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must not be negative")
	}
	if !c.Server.RateLimitDisabled {
		if c.Server.RateLimitReqs <= 0 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive unless DISABLE_RATE_LIMIT=true")
		}
		if c.Server.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive unless DISABLE_RATE_LIMIT=true")
		}
	}
	return nil
}
