// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

// Package logging provides centralized zerolog-based structured logging for Contentgate.
//
// All diagnostics go to stderr. Stdout is reserved for the JSON analysis
// payload written by the CLI, so nothing in this package ever writes there
// unless a caller explicitly passes os.Stdout as the output.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("path", path).Msg("Loading dataset")
//	logging.Error().Err(err).Msg("Stage failed")
//
//	// Context-aware logging (correlation_id, request_id)
//	logging.Ctx(ctx).Info().Int("kept", n).Msg("Filter applied")
//
// # Configuration
//
// Environment Variables (read by internal/config):
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
//
// Rating decisions are logged with the fields item_id, rating, source and
// reason so a single grep over the log stream reconstructs every decision.
//
// # Testing
//
//	var buf bytes.Buffer
//	logging.SetLogger(logging.NewTestLogger(&buf))
package logging
