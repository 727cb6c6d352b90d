// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

// Package main is the entry point for the contentgate command.
//
// contentgate rates content items, drops those the viewer's age profile does
// not allow, and analyzes what remains. It runs in two modes:
//
//  1. One-shot: the root command reads an input document, prints the
//     analysis output as JSON on stdout, and exits.
//  2. Server: the serve subcommand exposes the same analysis over HTTP under
//     a supervisor tree.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (LOG_LEVEL, AUDIT_ENABLED, HTTP_PORT, ...)
//   - Config file (--config, CONFIG_PATH, contentgate.yaml or config.yaml)
//   - Built-in defaults
//
// # Output Contract
//
// Stdout carries exactly one JSON document. On a load failure it is
// {"error":"Failed to load data: ..."} and on a fatal analysis failure
// {"error":"Analysis failed: ..."}, both with exit status 1. Logs go to stderr.
//
// # Example Usage
//
//	contentgate --data feed.json --age 15 --verified true
//	contentgate --data feed.json --age 30 --verified false --output result.json
//	contentgate rate "late night gambling stream"
//	contentgate serve --config /etc/contentgate/config.yaml
//
// # Signal Handling
//
// serve shuts down gracefully on SIGINT and SIGTERM. In-flight requests get
// server.shutdown_timeout to complete.
package main

import (
	"os"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
