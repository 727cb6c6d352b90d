// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

// Package filter applies an allowed rating set to a collection of content items.
//
// Every item resolves to exactly one rating:
//
//  1. a declared content_rating that parses as a rating wins
//  2. otherwise the rating classifier backfills one from text and metadata
//
// An unparseable declared rating is ignored (logged and counted) and the
// classifier decides. Classification failures resolve to PG-13.
//
// Apply keeps an item if and only if its resolved rating is in the allowed
// set. Input order is preserved and nothing is deduplicated. Results are
// never cached: every consumer calls Apply with the allowed set in force for
// that call, so a profile change takes effect on the next call.
//
// Each decision is counted in contentgate_filter_decisions_total and, when a
// DecisionSink is configured, written to the audit ledger.
package filter
