// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

// Package rating defines the content rating scale and the rule-based classifier
// that assigns a rating to arbitrary content.
//
// # Rating Scale
//
// Ratings form a closed, totally ordered set:
//
//	G < PG < PG-13 < R < NC-17
//
// The zero value Unknown is not a rating; no classification ever resolves to it.
//
// # Classification Rules
//
// The classifier is a fixed, auditable rule set. Nothing is learned:
//
//  1. metadata["is_adult_content"] is truthy       -> R
//  2. text contains a mature keyword (substring)    -> PG-13
//  3. otherwise                                     -> G
//
// The flag is truthy unless it is null, false, zero, or an empty string, list
// or object, so "true", "yes" and 1 all rate R.
//
// Any failure (invalid text, nothing to classify, or a recovered panic)
// resolves to ConservativeDefault (PG-13), never to G.
// Failures are reported through Outcome.Err wrapping ErrClassification, so the
// conservative rating and the diagnostic are both kept.
//
// # Determinism
//
// Classify is a pure function of its inputs and the keyword set fixed at
// construction. A Classifier is immutable and safe for concurrent use.
package rating
