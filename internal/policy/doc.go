// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

// Package policy derives the set of content ratings a viewer may see from their
// age verification state.
//
// Derive is a pure function from AgeProfile to AllowedSet. The tier table is:
//
//	not verified                -> {G}
//	verified, age >= 18         -> {G, PG, PG-13, R}
//	verified, 13 <= age < 18    -> {G, PG, PG-13}
//	verified, age < 13          -> {G, PG}
//
// NC-17 is never granted by any tier. This is intentional: there is no
// unrestricted adult tier, and none is inferred.
//
// Ages are not validated here. Callers sanitize input at the boundary with
// AgeProfile.Validate; an unsanitized negative age falls into the under-13
// tier by comparison.
//
// An AllowedSet is stored as its ceiling rating, so every set is a contiguous
// prefix of the rating order that starts at G. A non-contiguous set cannot be
// represented.
//
// Policy wraps an AllowedSet for one session. Prefer passing an AllowedSet
// value into each call; Policy exists for callers that establish a profile
// once and filter many times.
package policy
