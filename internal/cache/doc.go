// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

/*
Package cache provides in-memory data structures used on the rating hot path.

The only structure currently needed is an Aho-Corasick automaton used by the
rating classifier to test a text against the whole mature-keyword set in a
single pass instead of one strings.Contains call per keyword.

# Matching Semantics

Matching is case-insensitive substring matching, identical to lower-casing the
text and checking every keyword with strings.Contains. "Adulthood" therefore
matches "adult". This is intended: the rating rules err on the side of a
stricter rating.

# Usage

	ac := cache.NewAutomaton([]string{"violence", "nsfw"})
	if ac.Contains(text) {
	    // mature
	}
	matched := ac.FindAll(text) // distinct keywords, in order of first occurrence

# Thread Safety

An Automaton is immutable after NewAutomaton returns and may be shared across
goroutines without locking.
*/
package cache
