// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

// Package features extracts ranked terms from a set of texts.
//
// Extractor is the seam consumed by the analysis pipeline. The default TFIDF
// implementation scores unigrams and bigrams:
//
//   - tokens are maximal runs of two or more letters, digits or underscores,
//     lower-cased
//   - English stop words are removed before n-grams are formed
//   - the vocabulary is capped at MaxFeatures terms by corpus frequency
//   - idf(t) = ln((1 + n) / (1 + df(t))) + 1
//   - each document row is L2-normalised, then rows are summed per term
//
// Results are sorted by score descending, then term ascending, so identical
// input always yields identical output.
package features
