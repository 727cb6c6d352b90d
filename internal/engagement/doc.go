// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

// Package engagement predicts whether content will be engaged with.
//
// The analysis pipeline only depends on the Classifier interface. Logistic is
// the default binary model: a fixed weight vector and bias loaded from
// configuration. Feature vectors are ordered by sorted feature name, so the
// weight at index i applies to the i-th feature name in lexical order.
package engagement
