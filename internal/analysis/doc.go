// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

// Package analysis runs the age-gated analytics stages over a content set.
//
// Every stage filters its own input through the content filter before doing
// anything else, so no statistic, topic or recommendation is ever derived from
// an item outside the caller's AllowedSet.
//
// # Stages
//
//   - AnalyzePosts: top topics, mean post length, post count
//   - AnalyzeStories: media type counts, premium/viewed percentages, mean duration
//   - Recommend: content type shares, peak engagement hours, suggested topics
//   - PredictEngagement: engagement classifier verdict for a feature map
//
// # Failure Isolation
//
// A stage that fails returns a *StageError matching ErrAnalysisStage and a nil
// result. Panics are recovered the same way. Run keeps computing the sibling
// stages and reports the failed stage as null in the output document.
package analysis
