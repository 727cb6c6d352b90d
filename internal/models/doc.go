// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

/*
Package models defines the data structures exchanged by Contentgate.

Key Components:

  - ContentItem: a post or story as loaded from a dataset or HTTP request
  - Input: the analysis input document (posts, stories, user_data, content_features)
  - Output: the analysis output document with one entry per analysis stage
  - PostAnalysis, StoriesAnalysis, Recommendations, EngagementPrediction: stage results

ContentItem decoding is tolerant of loosely shaped records. The text body is
read from "content" and falls back to "text". A top-level is_adult_content
is folded into Metadata, so a record such as

	{"content": "late night poker", "is_adult_content": true}

is classified exactly as if the flag had been nested under "metadata".
Explicit "metadata" entries take precedence. Other unknown top-level keys are
dropped.

Items are never mutated after loading. Helpers such as WithStoryDefaults return
copies.

Output stage fields are pointers. A nil stage result encodes as JSON null and
means the stage produced nothing (empty filtered set or a contained failure).
*/
package models
