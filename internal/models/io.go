// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package models

// Input is the analysis input document. Every key is optional.
type Input struct {
	Posts           []ContentItem      `json:"posts" validate:"dive"`
	Stories         []ContentItem      `json:"stories" validate:"dive"`
	UserData        map[string]any     `json:"user_data,omitempty"`
	ContentFeatures map[string]float64 `json:"content_features,omitempty"`
}

// Output is the analysis output document. A nil stage encodes as null.
// EngagementPrediction is omitted unless content features were supplied.
type Output struct {
	PostAnalysis         *PostAnalysis         `json:"post_analysis"`
	StoriesAnalysis      *StoriesAnalysis      `json:"stories_analysis"`
	Recommendations      *Recommendations      `json:"recommendations"`
	EngagementPrediction *EngagementPrediction `json:"engagement_prediction,omitempty"`

	// StageErrors maps a failed stage to its diagnostic message.
	StageErrors map[string]string `json:"stage_errors,omitempty"`
}

// ErrorResponse is the sole payload emitted on total failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Topic is an extracted term with its aggregate score.
type Topic struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// PostAnalysis summarizes the posts that passed the age filter.
type PostAnalysis struct {
	TopTopics          []Topic        `json:"top_topics"`
	AvgPostLength      float64        `json:"avg_post_length"`
	TotalPosts         int            `json:"total_posts"`
	RatingDistribution map[string]int `json:"rating_distribution"`
}

// StoriesAnalysis summarizes the stories that passed the age filter.
// Percentages and means are nil when no story passed.
type StoriesAnalysis struct {
	TotalStories          int            `json:"total_stories"`
	MediaTypeDistribution map[string]int `json:"media_type_distribution"`
	PremiumStoriesPercent *float64       `json:"premium_stories_percent"`
	ViewedStoriesPercent  *float64       `json:"viewed_stories_percent"`
	AvgDuration           *float64       `json:"avg_duration"`
	RatingDistribution    map[string]int `json:"rating_distribution"`
}

// Recommendations are shallow heuristics over the filtered content history.
type Recommendations struct {
	SuggestedTopics         []string           `json:"suggested_topics"`
	OptimalPostingTimes     []int              `json:"optimal_posting_times"`
	ContentTypeDistribution map[string]float64 `json:"content_type_distribution"`
	RecommendedCategories   []string           `json:"recommended_categories"`
}

// EngagementPrediction is the engagement classifier's verdict for a feature set.
type EngagementPrediction struct {
	EngagementScore float64 `json:"engagement_score"`
	Confidence      float64 `json:"confidence"`
}
