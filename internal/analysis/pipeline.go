// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package analysis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/tomtom215/contentgate/internal/engagement"
	"github.com/tomtom215/contentgate/internal/features"
	"github.com/tomtom215/contentgate/internal/filter"
	"github.com/tomtom215/contentgate/internal/logging"
	"github.com/tomtom215/contentgate/internal/metrics"
	"github.com/tomtom215/contentgate/internal/models"
	"github.com/tomtom215/contentgate/internal/policy"
)

// ErrNilInput is returned by Run when there is no input document.
var ErrNilInput = errors.New("nil analysis input")

// Options tunes the result sizes of the stages.
type Options struct {
	TopTopics       int `koanf:"top_topics" validate:"min=1,max=1000"`
	SuggestedTopics int `koanf:"suggested_topics" validate:"min=0,max=100"`
	PostingHours    int `koanf:"posting_hours" validate:"min=1,max=24"`
}

// DefaultOptions returns 10 top topics, 5 suggested topics and 3 posting hours.
func DefaultOptions() Options {
	return Options{
		TopTopics:       10,
		SuggestedTopics: 5,
		PostingHours:    3,
	}
}

// Pipeline runs the analysis stages. It holds no per-user state; the
// AllowedSet is passed into every call.
type Pipeline struct {
	filter     *filter.Filter
	extractor  features.Extractor
	classifier engagement.Classifier
	opts       Options
}

// New creates a pipeline. A nil filter uses the default classifier. A nil
// extractor yields empty topic lists and a nil classifier makes
// PredictEngagement fail with engagement.ErrNotConfigured.
func New(f *filter.Filter, extractor features.Extractor, classifier engagement.Classifier, opts Options) *Pipeline {
	if f == nil {
		f = filter.New(nil)
	}
	d := DefaultOptions()
	if opts.TopTopics <= 0 {
		opts.TopTopics = d.TopTopics
	}
	if opts.SuggestedTopics < 0 {
		opts.SuggestedTopics = d.SuggestedTopics
	}
	if opts.PostingHours <= 0 {
		opts.PostingHours = d.PostingHours
	}
	return &Pipeline{
		filter:     f,
		extractor:  extractor,
		classifier: classifier,
		opts:       opts,
	}
}

// runStage times fn, converts errors and panics into *StageError, and records
// the outcome.
func runStage[T any](ctx context.Context, stage string, fn func() (*T, error)) (result *T, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &StageError{Stage: stage, Err: fmt.Errorf("panic: %v", r)}
		}
		metrics.RecordStage(stage, time.Since(start), err)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("stage", stage).Msg("Analysis stage failed")
		}
	}()

	result, err = fn()
	if err != nil {
		return nil, &StageError{Stage: stage, Err: err}
	}
	return result, nil
}

// AnalyzePosts summarizes the allowed posts. It returns nil, nil when no post
// passes the filter.
func (p *Pipeline) AnalyzePosts(ctx context.Context, posts []models.ContentItem, allowed policy.AllowedSet) (*models.PostAnalysis, error) {
	return runStage(ctx, StagePosts, func() (*models.PostAnalysis, error) {
		kept := p.filter.Apply(ctx, posts, allowed)
		if kept.Len() == 0 {
			return nil, nil
		}

		texts := kept.Texts()
		topics, err := p.topics(texts, p.opts.TopTopics)
		if err != nil {
			return nil, err
		}

		var runes int
		for _, text := range texts {
			runes += utf8.RuneCountInString(text)
		}

		return &models.PostAnalysis{
			TopTopics:          topics,
			AvgPostLength:      float64(runes) / float64(len(texts)),
			TotalPosts:         kept.Len(),
			RatingDistribution: kept.RatingDistribution(),
		}, nil
	})
}

// topics extracts the top n terms. An empty vocabulary is not an error.
func (p *Pipeline) topics(texts []string, n int) ([]models.Topic, error) {
	topics := []models.Topic{}
	if p.extractor == nil {
		return topics, nil
	}

	terms, err := p.extractor.TopTerms(texts, n)
	if errors.Is(err, features.ErrEmptyVocabulary) {
		return topics, nil
	}
	if err != nil {
		return nil, fmt.Errorf("extract topics: %w", err)
	}
	for _, t := range terms {
		topics = append(topics, models.Topic{Term: t.Term, Score: t.Score})
	}
	return topics, nil
}

// AnalyzeStories summarizes the allowed stories. Missing type and duration
// take the story defaults. Percentages and the mean duration are nil when no
// story passes the filter.
func (p *Pipeline) AnalyzeStories(ctx context.Context, stories []models.ContentItem, allowed policy.AllowedSet) (*models.StoriesAnalysis, error) {
	return runStage(ctx, StageStories, func() (*models.StoriesAnalysis, error) {
		kept := p.filter.Apply(ctx, stories, allowed)

		result := &models.StoriesAnalysis{
			TotalStories:          kept.Len(),
			MediaTypeDistribution: make(map[string]int),
			RatingDistribution:    kept.RatingDistribution(),
		}
		if kept.Len() == 0 {
			return result, nil
		}

		var premium, viewed int
		var duration float64
		for _, entry := range kept.Entries {
			item := entry.Item
			result.MediaTypeDistribution[item.StoryType()]++
			if item.IsPremium != nil && *item.IsPremium {
				premium++
			}
			if item.IsViewed != nil && *item.IsViewed {
				viewed++
			}
			duration += item.StoryDuration()
		}

		n := float64(kept.Len())
		premiumPct := float64(premium) / n * 100
		viewedPct := float64(viewed) / n * 100
		avgDuration := duration / n
		result.PremiumStoriesPercent = &premiumPct
		result.ViewedStoriesPercent = &viewedPct
		result.AvgDuration = &avgDuration
		return result, nil
	})
}

// Recommend derives shallow recommendations from the allowed part of history.
// userData is accepted for parity with the input document and is not used
// for scoring.
func (p *Pipeline) Recommend(ctx context.Context, userData map[string]any, history []models.ContentItem, allowed policy.AllowedSet) (*models.Recommendations, error) {
	return runStage(ctx, StageRecommend, func() (*models.Recommendations, error) {
		kept := p.filter.Apply(ctx, history, allowed)

		result := &models.Recommendations{
			SuggestedTopics:         []string{},
			OptimalPostingTimes:     peakHours(kept, p.opts.PostingHours),
			ContentTypeDistribution: typeShares(kept),
			RecommendedCategories:   []string{},
		}

		if kept.Len() > 0 && p.opts.SuggestedTopics > 0 {
			topics, err := p.topics(kept.Texts(), p.opts.SuggestedTopics)
			if err != nil {
				logging.Ctx(ctx).Debug().Err(err).Msg("No suggested topics")
			}
			for _, t := range topics {
				result.SuggestedTopics = append(result.SuggestedTopics, t.Term)
			}
		}

		logging.Ctx(ctx).Debug().
			Int("user_data_keys", len(userData)).
			Int("history", kept.Len()).
			Ints("posting_hours", result.OptimalPostingTimes).
			Msg("Recommendations generated")

		return result, nil
	})
}

// typeShares returns each type's share among kept items that declare a type.
func typeShares(kept filter.Collection) map[string]float64 {
	counts := make(map[string]int)
	var total int
	for _, entry := range kept.Entries {
		if entry.Item.Type == "" {
			continue
		}
		counts[entry.Item.Type]++
		total++
	}

	shares := make(map[string]float64, len(counts))
	for t, c := range counts {
		shares[t] = float64(c) / float64(total)
	}
	return shares
}

// peakHours returns up to n hours of day ordered by mean engagement
// descending, ties broken by hour ascending. Only items with both a parseable
// timestamp and an engagement value take part.
func peakHours(kept filter.Collection, n int) []int {
	var sum [24]float64
	var count [24]int
	for _, entry := range kept.Entries {
		item := entry.Item
		if item.Engagement == nil {
			continue
		}
		ts, ok := ParseTimestamp(item.Timestamp)
		if !ok {
			continue
		}
		h := ts.Hour()
		sum[h] += *item.Engagement
		count[h]++
	}

	type hourMean struct {
		hour int
		mean float64
	}
	var means []hourMean
	for h := 0; h < 24; h++ {
		if count[h] > 0 {
			means = append(means, hourMean{hour: h, mean: sum[h] / float64(count[h])})
		}
	}
	sort.SliceStable(means, func(i, j int) bool {
		if means[i].mean != means[j].mean {
			return means[i].mean > means[j].mean
		}
		return means[i].hour < means[j].hour
	})

	hours := []int{}
	for i := 0; i < len(means) && i < n; i++ {
		hours = append(hours, means[i].hour)
	}
	return hours
}

// PredictEngagement scores a feature map. Features are ordered by name
// before being passed to the classifier.
func (p *Pipeline) PredictEngagement(ctx context.Context, featureMap map[string]float64) (*models.EngagementPrediction, error) {
	return runStage(ctx, StageEngagement, func() (*models.EngagementPrediction, error) {
		if p.classifier == nil {
			return nil, engagement.ErrNotConfigured
		}

		names := make([]string, 0, len(featureMap))
		for name := range featureMap {
			names = append(names, name)
		}
		sort.Strings(names)

		x := make([]float64, len(names))
		for i, name := range names {
			x[i] = featureMap[name]
		}

		proba, err := p.classifier.PredictProba(x)
		if err != nil {
			return nil, fmt.Errorf("predict: %w", err)
		}
		if len(proba) != 2 {
			return nil, fmt.Errorf("predict: got %d class probabilities, want 2", len(proba))
		}

		return &models.EngagementPrediction{
			EngagementScore: proba[1],
			Confidence:      max(proba[0], proba[1]),
		}, nil
	})
}

// Run executes every stage for one input document. A failed stage is null in
// the output and listed in StageErrors; the other stages still run. History
// for recommendations is the post list. Engagement is only predicted when the
// input carries content features.
func (p *Pipeline) Run(ctx context.Context, in *models.Input, allowed policy.AllowedSet) (*models.Output, error) {
	if in == nil {
		return nil, ErrNilInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &models.Output{}
	record := func(err error) {
		var stageErr *StageError
		if errors.As(err, &stageErr) {
			if out.StageErrors == nil {
				out.StageErrors = make(map[string]string)
			}
			out.StageErrors[stageErr.Stage] = stageErr.Err.Error()
		}
	}

	var err error
	out.PostAnalysis, err = p.AnalyzePosts(ctx, in.Posts, allowed)
	record(err)
	out.StoriesAnalysis, err = p.AnalyzeStories(ctx, in.Stories, allowed)
	record(err)
	out.Recommendations, err = p.Recommend(ctx, in.UserData, in.Posts, allowed)
	record(err)
	if len(in.ContentFeatures) > 0 {
		out.EngagementPrediction, err = p.PredictEngagement(ctx, in.ContentFeatures)
		record(err)
	}

	logging.Ctx(ctx).Info().
		Int("posts", len(in.Posts)).
		Int("stories", len(in.Stories)).
		Str("allowed", allowed.String()).
		Int("failed_stages", len(out.StageErrors)).
		Msg("Analysis complete")

	return out, nil
}
