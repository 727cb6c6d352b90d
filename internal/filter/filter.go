// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package filter

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/contentgate/internal/audit"
	"github.com/tomtom215/contentgate/internal/logging"
	"github.com/tomtom215/contentgate/internal/metrics"
	"github.com/tomtom215/contentgate/internal/models"
	"github.com/tomtom215/contentgate/internal/policy"
	"github.com/tomtom215/contentgate/internal/rating"
)

// DecisionSink receives one decision per filtered item.
type DecisionSink interface {
	RecordDecision(ctx context.Context, d audit.Decision)
}

// Entry is a kept item together with how its rating was resolved.
type Entry struct {
	Item    models.ContentItem
	Outcome rating.Outcome
}

// Collection is the order-preserving result of one Apply call.
type Collection struct {
	Entries []Entry

	// Allowed is the set the collection was filtered with.
	Allowed policy.AllowedSet

	// Excluded counts items dropped by the filter.
	Excluded int

	// ByRating counts kept items per resolved rating.
	ByRating map[rating.Rating]int
}

// Len returns the number of kept items.
func (c Collection) Len() int {
	return len(c.Entries)
}

// Items returns the kept items in input order.
func (c Collection) Items() []models.ContentItem {
	items := make([]models.ContentItem, len(c.Entries))
	for i := range c.Entries {
		items[i] = c.Entries[i].Item
	}
	return items
}

// Texts returns the text bodies of the kept items in input order.
func (c Collection) Texts() []string {
	texts := make([]string, len(c.Entries))
	for i := range c.Entries {
		texts[i] = c.Entries[i].Item.Text
	}
	return texts
}

// RatingDistribution returns ByRating keyed by rating label.
func (c Collection) RatingDistribution() map[string]int {
	dist := make(map[string]int, len(c.ByRating))
	for r, n := range c.ByRating {
		dist[r.String()] = n
	}
	return dist
}

// Resolve returns the rating outcome for item. It is pure and idempotent.
func Resolve(item models.ContentItem, classifier *rating.Classifier) rating.Outcome {
	out, _ := resolve(item, classifier)
	return out
}

// resolve also reports whether a declared rating was present but invalid.
func resolve(item models.ContentItem, classifier *rating.Classifier) (rating.Outcome, bool) {
	declared := strings.TrimSpace(item.ContentRating)
	if declared != "" {
		if r, err := rating.Parse(declared); err == nil {
			return rating.Declared(r), false
		}
	}

	if !item.HasSignal() {
		return rating.Fallback("no text, metadata or declared rating", nil), false
	}

	out := classifier.Classify(item.Text, item.Metadata)
	if declared != "" {
		out.Reason = fmt.Sprintf("%s (ignored invalid declared rating %q)", out.Reason, declared)
		return out, true
	}
	return out, false
}

// Filter applies allowed sets to item collections.
type Filter struct {
	classifier *rating.Classifier
	sink       DecisionSink
}

// Option configures a Filter.
type Option func(*Filter)

// WithSink sends every decision to sink.
func WithSink(sink DecisionSink) Option {
	return func(f *Filter) {
		f.sink = sink
	}
}

// New creates a filter. A nil classifier uses rating.Default().
func New(classifier *rating.Classifier, opts ...Option) *Filter {
	if classifier == nil {
		classifier = rating.Default()
	}
	f := &Filter{classifier: classifier}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Classifier returns the classifier used to backfill ratings.
func (f *Filter) Classifier() *rating.Classifier {
	return f.classifier
}

// Resolve returns the rating outcome for item.
func (f *Filter) Resolve(item models.ContentItem) rating.Outcome {
	return Resolve(item, f.classifier)
}

// Apply keeps the items whose resolved rating is in allowed.
func (f *Filter) Apply(ctx context.Context, items []models.ContentItem, allowed policy.AllowedSet) Collection {
	logger := logging.Ctx(ctx)
	result := Collection{
		Entries:  make([]Entry, 0, len(items)),
		Allowed:  allowed,
		ByRating: make(map[rating.Rating]int),
	}

	for i := range items {
		item := items[i]
		out, invalidDeclared := resolve(item, f.classifier)

		if invalidDeclared {
			metrics.RecordDeclaredRatingInvalid()
			logger.Warn().
				Str("item_id", item.ID).
				Int("position", i).
				Str("declared", item.ContentRating).
				Msg("Ignoring invalid declared content rating")
		}
		if !out.OK() {
			metrics.RecordClassificationFailure()
			logger.Warn().Err(out.Err).
				Str("item_id", item.ID).
				Int("position", i).
				Str("rating", out.Rating.String()).
				Msg("Classification failed, using conservative default")
		}

		keep := allowed.Contains(out.Rating)
		metrics.RecordFilterDecision(out.Rating.String(), string(out.Source), keep)
		if f.sink != nil {
			f.sink.RecordDecision(ctx, audit.Decision{
				ItemID:   item.ID,
				Position: i,
				Rating:   out.Rating.String(),
				Source:   string(out.Source),
				Reason:   out.Reason,
				Matched:  out.Matched,
				Allowed:  keep,
				Ceiling:  allowed.Ceiling().String(),
			})
		}

		if !keep {
			result.Excluded++
			continue
		}
		result.Entries = append(result.Entries, Entry{Item: item, Outcome: out})
		result.ByRating[out.Rating]++
	}

	logger.Debug().
		Int("input", len(items)).
		Int("kept", result.Len()).
		Int("excluded", result.Excluded).
		Str("allowed", allowed.String()).
		Msg("Content filtered")

	return result
}
