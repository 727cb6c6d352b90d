// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package main

import (
	"fmt"

	"github.com/tomtom215/contentgate/internal/analysis"
	"github.com/tomtom215/contentgate/internal/audit"
	"github.com/tomtom215/contentgate/internal/config"
	"github.com/tomtom215/contentgate/internal/engagement"
	"github.com/tomtom215/contentgate/internal/features"
	"github.com/tomtom215/contentgate/internal/filter"
	"github.com/tomtom215/contentgate/internal/logging"
	"github.com/tomtom215/contentgate/internal/rating"
)

// engine holds the components built from configuration. The classifier,
// extractor and model are immutable and safe to share between requests.
type engine struct {
	classifier *rating.Classifier
	pipeline   *analysis.Pipeline

	// store is nil when the audit ledger is disabled.
	store audit.Store
}

func newEngine(cfg *config.Config) (*engine, error) {
	classifier := rating.NewClassifier(cfg.Rating.ExtraKeywords...)

	var opts []filter.Option
	var store audit.Store
	if cfg.Audit.Enabled {
		s, err := openAuditStore(cfg.Audit)
		if err != nil {
			return nil, err
		}
		store = s
		opts = append(opts, filter.WithSink(audit.NewRecorder(store, cfg.Audit.Backend)))
	}

	pipeline := analysis.New(
		filter.New(classifier, opts...),
		features.NewTFIDF(cfg.Analysis.TFIDF),
		engagement.NewLogistic(cfg.Engagement),
		cfg.Analysis.Pipeline,
	)

	logging.Debug().
		Int("keywords", len(classifier.Keywords())).
		Bool("audit", store != nil).
		Int("engagement_features", len(cfg.Engagement.Weights)).
		Msg("Engine initialized")

	return &engine{
		classifier: classifier,
		pipeline:   pipeline,
		store:      store,
	}, nil
}

func openAuditStore(cfg config.AuditConfig) (audit.Store, error) {
	store, err := audit.NewStore(cfg.Backend, cfg.Path, cfg.MaxDecisions)
	if err != nil {
		return nil, fmt.Errorf("open audit store: %w", err)
	}
	return store, nil
}

// Close releases the audit store.
func (e *engine) Close() {
	if e.store == nil {
		return
	}
	if err := e.store.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing audit store")
	}
}
