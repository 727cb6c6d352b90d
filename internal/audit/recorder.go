// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/contentgate/internal/logging"
	"github.com/tomtom215/contentgate/internal/metrics"
)

// Recorder writes filter decisions to a Store.
type Recorder struct {
	store   Store
	backend string
	now     func() time.Time
}

// NewRecorder creates a recorder for store. backend labels metrics.
func NewRecorder(store Store, backend string) *Recorder {
	if backend == "" {
		backend = BackendMemory
	}
	return &Recorder{
		store:   store,
		backend: backend,
		now:     time.Now,
	}
}

// RecordDecision stamps and saves d. Failures are logged, never returned.
func (r *Recorder) RecordDecision(ctx context.Context, d Decision) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.Timestamp.IsZero() {
		d.Timestamp = r.now().UTC()
	}
	if d.CorrelationID == "" {
		d.CorrelationID = logging.CorrelationIDFromContext(ctx)
	}
	if d.RequestID == "" {
		d.RequestID = logging.RequestIDFromContext(ctx)
	}

	err := r.store.Save(ctx, &d)
	metrics.RecordAuditWrite(r.backend, err)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).
			Str("item_id", d.ItemID).
			Str("rating", d.Rating).
			Msg("Failed to save audit decision")
	}
}

// Store returns the underlying store.
func (r *Recorder) Store() Store {
	return r.store
}
