// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package audit

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a decision does not exist.
var ErrNotFound = errors.New("audit decision not found")

// Decision is the audit record of one item's filter decision.
type Decision struct {
	// ID is a unique identifier for this decision.
	ID string `json:"id"`

	// Timestamp when the decision was made.
	Timestamp time.Time `json:"timestamp"`

	// CorrelationID links all decisions of one invocation or request.
	CorrelationID string `json:"correlation_id,omitempty"`

	// RequestID from the originating HTTP request.
	RequestID string `json:"request_id,omitempty"`

	// ItemID of the content item, when it has one.
	ItemID string `json:"item_id,omitempty"`

	// Position of the item in its input collection.
	Position int `json:"position"`

	Rating  string   `json:"rating"`
	Source  string   `json:"source"`
	Reason  string   `json:"reason"`
	Matched []string `json:"matched,omitempty"`

	// Allowed reports whether the item was kept.
	Allowed bool `json:"allowed"`

	// Ceiling is the most permissive rating the viewer was allowed.
	Ceiling string `json:"ceiling"`
}

// Store persists decisions.
type Store interface {
	// Save persists a decision.
	Save(ctx context.Context, d *Decision) error

	// Get retrieves a decision by ID.
	Get(ctx context.Context, id string) (*Decision, error)

	// Query retrieves decisions matching the filter, most recent first.
	Query(ctx context.Context, filter QueryFilter) ([]Decision, error)

	// Count returns the number of decisions matching the filter.
	Count(ctx context.Context, filter QueryFilter) (int64, error)

	// Close releases backend resources.
	Close() error
}

// QueryFilter defines filtering options for decision queries.
type QueryFilter struct {
	CorrelationID string     `json:"correlation_id,omitempty"`
	ItemID        string     `json:"item_id,omitempty"`
	Rating        string     `json:"rating,omitempty"`
	Source        string     `json:"source,omitempty"`
	Allowed       *bool      `json:"allowed,omitempty"`
	StartTime     *time.Time `json:"start_time,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`

	// Limit is the maximum number of results. Zero means unlimited.
	Limit int `json:"limit,omitempty"`
}

// Matches reports whether d satisfies every criterion of the filter.
func (f *QueryFilter) Matches(d *Decision) bool {
	if f.CorrelationID != "" && d.CorrelationID != f.CorrelationID {
		return false
	}
	if f.ItemID != "" && d.ItemID != f.ItemID {
		return false
	}
	if f.Rating != "" && d.Rating != f.Rating {
		return false
	}
	if f.Source != "" && d.Source != f.Source {
		return false
	}
	if f.Allowed != nil && d.Allowed != *f.Allowed {
		return false
	}
	if f.StartTime != nil && d.Timestamp.Before(*f.StartTime) {
		return false
	}
	if f.EndTime != nil && d.Timestamp.After(*f.EndTime) {
		return false
	}
	return true
}
