// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package rating

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Rating is an age-appropriateness label. Higher values are more restrictive.
type Rating int

const (
	// Unknown is the zero value. It never results from classification.
	Unknown Rating = iota
	// G is suitable for all ages.
	G
	// PG suggests parental guidance.
	PG
	// PG13 may be inappropriate for children under 13.
	PG13
	// R is restricted to adults.
	R
	// NC17 is adults only.
	NC17
)

// ConservativeDefault is the rating assigned whenever classification fails.
const ConservativeDefault = PG13

// ErrUnknownRating is returned when a label is not part of the rating scale.
var ErrUnknownRating = errors.New("unknown content rating")

var ratingLabels = map[Rating]string{
	G:    "G",
	PG:   "PG",
	PG13: "PG-13",
	R:    "R",
	NC17: "NC-17",
}

// ratingDescriptions match the audience text shown on the rating badge.
var ratingDescriptions = map[Rating]string{
	G:    "General Audience - Suitable for all ages",
	PG:   "Parental Guidance - Some material may not be suitable for children",
	PG13: "Some material may be inappropriate for children under 13",
	R:    "Restricted - Under 18 requires parent/guardian",
	NC17: "Adults Only - No one 17 and under admitted",
}

// All returns every rating in ascending order of restrictiveness.
func All() []Rating {
	return []Rating{G, PG, PG13, R, NC17}
}

// String returns the canonical label ("PG-13", ...), or "unknown".
func (r Rating) String() string {
	if label, ok := ratingLabels[r]; ok {
		return label
	}
	return "unknown"
}

// Description returns the human-readable audience description.
func (r Rating) Description() string {
	return ratingDescriptions[r]
}

// Valid reports whether r is one of the five ratings.
func (r Rating) Valid() bool {
	return r >= G && r <= NC17
}

// Less reports whether r is less restrictive than other.
func (r Rating) Less(other Rating) bool {
	return r < other
}

// Parse converts a label into a Rating. Surrounding whitespace and letter
// case are ignored, so "pg-13" parses as PG13.
func Parse(label string) (Rating, error) {
	normalized := strings.ToUpper(strings.TrimSpace(label))
	for r, l := range ratingLabels {
		if l == normalized {
			return r, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownRating, label)
}

// MarshalJSON encodes the rating as its label.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRating, int(r))
	}
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a rating label.
func (r *Rating) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return fmt.Errorf("decode rating: %w", err)
	}
	parsed, err := Parse(label)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
