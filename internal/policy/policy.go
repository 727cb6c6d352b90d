// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package policy

import (
	"fmt"
	"sync"

	"github.com/goccy/go-json"

	"github.com/tomtom215/contentgate/internal/rating"
	"github.com/tomtom215/contentgate/internal/validation"
)

// Age thresholds for the verified tiers.
const (
	AdultAge = 18
	TeenAge  = 13
)

// AgeProfile is the viewer's verification state. It is recomputed per
// session and never persisted.
type AgeProfile struct {
	Verified bool `json:"is_verified"`
	Age      int  `json:"age" validate:"min=0,max=150"`
}

// Validate checks the profile at a system boundary.
func (p AgeProfile) Validate() error {
	if err := validation.ValidateStruct(&p); err != nil {
		return fmt.Errorf("invalid age profile: %w", err)
	}
	return nil
}

// AllowedSet is a G-prefixed contiguous range of ratings, identified by its
// most permissive member.
type AllowedSet struct {
	ceiling rating.Rating
}

// Restricted is the set granted to unverified viewers.
var Restricted = AllowedSet{ceiling: rating.G}

// Ceiling returns the most restrictive rating in the set.
func (s AllowedSet) Ceiling() rating.Rating {
	if !s.ceiling.Valid() {
		return rating.G
	}
	return s.ceiling
}

// Contains reports whether r may be shown.
func (s AllowedSet) Contains(r rating.Rating) bool {
	return r.Valid() && !s.Ceiling().Less(r)
}

// Ratings returns the members in ascending order.
func (s AllowedSet) Ratings() []rating.Rating {
	ceiling := s.Ceiling()
	out := make([]rating.Rating, 0, int(ceiling))
	for _, r := range rating.All() {
		if ceiling.Less(r) {
			break
		}
		out = append(out, r)
	}
	return out
}

// String renders the set as "{G, PG}".
func (s AllowedSet) String() string {
	out := "{"
	for i, r := range s.Ratings() {
		if i > 0 {
			out += ", "
		}
		out += r.String()
	}
	return out + "}"
}

// MarshalJSON encodes the set as an ordered list of labels.
func (s AllowedSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Ratings())
}

// Derive maps a profile to its allowed set. No tier includes NC-17.
func Derive(p AgeProfile) AllowedSet {
	switch {
	case !p.Verified:
		return Restricted
	case p.Age >= AdultAge:
		return AllowedSet{ceiling: rating.R}
	case p.Age >= TeenAge:
		return AllowedSet{ceiling: rating.PG13}
	default:
		return AllowedSet{ceiling: rating.PG}
	}
}

// Policy holds one session's derived allowed set.
// The zero value is ready to use and allows only G.
type Policy struct {
	mu      sync.RWMutex
	allowed AllowedSet
	set     bool
}

// New returns a policy with no profile established.
func New() *Policy {
	return &Policy{}
}

// SetProfile establishes the profile and recomputes the allowed set.
func (p *Policy) SetProfile(verified bool, age int) {
	allowed := Derive(AgeProfile{Verified: verified, Age: age})

	p.mu.Lock()
	p.allowed = allowed
	p.set = true
	p.mu.Unlock()
}

// AllowedRatings returns the current allowed set, or {G} before SetProfile.
func (p *Policy) AllowedRatings() AllowedSet {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.set {
		return Restricted
	}
	return p.allowed
}
