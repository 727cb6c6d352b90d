// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package api

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/contentgate/internal/audit"
)

func seedDecisions(t *testing.T, store audit.Store) {
	t.Helper()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seed := []audit.Decision{
		{ID: "d1", Timestamp: base, CorrelationID: "c1", ItemID: "p1", Rating: "G", Source: "default", Allowed: true, Ceiling: "G"},
		{ID: "d2", Timestamp: base.Add(time.Minute), CorrelationID: "c1", ItemID: "p2", Rating: "PG-13", Source: "keyword", Allowed: false, Ceiling: "G"},
		{ID: "d3", Timestamp: base.Add(2 * time.Minute), CorrelationID: "c2", ItemID: "p3", Rating: "R", Source: "metadata", Allowed: true, Ceiling: "R"},
	}
	for i := range seed {
		if err := store.Save(context.Background(), &seed[i]); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}
}

func TestListDecisions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		query     string
		wantIDs   []string
		wantTotal int64
		wantMore  bool
	}{
		{"all", "", []string{"d3", "d2", "d1"}, 3, false},
		{"by correlation", "correlation_id=c1", []string{"d2", "d1"}, 2, false},
		{"by rating label", "rating=pg-13", []string{"d2"}, 1, false},
		{"excluded only", "allowed=false", []string{"d2"}, 1, false},
		{"time window", "start_time=2026-03-01T12:00:30Z&end_time=2026-03-01T12:01:30Z", []string{"d2"}, 1, false},
		{"limited", "limit=1", []string{"d3"}, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, store := testServer(t, 0)
			seedDecisions(t, store)

			w := do(t, h, http.MethodGet, "/api/v1/audit/decisions?"+tt.query, "")
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
			}

			env := decodeEnvelope(t, w.Body.Bytes())
			var data DecisionList
			if err := json.Unmarshal(env.Data, &data); err != nil {
				t.Fatalf("invalid data: %v", err)
			}
			var ids []string
			for _, d := range data.Decisions {
				ids = append(ids, d.ID)
			}
			if len(ids) != len(tt.wantIDs) {
				t.Fatalf("ids = %v, want %v", ids, tt.wantIDs)
			}
			for i := range ids {
				if ids[i] != tt.wantIDs[i] {
					t.Errorf("ids = %v, want %v", ids, tt.wantIDs)
					break
				}
			}

			p := env.Meta.Pagination
			if p == nil || p.Total != tt.wantTotal || p.HasMore != tt.wantMore || p.Count != len(tt.wantIDs) {
				t.Errorf("pagination = %+v", p)
			}
		})
	}
}

func TestParseDecisionFilter_Errors(t *testing.T) {
	t.Parallel()

	tests := []string{
		"rating=XXX",
		"allowed=maybe",
		"start_time=yesterday",
		"end_time=2026-13-01",
		"limit=0",
		"limit=abc",
	}

	for _, raw := range tests {
		q, err := url.ParseQuery(raw)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := parseDecisionFilter(q); err == nil {
			t.Errorf("parseDecisionFilter(%q) error = nil", raw)
		}
	}
}

func TestParseDecisionFilter_LimitCapped(t *testing.T) {
	t.Parallel()

	f, err := parseDecisionFilter(url.Values{"limit": {"50000"}})
	if err != nil {
		t.Fatalf("parseDecisionFilter() error = %v", err)
	}
	if f.Limit != MaxDecisionLimit {
		t.Errorf("Limit = %d, want %d", f.Limit, MaxDecisionLimit)
	}
}

func TestListDecisions_BadQuery(t *testing.T) {
	t.Parallel()

	h, _ := testServer(t, 0)
	w := do(t, h, http.MethodGet, "/api/v1/audit/decisions?allowed=maybe", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetDecision(t *testing.T) {
	t.Parallel()

	h, store := testServer(t, 0)
	seedDecisions(t, store)

	w := do(t, h, http.MethodGet, "/api/v1/audit/decisions/d2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w.Body.Bytes())
	var d audit.Decision
	if err := json.Unmarshal(env.Data, &d); err != nil {
		t.Fatalf("invalid data: %v", err)
	}
	if d.ItemID != "p2" || d.Allowed {
		t.Errorf("decision = %+v", d)
	}

	w = do(t, h, http.MethodGet, "/api/v1/audit/decisions/missing", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("missing decision status = %d, want 404", w.Code)
	}
}

func TestAuditRoutes_Disabled(t *testing.T) {
	t.Parallel()

	router := NewRouter(NewHandler(HandlerDeps{}), NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true}))

	for _, path := range []string{"/api/v1/audit/decisions", "/api/v1/audit/decisions/d1"} {
		w := do(t, router, http.MethodGet, path, "")
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("%s status = %d, want 503", path, w.Code)
		}
	}
}
