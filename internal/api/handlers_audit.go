// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/contentgate/internal/audit"
	"github.com/tomtom215/contentgate/internal/rating"
)

// Audit list limits.
const (
	DefaultDecisionLimit = 100
	MaxDecisionLimit     = 1000
)

// DecisionList is the data payload of GET /api/v1/audit/decisions.
type DecisionList struct {
	Decisions []audit.Decision `json:"decisions"`
}

// ListDecisions handles GET /api/v1/audit/decisions.
//
// Query parameters: correlation_id, item_id, rating, source, allowed,
// start_time and end_time (RFC3339), limit (default 100, max 1000).
func (h *Handler) ListDecisions(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.audit == nil {
		rw.ServiceUnavailable(ErrAuditDisabled.Error())
		return
	}

	filter, err := parseDecisionFilter(r.URL.Query())
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	decisions, err := h.audit.Query(r.Context(), filter)
	if err != nil {
		rw.AuditError(err)
		return
	}

	countFilter := filter
	countFilter.Limit = 0
	total, err := h.audit.Count(r.Context(), countFilter)
	if err != nil {
		rw.AuditError(err)
		return
	}

	if decisions == nil {
		decisions = []audit.Decision{}
	}
	rw.SuccessWithPagination(DecisionList{Decisions: decisions}, &PaginationMeta{
		Total:   total,
		Count:   len(decisions),
		Limit:   filter.Limit,
		HasMore: total > int64(len(decisions)),
	})
}

// GetDecision handles GET /api/v1/audit/decisions/{id}.
func (h *Handler) GetDecision(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.audit == nil {
		rw.ServiceUnavailable(ErrAuditDisabled.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		rw.BadRequest("decision ID is required")
		return
	}

	d, err := h.audit.Get(r.Context(), id)
	if errors.Is(err, audit.ErrNotFound) {
		rw.NotFound("decision not found")
		return
	}
	if err != nil {
		rw.AuditError(err)
		return
	}
	rw.Success(d)
}

func parseDecisionFilter(q url.Values) (audit.QueryFilter, error) {
	filter := audit.QueryFilter{
		CorrelationID: q.Get("correlation_id"),
		ItemID:        q.Get("item_id"),
		Source:        q.Get("source"),
		Limit:         DefaultDecisionLimit,
	}

	if v := q.Get("rating"); v != "" {
		rt, err := rating.Parse(v)
		if err != nil {
			return filter, err
		}
		filter.Rating = rt.String()
	}

	if v := q.Get("allowed"); v != "" {
		allowed, err := strconv.ParseBool(v)
		if err != nil {
			return filter, fmt.Errorf("allowed must be true or false, got %q", v)
		}
		filter.Allowed = &allowed
	}

	for _, p := range []struct {
		key string
		dst **time.Time
	}{
		{"start_time", &filter.StartTime},
		{"end_time", &filter.EndTime},
	} {
		v := q.Get(p.key)
		if v == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, fmt.Errorf("%s must be RFC3339, got %q", p.key, v)
		}
		*p.dst = &ts
	}

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return filter, fmt.Errorf("limit must be a positive integer, got %q", v)
		}
		filter.Limit = min(limit, MaxDecisionLimit)
	}

	return filter, nil
}
