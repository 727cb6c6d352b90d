// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package api

import (
	"net/http"

	"github.com/tomtom215/contentgate/internal/analysis"
	"github.com/tomtom215/contentgate/internal/audit"
	"github.com/tomtom215/contentgate/internal/logging"
	"github.com/tomtom215/contentgate/internal/policy"
	"github.com/tomtom215/contentgate/internal/rating"
	"github.com/tomtom215/contentgate/internal/validation"
)

// DefaultMaxBodyBytes caps request bodies when no limit is configured.
const DefaultMaxBodyBytes int64 = 8 << 20

// Handler serves the analysis, rating and audit routes.
type Handler struct {
	pipeline   *analysis.Pipeline
	classifier *rating.Classifier
	audit      audit.Store
	maxBody    int64
}

// HandlerDeps are the collaborators of a Handler.
type HandlerDeps struct {
	Pipeline *analysis.Pipeline

	// Classifier serves /ratings/classify. Nil uses rating.Default().
	Classifier *rating.Classifier

	// Audit backs the /audit routes. Nil disables them with 503.
	Audit audit.Store

	MaxBodyBytes int64
}

// NewHandler creates a handler. A nil pipeline gets an unconfigured one
// built around the default classifier.
func NewHandler(deps HandlerDeps) *Handler {
	if deps.Pipeline == nil {
		deps.Pipeline = analysis.New(nil, nil, nil, analysis.DefaultOptions())
	}
	if deps.Classifier == nil {
		deps.Classifier = rating.Default()
	}
	if deps.MaxBodyBytes <= 0 {
		deps.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handler{
		pipeline:   deps.Pipeline,
		classifier: deps.Classifier,
		audit:      deps.Audit,
		maxBody:    deps.MaxBodyBytes,
	}
}

// Homepage handles POST /api/ml/homepage.
//
// The viewer's allowed set is derived from this request alone. The response
// is the analysis output document, or {"error": ...} with 400/413 for a bad
// body and 500 when analysis cannot run at all.
func (h *Handler) Homepage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req HomepageRequest
	if err := decodeBody(w, r, h.maxBody, &req); err != nil {
		writeDocumentError(w, decodeStatus(err), err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		writeDocumentError(w, http.StatusBadRequest, verr.Error())
		return
	}

	profile := req.Profile()
	session := policy.New()
	session.SetProfile(profile.Verified, profile.Age)
	allowed := session.AllowedRatings()
	logging.Ctx(ctx).Info().
		Str("user", logging.SanitizeUserID(req.UserID)).
		Bool("verified", req.IsAgeVerified).
		Str("allowed", allowed.String()).
		Int("posts", len(req.Posts)).
		Int("stories", len(req.Stories)).
		Msg("Homepage analysis requested")

	out, err := h.pipeline.Run(ctx, req.Input(), allowed)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Homepage analysis failed")
		writeDocumentError(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// RatingInfo describes one rating and who may see it.
type RatingInfo struct {
	Rating      rating.Rating `json:"rating"`
	Description string        `json:"description"`

	// Unverified reports whether viewers without age verification see it.
	Unverified bool `json:"unverified"`

	// MinVerifiedAge is the youngest verified age allowed to see it, or nil
	// when no profile is ever granted it.
	MinVerifiedAge *int `json:"min_verified_age"`
}

// Ratings handles GET /api/v1/ratings.
func (h *Handler) Ratings(w http.ResponseWriter, r *http.Request) {
	all := rating.All()
	infos := make([]RatingInfo, len(all))
	for i, rt := range all {
		infos[i] = RatingInfo{
			Rating:         rt,
			Description:    rt.Description(),
			Unverified:     policy.Restricted.Contains(rt),
			MinVerifiedAge: minVerifiedAge(rt),
		}
	}
	NewResponseWriter(w, r).Success(infos)
}

// minVerifiedAge scans the valid age range against the policy.
func minVerifiedAge(rt rating.Rating) *int {
	for age := 0; age <= 150; age++ {
		if policy.Derive(policy.AgeProfile{Verified: true, Age: age}).Contains(rt) {
			return &age
		}
	}
	return nil
}

// ClassifyResponse is the data payload of /ratings/classify.
type ClassifyResponse struct {
	rating.Outcome
	Description string `json:"description"`

	// Failure explains a conservative fallback rating.
	Failure string `json:"failure,omitempty"`
}

// Classify handles POST /api/v1/ratings/classify.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rw := NewResponseWriter(w, r)

	var req ClassifyRequest
	if err := decodeBody(w, r, h.maxBody, &req); err != nil {
		if decodeStatus(err) == http.StatusRequestEntityTooLarge {
			rw.PayloadTooLarge(err.Error())
			return
		}
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError("invalid classify request", validationDetails(verr))
		return
	}

	out := h.classifier.Classify(req.Content, req.Metadata)
	resp := ClassifyResponse{Outcome: out, Description: out.Rating.Description()}
	if out.Err != nil {
		resp.Failure = out.Err.Error()
	}

	logging.Ctx(ctx).Debug().
		Str("text", logging.Excerpt(req.Content, 64)).
		Strs("metadata_keys", logging.MetadataKeys(req.Metadata)).
		Str("rating", out.Rating.String()).
		Str("source", string(out.Source)).
		Msg("Content classified")

	rw.Success(resp)
}
