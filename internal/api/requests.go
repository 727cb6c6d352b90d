// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/contentgate/internal/models"
	"github.com/tomtom215/contentgate/internal/policy"
	"github.com/tomtom215/contentgate/internal/validation"
)

// HomepageRequest is the body of POST /api/ml/homepage.
type HomepageRequest struct {
	UserID          string               `json:"userId" validate:"max=256"`
	Age             *int                 `json:"age" validate:"required,min=0,max=150"`
	IsAgeVerified   bool                 `json:"isAgeVerified"`
	Posts           []models.ContentItem `json:"posts" validate:"dive"`
	Stories         []models.ContentItem `json:"stories" validate:"dive"`
	UserData        map[string]any       `json:"user_data,omitempty"`
	ContentFeatures map[string]float64   `json:"content_features,omitempty"`
}

// Profile returns the viewer's age profile. Call only after validation.
func (req *HomepageRequest) Profile() policy.AgeProfile {
	return policy.AgeProfile{Verified: req.IsAgeVerified, Age: *req.Age}
}

// Input converts the request into an analysis input with story defaults
// applied.
func (req *HomepageRequest) Input() *models.Input {
	var stories []models.ContentItem
	if req.Stories != nil {
		stories = make([]models.ContentItem, len(req.Stories))
		for i, s := range req.Stories {
			stories[i] = s.WithStoryDefaults()
		}
	}
	return &models.Input{
		Posts:           req.Posts,
		Stories:         stories,
		UserData:        req.UserData,
		ContentFeatures: req.ContentFeatures,
	}
}

// ClassifyRequest is the body of POST /api/v1/ratings/classify.
type ClassifyRequest struct {
	Content  string         `json:"content" validate:"max=1048576"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// fieldError is the wire form of one validation failure.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func validationDetails(verr *validation.RequestValidationError) []fieldError {
	errs := verr.Errors()
	details := make([]fieldError, len(errs))
	for i := range errs {
		details[i] = fieldError{Field: errs[i].Field(), Message: errs[i].Error()}
	}
	return details
}

// decodeBody reads at most maxBytes from the request body and unmarshals it
// into dst. It returns ErrEmptyBody, ErrBodyTooLarge, or a decode error.
func decodeBody(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, tooLarge.Limit)
		}
		return fmt.Errorf("read request body: %w", err)
	}
	if len(body) == 0 {
		return ErrEmptyBody
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// decodeStatus maps a decodeBody error to its status code.
func decodeStatus(err error) int {
	if errors.Is(err, ErrBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
