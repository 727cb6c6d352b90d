// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide (it caches struct
// metadata) and is safe for concurrent use. Validation runs only at the
// boundaries of the system: CLI flags, HTTP request bodies and loaded
// datasets. Core components such as the age policy deliberately do not
// validate their inputs.
//
// Example usage:
//
//	type homepageRequest struct {
//	    Age int `validate:"min=0,max=150"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    writeError(w, http.StatusBadRequest, err.Error())
//	    return
//	}
//
// Errors are returned as *RequestValidationError with one ValidationError per
// failing field, each carrying a human-readable message.
package validation
