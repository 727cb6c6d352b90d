// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package api

import "errors"

// Request body errors.
var (
	// ErrEmptyBody indicates a POST without a body.
	ErrEmptyBody = errors.New("request body is empty")

	// ErrBodyTooLarge indicates the body exceeded the configured limit.
	ErrBodyTooLarge = errors.New("request body too large")

	// ErrAuditDisabled indicates the audit routes were called without a store.
	ErrAuditDisabled = errors.New("audit ledger is disabled")
)
