// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package analysis

import (
	"errors"
	"fmt"
)

// Stage names, also used as output keys and metric labels.
const (
	StagePosts      = "post_analysis"
	StageStories    = "stories_analysis"
	StageRecommend  = "recommendations"
	StageEngagement = "engagement_prediction"
)

// ErrAnalysisStage matches every StageError.
var ErrAnalysisStage = errors.New("analysis stage failed")

// StageError reports a failure contained within one stage.
type StageError struct {
	Stage string
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap exposes both ErrAnalysisStage and the cause.
func (e *StageError) Unwrap() []error {
	return []error{ErrAnalysisStage, e.Err}
}
