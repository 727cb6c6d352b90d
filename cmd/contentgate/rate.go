// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/contentgate/internal/api"
	"github.com/tomtom215/contentgate/internal/rating"
)

func newRateCmd(a *app) *cobra.Command {
	var adult bool

	cmd := &cobra.Command{
		Use:   "rate <text>...",
		Short: "Classify text and print the rating outcome",
		Long: `rate runs the rating rules over the given text and prints the outcome as
JSON. Multiple arguments are joined with spaces. A classification failure is
reported as the conservative PG-13 rating, not as an error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRate(strings.Join(args, " "), adult)
		},
	}
	cmd.Flags().BoolVar(&adult, "adult", false, "Set the "+rating.AdultContentKey+" metadata flag")
	return cmd
}

func (a *app) runRate(text string, adult bool) error {
	var metadata map[string]any
	if adult {
		metadata = map[string]any{rating.AdultContentKey: true}
	}

	classifier := rating.NewClassifier(a.cfg.Rating.ExtraKeywords...)
	out := classifier.Classify(text, metadata)

	resp := api.ClassifyResponse{Outcome: out, Description: out.Rating.Description()}
	if out.Err != nil {
		resp.Failure = out.Err.Error()
	}
	if err := writeJSON(a.stdout, resp); err != nil {
		return fmt.Errorf("write outcome: %w", err)
	}
	return nil
}
