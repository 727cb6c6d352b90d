// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package rating

import (
	"errors"
	"sync"
	"testing"
)

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	c := NewClassifier()

	tests := []struct {
		name       string
		text       string
		metadata   map[string]any
		wantRating Rating
		wantSource Source
		wantOK     bool
	}{
		{
			name:       "clean text is G",
			text:       "A sunny day at the beach",
			wantRating: G,
			wantSource: SourceDefault,
			wantOK:     true,
		},
		{
			name:       "gambling keyword is PG-13",
			text:       "Tips for gambling responsibly",
			wantRating: PG13,
			wantSource: SourceKeyword,
			wantOK:     true,
		},
		{
			name:       "keyword match is case-insensitive",
			text:       "NSFW warning",
			wantRating: PG13,
			wantSource: SourceKeyword,
			wantOK:     true,
		},
		{
			name:       "keyword match is substring based",
			text:       "Adulthood is complicated",
			wantRating: PG13,
			wantSource: SourceKeyword,
			wantOK:     true,
		},
		{
			name:       "adult flag wins over clean text",
			text:       "A sunny day",
			metadata:   map[string]any{"is_adult_content": true},
			wantRating: R,
			wantSource: SourceMetadata,
			wantOK:     true,
		},
		{
			name:       "adult flag wins over keywords",
			text:       "violence",
			metadata:   map[string]any{"is_adult_content": true},
			wantRating: R,
			wantSource: SourceMetadata,
			wantOK:     true,
		},
		{
			name:       "adult flag false falls through",
			text:       "A sunny day",
			metadata:   map[string]any{"is_adult_content": false},
			wantRating: G,
			wantSource: SourceDefault,
			wantOK:     true,
		},
		{
			name:       "null adult flag falls through",
			text:       "alcohol review",
			metadata:   map[string]any{"is_adult_content": nil},
			wantRating: PG13,
			wantSource: SourceKeyword,
			wantOK:     true,
		},
		{
			name:       "metadata only without text",
			metadata:   map[string]any{"is_adult_content": false},
			wantRating: G,
			wantSource: SourceDefault,
			wantOK:     true,
		},
		{
			name:       "string adult flag is R",
			text:       "A sunny day",
			metadata:   map[string]any{"is_adult_content": "yes"},
			wantRating: R,
			wantSource: SourceMetadata,
			wantOK:     true,
		},
		{
			name:       "numeric adult flag is R",
			text:       "A sunny day",
			metadata:   map[string]any{"is_adult_content": float64(1)},
			wantRating: R,
			wantSource: SourceMetadata,
			wantOK:     true,
		},
		{
			name:       "zero adult flag falls through",
			text:       "A sunny day",
			metadata:   map[string]any{"is_adult_content": float64(0)},
			wantRating: G,
			wantSource: SourceDefault,
			wantOK:     true,
		},
		{
			name:       "empty string adult flag falls through",
			text:       "violence",
			metadata:   map[string]any{"is_adult_content": ""},
			wantRating: PG13,
			wantSource: SourceKeyword,
			wantOK:     true,
		},
		{
			name:       "adult flag wins over invalid utf-8",
			text:       "hi \xff",
			metadata:   map[string]any{"is_adult_content": true},
			wantRating: R,
			wantSource: SourceMetadata,
			wantOK:     true,
		},
		{
			name:       "nothing to classify is conservative",
			text:       "   ",
			wantRating: PG13,
			wantSource: SourceFallback,
			wantOK:     false,
		},
		{
			name:       "invalid utf-8 is conservative",
			text:       "clean \xff\xfe text",
			wantRating: PG13,
			wantSource: SourceFallback,
			wantOK:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := c.Classify(tt.text, tt.metadata)
			if got.Rating != tt.wantRating {
				t.Errorf("Rating = %s, want %s", got.Rating, tt.wantRating)
			}
			if got.Source != tt.wantSource {
				t.Errorf("Source = %s, want %s", got.Source, tt.wantSource)
			}
			if got.OK() != tt.wantOK {
				t.Errorf("OK() = %v, want %v (err=%v)", got.OK(), tt.wantOK, got.Err)
			}
			if !got.OK() && !errors.Is(got.Err, ErrClassification) {
				t.Errorf("Err = %v, want wrapping ErrClassification", got.Err)
			}
			if got.Reason == "" {
				t.Error("Reason must be populated")
			}
		})
	}
}

func TestClassifier_TruthyAdultFlag(t *testing.T) {
	t.Parallel()

	c := NewClassifier()
	set := []any{true, "true", "yes", "false", 1, -1, 1.5, int64(2), []any{true}, map[string]any{"v": true}}
	unset := []any{nil, false, 0, 0.0, "", []any{}, map[string]any{}, (*bool)(nil)}

	for _, v := range set {
		if got := c.DetermineRating("plain text", map[string]any{"is_adult_content": v}); got != R {
			t.Errorf("flag %#v resolved to %s, want R", v, got)
		}
	}
	for _, v := range unset {
		if got := c.DetermineRating("plain text", map[string]any{"is_adult_content": v}); got != G {
			t.Errorf("flag %#v resolved to %s, want G", v, got)
		}
	}
}

func TestClassifier_FailureNeverG(t *testing.T) {
	t.Parallel()

	var broken *Classifier
	out := broken.Classify("plain text", nil)
	if out.Rating != ConservativeDefault || out.Source != SourceFallback {
		t.Errorf("recovered panic = %s/%s, want %s/fallback", out.Rating, out.Source, ConservativeDefault)
	}
	if !errors.Is(out.Err, ErrClassification) {
		t.Errorf("Err = %v, want wrapping ErrClassification", out.Err)
	}
}

func TestClassifier_MatchedKeywords(t *testing.T) {
	t.Parallel()

	out := NewClassifier().Classify("drugs and alcohol and more drugs", nil)
	if len(out.Matched) != 2 || out.Matched[0] != "drugs" || out.Matched[1] != "alcohol" {
		t.Errorf("Matched = %v, want [drugs alcohol]", out.Matched)
	}
}

func TestClassifier_ExtraKeywordsOnlyAdd(t *testing.T) {
	t.Parallel()

	c := NewClassifier("Casino", "violence")
	if got := c.DetermineRating("casino night", nil); got != PG13 {
		t.Errorf("extra keyword: got %s, want PG-13", got)
	}
	if got := c.DetermineRating("gambling night", nil); got != PG13 {
		t.Errorf("default keyword dropped: got %s, want PG-13", got)
	}
	if n := len(c.Keywords()); n != len(DefaultMatureKeywords)+1 {
		t.Errorf("Keywords() has %d entries, want %d", n, len(DefaultMatureKeywords)+1)
	}
}

func TestClassifier_Idempotent(t *testing.T) {
	t.Parallel()

	c := Default()
	inputs := []struct {
		text     string
		metadata map[string]any
	}{
		{"clean", nil},
		{"explicit", nil},
		{"x", map[string]any{"is_adult_content": true}},
		{"", nil},
	}

	for _, in := range inputs {
		first := c.DetermineRating(in.text, in.metadata)
		for i := 0; i < 5; i++ {
			if got := c.DetermineRating(in.text, in.metadata); got != first {
				t.Fatalf("DetermineRating(%q) changed from %s to %s", in.text, first, got)
			}
		}
		if first != DetermineRating(in.text, in.metadata) {
			t.Errorf("package DetermineRating disagrees with Default() for %q", in.text)
		}
	}
}

func TestClassifier_Concurrent(t *testing.T) {
	t.Parallel()

	c := NewClassifier()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text, want := "calm lake", G
			if i%2 == 1 {
				text, want = "mature themes", PG13
			}
			if got := c.DetermineRating(text, nil); got != want {
				t.Errorf("goroutine %d: got %s, want %s", i, got, want)
			}
		}(i)
	}
	wg.Wait()
}

func TestFallback(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	out := Fallback("broken input", cause)
	if out.Rating != ConservativeDefault || out.Source != SourceFallback {
		t.Errorf("Fallback = %+v", out)
	}
	if !errors.Is(out.Err, ErrClassification) || !errors.Is(out.Err, cause) {
		t.Errorf("Fallback error %v should wrap both ErrClassification and the cause", out.Err)
	}

	declared := Declared(R)
	if declared.Rating != R || declared.Source != SourceDeclared || !declared.OK() {
		t.Errorf("Declared(R) = %+v", declared)
	}
}
