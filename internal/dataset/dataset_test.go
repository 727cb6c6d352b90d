// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/contentgate/internal/models"
	"github.com/tomtom215/contentgate/internal/validation"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeFile(t, `{
		"posts": [
			{"id": "p1", "content": "hello", "likes": 3},
			{"id": "p2", "text": "fallback text", "content_rating": "PG"}
		],
		"stories": [{"id": "s1", "type": "video", "duration": 12.5}],
		"user_data": {"id": "u1"},
		"content_features": {"length": 5}
	}`)

	in, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(in.Posts) != 2 || len(in.Stories) != 1 {
		t.Fatalf("Load() = %d posts, %d stories", len(in.Posts), len(in.Stories))
	}
	if in.Posts[1].Text != "fallback text" || in.Posts[1].ContentRating != "PG" {
		t.Errorf("post[1] = %+v", in.Posts[1])
	}
	if in.Posts[0].Metadata != nil {
		t.Errorf("unrelated key folded into metadata: %v", in.Posts[0].Metadata)
	}
	if in.ContentFeatures["length"] != 5 {
		t.Errorf("ContentFeatures = %v", in.ContentFeatures)
	}
}

func TestLoad_EmptyObject(t *testing.T) {
	t.Parallel()

	in, err := Load(writeFile(t, `{}`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if in.Posts != nil || in.Stories != nil {
		t.Errorf("Load({}) = %+v, want empty input", in)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantSub string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") }, "nope.json"},
		{"empty file", func(t *testing.T) string { return writeFile(t, "") }, "JSON object"},
		{"array", func(t *testing.T) string { return writeFile(t, `[1,2]`) }, "JSON object"},
		{"malformed", func(t *testing.T) string { return writeFile(t, `{"posts": [`) }, "decode input"},
		{"posts not a list", func(t *testing.T) string { return writeFile(t, `{"posts": "x"}`) }, "decode input"},
		{"negative duration", func(t *testing.T) string { return writeFile(t, `{"stories": [{"duration": -1}]}`) }, "duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := tt.path(t)
			in, err := Load(path)
			if in != nil {
				t.Errorf("Load() = %+v, want nil", in)
			}
			if !errors.Is(err, ErrInputLoad) {
				t.Fatalf("Load() error = %v, want ErrInputLoad", err)
			}
			var loadErr *LoadError
			if !errors.As(err, &loadErr) || loadErr.Path != path {
				t.Errorf("error = %#v, want LoadError with path %s", err, path)
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantSub)
			}
		})
	}
}

func TestDecode_ValidationError(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader(`{"posts": [{"id": "` + strings.Repeat("x", 300) + `"}]}`))
	var verr *validation.RequestValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Decode() error = %v, want RequestValidationError", err)
	}
	if !errors.Is(err, ErrInputLoad) {
		t.Error("validation failure does not match ErrInputLoad")
	}
}

func TestExport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	if err := os.WriteFile(path, []byte("stale"), 0o600); err != nil {
		t.Fatal(err)
	}

	out := &models.Output{Recommendations: &models.Recommendations{SuggestedTopics: []string{"go"}}}
	if err := Export(path, out); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("exported file is not JSON: %v\n%s", err, data)
	}
	if _, ok := got["post_analysis"]; !ok || got["post_analysis"] != nil {
		t.Errorf("post_analysis = %v, want explicit null", got["post_analysis"])
	}
	if !strings.Contains(string(data), "\n  \"") {
		t.Error("export is not indented")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestExport_Failure(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "out.json")
	err := Export(path, &models.Output{})
	if !errors.Is(err, ErrExport) {
		t.Fatalf("Export() error = %v, want ErrExport", err)
	}
	var exportErr *ExportError
	if !errors.As(err, &exportErr) || exportErr.Path != path {
		t.Errorf("error = %#v, want ExportError with path", err)
	}
}
