// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/contentgate/internal/api"
	"github.com/tomtom215/contentgate/internal/audit"
	"github.com/tomtom215/contentgate/internal/models"
)

const feed = `{
  "posts": [
    {"id": "p1", "content": "sunny beach day with friends"},
    {"id": "p2", "content": "late night gambling stream"},
    {"id": "p3", "content": "director's cut", "content_rating": "R"}
  ],
  "stories": [
    {"id": "s1", "content": "behind the scenes", "content_rating": "PG-13"}
  ]
}`

// setup isolates the working directory and writes a config file with the
// given extra YAML. It returns the --config path.
func setup(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CONFIG_PATH", "")

	path := filepath.Join(dir, "contentgate.yaml")
	content := "logging:\n  level: error\n" + extra
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = execute(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name         string
		age          string
		verified     string
		wantPosts    int
		wantStories  int
		wantPGThirty int
	}{
		{"verified teen", "15", "true", 2, 1, 1},
		{"verified teen mixed case flag", "15", "TRUE", 2, 1, 1},
		{"unverified adult", "30", "false", 1, 0, 0},
		{"anything but true is unverified", "30", "yes", 1, 0, 0},
		{"verified adult", "30", "True", 3, 1, 1},
		{"verified child", "10", "true", 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := setup(t, "")
			data := writeFile(t, "feed.json", feed)

			code, stdout, stderr := run(t, "--config", cfg, "--data", data, "--age", tt.age, "--verified", tt.verified)
			if code != 0 {
				t.Fatalf("exit = %d, stderr = %s, stdout = %s", code, stderr, stdout)
			}

			var out models.Output
			if err := json.Unmarshal([]byte(stdout), &out); err != nil {
				t.Fatalf("stdout is not an output document: %v\n%s", err, stdout)
			}
			if out.PostAnalysis == nil {
				t.Fatal("post_analysis = null, want at least p1")
			}
			if out.PostAnalysis.TotalPosts != tt.wantPosts {
				t.Errorf("total_posts = %d, want %d", out.PostAnalysis.TotalPosts, tt.wantPosts)
			}
			if out.PostAnalysis.RatingDistribution["PG-13"] != tt.wantPGThirty {
				t.Errorf("PG-13 posts = %d, want %d", out.PostAnalysis.RatingDistribution["PG-13"], tt.wantPGThirty)
			}
			if out.StoriesAnalysis == nil || out.StoriesAnalysis.TotalStories != tt.wantStories {
				t.Errorf("stories_analysis = %+v, want %d stories", out.StoriesAnalysis, tt.wantStories)
			}
			if out.Recommendations == nil {
				t.Error("recommendations = null")
			}
			if out.EngagementPrediction != nil {
				t.Errorf("engagement_prediction = %+v, want omitted without content features", out.EngagementPrediction)
			}
		})
	}
}

func TestAnalyzeLoadFailure(t *testing.T) {
	tests := []struct {
		name string
		data func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.json") }},
		{"malformed json", func(t *testing.T) string { return writeFile(t, "bad.json", `{"posts": [`) }},
		{"not an object", func(t *testing.T) string { return writeFile(t, "list.json", `[1, 2]`) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := setup(t, "")

			code, stdout, _ := run(t, "--config", cfg, "--data", tt.data(t), "--age", "20", "--verified", "true")
			if code != 1 {
				t.Errorf("exit = %d, want 1", code)
			}

			var resp models.ErrorResponse
			if err := json.Unmarshal([]byte(stdout), &resp); err != nil {
				t.Fatalf("stdout is not an error document: %v\n%s", err, stdout)
			}
			if !strings.HasPrefix(resp.Error, "Failed to load data: ") {
				t.Errorf("error = %q, want Failed to load data prefix", resp.Error)
			}
			if strings.Count(strings.TrimSpace(stdout), "\n") != 0 {
				t.Errorf("stdout has more than one document:\n%s", stdout)
			}
		})
	}
}

func TestAnalyzeBadArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing data", []string{"--age", "20", "--verified", "true"}},
		{"missing age", []string{"--data", "x.json", "--verified", "true"}},
		{"missing verified", []string{"--data", "x.json", "--age", "20"}},
		{"age not an integer", []string{"--data", "x.json", "--age", "old", "--verified", "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := setup(t, "")

			code, stdout, stderr := run(t, append([]string{"--config", cfg}, tt.args...)...)
			if code != 1 {
				t.Errorf("exit = %d, want 1", code)
			}
			if stdout != "" {
				t.Errorf("stdout = %q, want empty", stdout)
			}
			if !strings.Contains(stderr, "Error:") {
				t.Errorf("stderr = %q, want an error message", stderr)
			}
		})
	}
}

func TestAnalyzeInvalidAge(t *testing.T) {
	for _, age := range []string{"-1", "151"} {
		t.Run(age, func(t *testing.T) {
			cfg := setup(t, "")
			data := writeFile(t, "feed.json", feed)

			code, stdout, stderr := run(t, "--config", cfg, "--data", data, "--age", age, "--verified", "true")
			if code != 1 {
				t.Errorf("exit = %d, want 1", code)
			}
			if strings.Contains(stderr, "Error: invalid age profile") {
				t.Errorf("stderr = %q, want the error document on stdout only", stderr)
			}

			var resp models.ErrorResponse
			if err := json.Unmarshal([]byte(stdout), &resp); err != nil {
				t.Fatalf("stdout is not an error document: %v\n%s", err, stdout)
			}
			if !strings.Contains(resp.Error, "invalid age profile") {
				t.Errorf("error = %q", resp.Error)
			}
		})
	}
}

func TestAnalyzeBadConfig(t *testing.T) {
	cfg := setup(t, "server:\n  port: 70000\n")
	data := writeFile(t, "feed.json", feed)

	code, stdout, stderr := run(t, "--config", cfg, "--data", data, "--age", "20", "--verified", "true")
	if code != 1 || stdout != "" {
		t.Errorf("exit = %d, stdout = %q; want 1 and empty", code, stdout)
	}
	if !strings.Contains(stderr, "load configuration") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestAnalyzeExport(t *testing.T) {
	cfg := setup(t, "")
	data := writeFile(t, "feed.json", feed)
	outPath := filepath.Join(t.TempDir(), "result.json")

	code, stdout, stderr := run(t, "--config", cfg, "--data", data, "--age", "15", "--verified", "true", "--output", outPath)
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}

	exported, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("export not written: %v", err)
	}
	var fromFile, fromStdout models.Output
	if err := json.Unmarshal(exported, &fromFile); err != nil {
		t.Fatalf("export is not an output document: %v", err)
	}
	if err := json.Unmarshal([]byte(stdout), &fromStdout); err != nil {
		t.Fatalf("stdout is not an output document: %v", err)
	}
	if fromFile.PostAnalysis.TotalPosts != fromStdout.PostAnalysis.TotalPosts {
		t.Errorf("export total_posts = %d, stdout %d", fromFile.PostAnalysis.TotalPosts, fromStdout.PostAnalysis.TotalPosts)
	}
}

func TestAnalyzeExportFailureIsNotFatal(t *testing.T) {
	cfg := setup(t, "")
	data := writeFile(t, "feed.json", feed)
	outPath := filepath.Join(t.TempDir(), "missing", "dir", "result.json")

	code, stdout, stderr := run(t, "--config", cfg, "--data", data, "--age", "15", "--verified", "true", "--output", outPath)
	if code != 0 {
		t.Fatalf("exit = %d, want 0 when only the export fails; stderr = %s", code, stderr)
	}
	var out models.Output
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("stdout is not an output document: %v", err)
	}
}

func TestAnalyzeMetricsFile(t *testing.T) {
	cfg := setup(t, "")
	data := writeFile(t, "feed.json", feed)
	metricsPath := filepath.Join(t.TempDir(), "contentgate.prom")

	code, _, stderr := run(t, "--config", cfg, "--data", data, "--age", "15", "--verified", "true", "--metrics-file", metricsPath)
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}

	body, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	for _, name := range []string{"contentgate_filter_decisions_total", "contentgate_analysis_stage_duration_seconds"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("metrics file missing %s", name)
		}
	}
}

func TestParseVerified(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"true", true},
		{"TRUE", true},
		{"True", true},
		{" true ", true},
		{"false", false},
		{"1", false},
		{"yes", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := parseVerified(tt.in); got != tt.want {
			t.Errorf("parseVerified(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRate(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantRating string
		wantSource string
	}{
		{"clean", []string{"rate", "sunny", "beach"}, "G", "default"},
		{"keyword", []string{"rate", "late night gambling"}, "PG-13", "keyword"},
		{"adult flag", []string{"rate", "--adult", "sunny beach"}, "R", "metadata"},
		{"configured keyword", []string{"rate", "weapons showcase"}, "PG-13", "keyword"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := setup(t, "rating:\n  extra_keywords: [weapons]\n")

			code, stdout, stderr := run(t, append([]string{"--config", cfg}, tt.args...)...)
			if code != 0 {
				t.Fatalf("exit = %d, stderr = %s", code, stderr)
			}

			var resp struct {
				Rating      string `json:"rating"`
				Source      string `json:"source"`
				Description string `json:"description"`
			}
			if err := json.Unmarshal([]byte(stdout), &resp); err != nil {
				t.Fatalf("stdout is not an outcome: %v\n%s", err, stdout)
			}
			if resp.Rating != tt.wantRating || resp.Source != tt.wantSource {
				t.Errorf("outcome = %s/%s, want %s/%s", resp.Rating, resp.Source, tt.wantRating, tt.wantSource)
			}
			if resp.Description == "" {
				t.Error("description is empty")
			}
		})
	}
}

func TestRateRequiresText(t *testing.T) {
	cfg := setup(t, "")

	code, stdout, _ := run(t, "--config", cfg, "rate")
	if code != 1 || stdout != "" {
		t.Errorf("exit = %d, stdout = %q; want 1 and empty", code, stdout)
	}
}

func TestRateFallback(t *testing.T) {
	cfg := setup(t, "")

	code, stdout, _ := run(t, "--config", cfg, "rate", "   ")
	if code != 0 {
		t.Fatalf("exit = %d, want 0 for a fallback rating", code)
	}
	var resp api.ClassifyResponse
	if err := json.Unmarshal([]byte(stdout), &resp); err != nil {
		t.Fatalf("stdout is not an outcome: %v", err)
	}
	if resp.Failure == "" {
		t.Errorf("failure is empty for blank text: %s", stdout)
	}
}

func TestAuditRequiresBadger(t *testing.T) {
	cfg := setup(t, "audit:\n  backend: memory\n")

	code, stdout, stderr := run(t, "--config", cfg, "audit")
	if code != 1 || stdout != "" {
		t.Errorf("exit = %d, stdout = %q; want 1 and empty", code, stdout)
	}
	if !strings.Contains(stderr, "not persistent") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestAuditLedgerRoundTrip(t *testing.T) {
	ledger := filepath.Join(t.TempDir(), "ledger")
	cfg := setup(t, "audit:\n  enabled: true\n  backend: badger\n  path: "+ledger+"\n")
	data := writeFile(t, "feed.json", feed)

	if code, _, stderr := run(t, "--config", cfg, "--data", data, "--age", "30", "--verified", "false"); code != 0 {
		t.Fatalf("analyze exit = %d, stderr = %s", code, stderr)
	}

	tests := []struct {
		name string
		args []string
		want int
	}{
		// posts are filtered by both the post and recommendation stages
		{"all", []string{"--limit", "0"}, 7},
		{"excluded", []string{"--allowed", "false"}, 5},
		{"one item", []string{"--item-id", "p3"}, 2},
		{"by rating", []string{"--rating", "pg-13"}, 3},
		{"limited", []string{"--limit", "2"}, 2},
		{"recent", []string{"--since", "1h"}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := run(t, append([]string{"--config", cfg, "audit"}, tt.args...)...)
			if code != 0 {
				t.Fatalf("exit = %d, stderr = %s", code, stderr)
			}
			var decisions []audit.Decision
			if err := json.Unmarshal([]byte(stdout), &decisions); err != nil {
				t.Fatalf("stdout is not a decision list: %v\n%s", err, stdout)
			}
			if len(decisions) != tt.want {
				t.Errorf("got %d decisions, want %d", len(decisions), tt.want)
			}
		})
	}
}

func TestAuditFlagErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		flags auditFlags
	}{
		{"bad rating", auditFlags{rating: "X"}},
		{"bad allowed", auditFlags{allowed: "maybe"}},
		{"negative since", auditFlags{since: -time.Hour}},
		{"negative limit", auditFlags{limit: -1}},
	}

	for _, tt := range tests {
		if _, err := tt.flags.queryFilter(time.Now()); err == nil {
			t.Errorf("%s: queryFilter() error = nil", tt.name)
		}
	}
}

func TestAuditQueryFilter(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	flags := auditFlags{rating: "r", allowed: "true", since: 2 * time.Hour, limit: 5, itemID: "p1"}

	filter, err := flags.queryFilter(now)
	if err != nil {
		t.Fatalf("queryFilter() error = %v", err)
	}
	if filter.Rating != "R" || filter.ItemID != "p1" || filter.Limit != 5 {
		t.Errorf("filter = %+v", filter)
	}
	if filter.Allowed == nil || !*filter.Allowed {
		t.Errorf("Allowed = %v, want true", filter.Allowed)
	}
	if filter.StartTime == nil || !filter.StartTime.Equal(now.Add(-2*time.Hour)) {
		t.Errorf("StartTime = %v", filter.StartTime)
	}
}

func TestCommandMode(t *testing.T) {
	t.Parallel()

	root := newRootCmd(&app{})
	if got := commandMode(root); got != "analyze" {
		t.Errorf("commandMode(root) = %q, want analyze", got)
	}
	for _, name := range []string{"serve", "rate", "audit"} {
		sub, _, err := root.Find([]string{name})
		if err != nil {
			t.Fatalf("Find(%q) error = %v", name, err)
		}
		if got := commandMode(sub); got != name {
			t.Errorf("commandMode(%s) = %q", name, got)
		}
	}
}
