// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordFilterDecision(t *testing.T) {
	tests := []struct {
		name     string
		rating   string
		source   string
		allowed  bool
		decision string
	}{
		{"allowed G", "G", "default", true, DecisionAllowed},
		{"excluded R", "R", "metadata", false, DecisionExcluded},
		{"excluded fallback", "PG-13", "fallback", false, DecisionExcluded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := FilterDecisions.WithLabelValues(tt.rating, tt.source, tt.decision)
			before := testutil.ToFloat64(c)
			RecordFilterDecision(tt.rating, tt.source, tt.allowed)
			if got := testutil.ToFloat64(c) - before; got != 1 {
				t.Errorf("counter delta = %v, want 1", got)
			}
		})
	}
}

func TestRecordStage(t *testing.T) {
	failures := StageFailures.WithLabelValues("test_stage")
	before := testutil.ToFloat64(failures)

	RecordStage("test_stage", 5*time.Millisecond, nil)
	if got := testutil.ToFloat64(failures) - before; got != 0 {
		t.Errorf("success counted as failure: delta %v", got)
	}

	RecordStage("test_stage", 5*time.Millisecond, errors.New("boom"))
	if got := testutil.ToFloat64(failures) - before; got != 1 {
		t.Errorf("failure delta = %v, want 1", got)
	}

	if n := testutil.CollectAndCount(StageDuration, "contentgate_analysis_stage_duration_seconds"); n == 0 {
		t.Error("stage duration histogram has no series")
	}
}

func TestRecordItemsLoaded(t *testing.T) {
	c := ItemsLoaded.WithLabelValues("posts")
	before := testutil.ToFloat64(c)

	RecordItemsLoaded("posts", 3)
	RecordItemsLoaded("posts", 0)
	if got := testutil.ToFloat64(c) - before; got != 3 {
		t.Errorf("items delta = %v, want 3", got)
	}
}

func TestRecordAuditWrite(t *testing.T) {
	ok := AuditWrites.WithLabelValues("memory", "success")
	bad := AuditWrites.WithLabelValues("memory", "error")
	okBefore, badBefore := testutil.ToFloat64(ok), testutil.ToFloat64(bad)

	RecordAuditWrite("memory", nil)
	RecordAuditWrite("memory", errors.New("disk full"))

	if testutil.ToFloat64(ok)-okBefore != 1 || testutil.ToFloat64(bad)-badBefore != 1 {
		t.Error("audit write counters not incremented")
	}
}

func TestRecordAPIRequest(t *testing.T) {
	c := APIRequestsTotal.WithLabelValues("POST", "/api/ml/homepage", "400")
	before := testutil.ToFloat64(c)

	RecordAPIRequest("POST", "/api/ml/homepage", 400, 2*time.Millisecond)
	if got := testutil.ToFloat64(c) - before; got != 1 {
		t.Errorf("request delta = %v, want 1", got)
	}

	TrackActiveRequest(true)
	TrackActiveRequest(false)
}

func TestCountersIncrement(t *testing.T) {
	for _, tc := range []struct {
		name   string
		c      prometheus.Counter
		record func()
	}{
		{"classification failures", ClassificationFailures, RecordClassificationFailure},
		{"declared invalid", DeclaredRatingInvalid, RecordDeclaredRatingInvalid},
		{"export failures", ExportFailures, RecordExportFailure},
	} {
		before := testutil.ToFloat64(tc.c)
		tc.record()
		if got := testutil.ToFloat64(tc.c) - before; got != 1 {
			t.Errorf("%s delta = %v, want 1", tc.name, got)
		}
	}
}

func TestWriteTextfile(t *testing.T) {
	RecordFilterDecision("G", "default", true)

	path := filepath.Join(t.TempDir(), "contentgate.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "contentgate_filter_decisions_total") {
		t.Error("textfile missing filter decisions metric")
	}
}

func TestWriteTextfile_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "out.prom")
	if err := WriteTextfile(path); err == nil {
		t.Error("expected error for unwritable path")
	}
}

func TestMetricsLint(t *testing.T) {
	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer,
		"contentgate_filter_decisions_total",
		"contentgate_analysis_stage_duration_seconds",
	)
	if err != nil {
		t.Fatalf("GatherAndLint: %v", err)
	}
	for _, p := range problems {
		t.Errorf("lint problem in %s: %s", p.Metric, p.Text)
	}
}
