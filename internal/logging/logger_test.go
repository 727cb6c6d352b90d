// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got '%s'", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected default format 'json', got '%s'", cfg.Format)
	}
	if cfg.Caller {
		t.Error("expected default caller to be false")
	}
	if !cfg.Timestamp {
		t.Error("expected default timestamp to be true")
	}
	if cfg.Output == nil {
		t.Error("expected default output to be set")
	}
}

func TestInit(t *testing.T) {
	var buf bytes.Buffer

	Init(Config{
		Level:     "debug",
		Format:    "json",
		Timestamp: true,
		Output:    &buf,
	})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Str("item_id", "p1").Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, `"level":"info"`) {
		t.Errorf("expected output to contain level, got: %s", output)
	}
	if !strings.Contains(output, `"item_id":"p1"`) {
		t.Errorf("expected output to contain item_id field, got: %s", output)
	}
}

func TestInit_ServiceAndMode(t *testing.T) {
	var buf bytes.Buffer

	Init(Config{Level: "info", Mode: "serve", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Msg("started")

	output := buf.String()
	if !strings.Contains(output, `"service":"contentgate"`) {
		t.Errorf("expected service field, got: %s", output)
	}
	if !strings.Contains(output, `"mode":"serve"`) {
		t.Errorf("expected mode field, got: %s", output)
	}

	buf.Reset()
	Init(Config{Level: "info", Output: &buf})
	Info().Msg("no mode")
	if strings.Contains(buf.String(), `"mode"`) {
		t.Errorf("mode field present without Mode: %s", buf.String())
	}
}

func TestInit_LevelFilters(t *testing.T) {
	var buf bytes.Buffer

	Init(Config{Level: "warn", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Msg("dropped")
	Warn().Msg("kept")

	if strings.Contains(buf.String(), "dropped") {
		t.Errorf("info line written at warn level: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("warn line missing: %s", buf.String())
	}
}

func TestInit_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer

	Init(Config{Level: "info", Format: "console", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Warn().Msg("console line")

	output := buf.String()
	if strings.HasPrefix(strings.TrimSpace(output), "{") {
		t.Errorf("expected console output, got JSON: %s", output)
	}
	if !strings.Contains(output, "console line") {
		t.Errorf("expected message in console output, got: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"DEBUG", zerolog.DebugLevel},
		{" error ", zerolog.ErrorLevel},
		{"fatal", zerolog.InfoLevel},
		{"invalid", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer

	SetLogger(NewTestLogger(&buf))
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { Init(DefaultConfig()) })

	l := WithComponent("filter")
	l.Info().Msg("component message")

	if !strings.Contains(buf.String(), `"component":"filter"`) {
		t.Errorf("expected component field, got: %s", buf.String())
	}
}
