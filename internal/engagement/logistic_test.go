// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package engagement

import (
	"errors"
	"math"
	"testing"
)

func TestLogistic_PredictProba(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cfg   Config
		x     []float64
		want1 float64
	}{
		{"zero logit", Config{Weights: []float64{1, -1}}, []float64{2, 2}, 0.5},
		{"bias only", Config{Weights: []float64{0}, Bias: math.Log(3)}, []float64{5}, 0.75},
		{"positive", Config{Weights: []float64{2}}, []float64{1}, 1 / (1 + math.Exp(-2))},
		{"large negative", Config{Weights: []float64{1}}, []float64{-1000}, 0},
		{"large positive", Config{Weights: []float64{1}}, []float64{1000}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewLogistic(tt.cfg).PredictProba(tt.x)
			if err != nil {
				t.Fatalf("PredictProba() error = %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("PredictProba() returned %d classes, want 2", len(got))
			}
			if math.Abs(got[1]-tt.want1) > 1e-9 {
				t.Errorf("P(1) = %v, want %v", got[1], tt.want1)
			}
			if math.Abs(got[0]+got[1]-1) > 1e-12 {
				t.Errorf("probabilities sum to %v", got[0]+got[1])
			}
		})
	}
}

func TestLogistic_Errors(t *testing.T) {
	t.Parallel()

	if _, err := NewLogistic(Config{}).PredictProba([]float64{1}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("unconfigured error = %v, want ErrNotConfigured", err)
	}

	m := NewLogistic(Config{Weights: []float64{1, 2}})
	if _, err := m.PredictProba([]float64{1}); !errors.Is(err, ErrDimension) {
		t.Errorf("short vector error = %v, want ErrDimension", err)
	}
	if _, err := m.PredictProba([]float64{1, math.NaN()}); err == nil {
		t.Error("NaN feature should fail")
	}
}

func TestNewLogistic_CopiesWeights(t *testing.T) {
	t.Parallel()

	w := []float64{1}
	m := NewLogistic(Config{Weights: w})
	w[0] = -100

	got, err := m.PredictProba([]float64{0})
	if err != nil {
		t.Fatalf("PredictProba() error = %v", err)
	}
	if got[1] != 0.5 {
		t.Errorf("P(1) = %v, want 0.5", got[1])
	}
	if m.Dimension() != 1 {
		t.Errorf("Dimension() = %d, want 1", m.Dimension())
	}
}
