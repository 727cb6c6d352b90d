// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package engagement

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNotConfigured is returned when a model has no weights.
	ErrNotConfigured = errors.New("engagement model not configured")

	// ErrDimension is returned when a feature vector does not match the weights.
	ErrDimension = errors.New("feature dimension mismatch")
)

// Classifier predicts class probabilities for a feature vector.
type Classifier interface {
	// PredictProba returns [P(class 0), P(class 1)].
	PredictProba(x []float64) ([]float64, error)
}

// Config holds the logistic model parameters.
type Config struct {
	Weights []float64 `koanf:"weights"`
	Bias    float64   `koanf:"bias"`
}

// Logistic is a binary logistic regression model. It is immutable once built.
type Logistic struct {
	weights []float64
	bias    float64
}

// NewLogistic builds a model from cfg. The weights are copied.
func NewLogistic(cfg Config) *Logistic {
	w := make([]float64, len(cfg.Weights))
	copy(w, cfg.Weights)
	return &Logistic{weights: w, bias: cfg.Bias}
}

// Dimension returns the expected feature vector length.
func (l *Logistic) Dimension() int {
	return len(l.weights)
}

// PredictProba implements Classifier.
func (l *Logistic) PredictProba(x []float64) ([]float64, error) {
	if len(l.weights) == 0 {
		return nil, ErrNotConfigured
	}
	if len(x) != len(l.weights) {
		return nil, fmt.Errorf("%w: got %d features, want %d", ErrDimension, len(x), len(l.weights))
	}

	z := l.bias
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("feature %d is not finite", i)
		}
		z += l.weights[i] * v
	}

	p := sigmoid(z)
	return []float64{1 - p, p}, nil
}

// sigmoid is split by sign so exp never overflows.
func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
