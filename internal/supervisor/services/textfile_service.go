// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package services

import (
	"context"
	"time"

	"github.com/tomtom215/contentgate/internal/logging"
)

// TextfileService periodically exports metrics to a node_exporter textfile.
type TextfileService struct {
	path     string
	interval time.Duration
	write    func(path string) error
}

// NewTextfileService writes with write (metrics.WriteTextfile in production)
// every interval. A non-positive interval means 15s.
func NewTextfileService(path string, interval time.Duration, write func(path string) error) *TextfileService {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &TextfileService{path: path, interval: interval, write: write}
}

// Serve implements suture.Service. Write failures are logged and retried on
// the next tick. A final export runs on shutdown.
func (s *TextfileService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.flush()
			return ctx.Err()
		case <-ticker.C:
			s.flush()
		}
	}
}

func (s *TextfileService) flush() {
	if err := s.write(s.path); err != nil {
		logging.Warn().Err(err).Str("path", s.path).Msg("Failed to write metrics textfile")
	}
}

// String implements fmt.Stringer for supervisor logs.
func (s *TextfileService) String() string {
	return "metrics-textfile"
}
