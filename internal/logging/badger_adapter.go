// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package logging

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// BadgerLogger routes BadgerDB's printf-style logging into zerolog.
// It satisfies badger.Logger without importing badger.
//
// Badger is chatty at info level (compaction, value log GC), so its info
// messages are demoted to debug and its debug messages to trace.
//
// Usage:
//
//	opts := badger.DefaultOptions(path)
//	opts.Logger = logging.NewBadgerLogger()
type BadgerLogger struct {
	logger zerolog.Logger
}

// NewBadgerLogger creates an adapter on the global logger.
func NewBadgerLogger() *BadgerLogger {
	return &BadgerLogger{logger: WithComponent("badger")}
}

// NewBadgerLoggerWithLogger creates an adapter on a specific logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBadgerLoggerWithLogger(logger zerolog.Logger) *BadgerLogger {
	return &BadgerLogger{logger: logger}
}

// Errorf logs at error level.
func (b *BadgerLogger) Errorf(format string, args ...interface{}) {
	b.logger.Error().Msg(format2msg(format, args))
}

// Warningf logs at warn level.
func (b *BadgerLogger) Warningf(format string, args ...interface{}) {
	b.logger.Warn().Msg(format2msg(format, args))
}

// Infof logs at debug level.
func (b *BadgerLogger) Infof(format string, args ...interface{}) {
	b.logger.Debug().Msg(format2msg(format, args))
}

// Debugf logs at trace level.
func (b *BadgerLogger) Debugf(format string, args ...interface{}) {
	b.logger.Trace().Msg(format2msg(format, args))
}

// format2msg renders a badger message without its trailing newline.
func format2msg(format string, args []interface{}) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}
