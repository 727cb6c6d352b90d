// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

// Package dataset reads analysis input documents and writes analysis results.
package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/tomtom215/contentgate/internal/logging"
	"github.com/tomtom215/contentgate/internal/metrics"
	"github.com/tomtom215/contentgate/internal/models"
	"github.com/tomtom215/contentgate/internal/validation"
)

// maxInputBytes bounds a single input document.
const maxInputBytes = 64 << 20

var (
	// ErrInputLoad matches every LoadError. Load failures are fatal.
	ErrInputLoad = errors.New("input load failed")

	// ErrExport matches every ExportError. Export failures are not fatal.
	ErrExport = errors.New("export failed")
)

// LoadError reports a missing, unreadable, malformed or invalid input document.
type LoadError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap exposes ErrInputLoad and the cause.
func (e *LoadError) Unwrap() []error {
	return []error{ErrInputLoad, e.Err}
}

// ExportError reports a result that could not be written.
type ExportError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Path, e.Err)
}

// Unwrap exposes ErrExport and the cause.
func (e *ExportError) Unwrap() []error {
	return []error{ErrExport, e.Err}
}

// Load reads and validates the input document at path.
func Load(path string) (*models.Input, error) {
	f, err := os.Open(path) //nolint:gosec // path is an operator-supplied CLI argument
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	in, err := Decode(f)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return nil, err
	}

	logging.Debug().
		Str("path", path).
		Int("posts", len(in.Posts)).
		Int("stories", len(in.Stories)).
		Msg("Input loaded")
	return in, nil
}

// Decode reads one input document from r. Every key is optional, but the
// document must be a JSON object and each item must pass validation.
func Decode(r io.Reader) (*models.Input, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputBytes+1))
	if err != nil {
		return nil, &LoadError{Err: fmt.Errorf("read input: %w", err)}
	}
	if len(data) > maxInputBytes {
		return nil, &LoadError{Err: fmt.Errorf("input exceeds %d bytes", maxInputBytes)}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &LoadError{Err: errors.New("input must be a JSON object")}
	}

	var in models.Input
	if err := json.Unmarshal(trimmed, &in); err != nil {
		return nil, &LoadError{Err: fmt.Errorf("decode input: %w", err)}
	}
	if verr := validation.ValidateStruct(&in); verr != nil {
		return nil, &LoadError{Err: verr}
	}

	metrics.RecordItemsLoaded("posts", len(in.Posts))
	metrics.RecordItemsLoaded("stories", len(in.Stories))
	return &in, nil
}

// Export writes v to path as indented JSON. The file is replaced atomically
// so a failed export never leaves a truncated result behind.
func Export(path string, v any) error {
	if err := writeAtomic(path, v); err != nil {
		metrics.RecordExportFailure()
		return &ExportError{Path: path, Err: err}
	}
	logging.Info().Str("path", path).Msg("Analysis results exported")
	return nil
}

func writeAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil { //nolint:gosec // results are meant to be readable
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}
