// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package models

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/contentgate/internal/rating"
)

// Story defaults applied to records that omit these fields.
const (
	DefaultStoryType     = "image"
	DefaultStoryDuration = 10.0
)

// ContentItem is a single post or story.
type ContentItem struct {
	ID            string          `json:"id,omitempty" validate:"max=256"`
	Text          string          `json:"content"`
	Metadata      map[string]any  `json:"metadata,omitempty"`
	ContentRating string          `json:"content_rating,omitempty"`
	Type          string          `json:"type,omitempty" validate:"max=64"`
	IsPremium     *bool           `json:"isPremium,omitempty"`
	IsViewed      *bool           `json:"isViewed,omitempty"`
	Duration      *float64        `json:"duration,omitempty" validate:"omitempty,gte=0"`
	Timestamp     json.RawMessage `json:"timestamp,omitempty"`
	Engagement    *float64        `json:"engagement,omitempty"`
}

// UnmarshalJSON decodes a loosely shaped content record.
func (c *ContentItem) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("content item must be an object: %w", err)
	}

	var item ContentItem

	if v, ok := raw["id"]; ok && !isNull(v) {
		item.ID = scalarString(v)
	}

	text, err := decodeText(raw)
	if err != nil {
		return err
	}
	item.Text = text

	// A non-string rating is kept verbatim so it fails rating parsing and
	// falls back to classification.
	if v, ok := raw["content_rating"]; ok && !isNull(v) {
		item.ContentRating = scalarString(v)
	}

	if err := decodeOptional(raw, "type", &item.Type); err != nil {
		return err
	}
	if err := decodeOptional(raw, "isPremium", &item.IsPremium); err != nil {
		return err
	}
	if err := decodeOptional(raw, "isViewed", &item.IsViewed); err != nil {
		return err
	}
	if err := decodeOptional(raw, "duration", &item.Duration); err != nil {
		return err
	}
	if err := decodeOptional(raw, "engagement", &item.Engagement); err != nil {
		return err
	}
	if v, ok := raw["timestamp"]; ok && !isNull(v) {
		item.Timestamp = append(json.RawMessage(nil), v...)
	}

	metadata, err := foldMetadata(raw)
	if err != nil {
		return err
	}
	item.Metadata = metadata

	*c = item
	return nil
}

func decodeText(raw map[string]json.RawMessage) (string, error) {
	for _, key := range []string{"content", "text"} {
		v, ok := raw[key]
		if !ok || isNull(v) {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", fmt.Errorf("field %q: expected string: %w", key, err)
		}
		return s, nil
	}
	return "", nil
}

func decodeOptional(raw map[string]json.RawMessage, key string, dst any) error {
	v, ok := raw[key]
	if !ok || isNull(v) {
		return nil
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	return nil
}

// foldMetadata builds Metadata from the explicit "metadata" object plus a
// top-level adult-content flag. Other unknown keys carry no rating signal and
// are dropped, so an item with only e.g. "likes" still counts as empty.
func foldMetadata(raw map[string]json.RawMessage) (map[string]any, error) {
	metadata := make(map[string]any)
	if v, ok := raw[rating.AdultContentKey]; ok && !isNull(v) {
		var value any
		if err := json.Unmarshal(v, &value); err != nil {
			return nil, fmt.Errorf("field %q: %w", rating.AdultContentKey, err)
		}
		metadata[rating.AdultContentKey] = value
	}

	if v, ok := raw["metadata"]; ok && !isNull(v) {
		var explicit map[string]any
		if err := json.Unmarshal(v, &explicit); err != nil {
			return nil, fmt.Errorf("field \"metadata\": expected object: %w", err)
		}
		for key, value := range explicit {
			metadata[key] = value
		}
	}

	if len(metadata) == 0 {
		return nil, nil
	}
	return metadata, nil
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// scalarString renders a JSON string as its value and anything else as its
// raw JSON text.
func scalarString(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(v))
}

// HasSignal reports whether the item carries anything a rating could be
// derived from. Items without one are rated with the conservative default.
func (c ContentItem) HasSignal() bool {
	return strings.TrimSpace(c.Text) != "" || len(c.Metadata) > 0 || strings.TrimSpace(c.ContentRating) != ""
}

// StoryType returns the media type, defaulting to DefaultStoryType.
func (c ContentItem) StoryType() string {
	if c.Type == "" {
		return DefaultStoryType
	}
	return c.Type
}

// StoryDuration returns the duration, defaulting to DefaultStoryDuration.
func (c ContentItem) StoryDuration() float64 {
	if c.Duration == nil {
		return DefaultStoryDuration
	}
	return *c.Duration
}

// WithStoryDefaults returns a copy with type, premium, viewed and duration
// filled in where absent.
func (c ContentItem) WithStoryDefaults() ContentItem {
	out := c
	out.Type = c.StoryType()
	if out.IsPremium == nil {
		f := false
		out.IsPremium = &f
	}
	if out.IsViewed == nil {
		f := false
		out.IsViewed = &f
	}
	if out.Duration == nil {
		d := DefaultStoryDuration
		out.Duration = &d
	}
	return out
}
