// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package rating

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/tomtom215/contentgate/internal/cache"
)

// AdultContentKey is the metadata key whose truthy value forces an R rating.
const AdultContentKey = "is_adult_content"

// ErrClassification marks a classification that fell back to ConservativeDefault.
var ErrClassification = errors.New("classification failed")

// DefaultMatureKeywords is the fixed keyword set that yields PG-13.
var DefaultMatureKeywords = []string{
	"violence",
	"explicit",
	"mature",
	"adult",
	"nsfw",
	"drugs",
	"alcohol",
	"gambling",
}

// Source identifies which rule produced a rating.
type Source string

const (
	// SourceDeclared means the item carried a valid content_rating.
	SourceDeclared Source = "declared"
	// SourceMetadata means the adult-content flag was set.
	SourceMetadata Source = "metadata"
	// SourceKeyword means a mature keyword matched.
	SourceKeyword Source = "keyword"
	// SourceDefault means no rule fired and the item is G.
	SourceDefault Source = "default"
	// SourceFallback means classification failed and the conservative default applied.
	SourceFallback Source = "fallback"
)

// Outcome is the result of rating one piece of content.
type Outcome struct {
	Rating  Rating   `json:"rating"`
	Source  Source   `json:"source"`
	Reason  string   `json:"reason"`
	Matched []string `json:"matched,omitempty"`

	// Err is non-nil only for SourceFallback and wraps ErrClassification.
	Err error `json:"-"`
}

// OK reports whether classification succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Fallback builds the conservative outcome for a failed classification.
func Fallback(reason string, cause error) Outcome {
	err := fmt.Errorf("%w: %s", ErrClassification, reason)
	if cause != nil {
		err = fmt.Errorf("%w: %s: %w", ErrClassification, reason, cause)
	}
	return Outcome{
		Rating: ConservativeDefault,
		Source: SourceFallback,
		Reason: reason,
		Err:    err,
	}
}

// Declared builds the outcome for an item that states its own rating.
func Declared(r Rating) Outcome {
	return Outcome{Rating: r, Source: SourceDeclared, Reason: "declared content_rating " + r.String()}
}

// Classifier applies the fixed rating rules. The zero value is not usable;
// construct with NewClassifier.
type Classifier struct {
	keywords *cache.Automaton
}

// NewClassifier returns a classifier using DefaultMatureKeywords plus any
// extra keywords. Extras can only add keywords, so they can make ratings
// stricter but never more permissive.
func NewClassifier(extraKeywords ...string) *Classifier {
	keywords := make([]string, 0, len(DefaultMatureKeywords)+len(extraKeywords))
	keywords = append(keywords, DefaultMatureKeywords...)
	keywords = append(keywords, extraKeywords...)
	return &Classifier{keywords: cache.NewAutomaton(keywords)}
}

var defaultClassifier = NewClassifier()

// Default returns the shared classifier built from DefaultMatureKeywords.
func Default() *Classifier {
	return defaultClassifier
}

// Keywords returns the normalized keyword set in use.
func (c *Classifier) Keywords() []string {
	return c.keywords.Patterns()
}

// DetermineRating returns only the rating of Classify.
func (c *Classifier) DetermineRating(text string, metadata map[string]any) Rating {
	return c.Classify(text, metadata).Rating
}

// Classify rates text and metadata. It never panics and never returns Unknown.
func (c *Classifier) Classify(text string, metadata map[string]any) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Fallback(fmt.Sprintf("panic during classification: %v", r), nil)
		}
	}()

	if strings.TrimSpace(text) == "" && len(metadata) == 0 {
		return Fallback("no text or metadata to classify", nil)
	}

	if v, ok := metadata[AdultContentKey]; ok && truthy(v) {
		return Outcome{Rating: R, Source: SourceMetadata, Reason: fmt.Sprintf("%s is %v", AdultContentKey, v)}
	}

	if !utf8.ValidString(text) {
		return Fallback("text is not valid UTF-8", nil)
	}

	if matched := c.keywords.FindAll(text); len(matched) > 0 {
		return Outcome{
			Rating:  PG13,
			Source:  SourceKeyword,
			Reason:  "mature keyword match",
			Matched: matched,
		}
	}

	return Outcome{Rating: G, Source: SourceDefault, Reason: "no mature signals"}
}

// truthy reports whether a flag value counts as set. Null, false, zero,
// and empty strings, lists and objects are unset; every other value is set,
// so "true", "yes" and 1 all mark content as adult.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	case int:
		return x != 0
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return false
		}
		return truthy(rv.Elem().Interface())
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return !rv.IsZero()
	default:
		return true
	}
}

// DetermineRating rates content with the default classifier.
func DetermineRating(text string, metadata map[string]any) Rating {
	return defaultClassifier.DetermineRating(text, metadata)
}
