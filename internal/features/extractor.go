// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package features

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"
)

// ErrEmptyVocabulary is returned when no text yields a single term.
var ErrEmptyVocabulary = errors.New("empty vocabulary")

// Term is a scored vocabulary entry.
type Term struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// Extractor ranks the terms of a document set.
type Extractor interface {
	// TopTerms returns at most n terms by descending score. n <= 0 returns all.
	TopTerms(texts []string, n int) ([]Term, error)
}

// TFIDFConfig configures the TF-IDF extractor.
type TFIDFConfig struct {
	MaxFeatures int  `koanf:"max_features"`
	MinN        int  `koanf:"min_ngram"`
	MaxN        int  `koanf:"max_ngram"`
	StopWords   bool `koanf:"stop_words"`
}

// DefaultTFIDFConfig returns 1000 features, unigrams and bigrams, English
// stop words removed.
func DefaultTFIDFConfig() TFIDFConfig {
	return TFIDFConfig{
		MaxFeatures: 1000,
		MinN:        1,
		MaxN:        2,
		StopWords:   true,
	}
}

// TFIDF is an immutable, concurrency-safe Extractor.
type TFIDF struct {
	cfg TFIDFConfig
}

// NewTFIDF creates an extractor. Invalid n-gram bounds fall back to defaults.
func NewTFIDF(cfg TFIDFConfig) *TFIDF {
	d := DefaultTFIDFConfig()
	if cfg.MinN <= 0 {
		cfg.MinN = d.MinN
	}
	if cfg.MaxN < cfg.MinN {
		cfg.MaxN = cfg.MinN
	}
	return &TFIDF{cfg: cfg}
}

// Tokenize splits text into lower-cased word tokens of two or more runes.
func Tokenize(text string) []string {
	var tokens []string
	var b strings.Builder
	runes := 0

	flush := func() {
		if runes >= 2 {
			tokens = append(tokens, b.String())
		}
		b.Reset()
		runes = 0
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_' {
			b.WriteRune(r)
			runes++
			continue
		}
		flush()
	}
	flush()
	return tokens
}

// Analyze returns the terms of text: tokens with stop words removed, expanded
// into the configured n-grams.
func (t *TFIDF) Analyze(text string) []string {
	tokens := Tokenize(text)
	if t.cfg.StopWords {
		kept := tokens[:0]
		for _, tok := range tokens {
			if _, stop := englishStopWords[tok]; !stop {
				kept = append(kept, tok)
			}
		}
		tokens = kept
	}

	var terms []string
	for n := t.cfg.MinN; n <= t.cfg.MaxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

// TopTerms implements Extractor.
func (t *TFIDF) TopTerms(texts []string, n int) ([]Term, error) {
	docs := make([]map[string]int, len(texts))
	corpus := make(map[string]int)
	df := make(map[string]int)

	for i, text := range texts {
		counts := make(map[string]int)
		for _, term := range t.Analyze(text) {
			counts[term]++
		}
		for term, c := range counts {
			corpus[term] += c
			df[term]++
		}
		docs[i] = counts
	}
	if len(corpus) == 0 {
		return nil, ErrEmptyVocabulary
	}

	vocab := t.vocabulary(corpus)

	nDocs := float64(len(texts))
	idf := make(map[string]float64, len(vocab))
	for term := range vocab {
		idf[term] = math.Log((1+nDocs)/(1+float64(df[term]))) + 1
	}

	scores := make(map[string]float64, len(vocab))
	for _, counts := range docs {
		weights := make(map[string]float64, len(counts))
		var norm float64
		for term, c := range counts {
			w, ok := idf[term]
			if !ok {
				continue
			}
			w *= float64(c)
			weights[term] = w
			norm += w * w
		}
		if norm == 0 {
			continue
		}
		norm = math.Sqrt(norm)
		for term, w := range weights {
			scores[term] += w / norm
		}
	}

	out := make([]Term, 0, len(scores))
	for term, s := range scores {
		out = append(out, Term{Term: term, Score: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Term < out[j].Term
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// vocabulary keeps the MaxFeatures most frequent terms, ties broken lexically.
func (t *TFIDF) vocabulary(corpus map[string]int) map[string]struct{} {
	terms := make([]string, 0, len(corpus))
	for term := range corpus {
		terms = append(terms, term)
	}
	if t.cfg.MaxFeatures > 0 && len(terms) > t.cfg.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if corpus[terms[i]] != corpus[terms[j]] {
				return corpus[terms[i]] > corpus[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:t.cfg.MaxFeatures]
	}

	vocab := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		vocab[term] = struct{}{}
	}
	return vocab
}
