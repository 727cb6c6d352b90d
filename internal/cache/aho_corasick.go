// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package cache

import (
	"sort"
	"strings"
)

// Automaton is an immutable, case-insensitive Aho-Corasick matcher.
// It finds every keyword occurring in a text in O(n + m + z) time, where
// n is the text length, m the total keyword length and z the match count.
type Automaton struct {
	root     *acNode
	patterns []string
}

// acNode is a trie node of the automaton.
type acNode struct {
	children map[rune]*acNode
	failure  *acNode
	output   []int // indices into Automaton.patterns ending here
}

func newACNode() *acNode {
	return &acNode{children: make(map[rune]*acNode)}
}

// NewAutomaton builds an automaton from the given keywords.
// Keywords are lower-cased, empty keywords dropped and duplicates removed.
// The stored pattern list is sorted so that two automata built from the same
// keyword set behave identically regardless of input order.
func NewAutomaton(keywords []string) *Automaton {
	seen := make(map[string]struct{}, len(keywords))
	patterns := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		patterns = append(patterns, kw)
	}
	sort.Strings(patterns)

	a := &Automaton{root: newACNode(), patterns: patterns}
	for i, p := range patterns {
		a.insert(i, p)
	}
	a.link()
	return a
}

func (a *Automaton) insert(index int, pattern string) {
	node := a.root
	for _, ch := range pattern {
		next, ok := node.children[ch]
		if !ok {
			next = newACNode()
			node.children[ch] = next
		}
		node = next
	}
	node.output = append(node.output, index)
}

// link computes failure links breadth-first and merges outputs along them.
func (a *Automaton) link() {
	queue := make([]*acNode, 0, len(a.root.children))
	for _, child := range a.root.children {
		child.failure = a.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}
			if fail == nil {
				child.failure = a.root
				continue
			}
			child.failure = fail.children[ch]
			child.output = append(child.output, child.failure.output...)
		}
	}
}

// step advances the automaton by one rune.
func (a *Automaton) step(node *acNode, ch rune) *acNode {
	for node != a.root && node.children[ch] == nil {
		node = node.failure
	}
	if next, ok := node.children[ch]; ok {
		return next
	}
	return a.root
}

// FindAll returns the distinct keywords found in text, ordered by the
// position at which each keyword was first completed.
func (a *Automaton) FindAll(text string) []string {
	if len(a.patterns) == 0 {
		return nil
	}

	var found []string
	hit := make([]bool, len(a.patterns))
	node := a.root
	for _, ch := range strings.ToLower(text) {
		node = a.step(node, ch)
		for _, idx := range node.output {
			if hit[idx] {
				continue
			}
			hit[idx] = true
			found = append(found, a.patterns[idx])
		}
	}
	return found
}

// Contains reports whether any keyword occurs in text.
func (a *Automaton) Contains(text string) bool {
	if len(a.patterns) == 0 {
		return false
	}

	node := a.root
	for _, ch := range strings.ToLower(text) {
		node = a.step(node, ch)
		if len(node.output) > 0 {
			return true
		}
	}
	return false
}

// Patterns returns a copy of the normalized keyword list.
func (a *Automaton) Patterns() []string {
	out := make([]string, len(a.patterns))
	copy(out, a.patterns)
	return out
}
