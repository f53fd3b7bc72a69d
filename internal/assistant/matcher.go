// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"sort"
	"strings"
	"unicode"
)

// =============================================================================
// FUZZY MATCHER
// =============================================================================

// Field weights. They sum to 1 so an entry score stays within [0, 1].
const (
	KeywordWeight  = 0.6
	QuestionWeight = 0.4
)

// TokenCutoff is the largest normalised edit distance at which two tokens
// still match. Anything further apart scores as a complete miss.
const TokenCutoff = 1.0 / 3

// Result is one scored knowledge entry. Lower Score is better.
type Result struct {
	Entry *Entry
	Index int
	Score float64
}

// Searcher ranks knowledge entries against a query.
type Searcher interface {
	Search(query string) []Result
}

// Matcher scores every entry of a fixed knowledge base. Value tokens are
// precomputed; the matcher is safe for concurrent use once built.
type Matcher struct {
	entries   []Entry
	keywords  [][][]string
	questions [][][]string
}

// NewMatcher indexes entries. The slice is retained and must not be modified.
func NewMatcher(entries []Entry) *Matcher {
	m := &Matcher{
		entries:   entries,
		keywords:  make([][][]string, len(entries)),
		questions: make([][][]string, len(entries)),
	}
	for i, e := range entries {
		m.keywords[i] = tokenizeAll(e.Keywords)
		m.questions[i] = tokenizeAll(e.Questions)
	}
	return m
}

// Entries returns the indexed knowledge base.
func (m *Matcher) Entries() []Entry {
	return m.entries
}

// Search scores every entry against query and returns them best first.
// Equal scores keep knowledge-base order. A query with no tokens matches
// nothing.
func (m *Matcher) Search(query string) []Result {
	q := tokenize(query)
	if len(q) == 0 {
		return nil
	}

	results := make([]Result, len(m.entries))
	for i := range m.entries {
		kw := fieldDistance(q, m.keywords[i])
		qs := fieldDistance(q, m.questions[i])
		results[i] = Result{
			Entry: &m.entries[i],
			Index: i,
			Score: KeywordWeight*kw + QuestionWeight*qs,
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score < results[b].Score
	})
	return results
}

// fieldDistance is the distance from the query to the closest value of a
// field. An empty field is as far as possible.
func fieldDistance(query []string, values [][]string) float64 {
	best := 1.0
	for _, v := range values {
		if d := valueDistance(query, v); d < best {
			best = d
			if best == 0 {
				break
			}
		}
	}
	return best
}

// valueDistance averages, over query tokens, the score of the nearest token
// of the value. Token order and position are ignored.
func valueDistance(query, value []string) float64 {
	if len(value) == 0 {
		return 1
	}
	var sum float64
	for _, qt := range query {
		nearest := 1.0
		for _, vt := range value {
			if d := tokenScore(qt, vt); d < nearest {
				nearest = d
				if nearest == 0 {
					break
				}
			}
		}
		sum += nearest
	}
	return sum / float64(len(query))
}

// tokenScore rescales tokenDistance so TokenCutoff maps to a full miss.
// "skils" against "skills" scores 0.5; "react" against "reach" scores 0.6.
func tokenScore(a, b string) float64 {
	d := tokenDistance(a, b)
	if d > TokenCutoff {
		return 1
	}
	return d / TokenCutoff
}

// tokenDistance is the Levenshtein distance normalised by the longer token.
func tokenDistance(a, b string) float64 {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 0
	}
	return float64(levenshtein(ra, rb)) / float64(longest)
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// tokenize lowercases s and splits it on anything that is not a letter or
// digit, so "scikit-learn" and "power bi" both become two tokens.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func tokenizeAll(values []string) [][]string {
	out := make([][]string, 0, len(values))
	for _, v := range values {
		if toks := tokenize(v); len(toks) > 0 {
			out = append(out, toks)
		}
	}
	return out
}
