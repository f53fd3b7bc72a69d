// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

const (
	// AcceptThreshold is the exclusive upper bound on an accepted score.
	AcceptThreshold = 0.7

	// DefaultReplyDelay is the pause before the chat widget shows an answer.
	DefaultReplyDelay = 500 * time.Millisecond

	ListeningText = "I'm listening! Ask me anything about my portfolio."
	FallbackText  = "I'm not sure about that one. Try asking about my 'skills', 'projects', or 'contact' info!"
)

var stopwords = map[string]bool{
	"what": true, "is": true, "the": true, "a": true, "an": true,
	"do": true, "you": true, "have": true, "can": true, "tell": true,
	"me": true, "about": true, "show": true, "my": true, "your": true,
	"i": true, "want": true, "to": true, "are": true, "of": true,
}

var punctuation = strings.NewReplacer("?", "", ".", "", ",", "", "!", "")

// Clean lowercases text, drops ?.,! and stopwords, and joins what remains
// with single spaces.
func Clean(text string) string {
	s := punctuation.Replace(strings.ToLower(norm.NFKC.String(text)))
	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if !stopwords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// Response is the assistant's answer to one query.
type Response struct {
	Text           string    `json:"text"`
	RelatedCommand string    `json:"relatedCommand,omitempty"`
	Topic          Topic     `json:"topic,omitempty"`
	Choices        ChoiceSet `json:"choices,omitempty"`
	Matched        bool      `json:"matched"`
	Score          float64   `json:"score"`
}

// Processor turns raw questions into responses.
type Processor struct {
	searcher Searcher
}

// NewProcessor builds a processor over kb using the fuzzy matcher.
func NewProcessor(kb []Entry) *Processor {
	return NewProcessorWithSearcher(NewMatcher(kb))
}

// NewProcessorWithSearcher builds a processor over a custom ranking.
func NewProcessorWithSearcher(s Searcher) *Processor {
	return &Processor{searcher: s}
}

// Process answers raw. It never fails: blank input gets ListeningText and
// a query without a confident match gets FallbackText pointing at help.
func (p *Processor) Process(raw string) Response {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Response{Text: ListeningText}
	}

	query := Clean(trimmed)
	if query == "" {
		// Everything was a stopword; searching nothing would match nothing.
		query = trimmed
	}

	results := p.searcher.Search(query)
	if len(results) > 0 && results[0].Score < AcceptThreshold {
		best := results[0]
		return Response{
			Text:           best.Entry.Answer,
			RelatedCommand: best.Entry.RelatedCommand,
			Topic:          best.Entry.Topic,
			Choices:        best.Entry.FollowUp,
			Matched:        true,
			Score:          best.Score,
		}
	}

	resp := Response{Text: FallbackText, RelatedCommand: "help"}
	if len(results) > 0 {
		resp.Score = results[0].Score
	}
	return resp
}

// Reply is Process with a delivery delay, as used by the chat widget. The
// answer is computed before waiting; ctx cancels only the wait.
func (p *Processor) Reply(ctx context.Context, raw string, delay time.Duration) (Response, error) {
	resp := p.Process(raw)
	if delay <= 0 {
		return resp, nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Response{}, ctx.Err()
	case <-timer.C:
		return resp, nil
	}
}
