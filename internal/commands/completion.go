// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// completion.go - Tab completion of command names.
package commands

import (
	"strings"
)

// CompletionKind classifies a completion attempt.
type CompletionKind int

const (
	// CompletionNone means nothing to do: empty input or no match.
	CompletionNone CompletionKind = iota
	// CompletionUnique means exactly one command matched.
	CompletionUnique
	// CompletionAmbiguous means several commands matched.
	CompletionAmbiguous
)

func (k CompletionKind) String() string {
	switch k {
	case CompletionUnique:
		return "unique"
	case CompletionAmbiguous:
		return "ambiguous"
	default:
		return "none"
	}
}

// Completion is the outcome of a Tab press.
type Completion struct {
	Kind    CompletionKind
	Input   string   // What the input line should now hold
	Matches []string // Matching names in registration order
}

// Listing is the text printed for an ambiguous completion.
func (c Completion) Listing() string {
	return strings.Join(c.Matches, "  ")
}

// Completer resolves command-name prefixes against a registry.
type Completer struct {
	registry *Registry
}

// NewCompleter creates a completer over registry.
func NewCompleter(registry *Registry) *Completer {
	return &Completer{registry: registry}
}

// Complete matches the trimmed input as a case-sensitive prefix of the
// command names. A unique match replaces the input; otherwise the input is
// left as it was.
func (c *Completer) Complete(input string) Completion {
	prefix := strings.TrimSpace(input)
	if prefix == "" {
		return Completion{Kind: CompletionNone, Input: input}
	}

	matches := c.Candidates(prefix)
	switch len(matches) {
	case 0:
		return Completion{Kind: CompletionNone, Input: input}
	case 1:
		return Completion{Kind: CompletionUnique, Input: matches[0], Matches: matches}
	default:
		return Completion{Kind: CompletionAmbiguous, Input: input, Matches: matches}
	}
}

// Candidates returns every name starting with prefix, for hosts that cycle
// through matches themselves.
func (c *Completer) Candidates(prefix string) []string {
	var out []string
	for _, name := range c.registry.Names() {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}
