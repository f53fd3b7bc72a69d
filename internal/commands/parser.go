// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// parser.go - Input line parsing for the portfolio terminal.
package commands

import (
	"strings"
	"unicode"
)

// ParseResult is a submitted line split into command name and arguments.
type ParseResult struct {
	CommandName string   // First token as typed
	Args        []string // Remaining tokens, quotes removed
	RawArgs     string   // Everything after the command name, trimmed
	RawInput    string   // The trimmed line
}

// Empty reports whether the line had no tokens at all.
func (p ParseResult) Empty() bool {
	return p.CommandName == ""
}

// Parse splits line on whitespace. Single and double quotes group words and
// a backslash escapes the next character.
func Parse(line string) ParseResult {
	trimmed := strings.TrimSpace(line)
	result := ParseResult{RawInput: trimmed}

	tokens := splitCommandLine(trimmed)
	if len(tokens) == 0 {
		return result
	}

	result.CommandName = tokens[0]
	result.Args = tokens[1:]
	result.RawArgs = rawArgs(trimmed)
	return result
}

// rawArgs is the text after the first whitespace-delimited word.
func rawArgs(line string) string {
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(line[i:])
}

// splitCommandLine tokenizes s, honouring quotes and backslash escapes.
// An unterminated quote runs to the end of the line.
func splitCommandLine(s string) []string {
	var (
		tokens  []string
		current strings.Builder
		quote   rune
		escaped bool
		started bool
	)

	flush := func() {
		if started {
			tokens = append(tokens, current.String())
			current.Reset()
			started = false
		}
	}

	for _, r := range s {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
			started = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			started = true
		case unicode.IsSpace(r):
			flush()
		default:
			current.WriteRune(r)
			started = true
		}
	}
	flush()

	return tokens
}
