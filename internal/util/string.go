// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonWordOrDash = regexp.MustCompile(`[^\w-]`)
)

// Slugify lowercases s and replaces each whitespace run with a hyphen.
// "Customer Analytics Dashboard" becomes "customer-analytics-dashboard".
func Slugify(s string) string {
	return strings.ToLower(whitespaceRun.ReplaceAllString(s, "-"))
}

// SlugifyStrict is Slugify with every character outside [A-Za-z0-9_-]
// removed afterwards. Blog posts are addressable by this form of their title.
func SlugifyStrict(s string) string {
	return nonWordOrDash.ReplaceAllString(Slugify(s), "")
}

// PadRight pads s with spaces to the given display width. Strings already
// at least that wide are returned unchanged.
func PadRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// Truncate shortens s to at most width display columns, ending in "..."
// when anything was cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
