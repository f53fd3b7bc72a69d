// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palash-droid/folio/internal/content"
	"github.com/palash-droid/folio/internal/output"
	"github.com/palash-droid/folio/internal/ui/styles"
)

func TestRenderer_Records(t *testing.T) {
	r := NewRenderer(styles.NewTheme("dark"), nil)

	tests := []struct {
		name string
		rec  output.Record
		want []string
	}{
		{"echo", output.EchoLine("~/projects", "ls"), []string{"~/projects", "❯", "ls"}},
		{"error", output.Error("boom"), []string{"boom"}},
		{"listing", output.Listing([]output.ListItem{{Name: "skills/", Dir: true}, {Name: "about.txt"}}), []string{"skills/", "about.txt"}},
		{"menu", output.Menu([]string{"Go to Projects", "View Details"}), []string{"1.", "Go to Projects", "2.", "View Details"}},
		{"table", output.Table([]output.Row{{Key: "help", Value: "Show help"}}, 10), []string{"help", "Show help"}},
		{"card", output.CardRecord(output.Card{Title: "Pipeline", Fields: []output.Row{{Key: "Technologies", Value: "Kafka"}}, Link: "https://example.com"}),
			[]string{"Pipeline", "Technologies:", "Kafka", "https://example.com"}},
		{"markdown without renderer", output.Markdown("# Title"), []string{"# Title"}},
	}
	for _, tt := range tests {
		got := r.Record(tt.rec, 80)
		for _, w := range tt.want {
			if !strings.Contains(got, w) {
				t.Errorf("Record(%s) = %q, want it to contain %q", tt.name, got, w)
			}
		}
	}
}

func TestRenderer_ListingWraps(t *testing.T) {
	r := NewRenderer(styles.NewTheme("dark"), nil)
	items := make([]output.ListItem, 10)
	for i := range items {
		items[i] = output.ListItem{Name: "item-number-" + string(rune('a'+i))}
	}
	got := r.Record(output.Listing(items), 30)
	assert.Greater(t, strings.Count(got, "\n"), 3)
}

func TestRenderer_MarkdownFallback(t *testing.T) {
	failing := func(string, int) (string, error) { return "", errors.New("no renderer") }
	r := NewRenderer(styles.NewTheme("dark"), failing)
	assert.Contains(t, r.Record(output.Markdown("**bold**"), 40), "**bold**")

	upper := func(md string, _ int) (string, error) { return strings.ToUpper(md), nil }
	r = NewRenderer(styles.NewTheme("dark"), upper)
	assert.Equal(t, "**BOLD**", r.Record(output.Markdown("**bold**"), 40))
}

func TestRenderer_Partial(t *testing.T) {
	r := NewRenderer(styles.NewTheme("dark"), nil)
	got := r.Partial(output.Text("héllo world"), 5, 40)
	assert.Contains(t, got, "héllo")
	assert.NotContains(t, got, "world")
}

// =============================================================================
// RAIN
// =============================================================================

func TestRain_Frames(t *testing.T) {
	rain := NewRain(10, 5, 1)
	require.Equal(t, 5, rain.Columns())

	blank := rain.Render(styles.NewTheme("dark"))
	assert.Equal(t, 4, strings.Count(blank, "\n"))
	assert.Empty(t, strings.TrimSpace(blank))

	for i := 0; i < 3; i++ {
		rain.Step()
	}
	frame := rain.Render(styles.NewTheme("dark"))
	assert.Equal(t, 4, strings.Count(frame, "\n"))
	assert.NotEmpty(t, strings.TrimSpace(frame))
	assert.True(t, strings.ContainsAny(frame, rainGlyphs))
}

func TestRain_Resize(t *testing.T) {
	rain := NewRain(4, 2, 7)
	rain.Step()
	rain.Resize(8, 6)
	assert.Equal(t, 4, rain.Columns())
	assert.Equal(t, 5, strings.Count(rain.Render(styles.NewTheme("dark")), "\n"))

	rain.Resize(0, 0)
	assert.Equal(t, 1, rain.Columns())
}

// =============================================================================
// SIMPLE VIEW
// =============================================================================

func TestRenderSimple_Offsets(t *testing.T) {
	prof := content.MustDefault()
	page := RenderSimple(SimpleSections(prof), 80, nil)
	lines := strings.Split(page.Content, "\n")

	tests := []struct {
		target  output.Target
		heading string
	}{
		{output.TargetProjects, "## Projects"},
		{output.TargetContact, "## Contact"},
	}
	for _, tt := range tests {
		off := page.Offset(tt.target)
		if off >= len(lines) || lines[off] != tt.heading {
			t.Errorf("Offset(%s) = %d, want the line of %q", tt.target, off, tt.heading)
		}
	}
	assert.Zero(t, page.Offset(output.TargetNone))

	for _, p := range prof.Projects {
		assert.Contains(t, page.Content, p.Title)
	}
	assert.Contains(t, page.Content, prof.Contact.Email)
}

func TestSimpleSections_NilProfile(t *testing.T) {
	assert.Nil(t, SimpleSections(nil))
	assert.Empty(t, RenderSimple(nil, 80, nil).Content)
}
