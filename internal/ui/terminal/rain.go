// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palash-droid/folio/internal/ui/styles"
)

// =============================================================================
// MATRIX RAIN
// =============================================================================

const (
	rainGlyphs = "0123456789ABCDEF"
	rainFrame  = 33 * time.Millisecond
	// rainSpacing puts a drop in every other column.
	rainSpacing = 2
	rainTrail   = 6
	// rainRestart is the chance a drop past the bottom starts over.
	rainRestart = 0.025
)

// rainTickMsg carries the generation of the rain that scheduled it, so ticks
// of a skipped rain do not drive the next one.
type rainTickMsg struct {
	at  time.Time
	gen int
}

func rainTick(gen int) tea.Cmd {
	return tea.Tick(rainFrame, func(t time.Time) tea.Msg { return rainTickMsg{at: t, gen: gen} })
}

// Rain is a falling-glyph animation sized to the screen.
type Rain struct {
	width, height int
	drops         []int
	grid          [][]byte
	rng           *rand.Rand
}

// NewRain creates a rain effect. Every drop starts at the top.
func NewRain(width, height int, seed uint64) *Rain {
	r := &Rain{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
	r.Resize(width, height)
	return r
}

// Resize adapts the rain to a new screen size, keeping existing drops.
func (r *Rain) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	cols := (width + rainSpacing - 1) / rainSpacing

	drops := make([]int, cols)
	copy(drops, r.drops)
	grid := make([][]byte, height)
	for y := range grid {
		grid[y] = make([]byte, cols)
		if y < len(r.grid) {
			copy(grid[y], r.grid[y])
		}
	}
	r.width, r.height, r.drops, r.grid = width, height, drops, grid
}

// Step advances every drop by one row.
func (r *Rain) Step() {
	for i, y := range r.drops {
		if y < r.height {
			r.grid[y][i] = rainGlyphs[r.rng.IntN(len(rainGlyphs))]
		}
		if y > r.height+rainTrail && r.rng.Float64() < rainRestart {
			r.drops[i] = 0
			continue
		}
		r.drops[i]++
	}
}

// Columns reports how many drops are falling.
func (r *Rain) Columns() int {
	return len(r.drops)
}

// Render draws the current frame: a bright head, a green trail and a faint
// residue of earlier glyphs.
func (r *Rain) Render(theme *styles.Theme) string {
	var b strings.Builder
	for y := 0; y < r.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for i, head := range r.drops {
			if i > 0 {
				b.WriteString(strings.Repeat(" ", rainSpacing-1))
			}
			g := r.grid[y][i]
			if g == 0 {
				b.WriteByte(' ')
				continue
			}
			cell := string(g)
			switch age := head - 1 - y; {
			case age == 0:
				b.WriteString(theme.RainHead.Render(cell))
			case age > 0 && age <= rainTrail:
				b.WriteString(theme.RainTrail.Render(cell))
			default:
				b.WriteString(theme.RainFaint.Render(cell))
			}
		}
	}
	return b.String()
}
