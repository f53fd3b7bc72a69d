// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme_ForcedModes(t *testing.T) {
	tests := []struct {
		mode     string
		wantDark bool
		glamour  string
	}{
		{"dark", true, "dark"},
		{"light", false, "light"},
	}
	for _, tt := range tests {
		th := NewTheme(tt.mode)
		if th.IsDark != tt.wantDark {
			t.Errorf("NewTheme(%q).IsDark = %v, want %v", tt.mode, th.IsDark, tt.wantDark)
		}
		if got := th.GlamourStyle(); got != tt.glamour {
			t.Errorf("NewTheme(%q).GlamourStyle() = %q, want %q", tt.mode, got, tt.glamour)
		}
	}
}

func TestStylesRender(t *testing.T) {
	th := NewTheme("dark")
	if th.Error.Render("x") == "" || th.Prompt.Render("❯") == "" {
		t.Error("styles should render non-empty output")
	}
}
