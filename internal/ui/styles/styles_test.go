// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
	"time"
)

// =============================================================================
// THEME TESTS
// =============================================================================

func TestNewThemeModes(t *testing.T) {
	tests := []struct {
		mode   string
		isDark bool
	}{
		{"dark", true},
		{"light", false},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			theme := NewTheme(tt.mode)
			if theme == nil {
				t.Fatal("NewTheme() returned nil")
			}
			if theme.IsDark != tt.isDark {
				t.Errorf("IsDark = %v, want %v", theme.IsDark, tt.isDark)
			}
		})
	}
}

func TestThemeStylesRender(t *testing.T) {
	theme := NewTheme("dark")

	rendered := []string{
		theme.HeaderBrand.Render("HealthNest"),
		theme.UserBubble.Render("hello"),
		theme.BotBubble.Render("hello"),
		theme.MetricValue.Render("22.0"),
	}
	for i, r := range rendered {
		if r == "" {
			t.Errorf("style %d rendered empty output", i)
		}
	}
	if !strings.Contains(theme.UserBubble.Render("hello"), "hello") {
		t.Error("UserBubble should keep its content")
	}
}

func TestLayoutMode(t *testing.T) {
	theme := NewTheme("dark")

	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{200, LayoutWide},
	}

	for _, tt := range tests {
		theme.SetSize(tt.width, 40)
		if got := theme.GetLayoutMode(); got != tt.want {
			t.Errorf("GetLayoutMode() at width %d = %v, want %v", tt.width, got, tt.want)
		}
	}
}

// =============================================================================
// INDICATOR AND SPINNER TESTS
// =============================================================================

func TestRenderHelpersIncludeIndicators(t *testing.T) {
	if got := RenderSuccess("ready"); !strings.Contains(got, StatusIndicators.Success) {
		t.Errorf("RenderSuccess() = %q, missing indicator", got)
	}
	if got := RenderError("offline"); !strings.Contains(got, StatusIndicators.Error) {
		t.Errorf("RenderError() = %q, missing indicator", got)
	}
	if got := RenderWarning("busy"); !strings.Contains(got, StatusIndicators.Warning) {
		t.Errorf("RenderWarning() = %q, missing indicator", got)
	}
}

func TestSpinnerConfig(t *testing.T) {
	if got := DotsSpinner.Duration(); got != time.Second/6 {
		t.Errorf("DotsSpinner.Duration() = %v, want %v", got, time.Second/6)
	}
	if got := (SpinnerConfig{}).Duration(); got != time.Second {
		t.Errorf("zero FPS Duration() = %v, want 1s", got)
	}

	s := LineSpinner.Spinner()
	if len(s.Frames) != len(LineSpinner.Frames) {
		t.Errorf("Spinner() frames = %d, want %d", len(s.Frames), len(LineSpinner.Frames))
	}
	if s.FPS != LineSpinner.Duration() {
		t.Errorf("Spinner() FPS = %v, want %v", s.FPS, LineSpinner.Duration())
	}
}
