// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/healthnest-tui/internal/ui/styles"
	"github.com/jeranaias/healthnest-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT - Quick questions, shortcuts and notices
// =============================================================================

// Shortcut is one key hint in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// DefaultShortcuts are the key hints shown on the right of the status bar.
var DefaultShortcuts = []Shortcut{
	{Key: "Tab", Desc: "focus"},
	{Key: "Enter", Desc: "send"},
	{Key: "PgUp/PgDn", Desc: "scroll"},
	{Key: "Ctrl+C", Desc: "quit"},
}

// StatusBar is the bottom bar: the quick questions bound to F1..Fn, the key
// hints and a transient notice.
type StatusBar struct {
	QuickQuestions []string
	Shortcuts      []Shortcut
	Notice         string
	Width          int
	theme          *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme, quick []string) *StatusBar {
	return &StatusBar{
		QuickQuestions: quick,
		Shortcuts:      DefaultShortcuts,
		Width:          80,
		theme:          theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetNotice sets the transient notice. "" clears it.
func (s *StatusBar) SetNotice(notice string) {
	s.Notice = notice
}

// QuickKey returns the function key bound to the i-th (0-based) quick question.
func QuickKey(i int) string {
	return "f" + strconv.Itoa(i+1)
}

// View renders the status bar.
func (s *StatusBar) View() string {
	width := max(s.Width, 30)
	lines := make([]string, 0, 3)

	if len(s.QuickQuestions) > 0 {
		perItem := max(width/len(s.QuickQuestions)-6, 8)
		parts := make([]string, 0, len(s.QuickQuestions))
		for i, q := range s.QuickQuestions {
			parts = append(parts,
				s.theme.ShortcutKey.Render("F"+strconv.Itoa(i+1))+" "+
					s.theme.ShortcutDesc.Render(util.TruncateWidth(q, perItem)))
		}
		lines = append(lines, strings.Join(parts, "  "))
	}

	hints := make([]string, 0, len(s.Shortcuts))
	for _, sc := range s.Shortcuts {
		hints = append(hints, s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}
	hintLine := strings.Join(hints, "  ")

	if s.Notice != "" {
		notice := s.theme.Notice.Render(util.TruncateWidth(s.Notice, width/2))
		gap := max(width-lipgloss.Width(notice)-lipgloss.Width(hintLine), 1)
		hintLine = notice + strings.Repeat(" ", gap) + hintLine
	}
	lines = append(lines, hintLine)

	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}
