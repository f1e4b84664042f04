// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/healthnest-tui/internal/ui/styles"
)

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	// TitleStyle is used for command titles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Emerald)

	// SectionStyle is used for section headers within a command's output
	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.TextPrimary)

	// LabelStyle is used for field labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Width(16)

	// ValueStyle is used for field values
	ValueStyle = lipgloss.NewStyle().
			Foreground(styles.TextPrimary)

	// DimStyle is used for hints and secondary text
	DimStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	// PromptStyle is used for the chat prompt
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Teal)

	// BotStyle is used for the assistant name in line-mode chat
	BotStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.BotBubbleBorder)
)

// =============================================================================
// OUTPUT HELPERS
// =============================================================================

// printTitle writes a bold title line.
func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, TitleStyle.Render(title))
}

// printField writes an aligned label/value line.
func printField(w io.Writer, label, value string) {
	fmt.Fprintln(w, LabelStyle.Render(label+":")+ValueStyle.Render(value))
}

// printIndented writes text with every line indented by two spaces.
func printIndented(w io.Writer, text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintln(w, "  "+line)
	}
}
