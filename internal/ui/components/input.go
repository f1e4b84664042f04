// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/healthnest-tui/internal/ui/styles"
)

// DefaultMaxChars is the chat input character limit.
const DefaultMaxChars = 2000

// =============================================================================
// INPUT AREA COMPONENT - Chat input with character counter
// =============================================================================

// InputArea is the chat message input.
type InputArea struct {
	input    textinput.Model
	maxChars int
	width    int
	focused  bool
	theme    *styles.Theme
}

// NewInputArea creates a new InputArea component.
func NewInputArea(theme *styles.Theme) *InputArea {
	ti := textinput.New()
	ti.Placeholder = "Ask about your health... (/ for commands)"
	ti.CharLimit = DefaultMaxChars
	ti.Width = 70
	ti.Prompt = "> "

	ti.PromptStyle = theme.InputPrompt
	ti.TextStyle = lipgloss.NewStyle().
		Foreground(styles.TextPrimary)
	ti.PlaceholderStyle = lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	ti.Cursor.Style = lipgloss.NewStyle().
		Foreground(styles.Emerald)

	return &InputArea{
		input:    ti,
		maxChars: DefaultMaxChars,
		width:    80,
		theme:    theme,
	}
}

// Focus focuses the input.
func (i *InputArea) Focus() tea.Cmd {
	i.focused = true
	return i.input.Focus()
}

// Blur removes focus from the input.
func (i *InputArea) Blur() {
	i.focused = false
	i.input.Blur()
}

// Focused returns whether the input is focused.
func (i *InputArea) Focused() bool {
	return i.focused
}

// SetWidth sets the input area width.
func (i *InputArea) SetWidth(width int) {
	i.width = width
	i.input.Width = max(width-20, 20)
}

// Value returns the current input value.
func (i *InputArea) Value() string {
	return i.input.Value()
}

// SetValue sets the input value.
func (i *InputArea) SetValue(value string) {
	i.input.SetValue(value)
	i.input.CursorEnd()
}

// Reset clears the input.
func (i *InputArea) Reset() {
	i.input.Reset()
}

// Update handles input updates.
func (i *InputArea) Update(msg tea.Msg) (*InputArea, tea.Cmd) {
	var cmd tea.Cmd
	i.input, cmd = i.input.Update(msg)
	return i, cmd
}

// View renders the input area.
func (i *InputArea) View() string {
	border := styles.Overlay
	if i.focused {
		border = styles.Emerald
	}

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(max(i.width-2, 10))

	count := len([]rune(i.input.Value()))
	counter := i.counterStyle(count).Render(strconv.Itoa(count) + "/" + strconv.Itoa(i.maxChars))

	return box.Render(i.input.View() + " " + counter)
}

// counterStyle colors the counter as the limit approaches.
func (i *InputArea) counterStyle(count int) lipgloss.Style {
	percent := 0.0
	if i.maxChars > 0 {
		percent = float64(count) / float64(i.maxChars) * 100
	}
	switch {
	case percent >= 90:
		return lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)
	case percent >= 75:
		return lipgloss.NewStyle().Foreground(styles.Amber)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}
