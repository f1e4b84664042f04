// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jeranaias/healthnest-tui/internal/model"
	"github.com/jeranaias/healthnest-tui/internal/ui/styles"
	"github.com/jeranaias/healthnest-tui/internal/util"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// MarkdownRenderer renders bot replies for the terminal.
// *glamour.TermRenderer satisfies it.
type MarkdownRenderer interface {
	Render(in string) (string, error)
}

// NewMarkdownRenderer creates a glamour renderer wrapping at width.
func NewMarkdownRenderer(width int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
}

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one transcript entry.
type MessageBubble struct {
	Entry         model.Entry
	Width         int
	ShowTimestamp bool

	// TypingFrame is the spinner frame drawn for typing placeholders.
	TypingFrame string

	markdown MarkdownRenderer
	theme    *styles.Theme
}

// NewMessageBubble creates a new MessageBubble.
func NewMessageBubble(e model.Entry, theme *styles.Theme) *MessageBubble {
	return &MessageBubble{
		Entry:         e,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
	}
}

// SetWidth sets the bubble width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// SetMarkdown enables markdown rendering of bot text. nil disables it.
func (b *MessageBubble) SetMarkdown(r MarkdownRenderer) {
	b.markdown = r
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	switch {
	case b.Entry.IsTyping:
		return b.renderTyping()
	case b.Entry.IsUser():
		return b.renderUserBubble()
	default:
		return b.renderBotBubble()
	}
}

func (b *MessageBubble) contentWidth() int {
	return max(b.Width-12, 20)
}

// renderHeader renders the author name and timestamp line.
func (b *MessageBubble) renderHeader() string {
	parts := []string{b.theme.BubbleName.Render(b.Entry.Role.DisplayName())}
	if b.ShowTimestamp && !b.Entry.Timestamp.IsZero() {
		parts = append(parts, b.theme.Timestamp.Render(b.Entry.Timestamp.Format("3:04 PM")))
	}
	return strings.Join(parts, " ")
}

// ==========================================================================
// USER BUBBLE - Right-aligned, literal text
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	content := util.StripControl(b.Entry.Text)
	wrapped := wordwrap.String(content, b.contentWidth())
	width := min(lipgloss.Width(wrapped)+4, b.Width-8)

	bubble := b.theme.UserBubble.Width(width).Render(wrapped)

	leftMargin := max(b.Width-lipgloss.Width(bubble), 0)
	margin := lipgloss.NewStyle().MarginLeft(leftMargin)
	header := lipgloss.NewStyle().
		Width(b.Width).
		Align(lipgloss.Right).
		Render(b.renderHeader())

	return lipgloss.JoinVertical(lipgloss.Left, header, margin.Render(bubble))
}

// ==========================================================================
// BOT BUBBLE - Left-aligned, optional label and markdown
// ==========================================================================

func (b *MessageBubble) renderBotBubble() string {
	text := util.StripControl(b.Entry.Text)

	var body string
	if b.markdown != nil {
		if rendered, err := b.markdown.Render(text); err == nil {
			body = strings.Trim(rendered, "\n")
		}
	}
	if body == "" {
		body = wordwrap.String(text, b.contentWidth())
	}

	if b.Entry.Label != "" {
		label := b.theme.EntryLabel.Foreground(labelColor(b.Entry.Label)).
			Render(util.StripControl(b.Entry.Label) + ":")
		if strings.Contains(body, "\n") {
			body = label + "\n" + body
		} else {
			body = label + " " + body
		}
	}

	width := min(lipgloss.Width(body)+4, b.Width-8)
	bubble := b.theme.BotBubble.Width(width).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, b.renderHeader(), bubble)
}

// labelColor maps the well-known labels to a semantic color.
func labelColor(label string) lipgloss.TerminalColor {
	switch strings.ToLower(label) {
	case "error":
		return styles.Rose
	case "warning":
		return styles.Amber
	default:
		return styles.Teal
	}
}

func (b *MessageBubble) renderTyping() string {
	frame := b.TypingFrame
	if frame == "" {
		frame = "..."
	}
	return b.theme.TypingText.Render(model.RoleBot.DisplayName() + " is typing " + frame)
}

// =============================================================================
// MESSAGE LIST COMPONENT
// =============================================================================

// WelcomeText is shown while the transcript is empty.
const WelcomeText = "Hello! I'm your HealthNest assistant. Fill in your profile and " +
	"press Enter to analyze it, or ask me anything about your health."

// MessageList renders a transcript in order.
type MessageList struct {
	Entries        []model.Entry
	Width          int
	ShowTimestamps bool
	TypingFrame    string
	markdown       MarkdownRenderer
	theme          *styles.Theme
}

// NewMessageList creates a new MessageList.
func NewMessageList(theme *styles.Theme) *MessageList {
	return &MessageList{
		Width:          80,
		ShowTimestamps: true,
		theme:          theme,
	}
}

// SetEntries sets the entries to display.
func (ml *MessageList) SetEntries(entries []model.Entry) {
	ml.Entries = entries
}

// SetWidth sets the list width.
func (ml *MessageList) SetWidth(width int) {
	ml.Width = width
}

// SetMarkdown enables markdown rendering of bot text.
func (ml *MessageList) SetMarkdown(r MarkdownRenderer) {
	ml.markdown = r
}

// View renders all entries separated by a blank line.
func (ml *MessageList) View() string {
	if len(ml.Entries) == 0 {
		welcome := NewMessageBubble(model.NewBotEntry(WelcomeText), ml.theme)
		welcome.SetWidth(ml.Width)
		welcome.ShowTimestamp = false
		return welcome.View()
	}

	bubbles := make([]string, 0, len(ml.Entries))
	for _, e := range ml.Entries {
		bubble := NewMessageBubble(e, ml.theme)
		bubble.SetWidth(ml.Width)
		bubble.ShowTimestamp = ml.ShowTimestamps
		bubble.TypingFrame = ml.TypingFrame
		bubble.SetMarkdown(ml.markdown)
		bubbles = append(bubbles, bubble.View())
	}

	return strings.Join(bubbles, "\n\n")
}
