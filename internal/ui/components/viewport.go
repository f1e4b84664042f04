// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/healthnest-tui/internal/model"
	"github.com/jeranaias/healthnest-tui/internal/ui/styles"
)

// =============================================================================
// CHAT VIEWPORT COMPONENT - Scrollable transcript with indicators
// =============================================================================

// ChatViewport is the scrollable transcript area. It follows new entries
// until the user scrolls up, and resumes following at the bottom.
type ChatViewport struct {
	viewport    viewport.Model
	width       int
	height      int
	ready       bool
	autoScroll  bool
	theme       *styles.Theme
	messageList *MessageList
}

// NewChatViewport creates a new ChatViewport.
func NewChatViewport(theme *styles.Theme) *ChatViewport {
	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()

	return &ChatViewport{
		viewport:    vp,
		width:       80,
		height:      20,
		autoScroll:  true,
		theme:       theme,
		messageList: NewMessageList(theme),
	}
}

// SetSize updates the viewport dimensions.
func (cv *ChatViewport) SetSize(width, height int) {
	cv.width = width
	cv.height = max(height, 1)
	cv.viewport.Width = width
	cv.viewport.Height = cv.height
	cv.messageList.SetWidth(width - 2)
	cv.ready = true

	cv.refresh()
}

// SetMarkdown enables markdown rendering of bot entries.
func (cv *ChatViewport) SetMarkdown(r MarkdownRenderer) {
	cv.messageList.SetMarkdown(r)
}

// SetShowTimestamps toggles the time shown beside each entry.
func (cv *ChatViewport) SetShowTimestamps(show bool) {
	cv.messageList.ShowTimestamps = show
	cv.refresh()
}

// SetEntries replaces the transcript.
func (cv *ChatViewport) SetEntries(entries []model.Entry) {
	cv.messageList.SetEntries(entries)
	cv.refresh()
}

// SetTypingFrame updates the frame drawn in typing placeholders.
func (cv *ChatViewport) SetTypingFrame(frame string) {
	if cv.messageList.TypingFrame == frame {
		return
	}
	cv.messageList.TypingFrame = frame
	cv.refresh()
}

// refresh re-renders the content and follows the bottom when enabled.
func (cv *ChatViewport) refresh() {
	cv.viewport.SetContent(cv.messageList.View())
	if cv.autoScroll {
		cv.viewport.GotoBottom()
	}
}

// Content returns the rendered transcript.
func (cv *ChatViewport) Content() string {
	return cv.messageList.View()
}

// ScrollToBottom scrolls to the bottom and resumes following.
func (cv *ChatViewport) ScrollToBottom() {
	cv.viewport.GotoBottom()
	cv.autoScroll = true
}

// ScrollToTop scrolls to the top of the viewport.
func (cv *ChatViewport) ScrollToTop() {
	cv.viewport.GotoTop()
	cv.autoScroll = false
}

// ScrollUp scrolls up by the specified number of lines.
func (cv *ChatViewport) ScrollUp(lines int) {
	cv.autoScroll = false
	cv.viewport.LineUp(lines)
}

// ScrollDown scrolls down by the specified number of lines.
func (cv *ChatViewport) ScrollDown(lines int) {
	cv.viewport.LineDown(lines)
	if cv.viewport.AtBottom() {
		cv.autoScroll = true
	}
}

// AtBottom reports whether the viewport shows the last line.
func (cv *ChatViewport) AtBottom() bool {
	return cv.viewport.AtBottom()
}

// AutoScroll reports whether the viewport follows new entries.
func (cv *ChatViewport) AutoScroll() bool {
	return cv.autoScroll
}

// Update handles scrolling keys and the mouse wheel.
func (cv *ChatViewport) Update(msg tea.Msg) (*ChatViewport, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "pgup":
			cv.ScrollUp(cv.height)
			return cv, nil
		case "pgdown":
			cv.ScrollDown(cv.height)
			return cv, nil
		case "ctrl+home":
			cv.ScrollToTop()
			return cv, nil
		case "ctrl+end":
			cv.ScrollToBottom()
			return cv, nil
		}
		return cv, nil

	case tea.MouseMsg:
		switch msg.Type {
		case tea.MouseWheelUp:
			cv.ScrollUp(3)
			return cv, nil
		case tea.MouseWheelDown:
			cv.ScrollDown(3)
			return cv, nil
		}
	}

	var cmd tea.Cmd
	cv.viewport, cmd = cv.viewport.Update(msg)
	return cv, cmd
}

// View renders the viewport with a "more below" indicator when scrolled up.
func (cv *ChatViewport) View() string {
	if !cv.ready {
		return ""
	}

	content := cv.viewport.View()
	if cv.viewport.AtBottom() {
		return content
	}

	indicator := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true).
		Width(cv.width).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("v more below (%d%%) v", int(cv.viewport.ScrollPercent()*100)))

	return lipgloss.JoinVertical(lipgloss.Left, content, indicator)
}
