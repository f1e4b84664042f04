// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/healthnest-tui/internal/ui/styles"
)

const (
	sidebarWidth    = 40
	headerHeight    = 1
	inputAreaHeight = 3
)

// =============================================================================
// LAYOUT
// =============================================================================

// wide reports whether the form and metrics sit beside the transcript.
func (m *Model) wide() bool {
	return m.theme.GetLayoutMode() != styles.LayoutNarrow
}

// transcriptWidth returns the width available to the transcript.
func (m *Model) transcriptWidth() int {
	if m.width == 0 {
		return 80
	}
	if m.wide() {
		return max(m.width-sidebarWidth-1, 20)
	}
	return m.width
}

// layout sizes every widget for the current window.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	m.header.SetWidth(m.width)
	m.input.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)
	m.help.Width = m.width

	side := m.width
	if m.wide() {
		side = sidebarWidth
	}
	m.form.SetWidth(side - 2)
	m.metrics.SetWidth(side - 2)

	reserved := headerHeight + inputAreaHeight + lipgloss.Height(m.statusBar.View())
	if !m.wide() {
		reserved += lipgloss.Height(m.renderSidebar())
	}
	m.transcript.SetSize(m.transcriptWidth(), max(m.height-reserved, 3))
}

// =============================================================================
// MAIN RENDER
// =============================================================================

// renderDashboard renders the complete view.
// Wide: header / (sidebar | transcript) / input / status bar.
// Narrow: header / sidebar / transcript / input / status bar.
func (m Model) renderDashboard() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	header := m.header.View()
	sidebar := m.renderSidebar()
	transcript := m.transcript.View()

	var body string
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(sidebarWidth).Render(sidebar),
			" ",
			transcript,
		)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, sidebar, transcript)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		m.input.View(),
		m.statusBar.View(),
	)
}

// renderSidebar renders the profile form above the metrics panel. The
// metrics panel is omitted until metrics are available.
func (m Model) renderSidebar() string {
	parts := []string{m.form.View()}
	if m.metrics.Visible() {
		parts = append(parts, m.metrics.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// =============================================================================
// HELP OVERLAY
// =============================================================================

// renderHelpOverlay renders the commands, quick questions and key bindings.
func (m Model) renderHelpOverlay() string {
	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render("HealthNest Help"))
	b.WriteString("\n")
	b.WriteString(strings.TrimRight(m.helpText, "\n"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.keyMap.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(m.theme.FieldHint.Render("Press Esc or F10 to close"))

	box := m.theme.PanelFocused.
		Padding(1, 2).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
