// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/healthnest-tui/internal/session"
	"github.com/jeranaias/healthnest-tui/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT - Title bar with brand and backend status
// =============================================================================

// Header is the title bar: the brand on the left and the status indicator
// (dot plus label) on the right.
type Header struct {
	Title  string
	Status session.Status
	Label  string
	Width  int

	// Busy is the spinner frame shown while the status is Analyzing.
	Busy string

	theme *styles.Theme
}

// NewHeader creates a new Header component with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "HealthNest",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetStatus updates the status indicator. An empty label falls back to the
// status default.
func (h *Header) SetStatus(status session.Status, label string) {
	h.Status = status
	h.Label = label
}

// StatusText returns the indicator text without styling.
func (h *Header) StatusText() string {
	label := h.Label
	if label == "" {
		label = h.Status.Label()
	}
	return h.dot() + " " + label
}

// dot returns the status shape. Shapes differ per status so the indicator
// reads without color.
func (h *Header) dot() string {
	switch h.Status {
	case session.StatusReady:
		return "●"
	case session.StatusAnalyzing:
		if h.Busy != "" {
			return h.Busy
		}
		return "◐"
	case session.StatusError, session.StatusOffline:
		return "✖"
	default:
		return "○"
	}
}

func (h *Header) statusStyle() lipgloss.Style {
	switch h.Status {
	case session.StatusReady:
		return h.theme.StatusReady
	case session.StatusAnalyzing:
		return h.theme.StatusBusy
	case session.StatusError, session.StatusOffline:
		return h.theme.StatusError
	default:
		return h.theme.StatusIdle
	}
}

// View renders the header across the full width.
func (h *Header) View() string {
	width := max(h.Width, 30)

	brand := h.theme.HeaderBrand.Render("+ " + h.Title)
	status := h.statusStyle().Render(h.StatusText())

	gap := width - lipgloss.Width(brand) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}

	line := brand + lipgloss.NewStyle().Width(gap).Render("") + status
	return h.theme.Header.Width(width).Render(line)
}
