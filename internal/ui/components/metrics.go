// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/healthnest-tui/internal/model"
	"github.com/jeranaias/healthnest-tui/internal/ui/styles"
)

// =============================================================================
// METRICS PANEL COMPONENT
// =============================================================================

// MetricsPanel shows the four daily targets. It renders nothing until
// metrics have been received.
type MetricsPanel struct {
	fields []model.MetricField
	width  int
	theme  *styles.Theme
}

// NewMetricsPanel creates a hidden metrics panel.
func NewMetricsPanel(theme *styles.Theme) *MetricsPanel {
	return &MetricsPanel{width: 40, theme: theme}
}

// SetFields sets the panel fields. nil hides the panel.
func (p *MetricsPanel) SetFields(fields []model.MetricField) {
	p.fields = fields
}

// SetWidth sets the panel width.
func (p *MetricsPanel) SetWidth(width int) {
	p.width = width
}

// Visible reports whether the panel has anything to show.
func (p *MetricsPanel) Visible() bool {
	return len(p.fields) > 0
}

// View renders the panel, or "" while hidden.
func (p *MetricsPanel) View() string {
	if !p.Visible() {
		return ""
	}

	var b strings.Builder
	b.WriteString(p.theme.PanelTitle.Render("Your Health Metrics"))
	for _, f := range p.fields {
		b.WriteString("\n")
		b.WriteString(p.theme.MetricLabel.Render(f.Label))
		b.WriteString(p.theme.MetricValue.Render(f.Value))
	}
	return p.theme.Panel.Width(p.width).Render(b.String())
}
