// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the UI components of the HealthNest terminal
dashboard, built on Bubble Tea and Lip Gloss.

# Components

  - Header (header.go) - Brand and backend status indicator.
  - ProfileForm (form.go) - Age, weight, height, gender and activity fields.
  - MetricsPanel (metrics.go) - Daily targets, hidden until an analysis.
  - MessageBubble, MessageList (message.go) - Transcript entries.
  - ChatViewport (viewport.go) - Scrollable transcript.
  - InputArea (input.go) - Chat input with character counter.
  - StatusBar (statusbar.go) - Quick questions, key hints and notices.
  - Spinner (spinner.go) - Typing and analyzing animations.

All components take a *styles.Theme:

	theme := styles.NewTheme("auto")
	header := components.NewHeader(theme)
	header.SetStatus(session.StatusReady, "")
	view := header.View()

User text is rendered literally with control characters stripped. Bot text
may be rendered as markdown through a glamour renderer:

	md, err := components.NewMarkdownRenderer(76)
	if err == nil {
		viewport.SetMarkdown(md)
	}
*/
package components
