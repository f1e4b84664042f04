// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package view

import (
	"html/template"
	"strings"

	"github.com/jeranaias/healthnest-tui/internal/session"
)

// =============================================================================
// TEXT FORMATTING
// =============================================================================

var displayEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeForDisplay substitutes & < > " ' with their HTML entities so
// user-authored text is always rendered as literal characters.
func EscapeForDisplay(text string) string {
	return displayEscaper.Replace(text)
}

// UserText renders user-authored text as literal characters.
func UserText(text string) template.HTML {
	return template.HTML(EscapeForDisplay(text))
}

// BotText renders server-authored text. Bot text is trusted: only newlines
// are converted to line breaks.
func BotText(text string) template.HTML {
	return template.HTML(strings.ReplaceAll(text, "\n", "<br>"))
}

// StatusClass returns the CSS modifier for the status dot.
func StatusClass(st session.Status) string {
	switch st {
	case session.StatusReady:
		return "success"
	case session.StatusAnalyzing:
		return "warning"
	case session.StatusError, session.StatusOffline:
		return "error"
	default:
		return "pending"
	}
}
