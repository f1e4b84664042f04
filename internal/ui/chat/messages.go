// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/healthnest-tui/internal/commands"
)

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// SessionChangedMsg signals that the session state changed and the view
// must be rebuilt from a fresh snapshot.
type SessionChangedMsg struct{}

// =============================================================================
// DISPATCH MESSAGES
// =============================================================================

// DispatchResultMsg carries the outcome of a dashboard event.
type DispatchResultMsg struct {
	Event  string
	Result commands.Result
	Err    error
}

// =============================================================================
// NOTICE MESSAGES
// =============================================================================

// ClearNoticeMsg clears the status bar notice if it is still the one with Seq.
type ClearNoticeMsg struct {
	Seq int
}
