// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/healthnest-tui/internal/commands"
	"github.com/jeranaias/healthnest-tui/internal/session"
)

// noticeTTL is how long a status bar notice stays visible.
const noticeTTL = 5 * time.Second

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// DispatchCmd runs a dashboard event off the UI goroutine. The session is
// updated by the handler; the result only carries what the view cannot read
// from the session.
func DispatchCmd(ctx context.Context, reg *commands.Registry, s *session.Session, event string, in commands.Input) tea.Cmd {
	return func() tea.Msg {
		res, err := reg.Dispatch(ctx, s, event, in)
		return DispatchResultMsg{Event: res.Event, Result: res, Err: err}
	}
}

// ExecuteCmd runs a line typed into the chat input: a slash command or a
// chat message.
func ExecuteCmd(ctx context.Context, reg *commands.Registry, s *session.Session, line string) tea.Cmd {
	return func() tea.Msg {
		res, err := reg.Execute(ctx, s, line)
		return DispatchResultMsg{Event: res.Event, Result: res, Err: err}
	}
}

// ListenForChanges waits for the next session change. It returns nil once
// ctx is cancelled, which ends the listen loop.
func ListenForChanges(ctx context.Context, s *session.Session) tea.Cmd {
	ch := s.Changes()
	return func() tea.Msg {
		select {
		case <-ch:
			return SessionChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// clearNoticeAfter schedules the removal of notice seq.
func clearNoticeAfter(seq int) tea.Cmd {
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return ClearNoticeMsg{Seq: seq}
	})
}
