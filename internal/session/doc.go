// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the per-user dashboard state.
//
// A Session owns the current profile, the chat transcript, the status
// indicator and the last metrics. It is passed explicitly to every dashboard
// operation; there is no global state.
//
// # Key Types
//
//   - Session: Mutex-guarded state with change notifications
//   - Snapshot: Immutable view-model rendered by the front ends
//   - Status: Backend status indicator (unknown, ready, analyzing, error, offline)
//   - Store: In-memory session map with idle expiry (web dashboard)
//
// # Usage
//
//	s := session.New(model.DefaultProfile())
//	id := s.BeginTyping()
//	s.AppendBot("Hello!")
//	s.EndTyping(id)
//
//	for range s.Changes() {
//	    render(s.Snapshot())
//	}
package session
