// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea model of the HealthNest terminal
// dashboard.
//
// The model renders a session.Session and never mutates it directly: every
// user action is dispatched through a commands.Registry in a tea.Cmd, and the
// view is rebuilt from a fresh snapshot whenever the session signals a change.
//
// # Layout
//
//	+ HealthNest                                   ● Ready
//	+-- Your Profile ---+  +-- transcript ----------------+
//	| Age      25       |  | HealthNest 3:04 PM           |
//	| ...               |  | Hello! ...                   |
//	+-- Metrics --------+  |                              |
//	| BMI   22.0 (...)  |  |                              |
//	+-------------------+  +------------------------------+
//	> Ask about your health...
//	F1 What is my BMI?  F2 ...
//
// # Keys
//
//   - Tab / Shift+Tab cycle the profile fields and the chat input. In the
//     chat input Tab completes slash commands.
//   - Enter analyzes the profile or sends the message.
//   - F1..F5 ask the quick questions.
//   - F10 toggles help; Ctrl+C quits.
package chat
