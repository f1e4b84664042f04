// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the health dashboard.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the author of a transcript entry.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleBot:
		return "HealthNest"
	default:
		return string(r)
	}
}

// =============================================================================
// ENTRY TYPE
// =============================================================================

// Entry is a single line of the chat transcript.
type Entry struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Label is rendered in bold ahead of Text (recommendation type, summary header).
	Label string `json:"label,omitempty"`

	// Text is the literal content. User text is untrusted; bot text may carry newlines.
	Text string `json:"text"`

	// IsTyping marks the transient placeholder shown while a chat reply is pending.
	IsTyping bool `json:"is_typing,omitempty"`
}

// NewEntry creates a new entry with a generated ID.
func NewEntry(role Role, text string) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewUserEntry creates a user-authored entry.
func NewUserEntry(text string) Entry {
	return NewEntry(RoleUser, text)
}

// NewBotEntry creates a bot-authored entry.
func NewBotEntry(text string) Entry {
	return NewEntry(RoleBot, text)
}

// NewLabeledEntry creates a bot entry with a bold label prefix.
func NewLabeledEntry(label, text string) Entry {
	e := NewEntry(RoleBot, text)
	e.Label = label
	return e
}

// NewTypingEntry creates a typing-indicator placeholder.
func NewTypingEntry() Entry {
	e := NewEntry(RoleBot, "")
	e.IsTyping = true
	return e
}

// IsUser reports whether the entry was authored by the user.
func (e Entry) IsUser() bool {
	return e.Role == RoleUser
}

// Preview returns a truncated preview of the entry text.
// Uses rune-based truncation to handle Unicode correctly.
func (e Entry) Preview(maxLen int) string {
	runes := []rune(e.Text)
	if len(runes) <= maxLen {
		return e.Text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
