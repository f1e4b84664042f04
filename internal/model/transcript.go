// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript is the ordered list of chat entries.
// Entries are only ever appended; the single exception is the removal of a
// typing placeholder once its reply has arrived. Not safe for concurrent use;
// callers serialize access (see package session).
type Transcript struct {
	Entries   []Entry   `json:"entries"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{UpdatedAt: time.Now()}
}

// Append adds an entry to the end of the transcript and returns its ID.
func (t *Transcript) Append(e Entry) string {
	t.Entries = append(t.Entries, e)
	t.UpdatedAt = time.Now()
	return e.ID
}

// Remove removes a typing placeholder by ID.
// Returns false if no placeholder with that ID exists. Regular entries are
// never removed.
func (t *Transcript) Remove(id string) bool {
	for i, e := range t.Entries {
		if e.ID == id {
			if !e.IsTyping {
				return false
			}
			t.Entries = append(t.Entries[:i], t.Entries[i+1:]...)
			t.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// Get returns the entry with the given ID.
func (t *Transcript) Get(id string) (Entry, bool) {
	for _, e := range t.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Last returns the most recent entry.
func (t *Transcript) Last() (Entry, bool) {
	if len(t.Entries) == 0 {
		return Entry{}, false
	}
	return t.Entries[len(t.Entries)-1], true
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.Entries)
}

// IsEmpty returns true if the transcript has no entries.
func (t *Transcript) IsEmpty() bool {
	return len(t.Entries) == 0
}

// TypingCount returns the number of pending typing placeholders.
func (t *Transcript) TypingCount() int {
	n := 0
	for _, e := range t.Entries {
		if e.IsTyping {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the transcript.
func (t *Transcript) Clone() *Transcript {
	entries := make([]Entry, len(t.Entries))
	copy(entries, t.Entries)
	return &Transcript{Entries: entries, UpdatedAt: t.UpdatedAt}
}
