// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/healthnest-tui/internal/model"
)

// =============================================================================
// STATUS
// =============================================================================

// Status is the backend status indicator.
type Status int

const (
	// StatusUnknown is the state before the first health check resolves.
	StatusUnknown Status = iota
	StatusReady
	StatusAnalyzing
	StatusError
	StatusOffline
)

// String returns the machine-readable status name.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusAnalyzing:
		return "analyzing"
	case StatusError:
		return "error"
	case StatusOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// Label returns the default indicator text for the status.
func (s Status) Label() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusAnalyzing:
		return "Analyzing..."
	case StatusError:
		return "Error"
	case StatusOffline:
		return "Offline"
	default:
		return "Connecting..."
	}
}

// MarshalText renders the status by name in JSON.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// =============================================================================
// SESSION
// =============================================================================

// Session is the state of one dashboard user: the current profile, the chat
// transcript, the status indicator and the last metrics.
//
// All methods are safe for concurrent use. Every mutation signals Changes().
type Session struct {
	mu sync.RWMutex

	id           string
	createdAt    time.Time
	lastActivity time.Time

	profile     model.Profile
	transcript  *model.Transcript
	status      Status
	statusLabel string
	metrics     *model.Metrics

	changes chan struct{}
}

// New creates a session starting from the given profile.
func New(profile model.Profile) *Session {
	now := time.Now()
	return &Session{
		id:           uuid.NewString(),
		createdAt:    now,
		lastActivity: now,
		profile:      profile,
		transcript:   model.NewTranscript(),
		status:       StatusUnknown,
		statusLabel:  StatusUnknown.Label(),
		changes:      make(chan struct{}, 1),
	}
}

// ID returns the session ID.
func (s *Session) ID() string {
	return s.id
}

// CreatedAt returns when the session was created.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// Changes returns a channel that receives a value after mutations.
// Signals are coalesced: one pending signal may stand for many changes.
func (s *Session) Changes() <-chan struct{} {
	return s.changes
}

// notify signals a change without blocking.
func (s *Session) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// =============================================================================
// ACTIVITY
// =============================================================================

// Touch records user activity.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// LastActivity returns the time of the last recorded activity.
func (s *Session) LastActivity() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActivity
}

// IdleTime returns how long since last activity.
func (s *Session) IdleTime() time.Duration {
	return time.Since(s.LastActivity())
}

// =============================================================================
// PROFILE, STATUS, METRICS
// =============================================================================

// Profile returns the current profile.
func (s *Session) Profile() model.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// SetProfile replaces the profile wholesale.
func (s *Session) SetProfile(p model.Profile) {
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
	s.notify()
}

// Status returns the status and its indicator text.
func (s *Session) Status() (Status, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status, s.statusLabel
}

// SetStatus sets the status. An empty label uses the status default.
func (s *Session) SetStatus(st Status, label string) {
	if label == "" {
		label = st.Label()
	}
	s.mu.Lock()
	s.status = st
	s.statusLabel = label
	s.mu.Unlock()
	s.notify()
}

// Metrics returns the last rendered metrics.
func (s *Session) Metrics() (model.Metrics, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.metrics == nil {
		return model.Metrics{}, false
	}
	return *s.metrics, true
}

// SetMetrics stores metrics and makes the panel visible.
func (s *Session) SetMetrics(m model.Metrics) {
	s.mu.Lock()
	s.metrics = &m
	s.mu.Unlock()
	s.notify()
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

func (s *Session) appendEntry(e model.Entry) string {
	s.mu.Lock()
	id := s.transcript.Append(e)
	s.mu.Unlock()
	s.notify()
	return id
}

// AppendUser appends a user entry and returns its ID.
func (s *Session) AppendUser(text string) string {
	return s.appendEntry(model.NewUserEntry(text))
}

// AppendBot appends a bot entry and returns its ID.
func (s *Session) AppendBot(text string) string {
	return s.appendEntry(model.NewBotEntry(text))
}

// AppendLabeled appends a bot entry with a bold label and returns its ID.
func (s *Session) AppendLabeled(label, text string) string {
	return s.appendEntry(model.NewLabeledEntry(label, text))
}

// BeginTyping appends a typing placeholder and returns its ID.
func (s *Session) BeginTyping() string {
	return s.appendEntry(model.NewTypingEntry())
}

// EndTyping removes the typing placeholder with the given ID.
func (s *Session) EndTyping(id string) bool {
	s.mu.Lock()
	removed := s.transcript.Remove(id)
	s.mu.Unlock()
	if removed {
		s.notify()
	}
	return removed
}

// Entries returns a copy of the transcript entries.
func (s *Session) Entries() []model.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transcript.Clone().Entries
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot is an immutable view-model of a session, rendered by the
// templating layers.
type Snapshot struct {
	ID             string        `json:"id"`
	Status         Status        `json:"status"`
	StatusLabel    string        `json:"status_label"`
	Profile        model.Profile `json:"profile"`
	Metrics        model.Metrics `json:"metrics"`
	MetricsVisible bool          `json:"metrics_visible"`
	Entries        []model.Entry `json:"entries"`
	Typing         bool          `json:"typing"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// Snapshot returns a deep copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		ID:          s.id,
		Status:      s.status,
		StatusLabel: s.statusLabel,
		Profile:     s.profile,
		Entries:     s.transcript.Clone().Entries,
		Typing:      s.transcript.TypingCount() > 0,
		UpdatedAt:   s.transcript.UpdatedAt,
	}
	if s.metrics != nil {
		snap.Metrics = *s.metrics
		snap.MetricsVisible = true
	}
	return snap
}

// MetricFields returns the metrics panel fields, or nil while hidden.
func (s Snapshot) MetricFields() []model.MetricField {
	if !s.MetricsVisible {
		return nil
	}
	return s.Metrics.Fields()
}

// VisibleEntries returns the entries excluding typing placeholders.
func (s Snapshot) VisibleEntries() []model.Entry {
	out := make([]model.Entry, 0, len(s.Entries))
	for _, e := range s.Entries {
		if !e.IsTyping {
			out = append(out, e)
		}
	}
	return out
}
