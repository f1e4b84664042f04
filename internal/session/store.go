// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"sync"
	"time"

	"github.com/jeranaias/healthnest-tui/internal/model"
)

// =============================================================================
// STORE
// =============================================================================

// StoreConfig holds configuration for a session store.
type StoreConfig struct {
	// IdleTimeout expires sessions without activity. 0 keeps them forever.
	IdleTimeout time.Duration

	// InitialProfile returns the profile for new sessions.
	InitialProfile func() model.Profile
}

// DefaultStoreConfig returns the default store configuration.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		IdleTimeout:    60 * time.Minute,
		InitialProfile: model.DefaultProfile,
	}
}

// Store keeps sessions in memory keyed by ID. Nothing is persisted.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	cfg      StoreConfig
}

// NewStore creates an empty session store.
func NewStore(cfg StoreConfig) *Store {
	if cfg.InitialProfile == nil {
		cfg.InitialProfile = model.DefaultProfile
	}
	return &Store{
		sessions: make(map[string]*Session),
		cfg:      cfg,
	}
}

// Create adds a new session and returns it.
func (st *Store) Create() *Session {
	s := New(st.cfg.InitialProfile())
	st.mu.Lock()
	st.sessions[s.ID()] = s
	st.mu.Unlock()
	return s
}

// Get returns the session with the given ID and records activity.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	st.mu.Unlock()
	if ok {
		s.Touch()
	}
	return s, ok
}

// GetOrCreate returns the session for id, creating one if id is unknown.
// created reports whether a new session was made; its ID differs from id.
func (st *Store) GetOrCreate(id string) (s *Session, created bool) {
	if id != "" {
		if s, ok := st.Get(id); ok {
			return s, false
		}
	}
	return st.Create(), true
}

// Delete removes a session.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep removes sessions idle longer than the timeout as of now.
// Returns the number removed.
func (st *Store) Sweep(now time.Time) int {
	if st.cfg.IdleTimeout <= 0 {
		return 0
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, s := range st.sessions {
		if now.Sub(s.LastActivity()) > st.cfg.IdleTimeout {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps idle sessions every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 || st.cfg.IdleTimeout <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			st.Sweep(now)
		}
	}
}
