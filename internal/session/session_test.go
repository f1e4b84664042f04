// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jeranaias/healthnest-tui/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// =============================================================================
// STATUS TESTS
// =============================================================================

func TestStatusLabels(t *testing.T) {
	tests := []struct {
		status Status
		name   string
		label  string
	}{
		{StatusUnknown, "unknown", "Connecting..."},
		{StatusReady, "ready", "Ready"},
		{StatusAnalyzing, "analyzing", "Analyzing..."},
		{StatusError, "error", "Error"},
		{StatusOffline, "offline", "Offline"},
	}
	for _, tc := range tests {
		if tc.status.String() != tc.name {
			t.Errorf("String() = %q, want %q", tc.status.String(), tc.name)
		}
		if tc.status.Label() != tc.label {
			t.Errorf("Label() = %q, want %q", tc.status.Label(), tc.label)
		}
	}
}

func TestSetStatus(t *testing.T) {
	s := New(model.DefaultProfile())

	st, label := s.Status()
	assert.Equal(t, StatusUnknown, st)
	assert.Equal(t, "Connecting...", label)

	s.SetStatus(StatusError, "API Error")
	st, label = s.Status()
	assert.Equal(t, StatusError, st)
	assert.Equal(t, "API Error", label)

	s.SetStatus(StatusReady, "")
	_, label = s.Status()
	assert.Equal(t, "Ready", label)
}

// =============================================================================
// SESSION TESTS
// =============================================================================

func TestNewSession(t *testing.T) {
	p := model.Profile{Age: 50, Gender: "female", Weight: 70, Height: 160, Activity: "light"}
	s := New(p)

	assert.NotEmpty(t, s.ID())
	assert.Equal(t, p, s.Profile())
	_, ok := s.Metrics()
	assert.False(t, ok, "metrics hidden until first analysis")
	assert.Empty(t, s.Entries())
}

func TestTypingLifecycle(t *testing.T) {
	s := New(model.DefaultProfile())
	s.AppendUser("hi")
	id := s.BeginTyping()

	snap := s.Snapshot()
	require.True(t, snap.Typing)
	require.Len(t, snap.Entries, 2)
	assert.Len(t, snap.VisibleEntries(), 1)

	require.True(t, s.EndTyping(id))
	s.AppendBot("hello")

	snap = s.Snapshot()
	assert.False(t, snap.Typing)
	require.Len(t, snap.Entries, 2)
	assert.Equal(t, "hello", snap.Entries[1].Text)
	assert.False(t, s.EndTyping(id))
}

func TestSnapshotIsolation(t *testing.T) {
	s := New(model.DefaultProfile())
	s.AppendBot("original")
	s.SetMetrics(model.Metrics{BMI: 22, BMICategory: "normal"})

	snap := s.Snapshot()
	snap.Entries[0].Text = "mutated"

	assert.Equal(t, "original", s.Entries()[0].Text)
	assert.True(t, snap.MetricsVisible)
	assert.Len(t, snap.MetricFields(), 4)
}

func TestSnapshotHiddenMetrics(t *testing.T) {
	snap := New(model.DefaultProfile()).Snapshot()
	assert.False(t, snap.MetricsVisible)
	assert.Nil(t, snap.MetricFields())
}

func TestSnapshotJSON(t *testing.T) {
	s := New(model.DefaultProfile())
	s.SetStatus(StatusOffline, "")

	data, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "offline", decoded["status"])
	assert.Equal(t, "Offline", decoded["status_label"])
}

func TestChangesCoalesced(t *testing.T) {
	s := New(model.DefaultProfile())

	// Many mutations must never block even with no listener.
	for i := 0; i < 10; i++ {
		s.AppendBot("x")
	}

	select {
	case <-s.Changes():
	default:
		t.Fatal("expected a pending change signal")
	}

	select {
	case <-s.Changes():
		t.Fatal("signals should be coalesced")
	default:
	}
}

func TestTouch(t *testing.T) {
	s := New(model.DefaultProfile())
	before := s.LastActivity()
	time.Sleep(5 * time.Millisecond)
	s.Touch()
	assert.True(t, s.LastActivity().After(before))
	assert.Less(t, s.IdleTime(), time.Second)
}

func TestSession_ConcurrentAccess(t *testing.T) {
	s := New(model.DefaultProfile())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			id := s.BeginTyping()
			s.AppendBot("reply")
			s.EndTyping(id)
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
		}()
		go func() {
			defer wg.Done()
			s.SetStatus(StatusAnalyzing, "")
			s.SetProfile(model.DefaultProfile())
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.False(t, snap.Typing, "every placeholder removed")
	assert.Len(t, snap.Entries, 50)
}

// =============================================================================
// STORE TESTS
// =============================================================================

func TestStore_GetOrCreate(t *testing.T) {
	st := NewStore(DefaultStoreConfig())

	s, created := st.GetOrCreate("")
	require.True(t, created)

	again, created := st.GetOrCreate(s.ID())
	assert.False(t, created)
	assert.Same(t, s, again)

	other, created := st.GetOrCreate("unknown-id")
	assert.True(t, created)
	assert.NotEqual(t, "unknown-id", other.ID())
	assert.Equal(t, 2, st.Len())
}

func TestStore_InitialProfile(t *testing.T) {
	want := model.Profile{Age: 60, Gender: "male", Weight: 90, Height: 180, Activity: "sedentary"}
	st := NewStore(StoreConfig{InitialProfile: func() model.Profile { return want }})

	assert.Equal(t, want, st.Create().Profile())
}

func TestStore_Sweep(t *testing.T) {
	st := NewStore(StoreConfig{IdleTimeout: time.Minute})
	s := st.Create()

	assert.Equal(t, 0, st.Sweep(time.Now()))
	assert.Equal(t, 1, st.Sweep(time.Now().Add(2*time.Minute)))
	_, ok := st.Get(s.ID())
	assert.False(t, ok)
}

func TestStore_SweepDisabled(t *testing.T) {
	st := NewStore(StoreConfig{})
	st.Create()
	assert.Equal(t, 0, st.Sweep(time.Now().Add(24*time.Hour)))
	assert.Equal(t, 1, st.Len())
}

func TestStore_Delete(t *testing.T) {
	st := NewStore(DefaultStoreConfig())
	s := st.Create()
	st.Delete(s.ID())
	assert.Equal(t, 0, st.Len())
}

func TestStore_RunStopsOnCancel(t *testing.T) {
	st := NewStore(StoreConfig{IdleTimeout: time.Millisecond})
	st.Create()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		st.Run(ctx, 2*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return st.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
