// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/healthnest-tui/internal/ui/styles"
)

// =============================================================================
// ACTIVITY SPINNER
// =============================================================================

// Spinner animates while a backend call is pending: the typing indicator in
// the transcript and the analyzing marker in the header. Each instance gets
// its own bubbles ID, so ticks meant for one never advance the other.
type Spinner struct {
	spinner spinner.Model
	active  bool
}

// NewSpinner creates a stopped spinner from an animation config.
func NewSpinner(config styles.SpinnerConfig) Spinner {
	return Spinner{spinner: spinner.New(spinner.WithSpinner(config.Spinner()))}
}

// NewTypingSpinner creates the typing indicator animation.
func NewTypingSpinner() Spinner { return NewSpinner(styles.DotsSpinner) }

// NewAnalyzingSpinner creates the header animation shown during analysis.
func NewAnalyzingSpinner() Spinner { return NewSpinner(styles.LineSpinner) }

// Start begins ticking. Starting a running spinner returns nil so only one
// tick loop exists.
func (s *Spinner) Start() tea.Cmd {
	if s.active {
		return nil
	}
	s.active = true
	return s.spinner.Tick
}

// Stop halts the animation; the pending tick is dropped by Update.
func (s *Spinner) Stop() { s.active = false }

// Active reports whether the spinner is running.
func (s Spinner) Active() bool { return s.active }

// Update advances the animation on its own tick messages.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.active {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// Frame returns the current animation frame, or "" while stopped.
func (s Spinner) Frame() string {
	if !s.active {
		return ""
	}
	return s.spinner.View()
}
