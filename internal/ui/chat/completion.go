// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/jeranaias/healthnest-tui/internal/commands"
)

// =============================================================================
// TAB COMPLETION
// =============================================================================

// completionState cycles through the completions of one input prefix.
type completionState struct {
	completer *commands.Completer
	base      string
	options   []string
	index     int
}

func newCompletionState(reg *commands.Registry) *completionState {
	return &completionState{completer: commands.NewCompleter(reg)}
}

// Applies reports whether Tab should complete the input rather than move focus.
func (cs *completionState) Applies(input string) bool {
	return strings.HasPrefix(strings.TrimLeft(input, " "), "/")
}

// Next returns the next completion for input. Repeated calls with the value
// it returned cycle through the alternatives.
func (cs *completionState) Next(input string) (string, bool) {
	if cs.options != nil && cs.index < len(cs.options) && input == cs.options[cs.index] {
		cs.index = (cs.index + 1) % len(cs.options)
		return cs.options[cs.index], true
	}

	cs.base = input
	cs.options = cs.completer.Lines(input)
	cs.index = 0
	if len(cs.options) == 0 {
		cs.options = nil
		return input, false
	}
	return cs.options[0], true
}

// Reset forgets the current cycle.
func (cs *completionState) Reset() {
	cs.base = ""
	cs.options = nil
	cs.index = 0
}

// Options returns the alternatives of the current cycle.
func (cs *completionState) Options() []string {
	return cs.options
}
