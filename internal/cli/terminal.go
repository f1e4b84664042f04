// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// IsTTY reports whether stdin is a terminal.
func IsTTY() bool { return fileIsTerminal(os.Stdin) }

// IsStdoutTTY reports whether stdout is a terminal.
func IsStdoutTTY() bool { return fileIsTerminal(os.Stdout) }

func fileIsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// isTerminalWriter reports whether w is a terminal. Command output captured
// in a buffer never is.
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && fileIsTerminal(f)
}

// =============================================================================
// TERMINAL WIDTH
// =============================================================================

// Reply wrapping bounds.
const (
	DefaultTerminalWidth = 80
	MinTerminalWidth     = 40
)

// terminalWidth returns the column count of w, clamped to
// MinTerminalWidth, or DefaultTerminalWidth when w is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return DefaultTerminalWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	switch {
	case err != nil || width <= 0:
		return DefaultTerminalWidth
	case width < MinTerminalWidth:
		return MinTerminalWidth
	default:
		return width
	}
}

// =============================================================================
// COLOR OUTPUT CONTROL
// =============================================================================

// colorOutput is resolved once per process from NO_COLOR, FORCE_COLOR and
// whether stdout is a terminal, in that order of precedence.
var colorOutput = sync.OnceValue(func() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	return IsStdoutTTY()
})

// ColorsEnabled reports whether one-shot commands print ANSI colors.
func ColorsEnabled() bool { return colorOutput() }

// GetColorProfile returns the lipgloss color profile for one-shot commands.
func GetColorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}
