// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the healthnest application.
//
// # Atomic File Operations
//
//   - AtomicWriteFile: Replace a file's contents via temp file + rename
//   - AtomicWrite: Same, streaming from an io.Writer callback (chat history)
//
// # String Utilities
//
//   - TruncateWidth: Display-width truncation for terminal panels
//   - StripControl: Remove control characters from untrusted text
//
// # Number Formatting
//
//   - FormatNumber: Shortest round-trip rendering of a float
//   - FloatToStringPrec: Fixed-precision rendering
package util
