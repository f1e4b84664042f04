// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the healthnest command line.
//
// Running healthnest with no subcommand opens the terminal dashboard. The
// other subcommands drive the same dashboard operations without a full
// screen UI:
//
//	healthnest                      terminal dashboard
//	healthnest serve                web dashboard
//	healthnest status               backend health check
//	healthnest analyze --age 30     profile analysis
//	healthnest ask "question"       one-shot question
//	healthnest chat                 line-mode chat with history
//	healthnest exercise|calories|pregnancy
//	healthnest config show|init|path|get|set|keys
//	healthnest version
//
// Every command shares the root flags --config, --backend-url, --json and
// --verbose. Errors are returned to Execute, which prints them once and maps
// them to an exit code.
package cli
