// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands binds dashboard events to their handlers.
//
// Every front end (web, terminal, REPL) dispatches user actions by event
// name instead of wiring callbacks per button. The same commands are
// reachable as slash commands typed into a chat input.
//
// # Events
//
//   - load: health check (/status)
//   - update-profile: parse, store and analyze a profile (/profile)
//   - send-message: send free text to the chat endpoint
//   - ask-question: send a predefined question (/ask, /quick N)
//   - help, quit: front-end local commands (/help, /quit)
//
// # Usage
//
//	reg := commands.Default(ctrl, cfg.UI.QuickQuestions)
//	res, err := reg.Dispatch(ctx, sess, commands.EventLoad, commands.Input{})
//
// Typed input:
//
//	res, err := reg.Execute(ctx, sess, "/profile age=30 activity=low")
package commands
