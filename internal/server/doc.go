// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server provides the HealthNest web dashboard.
//
// Each browser gets its own in-memory session, keyed by an HTTP-only cookie.
// Form posts dispatch dashboard events through a commands.Registry and
// redirect back to the page, which is rendered from the session snapshot.
//
// # Endpoints
//
//   - GET  /            - Dashboard page (first visit runs the health check)
//   - POST /profile     - Submit the profile form
//   - POST /chat        - Send a chat message
//   - POST /ask         - Ask a quick question
//   - GET  /transcript  - Chat transcript partial
//   - GET  /api/state   - Session snapshot as JSON
//   - POST /api/profile - Submit a profile as JSON
//   - POST /api/chat    - Send a chat message as JSON
//   - GET  /healthz     - Liveness probe
//
// # Middleware
//
//   - Panic recovery with stack trace logging
//   - Security headers (X-Content-Type-Options, X-Frame-Options, CSP)
//   - Request logging with timing information
//   - Per-IP token bucket rate limiting
//
// # Usage
//
//	reg := commands.Default(ctrl, cfg.UI.QuickQuestions)
//	srv, err := server.New(reg, server.Options{Addr: ":8080", Logger: logger})
//	if err != nil {
//		return err
//	}
//	return srv.Run(ctx)
package server
