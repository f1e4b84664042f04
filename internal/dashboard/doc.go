// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dashboard implements the HealthNest client operations.
//
// Each operation is one best-effort request/response round trip against the
// backend. Operations never retry and never panic: every outcome, success or
// failure, is applied to the session passed in (transcript entries, status
// indicator, metrics panel) before the call returns. The returned error is
// informational, for callers that need an exit code.
//
// # Operations
//
//   - CheckHealth: probe the backend at startup and set the status indicator
//   - SubmitProfile: parse and store the profile, then render the analysis
//   - SendChatMessage: send a question with the current profile as context
//   - AskQuestion: send one of the quick questions
//   - RenderMetrics / RenderRecommendations: pure session updates
package dashboard
