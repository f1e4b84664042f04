// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the HealthNest backend.
//
// The backend exposes three JSON endpoints: a liveness probe, a profile
// analysis call that returns metrics and recommendations, and a chat call
// that answers free-text questions in the context of a profile.
//
// # Key Types
//
//   - Client: HTTP client for backend communication
//   - HealthResponse: Payload of GET /health
//   - AnalysisResponse: Metrics and recommendations from POST /health-check
//   - ChatRequest / ChatResponse: Payloads of POST /chat
//   - ClientError: Typed error distinguishing transport from decode failures
//
// # Usage
//
//	client := api.NewClient("http://localhost:5000")
//	health, err := client.Health(ctx)
//	if err != nil {
//	    // backend offline
//	}
//	analysis, err := client.Analyze(ctx, model.DefaultProfile())
//
// Like a browser fetch, a non-2xx response with a JSON body is decoded and
// returned; callers judge the payload by its fields.
package api
