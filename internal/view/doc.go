// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package view renders session snapshots as HTML for the web dashboard.
//
// User text is always escaped with EscapeForDisplay. Bot text is trusted
// backend prose and only has its newlines turned into line breaks.
//
// The page keeps the element IDs status, metricsCard, bmiMetric,
// calorieMetric, waterMetric, stepMetric, chatMessages, typingIndicator,
// chatInput, age, gender, weight, height and activity.
package view
