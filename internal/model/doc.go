// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the health dashboard.
//
// This package defines the domain types shared by the backend client, the
// session state and every front end.
//
// # Key Types
//
//   - Profile: The user's age, gender, weight, height and activity level
//   - Metrics: Targets computed by the backend (BMI, calories, water, steps)
//   - Recommendation: A typed piece of advice returned with the metrics
//   - Entry: Single transcript line with role, text and typing state
//   - Transcript: Append-only ordered list of entries
//
// # Usage
//
// Parse raw form input into a profile:
//
//	profile, err := model.ParseProfile(model.FormValues{
//	    Age: "30", Gender: "female", Weight: "60", Height: "165", Activity: "low",
//	})
//	if err != nil {
//	    var verrs model.ValidationErrors
//	    errors.As(err, &verrs)
//	}
//
// Build a transcript:
//
//	t := model.NewTranscript()
//	t.Append(model.NewUserEntry("How much water should I drink?"))
//	id := t.Append(model.NewTypingEntry())
//	t.Remove(id)
package model
