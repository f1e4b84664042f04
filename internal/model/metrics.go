// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"github.com/jeranaias/healthnest-tui/internal/util"
)

// =============================================================================
// METRICS TYPE
// =============================================================================

// Metrics are the daily targets computed by the backend for a profile.
// They are received, never computed locally.
type Metrics struct {
	BMI              float64 `json:"bmi"`
	BMICategory      string  `json:"bmi_category"`
	DailyCalories    float64 `json:"daily_calories"`
	DailyWaterLiters float64 `json:"daily_water_liters"`
	StepGoal         float64 `json:"step_goal"`
}

// Recommendation is a single piece of typed advice.
type Recommendation struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// =============================================================================
// DISPLAY FORMATTING
// =============================================================================

// BMIText renders BMI with one decimal and its category: "22.0 (normal)".
func (m Metrics) BMIText() string {
	return util.FloatToStringPrec(m.BMI, 1) + " (" + m.BMICategory + ")"
}

// CaloriesText renders the calorie target: "1800 kcal".
func (m Metrics) CaloriesText() string {
	return util.FormatNumber(m.DailyCalories) + " kcal"
}

// WaterText renders the water target: "2.1L".
func (m Metrics) WaterText() string {
	return util.FormatNumber(m.DailyWaterLiters) + "L"
}

// StepsText renders the step goal: "8000 steps".
func (m Metrics) StepsText() string {
	return util.FormatNumber(m.StepGoal) + " steps"
}

// MetricField is one labelled value of the metrics panel.
type MetricField struct {
	// ID is the element identifier used by the web dashboard.
	ID    string
	Label string
	Value string
}

// Fields returns the four panel fields in display order.
func (m Metrics) Fields() []MetricField {
	return []MetricField{
		{ID: "bmiMetric", Label: "BMI", Value: m.BMIText()},
		{ID: "calorieMetric", Label: "Daily Calories", Value: m.CaloriesText()},
		{ID: "waterMetric", Label: "Water Intake", Value: m.WaterText()},
		{ID: "stepMetric", Label: "Step Goal", Value: m.StepsText()},
	}
}
