// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"fmt"

	"github.com/jeranaias/healthnest-tui/internal/model"
)

// Endpoint paths relative to the backend base URL.
const (
	PathHealth   = "/health"
	PathAnalysis = "/health-check"
	PathChat     = "/chat"

	PathPredictCalories   = "/predict-calories"
	PathRecommendExercise = "/recommend-exercise"
	PathPregnancyInfo     = "/pregnancy-info"
)

// Exercise goals understood by the recommend-exercise endpoint.
const (
	GoalGeneral    = "general"
	GoalWeightLoss = "weight_loss"
	GoalMuscleGain = "muscle_gain"
)

// StatusHealthy is the status value reported by a working backend.
const StatusHealthy = "healthy"

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ChatRequest is the request body for the /chat endpoint.
type ChatRequest struct {
	Message string        `json:"message"`
	Profile model.Profile `json:"profile"`
}

// MacrosRequest is the request body for the /predict-calories endpoint.
type MacrosRequest struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// ExerciseRequest is the request body for the /recommend-exercise endpoint.
type ExerciseRequest struct {
	Weight float64 `json:"weight"`
	Goal   string  `json:"goal,omitempty"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// HealthResponse is the response from the /health endpoint.
type HealthResponse struct {
	Status string `json:"status"`

	// ModelsLoaded reports which backend components are available.
	ModelsLoaded map[string]bool `json:"models_loaded,omitempty"`

	// StatusCode is the HTTP status of the response (not part of the body).
	StatusCode int `json:"-"`
}

// IsHealthy reports whether the backend declared itself healthy.
func (r *HealthResponse) IsHealthy() bool {
	return r != nil && r.Status == StatusHealthy
}

// AnalysisResponse is the response from the /health-check endpoint.
// Metrics is nil when the backend omitted it (e.g. an error payload).
type AnalysisResponse struct {
	Metrics         *model.Metrics         `json:"metrics,omitempty"`
	Recommendations []model.Recommendation `json:"recommendations,omitempty"`

	// Error carries the backend's error message on failure payloads.
	Error string `json:"error,omitempty"`

	StatusCode int `json:"-"`
}

// HasMetrics reports whether the payload carried a metrics object.
func (r *AnalysisResponse) HasMetrics() bool {
	return r != nil && r.Metrics != nil
}

// ChatResponse is the response from the /chat endpoint.
type ChatResponse struct {
	Response   string  `json:"response,omitempty"`
	Category   string  `json:"category,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Error      string  `json:"error,omitempty"`

	StatusCode int `json:"-"`
}

// HasReply reports whether the backend produced a non-empty reply.
func (r *ChatResponse) HasReply() bool {
	return r != nil && r.Response != ""
}

// CaloriesResponse is the response from the /predict-calories endpoint.
type CaloriesResponse struct {
	ProteinG          float64 `json:"protein_g"`
	CarbsG            float64 `json:"carbs_g"`
	FatG              float64 `json:"fat_g"`
	PredictedCalories float64 `json:"predicted_calories"`
	Error             string  `json:"error,omitempty"`

	StatusCode int `json:"-"`
}

// Exercise is one recommended activity. Either Duration or Sets is set.
type Exercise struct {
	Name     string  `json:"name"`
	Duration string  `json:"duration,omitempty"`
	Sets     string  `json:"sets,omitempty"`
	Calories float64 `json:"calories"`
}

// ExerciseResponse is the response from the /recommend-exercise endpoint.
type ExerciseResponse struct {
	Goal          string     `json:"goal"`
	Exercises     []Exercise `json:"recommended_exercises"`
	TotalCalories float64    `json:"total_calories"`
	Error         string     `json:"error,omitempty"`

	StatusCode int `json:"-"`
}

// PregnancyResponse is the response from the /pregnancy-info endpoint.
type PregnancyResponse struct {
	Week            int    `json:"week"`
	Trimester       int    `json:"trimester"`
	BabyDevelopment string `json:"baby_development"`
	MotherChanges   string `json:"mother_changes"`
	Advice          string `json:"advice"`
	Error           string `json:"error,omitempty"`

	StatusCode int `json:"-"`
}

// backendError returns the payload's error message as an error, if any.
func backendError(status int, msg string) error {
	if msg == "" {
		return nil
	}
	return &ClientError{
		Type:    ErrTypeBackend,
		Message: fmt.Sprintf("backend error (%d): %s", status, msg),
	}
}
