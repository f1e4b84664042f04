// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ENTRY TESTS
// =============================================================================

func TestNewUserEntry(t *testing.T) {
	e := NewUserEntry("Hello")

	if e.Role != RoleUser {
		t.Errorf("Role = %q, want 'user'", e.Role)
	}
	if e.Text != "Hello" {
		t.Errorf("Text = %q, want 'Hello'", e.Text)
	}
	if e.ID == "" {
		t.Error("ID should be generated")
	}
	if e.IsTyping {
		t.Error("user entry should not be a typing placeholder")
	}
}

func TestNewLabeledEntry(t *testing.T) {
	e := NewLabeledEntry("Diet", "Eat more protein")

	if e.Role != RoleBot {
		t.Errorf("Role = %q, want 'bot'", e.Role)
	}
	if e.Label != "Diet" || e.Text != "Eat more protein" {
		t.Errorf("got label=%q text=%q", e.Label, e.Text)
	}
}

func TestEntryIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewTypingEntry().ID
		if seen[id] {
			t.Fatalf("duplicate ID %q", id)
		}
		seen[id] = true
	}
}

func TestEntryPreview(t *testing.T) {
	e := NewBotEntry("Drink eight glasses")
	if got := e.Preview(8); got != "Drink..." {
		t.Errorf("Preview = %q", got)
	}
	if got := e.Preview(100); got != "Drink eight glasses" {
		t.Errorf("Preview = %q", got)
	}
}

func TestRoleDisplayName(t *testing.T) {
	if RoleUser.DisplayName() != "You" {
		t.Errorf("user display name = %q", RoleUser.DisplayName())
	}
	if RoleBot.DisplayName() != "HealthNest" {
		t.Errorf("bot display name = %q", RoleBot.DisplayName())
	}
}

// =============================================================================
// TRANSCRIPT TESTS
// =============================================================================

func TestTranscript_AppendPreservesOrder(t *testing.T) {
	tr := NewTranscript()
	tr.Append(NewUserEntry("one"))
	tr.Append(NewBotEntry("two"))
	tr.Append(NewUserEntry("three"))

	var texts []string
	for _, e := range tr.Entries {
		texts = append(texts, e.Text)
	}
	if diff := cmp.Diff([]string{"one", "two", "three"}, texts); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestTranscript_RemoveTyping(t *testing.T) {
	tr := NewTranscript()
	tr.Append(NewUserEntry("question"))
	id := tr.Append(NewTypingEntry())

	require.Equal(t, 1, tr.TypingCount())
	require.True(t, tr.Remove(id))
	assert.Equal(t, 0, tr.TypingCount())
	assert.Equal(t, 1, tr.Len())
	assert.False(t, tr.Remove(id), "second removal should report false")
}

func TestTranscript_RemoveRefusesRegularEntries(t *testing.T) {
	tr := NewTranscript()
	id := tr.Append(NewUserEntry("keep me"))

	if tr.Remove(id) {
		t.Error("Remove should not delete a non-typing entry")
	}
	if tr.Len() != 1 {
		t.Errorf("Len = %d, want 1", tr.Len())
	}
}

func TestTranscript_RemoveMiddlePlaceholder(t *testing.T) {
	tr := NewTranscript()
	first := tr.Append(NewTypingEntry())
	second := tr.Append(NewTypingEntry())
	tr.Append(NewBotEntry("reply"))

	require.True(t, tr.Remove(first))
	_, ok := tr.Get(second)
	assert.True(t, ok, "other placeholder must survive")
	last, _ := tr.Last()
	assert.Equal(t, "reply", last.Text)
}

func TestTranscript_Clone(t *testing.T) {
	tr := NewTranscript()
	tr.Append(NewBotEntry("original"))

	clone := tr.Clone()
	clone.Entries[0].Text = "mutated"
	clone.Append(NewBotEntry("extra"))

	if tr.Entries[0].Text != "original" {
		t.Error("clone mutation leaked into original")
	}
	if tr.Len() != 1 {
		t.Errorf("original Len = %d, want 1", tr.Len())
	}
}

// =============================================================================
// PROFILE TESTS
// =============================================================================

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	want := Profile{Age: 25, Gender: "male", Weight: 70, Height: 170, Activity: "moderate"}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("DefaultProfile mismatch (-want +got):\n%s", diff)
	}
	require.NoError(t, p.Validate())
}

func TestParseProfile(t *testing.T) {
	tests := []struct {
		name       string
		form       FormValues
		want       Profile
		wantFields []string
	}{
		{
			name: "valid",
			form: FormValues{Age: "30", Gender: "female", Weight: "60", Height: "165", Activity: "low"},
			want: Profile{Age: 30, Gender: "female", Weight: 60, Height: 165, Activity: "low"},
		},
		{
			name: "fractional age truncated",
			form: FormValues{Age: "30.9", Gender: "male", Weight: "72.5", Height: "180.2", Activity: "active"},
			want: Profile{Age: 30, Gender: "male", Weight: 72.5, Height: 180.2, Activity: "active"},
		},
		{
			name: "surrounding whitespace",
			form: FormValues{Age: " 41 ", Gender: " other ", Weight: "80 ", Height: " 175", Activity: " light"},
			want: Profile{Age: 41, Gender: "other", Weight: 80, Height: 175, Activity: "light"},
		},
		{
			name:       "non-numeric weight",
			form:       FormValues{Age: "30", Gender: "female", Weight: "heavy", Height: "165", Activity: "low"},
			wantFields: []string{"weight"},
		},
		{
			name:       "NaN and infinity rejected",
			form:       FormValues{Age: "NaN", Gender: "female", Weight: "60", Height: "Inf", Activity: "low"},
			wantFields: []string{"age", "height"},
		},
		{
			name:       "empty fields",
			form:       FormValues{},
			wantFields: []string{"age", "weight", "height", "gender", "activity"},
		},
		{
			name:       "non-positive values",
			form:       FormValues{Age: "0", Gender: "male", Weight: "-5", Height: "170", Activity: "moderate"},
			wantFields: []string{"age", "weight"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseProfile(tc.form)
			if len(tc.wantFields) == 0 {
				require.NoError(t, err)
				if diff := cmp.Diff(tc.want, got); diff != "" {
					t.Errorf("profile mismatch (-want +got):\n%s", diff)
				}
				return
			}

			require.Error(t, err)
			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.ElementsMatch(t, tc.wantFields, verrs.Fields())
			assert.Equal(t, Profile{}, got)
		})
	}
}

func TestProfileFormValuesRoundTrip(t *testing.T) {
	p := Profile{Age: 30, Gender: "female", Weight: 60.5, Height: 165, Activity: "low"}
	got, err := ParseProfile(p.FormValues())
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{
		{Field: "age", Message: "is required"},
		{Field: "weight", Message: `"x" is not a number`},
	}
	want := `age: is required; weight: "x" is not a number`
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}
	if ValidationErrors(nil).Error() != "no validation errors" {
		t.Error("empty collection message changed")
	}
}

// =============================================================================
// METRICS TESTS
// =============================================================================

func TestMetricsDisplay(t *testing.T) {
	m := Metrics{
		BMI:              22.0,
		BMICategory:      "normal",
		DailyCalories:    1800,
		DailyWaterLiters: 2.1,
		StepGoal:         8000,
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"bmi", m.BMIText(), "22.0 (normal)"},
		{"calories", m.CaloriesText(), "1800 kcal"},
		{"water", m.WaterText(), "2.1L"},
		{"steps", m.StepsText(), "8000 steps"},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s = %q, want %q", tc.name, tc.got, tc.want)
		}
	}
}

func TestMetricsFields(t *testing.T) {
	m := Metrics{BMI: 24.49, BMICategory: "normal", DailyCalories: 2250.5, DailyWaterLiters: 2.45, StepGoal: 10000}
	fields := m.Fields()

	require.Len(t, fields, 4)
	ids := []string{fields[0].ID, fields[1].ID, fields[2].ID, fields[3].ID}
	assert.Equal(t, []string{"bmiMetric", "calorieMetric", "waterMetric", "stepMetric"}, ids)
	assert.Equal(t, "24.5 (normal)", fields[0].Value)
	assert.Equal(t, "2250.5 kcal", fields[1].Value)
	assert.Equal(t, "2.45L", fields[2].Value)
	assert.Equal(t, "10000 steps", fields[3].Value)
}
