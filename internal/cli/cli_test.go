// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/healthnest-tui/internal/api"
	"github.com/jeranaias/healthnest-tui/internal/config"
	"github.com/jeranaias/healthnest-tui/internal/dashboard"
	"github.com/jeranaias/healthnest-tui/internal/model"
)

// =============================================================================
// TEST BACKEND
// =============================================================================

type testBackend struct {
	mu       sync.Mutex
	status   string
	profiles []model.Profile
	chats    []string
}

func (b *testBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": b.status})
	})
	mux.HandleFunc("/health-check", func(w http.ResponseWriter, r *http.Request) {
		var p model.Profile
		_ = json.NewDecoder(r.Body).Decode(&p)
		b.mu.Lock()
		b.profiles = append(b.profiles, p)
		b.mu.Unlock()
		writeJSON(w, map[string]any{
			"metrics": model.Metrics{BMI: 22.9, BMICategory: "normal", DailyCalories: 2400, DailyWaterLiters: 2.8, StepGoal: 10000},
			"recommendations": []model.Recommendation{
				{Type: "Nutrition", Message: "Eat more vegetables"},
			},
		})
	})
	mux.HandleFunc("/chat", func(w http.ResponseWriter, r *http.Request) {
		var req api.ChatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		b.chats = append(b.chats, req.Message)
		b.mu.Unlock()
		writeJSON(w, map[string]string{"response": "reply to " + req.Message})
	})
	mux.HandleFunc("/predict-calories", func(w http.ResponseWriter, r *http.Request) {
		var req api.MacrosRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		writeJSON(w, api.CaloriesResponse{
			ProteinG:          req.Protein,
			CarbsG:            req.Carbs,
			FatG:              req.Fat,
			PredictedCalories: 4*req.Protein + 4*req.Carbs + 9*req.Fat,
		})
	})
	mux.HandleFunc("/recommend-exercise", func(w http.ResponseWriter, r *http.Request) {
		var req api.ExerciseRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		writeJSON(w, map[string]any{
			"goal": req.Goal,
			"recommended_exercises": []api.Exercise{
				{Name: "Running", Duration: "30 min", Calories: 300},
				{Name: "Squats", Sets: "3x12", Calories: 80},
			},
			"total_calories": 380,
		})
	})
	mux.HandleFunc("/pregnancy-info", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"week":             12,
			"trimester":        1,
			"baby_development": "The baby is about the size of a plum.",
			"mother_changes":   "Morning sickness may ease.",
			"advice":           "Keep taking prenatal vitamins.",
		})
	})
	return mux
}

func (b *testBackend) chatLog() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.chats...)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// isolate points the config directory at a temp home and clears overrides.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		"HEALTHNEST_BACKEND_URL", "HEALTHNEST_TIMEOUT_SECS", "HEALTHNEST_ADDR", "PORT",
		"HEALTHNEST_LOG_LEVEL", "HEALTHNEST_LOG_FILE", "HEALTHNEST_MARKDOWN",
	} {
		t.Setenv(key, "")
	}
}

func newBackend(t *testing.T) (*testBackend, string) {
	t.Helper()
	isolate(t)
	b := &testBackend{status: "healthy"}
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)
	return b, srv.URL
}

type result struct {
	stdout string
	stderr string
	code   int
}

// execute runs the command line with stdin and captures its output.
func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))

	code := run(context.Background(), root, args, &errOut)
	return result{stdout: out.String(), stderr: errOut.String(), code: code}
}

// =============================================================================
// STATUS TESTS
// =============================================================================

func TestStatusReady(t *testing.T) {
	_, url := newBackend(t)

	res := execute(t, "", "--backend-url", url, "status")
	assert.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Ready")
	assert.Contains(t, res.stdout, url)
}

func TestStatusUnhealthy(t *testing.T) {
	b, url := newBackend(t)
	b.status = "degraded"

	res := execute(t, "", "--backend-url", url, "status")
	assert.Equal(t, ExitBackendError, res.code)
	assert.Contains(t, res.stdout, dashboard.LabelAPIError)
}

func TestStatusOffline(t *testing.T) {
	isolate(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	res := execute(t, "", "--backend-url", url, "status")
	assert.Equal(t, ExitNetworkError, res.code)
	assert.Contains(t, res.stdout, "Offline")
	assert.Contains(t, res.stdout, "python app.py")
	assert.Empty(t, res.stderr, "the offline message is not repeated as an error")
}

func TestStatusJSON(t *testing.T) {
	_, url := newBackend(t)

	res := execute(t, "", "--backend-url", url, "--json", "status")
	require.Equal(t, ExitSuccess, res.code)

	var resp struct {
		Success bool       `json:"success"`
		Data    StatusData `json:"data"`
		Command string     `json:"command"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Data.Ready)
	assert.Equal(t, "ready", resp.Data.Status)
	assert.Equal(t, "healthnest status", resp.Command)
}

// =============================================================================
// ANALYZE TESTS
// =============================================================================

func TestAnalyzeOverlaysFlagsOnConfiguredProfile(t *testing.T) {
	b, url := newBackend(t)

	res := execute(t, "", "--backend-url", url, "analyze", "--age", "30", "--weight", "80.5")
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	want := model.DefaultProfile()
	want.Age = 30
	want.Weight = 80.5
	require.Len(t, b.profiles, 1)
	assert.Equal(t, want, b.profiles[0])

	assert.Contains(t, res.stdout, "22.9 (normal)")
	assert.Contains(t, res.stdout, "2400 kcal")
	assert.Contains(t, res.stdout, "2.8L")
	assert.Contains(t, res.stdout, "10000 steps")
	assert.Contains(t, res.stdout, "Nutrition:")
	assert.Contains(t, res.stdout, "Eat more vegetables")
}

func TestAnalyzeRejectsInvalidProfile(t *testing.T) {
	b, url := newBackend(t)

	res := execute(t, "", "--backend-url", url, "analyze", "--age", "abc", "--height", "-4")
	assert.Equal(t, ExitUsageError, res.code)
	assert.Contains(t, res.stdout, "--age")
	assert.Contains(t, res.stdout, "--height")
	assert.Empty(t, b.profiles, "nothing is sent for an invalid profile")
}

func TestAnalyzeJSON(t *testing.T) {
	_, url := newBackend(t)

	res := execute(t, "", "--backend-url", url, "--json", "analyze", "--gender", "female")
	require.Equal(t, ExitSuccess, res.code)

	var resp struct {
		Data AnalysisData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.Equal(t, "female", resp.Data.Profile.Gender)
	require.NotNil(t, resp.Data.Metrics)
	assert.Equal(t, 22.9, resp.Data.Metrics.BMI)
	assert.Len(t, resp.Data.Recommendations, 1)
}

// =============================================================================
// ASK TESTS
// =============================================================================

func TestAskJoinsArguments(t *testing.T) {
	b, url := newBackend(t)

	res := execute(t, "", "--backend-url", url, "ask", "How", "much", "water?")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, []string{"How much water?"}, b.chatLog())
	assert.Equal(t, "reply to How much water?\n", res.stdout)
}

func TestAskQuickQuestion(t *testing.T) {
	b, url := newBackend(t)

	res := execute(t, "", "--backend-url", url, "ask", "--quick", "2")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, []string{config.DefaultQuickQuestions[1]}, b.chatLog())
}

func TestAskUsageErrors(t *testing.T) {
	b, url := newBackend(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no question", []string{"ask"}},
		{"quick out of range", []string{"ask", "--quick", "9"}},
		{"quick and question", []string{"ask", "--quick", "1", "hello"}},
		{"blank question", []string{"ask", "   "}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := execute(t, "", append([]string{"--backend-url", url}, tc.args...)...)
			assert.Equal(t, ExitUsageError, res.code)
		})
	}
	assert.Empty(t, b.chatLog())
}

// =============================================================================
// CHAT TESTS
// =============================================================================

func TestChatReadsPipedLines(t *testing.T) {
	b, url := newBackend(t)

	stdin := "hello\n\n/quick 1\n/bogus\n/quit\nnever sent\n"
	res := execute(t, stdin, "--backend-url", url, "chat")
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	assert.Equal(t, []string{"hello", config.DefaultQuickQuestions[0]}, b.chatLog())
	assert.Contains(t, res.stdout, "HealthNest: reply to hello")
	assert.Contains(t, res.stdout, "You: "+config.DefaultQuickQuestions[0])
	assert.NotContains(t, res.stdout, "You: hello", "typed lines are not echoed")
	assert.Contains(t, res.stdout, `"/bogus"`)
}

func TestChatProfileCommandPrintsMetrics(t *testing.T) {
	b, url := newBackend(t)

	res := execute(t, "/profile age=41\n", "--backend-url", url, "chat")
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	require.Len(t, b.profiles, 1)
	assert.Equal(t, 41, b.profiles[0].Age)
	assert.Contains(t, res.stdout, "Your Health Metrics")
	assert.Contains(t, res.stdout, "22.9 (normal)")
}

func TestChatOfflineShowsStartHint(t *testing.T) {
	isolate(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	res := execute(t, "", "--backend-url", url, "chat")
	assert.Equal(t, ExitSuccess, res.code)
	assert.Contains(t, res.stdout, "Backend API is not running")
}

// =============================================================================
// AUXILIARY ENDPOINT TESTS
// =============================================================================

func TestExercise(t *testing.T) {
	_, url := newBackend(t)

	res := execute(t, "", "--backend-url", url, "exercise", "--goal", "weight_loss")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "weight_loss")
	assert.Contains(t, res.stdout, "30 min, ~300 kcal")
	assert.Contains(t, res.stdout, "3x12, ~80 kcal")
	assert.Contains(t, res.stdout, "380 kcal")
}

func TestExerciseRejectsUnknownGoal(t *testing.T) {
	_, url := newBackend(t)

	res := execute(t, "", "--backend-url", url, "exercise", "--goal", "flying")
	assert.Equal(t, ExitUsageError, res.code)
	assert.Contains(t, res.stderr, "weight_loss")
}

func TestCalories(t *testing.T) {
	_, url := newBackend(t)

	res := execute(t, "", "--backend-url", url, "calories", "--protein", "30", "--carbs", "50", "--fat", "10")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "410 kcal")
}

func TestCaloriesNeedsAMacro(t *testing.T) {
	_, url := newBackend(t)

	res := execute(t, "", "--backend-url", url, "calories")
	assert.NotEqual(t, ExitSuccess, res.code)
}

func TestPregnancy(t *testing.T) {
	_, url := newBackend(t)

	res := execute(t, "", "--backend-url", url, "pregnancy", "12")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Week 12 (trimester 1)")
	assert.Contains(t, res.stdout, "size of a plum")
}

func TestPregnancyWeekRange(t *testing.T) {
	_, url := newBackend(t)

	for _, week := range []string{"0", "43", "twelve"} {
		res := execute(t, "", "--backend-url", url, "pregnancy", week)
		assert.Equal(t, ExitUsageError, res.code, "week %s", week)
	}
}

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestConfigInitSetGet(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "healthnest.toml")

	res := execute(t, "", "--config", path, "config", "init")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	require.FileExists(t, path)

	res = execute(t, "", "--config", path, "config", "init")
	assert.Equal(t, ExitUsageError, res.code, "init does not overwrite without --force")

	res = execute(t, "", "--config", path, "config", "set", "profile.age", "42")
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	res = execute(t, "", "--config", path, "config", "get", "profile.age")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "42\n", res.stdout)

	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Profile.Age)
}

func TestConfigSetRejectsInvalidValue(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "healthnest.toml")

	res := execute(t, "", "--config", path, "config", "set", "ui.theme", "neon")
	assert.Equal(t, ExitUsageError, res.code)
	assert.Contains(t, res.stderr, "ui.theme")

	_, err := os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist), "nothing is written")
}

func TestConfigSetDoesNotPersistEnvironment(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "healthnest.toml")
	t.Setenv("HEALTHNEST_BACKEND_URL", "http://override.test:9999")

	res := execute(t, "", "--config", path, "config", "set", "profile.age", "50")
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "override.test")
}

func TestConfigGetQuickQuestionsIsNumbered(t *testing.T) {
	isolate(t)

	res := execute(t, "", "config", "get", "ui.quick_questions")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.True(t, strings.HasPrefix(res.stdout, "1. "+config.DefaultQuickQuestions[0]+"\n"))
}

func TestConfigGetUnknownKey(t *testing.T) {
	isolate(t)

	res := execute(t, "", "config", "get", "backend.nope")
	assert.Equal(t, ExitUsageError, res.code)
}

func TestBrokenConfigFlagIsConfigError(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is = = not toml"), 0600))

	res := execute(t, "", "--config", path, "status")
	assert.Equal(t, ExitConfigError, res.code)
}

// =============================================================================
// ROOT TESTS
// =============================================================================

func TestUnknownFlagIsUsageError(t *testing.T) {
	isolate(t)

	res := execute(t, "", "status", "--bogus")
	assert.Equal(t, ExitUsageError, res.code)
	assert.Contains(t, res.stderr, "bogus")
}

func TestInvalidBackendURL(t *testing.T) {
	isolate(t)

	res := execute(t, "", "--backend-url", "ftp://example.test", "status")
	assert.Equal(t, ExitUsageError, res.code)
}

func TestVersion(t *testing.T) {
	isolate(t)

	res := execute(t, "", "version")
	require.Equal(t, ExitSuccess, res.code)
	assert.Equal(t, versionLine()+"\n", res.stdout)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain", errors.New("boom"), ExitGeneralError},
		{"config", &ConfigError{Err: errors.New("bad")}, ExitConfigError},
		{"usage", &UsageError{Reason: "bad"}, ExitUsageError},
		{"validation", model.ValidationErrors{{Field: "age", Message: "bad"}}, ExitUsageError},
		{"connection", fmt.Errorf("wrapped: %w", api.ErrNotReachable), ExitNetworkError},
		{"timeout", api.ErrTimeout, ExitTimeoutError},
		{"invalid response", api.ErrInvalidResponse, ExitBackendError},
		{"unhealthy", dashboard.ErrUnhealthy, ExitBackendError},
		{"silent keeps code", silent(&UsageError{Reason: "bad"}), ExitUsageError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExitCode(tc.err))
		})
	}
}
