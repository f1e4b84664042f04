// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/healthnest-tui/internal/model"
)

// isolate points the home directory at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, key := range []string{
		"HEALTHNEST_BACKEND_URL", "HEALTHNEST_TIMEOUT_SECS", "HEALTHNEST_ADDR", "PORT",
		"HEALTHNEST_LOG_LEVEL", "HEALTHNEST_LOG_FILE", "HEALTHNEST_MARKDOWN",
	} {
		t.Setenv(key, "")
	}
	return home
}

// =============================================================================
// DEFAULTS
// =============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://localhost:5000", cfg.Backend.URL)
	assert.Equal(t, time.Duration(0), cfg.Backend.Timeout(), "no timeout by default")
	assert.Equal(t, DefaultStartHint, cfg.Backend.StartHint)
	assert.Equal(t, model.DefaultProfile(), cfg.Profile)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Len(t, cfg.UI.QuickQuestions, 5)
	require.NoError(t, cfg.Validate())
}

func TestDefaultQuickQuestionsNotShared(t *testing.T) {
	cfg := Default()
	cfg.UI.QuickQuestions[0] = "changed"
	if DefaultQuickQuestions[0] == "changed" {
		t.Error("Default() must copy the quick question list")
	}
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Backend.URL, cfg.Backend.URL)
}

func TestLoad_TOMLFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".healthnest")
	require.NoError(t, os.MkdirAll(dir, 0700))
	content := `
[backend]
url = "http://backend.internal:5001/"
timeout_secs = 15

[profile]
age = 40
gender = "female"
weight = 65.5
height = 168
activity = "active"

[logging]
level = "DEBUG"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://backend.internal:5001", cfg.Backend.URL, "trailing slash trimmed")
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout())
	assert.Equal(t, model.Profile{Age: 40, Gender: "female", Weight: 65.5, Height: 168, Activity: "active"}, cfg.Profile)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Unset sections keep defaults
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, DefaultStartHint, cfg.Backend.StartHint)
}

func TestLoad_InvalidFileReturnsDefaultsWithError(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".healthnest")
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[backend]\nurl = \"ftp://x\"\n"), 0600))

	cfg, err := Load()
	require.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, Default().Backend.URL, cfg.Backend.URL)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	isolate(t)

	formats := []string{"config.toml", "config.json", "config.yaml"}
	for _, name := range formats {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			cfg := Default()
			cfg.Backend.URL = "https://health.example.com"
			cfg.Profile.Age = 33
			cfg.UI.QuickQuestions = []string{"Q1", "Q2"}
			cfg.Server.RateLimitRPS = 2.5

			require.NoError(t, SaveToPath(cfg, path))

			info, err := os.Stat(path)
			require.NoError(t, err)
			if perm := info.Mode().Perm(); perm != 0600 && os.Getenv("OS") != "Windows_NT" {
				t.Errorf("permissions = %o, want 600", perm)
			}

			loaded, err := LoadFromPath(path)
			require.NoError(t, err)
			if diff := cmp.Diff(cfg, loaded); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadFromPath_Missing(t *testing.T) {
	isolate(t)
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("HEALTHNEST_BACKEND_URL", "http://10.0.0.5:5000")
	t.Setenv("HEALTHNEST_TIMEOUT_SECS", "20")
	t.Setenv("HEALTHNEST_LOG_LEVEL", "warn")
	t.Setenv("HEALTHNEST_MARKDOWN", "false")
	t.Setenv("PORT", "9000")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "http://10.0.0.5:5000", cfg.Backend.URL)
	assert.Equal(t, 20, cfg.Backend.TimeoutSecs)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.False(t, cfg.UI.Markdown)
	assert.Equal(t, ":9000", cfg.Server.Addr)
}

func TestApplyEnvOverrides_AddrBeatsPort(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "9000")
	t.Setenv("HEALTHNEST_ADDR", "127.0.0.1:7000")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)
}

func TestApplyEnvOverrides_BadTimeoutIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("HEALTHNEST_TIMEOUT_SECS", "soon")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, 0, cfg.Backend.TimeoutSecs)
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"bad scheme", func(c *Config) { c.Backend.URL = "ftp://localhost:5000" }, "backend.url"},
		{"no host", func(c *Config) { c.Backend.URL = "http://" }, "backend.url"},
		{"negative timeout", func(c *Config) { c.Backend.TimeoutSecs = -1 }, "backend.timeout_secs"},
		{"bad profile age", func(c *Config) { c.Profile.Age = 0 }, "profile.age"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"negative rps", func(c *Config) { c.Server.RateLimitRPS = -1 }, "server.rate_limit_rps"},
		{"zero burst with limit", func(c *Config) { c.Server.RateLimitBurst = 0 }, "server.rate_limit_burst"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			var fields []string
			for _, ve := range verrs {
				fields = append(fields, ve.Field)
			}
			assert.Contains(t, fields, tc.wantField)
		})
	}
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("http://localhost:5000"))
	assert.NoError(t, ValidateURL("https://api.example.com/base"))
	assert.Error(t, ValidateURL(""))
	assert.Error(t, ValidateURL("localhost:5000"))
	assert.Error(t, ValidateURL("://bad"))
}

// =============================================================================
// GET / SET
// =============================================================================

func TestGetSet(t *testing.T) {
	cfg := Default()

	v, err := cfg.Get("backend.url")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", v)

	require.NoError(t, cfg.Set("profile.age", "41"))
	assert.Equal(t, 41, cfg.Profile.Age)

	require.NoError(t, cfg.Set("profile.weight", "72.5"))
	assert.Equal(t, 72.5, cfg.Profile.Weight)

	require.NoError(t, cfg.Set("ui.markdown", "no"))
	assert.False(t, cfg.UI.Markdown)

	require.NoError(t, cfg.Set("ui.quick_questions", "A?, B?"))
	assert.Equal(t, []string{"A?", "B?"}, cfg.UI.QuickQuestions)

	require.NoError(t, cfg.Set("server.rate_limit_burst", 3))
	assert.Equal(t, 3, cfg.Server.RateLimitBurst)

	_, err = cfg.Get("backend.nope")
	assert.Error(t, err)
	assert.Error(t, cfg.Set("profile.age", "old"))
	assert.Error(t, cfg.Set("backend.url.host", "x"))
}

func TestGetAllKeys(t *testing.T) {
	keys := GetAllKeys()
	for _, want := range []string{"version", "backend.url", "profile.age", "ui.quick_questions", "server.addr", "logging.level"} {
		assert.Contains(t, keys, want)
	}
	for _, key := range keys {
		_, err := Default().Get(key)
		assert.NoError(t, err, key)
	}
}

func TestClone(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()
	clone.UI.QuickQuestions[0] = "mutated"
	clone.Backend.URL = "http://other"

	assert.NotEqual(t, "mutated", cfg.UI.QuickQuestions[0])
	assert.Equal(t, "http://localhost:5000", cfg.Backend.URL)
}
