// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/healthnest-tui/internal/model"
	"github.com/jeranaias/healthnest-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the root configuration structure.
type Config struct {
	// Version is the config schema version
	Version string `toml:"version" json:"version" yaml:"version"`

	// Backend connection settings
	Backend BackendConfig `toml:"backend" json:"backend" yaml:"backend"`

	// Profile is the initial profile before the first submission
	Profile model.Profile `toml:"profile" json:"profile" yaml:"profile"`

	// UI settings for the terminal dashboard
	UI UIConfig `toml:"ui" json:"ui" yaml:"ui"`

	// Server settings for the web dashboard
	Server ServerConfig `toml:"server" json:"server" yaml:"server"`

	// Logging settings
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`
}

// BackendConfig contains the HealthNest backend connection settings.
type BackendConfig struct {
	// URL is the backend base URL
	URL string `toml:"url" json:"url" yaml:"url"`

	// TimeoutSecs bounds each request. 0 means no timeout.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs" yaml:"timeout_secs"`

	// StartHint is the shell snippet shown when the backend is offline
	StartHint string `toml:"start_hint" json:"start_hint" yaml:"start_hint"`
}

// Timeout returns TimeoutSecs as a duration.
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSecs) * time.Second
}

// UIConfig contains terminal dashboard preferences.
type UIConfig struct {
	// Theme is the color theme: "dark", "light" or "auto"
	Theme string `toml:"theme" json:"theme" yaml:"theme"`

	// Markdown renders bot replies with glamour
	Markdown bool `toml:"markdown" json:"markdown" yaml:"markdown"`

	// ShowTimestamps prefixes transcript entries with their time
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps" yaml:"show_timestamps"`

	// QuickQuestions are offered as one-key shortcuts (F1-F5)
	QuickQuestions []string `toml:"quick_questions" json:"quick_questions" yaml:"quick_questions"`
}

// ServerConfig contains web dashboard settings.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":8080")
	Addr string `toml:"addr" json:"addr" yaml:"addr"`

	// RateLimitRPS is the per-client request rate. 0 disables limiting.
	RateLimitRPS float64 `toml:"rate_limit_rps" json:"rate_limit_rps" yaml:"rate_limit_rps"`

	// RateLimitBurst is the per-client burst size
	RateLimitBurst int `toml:"rate_limit_burst" json:"rate_limit_burst" yaml:"rate_limit_burst"`

	// SessionIdleMinutes expires browser sessions after inactivity
	SessionIdleMinutes int `toml:"session_idle_minutes" json:"session_idle_minutes" yaml:"session_idle_minutes"`
}

// SessionIdle returns SessionIdleMinutes as a duration.
func (s ServerConfig) SessionIdle() time.Duration {
	return time.Duration(s.SessionIdleMinutes) * time.Minute
}

// LoggingConfig contains log output settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `toml:"level" json:"level" yaml:"level"`

	// File receives terminal dashboard logs (the screen is owned by the UI)
	File string `toml:"file" json:"file" yaml:"file"`

	// JSON selects structured JSON output instead of console format
	JSON bool `toml:"json" json:"json" yaml:"json"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Current schema version.
const Version = "1.0"

// DefaultStartHint is shown when the backend cannot be reached.
const DefaultStartHint = "cd backend\npython app.py"

// DefaultQuickQuestions are the built-in quick questions.
var DefaultQuickQuestions = []string{
	"What is my BMI?",
	"How much water should I drink?",
	"Give me a workout plan",
	"What should I eat to lose weight?",
	"Share some health tips",
}

// Default returns a new Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: Version,
		Backend: BackendConfig{
			URL:         "http://localhost:5000",
			TimeoutSecs: 0,
			StartHint:   DefaultStartHint,
		},
		Profile: model.DefaultProfile(),
		UI: UIConfig{
			Theme:          "auto",
			Markdown:       true,
			ShowTimestamps: false,
			QuickQuestions: append([]string(nil), DefaultQuickQuestions...),
		},
		Server: ServerConfig{
			Addr:               ":8080",
			RateLimitRPS:       5,
			RateLimitBurst:     10,
			SessionIdleMinutes: 60,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
			JSON:  false,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the healthnest configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".healthnest"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DefaultLogFile returns the log file used by the terminal dashboard.
func DefaultLogFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "healthnest.log"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// A .env file in the working directory and environment overrides are
// applied last.
func Load() (*Config, error) {
	var loadErr error

	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		cfg, err := LoadFromPath(path)
		if err != nil {
			loadErr = err
			break
		}
		return cfg, nil
	}

	cfg := Default()
	if err := finish(cfg); err != nil {
		return nil, err
	}

	// Return defaults (with any load error for informational purposes)
	return cfg, loadErr
}

// LoadFromPath loads configuration from a specific file path with full
// validation. The format is chosen by extension: .json, .yaml/.yml, else TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = LoadJSON(cfg, path)
	case ".yaml", ".yml":
		err = LoadYAML(cfg, path)
	default:
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	if err := finish(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finish applies environment overrides, defaults and validation.
func finish(cfg *Config) error {
	LoadDotEnv()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadYAML loads configuration from a YAML file.
func LoadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read YAML file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode YAML file: %w", err)
	}
	return nil
}

var dotEnvOnce sync.Once

// LoadDotEnv loads a .env file from the working directory, once per process.
// Variables already present in the environment win.
func LoadDotEnv() {
	dotEnvOnce.Do(func() {
		// Missing .env is the common case.
		_ = godotenv.Load()
	})
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# healthnest configuration file\n")
	buf.WriteString("# Generated by healthnest - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file with 0600 permissions.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveYAML saves the configuration to a YAML file with 0600 permissions.
func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveToPath saves the configuration choosing the format by extension.
func SaveToPath(cfg *Config, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SaveJSON(cfg, path)
	case ".yaml", ".yml":
		return SaveYAML(cfg, path)
	default:
		return SaveTOML(cfg, path)
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// ValidLogLevels are the accepted logging.level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ValidThemes are the accepted ui.theme values.
var ValidThemes = []string{"auto", "dark", "light"}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// Backend
	if err := ValidateURL(c.Backend.URL); err != nil {
		errs = append(errs, ValidationError{Field: "backend.url", Message: err.Error()})
	}
	if c.Backend.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "backend.timeout_secs",
			Message: fmt.Sprintf("must be >= 0 (0 = no timeout), got %d", c.Backend.TimeoutSecs),
		})
	}

	// Profile defaults use the same rules as submitted profiles
	if err := c.Profile.Validate(); err != nil {
		var perrs model.ValidationErrors
		if errors.As(err, &perrs) {
			for _, pe := range perrs {
				errs = append(errs, ValidationError{Field: "profile." + pe.Field, Message: pe.Message})
			}
		} else {
			errs = append(errs, ValidationError{Field: "profile", Message: err.Error()})
		}
	}

	// UI
	if !contains(ValidThemes, c.UI.Theme) {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme %q, must be one of: %s", c.UI.Theme, strings.Join(ValidThemes, ", ")),
		})
	}

	// Server
	if c.Server.RateLimitRPS < 0 {
		errs = append(errs, ValidationError{Field: "server.rate_limit_rps", Message: "must be >= 0 (0 = unlimited)"})
	}
	if c.Server.RateLimitBurst < 0 {
		errs = append(errs, ValidationError{Field: "server.rate_limit_burst", Message: "must be >= 0"})
	}
	if c.Server.RateLimitRPS > 0 && c.Server.RateLimitBurst == 0 {
		errs = append(errs, ValidationError{Field: "server.rate_limit_burst", Message: "must be > 0 when rate limiting is enabled"})
	}
	if c.Server.SessionIdleMinutes < 0 {
		errs = append(errs, ValidationError{Field: "server.session_idle_minutes", Message: "must be >= 0"})
	}

	// Logging
	if !contains(ValidLogLevels, c.Logging.Level) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level %q, must be one of: %s", c.Logging.Level, strings.Join(ValidLogLevels, ", ")),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateURL checks that raw is an absolute http or https URL.
func ValidateURL(raw string) error {
	if raw == "" {
		return errors.New("URL is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("URL has no host")
	}
	return nil
}

// SetDefaults fills in any missing values with defaults.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Backend.URL == "" {
		c.Backend.URL = defaults.Backend.URL
	}
	c.Backend.URL = strings.TrimRight(c.Backend.URL, "/")
	if c.Backend.StartHint == "" {
		c.Backend.StartHint = defaults.Backend.StartHint
	}
	if c.Profile.Gender == "" {
		c.Profile.Gender = defaults.Profile.Gender
	}
	if c.Profile.Activity == "" {
		c.Profile.Activity = defaults.Profile.Activity
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if len(c.UI.QuickQuestions) == 0 {
		c.UI.QuickQuestions = defaults.UI.QuickQuestions
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	c.Logging.Level = strings.ToLower(c.Logging.Level)
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - HEALTHNEST_BACKEND_URL: overrides backend.url
//   - HEALTHNEST_TIMEOUT_SECS: overrides backend.timeout_secs
//   - HEALTHNEST_ADDR: overrides server.addr
//   - PORT: overrides server.addr as ":<port>" (when HEALTHNEST_ADDR is unset)
//   - HEALTHNEST_LOG_LEVEL: overrides logging.level
//   - HEALTHNEST_LOG_FILE: overrides logging.file
//   - HEALTHNEST_MARKDOWN: "1"/"true" or "0"/"false" toggles ui.markdown
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("HEALTHNEST_BACKEND_URL"); v != "" {
		c.Backend.URL = v
	}

	if v := os.Getenv("HEALTHNEST_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.Backend.TimeoutSecs = secs
		}
	}

	if v := os.Getenv("HEALTHNEST_ADDR"); v != "" {
		c.Server.Addr = v
	} else if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}

	if v := os.Getenv("HEALTHNEST_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv("HEALTHNEST_LOG_FILE"); v != "" {
		c.Logging.File = v
	}

	if v := os.Getenv("HEALTHNEST_MARKDOWN"); v != "" {
		c.UI.Markdown = parseBool(v)
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "backend.url").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "profile.age").
// String values are converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		field, ok := fieldByTag(v, part)
		if !ok {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a section", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// fieldByTag finds a struct field by its toml tag name.
func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := strings.SplitN(t.Field(i).Tag.Get("toml"), ",", 2)[0]
		if tag == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			field.SetBool(parseBool(strVal))
			return nil
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				var items []string
				for _, s := range strings.Split(strVal, ",") {
					if s = strings.TrimSpace(s); s != "" {
						items = append(items, s)
					}
				}
				field.Set(reflect.ValueOf(items))
				return nil
			}
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return errors.New("cannot assign nil")
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	var keys []string
	collectKeys(reflect.TypeOf(Config{}), "", &keys)
	return keys
}

func collectKeys(t reflect.Type, prefix string, keys *[]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := strings.SplitN(f.Tag.Get("toml"), ",", 2)[0]
		if tag == "" || tag == "-" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		if f.Type.Kind() == reflect.Struct {
			collectKeys(f.Type, key, keys)
			continue
		}
		*keys = append(*keys, key)
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.UI.QuickQuestions != nil {
		clone.UI.QuickQuestions = append([]string(nil), c.UI.QuickQuestions...)
	}
	return &clone
}

// String returns the config rendered as TOML for display.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return buf.String()
}
