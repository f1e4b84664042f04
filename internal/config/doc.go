// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for healthnest.
//
// Supports TOML, JSON and YAML configuration formats, with sensible defaults,
// .env and environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - BackendConfig: Backend URL, timeout and offline start hint
//   - UIConfig: Terminal dashboard theme, markdown and quick questions
//   - ServerConfig: Web dashboard listen address, rate limits and sessions
//   - LoggingConfig: Log level, file and format
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (HEALTHNEST_*, PORT), including a local .env file
//   - ~/.healthnest/config.toml
//   - ~/.healthnest/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := api.NewClientWithConfig(&api.ClientConfig{
//	    BaseURL: cfg.Backend.URL,
//	    Timeout: cfg.Backend.Timeout(),
//	})
package config
