// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"

	"github.com/jeranaias/healthnest-tui/internal/api"
	"github.com/jeranaias/healthnest-tui/internal/dashboard"
	"github.com/jeranaias/healthnest-tui/internal/model"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitNetworkError indicates the backend could not be reached
	ExitNetworkError = 5
	// ExitBackendError indicates the backend answered with an error
	ExitBackendError = 6
	// ExitTimeoutError indicates an operation timed out
	ExitTimeoutError = 8
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ConfigError wraps a failure to load, validate or save configuration.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// UsageError reports bad flags or arguments that cobra itself accepted.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return e.Reason
}

// errSilent marks an error whose message was already shown to the user.
// Execute only turns it into an exit code.
type errSilent struct {
	err error
}

func (e *errSilent) Error() string { return e.err.Error() }
func (e *errSilent) Unwrap() error { return e.err }

// silent wraps err so Execute does not print it again.
func silent(err error) error {
	if err == nil {
		return nil
	}
	return &errSilent{err: err}
}

// =============================================================================
// EXIT CODE MAPPING
// =============================================================================

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var cfgErr *ConfigError
	var usageErr *UsageError
	var validation model.ValidationErrors
	var clientErr *api.ClientError

	switch {
	case errors.As(err, &cfgErr):
		return ExitConfigError
	case errors.As(err, &usageErr), errors.As(err, &validation):
		return ExitUsageError
	case errors.As(err, &clientErr):
		switch clientErr.Type {
		case api.ErrTypeTimeout:
			return ExitTimeoutError
		case api.ErrTypeConnection:
			return ExitNetworkError
		default:
			return ExitBackendError
		}
	case errors.Is(err, dashboard.ErrUnhealthy), errors.Is(err, dashboard.ErrNoMetrics):
		return ExitBackendError
	}
	return ExitGeneralError
}

// isSilent reports whether err was already shown.
func isSilent(err error) bool {
	var s *errSilent
	return errors.As(err, &s)
}
