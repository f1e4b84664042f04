// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/healthnest-tui/internal/api"
	"github.com/jeranaias/healthnest-tui/internal/commands"
	"github.com/jeranaias/healthnest-tui/internal/config"
	"github.com/jeranaias/healthnest-tui/internal/dashboard"
	"github.com/jeranaias/healthnest-tui/internal/logging"
	"github.com/jeranaias/healthnest-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// screenAnnotation marks commands that take over the terminal. They log to a
// file and leave the color profile to the UI.
const screenAnnotation = "healthnest/screen"

// =============================================================================
// APPLICATION STATE
// =============================================================================

// app holds the root flags and what PersistentPreRunE builds from them.
type app struct {
	// Root flags
	configPath string
	backendURL string
	verbose    bool
	jsonOut    bool

	cfg        *config.Config
	configWarn error
	logger     *zap.Logger
	client     *api.Client
}

// NewRootCommand builds the healthnest command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "healthnest",
		Short: "HealthNest health dashboard and assistant",
		Long: `HealthNest is a client for the HealthNest backend.

Without a subcommand it opens the terminal dashboard: a profile form,
your health metrics and a chat with the HealthNest assistant. The same
operations are available as subcommands and as a web dashboard.`,
		Version:           Version,
		Args:              noArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Annotations:       map[string]string{screenAnnotation: "true"},
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.runTUI,
	}
	root.SetVersionTemplate(versionLine() + "\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Reason: err.Error()}
	})

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Config file (.toml, .json or .yaml; default ~/.healthnest/config.toml)")
	flags.StringVar(&a.backendURL, "backend-url", "", "Backend base URL (overrides config and HEALTHNEST_BACKEND_URL)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&a.jsonOut, "json", false, "Print machine-readable JSON")

	root.AddCommand(
		a.newTUICommand(),
		a.newServeCommand(),
		a.newStatusCommand(),
		a.newAnalyzeCommand(),
		a.newAskCommand(),
		a.newChatCommand(),
		a.newExerciseCommand(),
		a.newCaloriesCommand(),
		a.newPregnancyCommand(),
		a.newConfigCommand(),
		a.newVersionCommand(),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	return run(context.Background(), NewRootCommand(), os.Args[1:], os.Stderr)
}

func run(ctx context.Context, root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil && !isSilent(err) {
		fmt.Fprintln(stderr, styles.RenderError("Error: "+err.Error()))
	}
	return ExitCode(err)
}

// =============================================================================
// SETUP
// =============================================================================

// setup loads configuration, builds the logger and the backend client.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := a.loadConfig(underConfigCommand(cmd))
	if err != nil {
		return err
	}
	if a.backendURL != "" {
		if err := config.ValidateURL(a.backendURL); err != nil {
			return &UsageError{Reason: fmt.Sprintf("--backend-url: %v", err)}
		}
		cfg.Backend.URL = a.backendURL
	}
	a.cfg = cfg

	screen := cmd.Annotations[screenAnnotation] == "true"
	opts := logging.Options{
		Level:   cfg.Logging.Level,
		Verbose: a.verbose,
		JSON:    cfg.Logging.JSON,
		File:    cfg.Logging.File,
	}
	if screen {
		if opts.File == "" && a.verbose {
			opts.File, _ = config.DefaultLogFile()
		}
		a.logger, err = logging.NewForTUI(opts)
	} else {
		lipgloss.SetColorProfile(GetColorProfile())
		a.logger, err = logging.New(opts)
	}
	if err != nil {
		return &ConfigError{Err: err}
	}
	if a.configWarn != nil {
		a.logger.Warn("config not loaded, using defaults", zap.Error(a.configWarn))
	}

	a.client = api.NewClientWithConfig(&api.ClientConfig{
		BaseURL: cfg.Backend.URL,
		Timeout: cfg.Backend.Timeout(),
		Logger:  a.logger,
	})
	a.logger.Debug("starting",
		zap.String("command", cmd.CommandPath()),
		zap.String("backend", cfg.Backend.URL))
	return nil
}

// loadConfig reads --config when given, else the default locations. A broken
// default file falls back to defaults with a warning; a broken --config file
// is an error. When missingOK is set a --config file that does not exist yet
// yields the defaults, so the config commands can create it.
func (a *app) loadConfig(missingOK bool) (*config.Config, error) {
	if a.configPath != "" {
		if _, err := os.Stat(a.configPath); missingOK && errors.Is(err, fs.ErrNotExist) {
			cfg := config.Default()
			cfg.ApplyEnvOverrides()
			return cfg, nil
		}
		cfg, err := config.LoadFromPath(a.configPath)
		if err != nil {
			return nil, &ConfigError{Path: a.configPath, Err: err}
		}
		return cfg, nil
	}

	cfg, err := config.Load()
	if cfg == nil {
		return nil, &ConfigError{Err: err}
	}
	a.configWarn = err
	return cfg, nil
}

// underConfigCommand reports whether cmd is "config" or one of its
// subcommands.
func underConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil && c.HasParent(); c = c.Parent() {
		if c.Name() == "config" && !c.Parent().HasParent() {
			return true
		}
	}
	return false
}

// controller returns a dashboard controller bound to the backend client.
func (a *app) controller() *dashboard.Controller {
	return dashboard.New(a.client, dashboard.Options{
		Logger:    a.logger,
		StartHint: a.cfg.Backend.StartHint,
	})
}

// registry returns the dashboard event registry.
func (a *app) registry() *commands.Registry {
	return commands.Default(a.controller(), a.cfg.UI.QuickQuestions)
}

// printJSON writes a --json envelope for command.
func (a *app) printJSON(cmd *cobra.Command, data interface{}, err error) error {
	if werr := newJSONResponse(cmd.CommandPath(), data, err).Write(cmd.OutOrStdout()); werr != nil {
		return werr
	}
	return silent(err)
}

// =============================================================================
// ARGUMENT VALIDATORS
// =============================================================================

// Cobra's validators return plain errors; these wrap them so the exit code
// reports a usage error.

func noArgs(cmd *cobra.Command, args []string) error {
	return usage(cobra.NoArgs(cmd, args))
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usage(cobra.ExactArgs(n)(cmd, args))
	}
}

func usage(err error) error {
	if err == nil {
		return nil
	}
	return &UsageError{Reason: err.Error()}
}

// =============================================================================
// VERSION
// =============================================================================

func versionLine() string {
	return fmt.Sprintf("healthnest %s (commit %s, built %s)", Version, GitCommit, BuildDate)
}

func (a *app) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.jsonOut {
				return a.printJSON(cmd, map[string]string{
					"version":    Version,
					"git_commit": GitCommit,
					"build_date": BuildDate,
				}, nil)
			}
			fmt.Fprintln(cmd.OutOrStdout(), versionLine())
			return nil
		},
	}
}
