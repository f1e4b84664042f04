// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/healthnest-tui/internal/config"
	"github.com/jeranaias/healthnest-tui/internal/ui/styles"
)

func (a *app) newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and edit configuration",
		Long: `Show and edit the healthnest configuration file.

The file is ~/.healthnest/config.toml unless --config names another
(.toml, .json or .yaml). Environment variables such as
HEALTHNEST_BACKEND_URL override the file at load time.`,
		Args: noArgs,
		RunE: a.runConfigShow,
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := a.configTarget()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return &UsageError{Reason: fmt.Sprintf("%s already exists (use --force to overwrite)", path)}
			}
			if err := config.SaveToPath(config.Default(), path); err != nil {
				return &ConfigError{Path: path, Err: err}
			}
			fmt.Fprintln(cmd.OutOrStdout(), styles.RenderSuccess("Wrote "+path))
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  noArgs,
			RunE:  a.runConfigShow,
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			Args:  noArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				path, err := a.configTarget()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "keys",
			Short: "List the configuration keys",
			Args:  noArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				for _, key := range config.GetAllKeys() {
					fmt.Fprintln(cmd.OutOrStdout(), key)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:     "get <key>",
			Short:   "Print one configuration value",
			Example: "  healthnest config get backend.url",
			Args:    exactArgs(1),
			RunE:    a.runConfigGet,
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Change one value in the config file",
			Example: `  healthnest config set backend.url http://localhost:5000
  healthnest config set profile.age 42
  healthnest config set ui.quick_questions "What is my BMI?,Give me a workout plan"`,
			Args: exactArgs(2),
			RunE: a.runConfigSet,
		},
		initCmd,
	)
	return cmd
}

// configTarget returns the file edited by config init and set.
func (a *app) configTarget() (string, error) {
	if a.configPath != "" {
		return a.configPath, nil
	}
	path, err := config.ConfigPathTOML()
	if err != nil {
		return "", &ConfigError{Err: err}
	}
	return path, nil
}

func (a *app) runConfigShow(cmd *cobra.Command, _ []string) error {
	if a.jsonOut {
		return a.printJSON(cmd, a.cfg, nil)
	}
	fmt.Fprint(cmd.OutOrStdout(), a.cfg.String())
	return nil
}

func (a *app) runConfigGet(cmd *cobra.Command, args []string) error {
	value, err := a.cfg.Get(args[0])
	if err != nil {
		return &UsageError{Reason: err.Error()}
	}
	if a.jsonOut {
		return a.printJSON(cmd, map[string]interface{}{"key": args[0], "value": value}, nil)
	}

	out := cmd.OutOrStdout()
	if list, ok := value.([]string); ok {
		for i, item := range list {
			fmt.Fprintf(out, "%d. %s\n", i+1, item)
		}
		return nil
	}
	fmt.Fprintln(out, value)
	return nil
}

// runConfigSet edits the file itself, so environment overrides applied to
// the effective config are not written back.
func (a *app) runConfigSet(cmd *cobra.Command, args []string) error {
	path, err := a.configTarget()
	if err != nil {
		return err
	}

	cfg, err := readConfigFile(path)
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	if err := cfg.Set(args[0], args[1]); err != nil {
		return &UsageError{Reason: err.Error()}
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return &UsageError{Reason: err.Error()}
	}
	if err := config.SaveToPath(cfg, path); err != nil {
		return &ConfigError{Path: path, Err: err}
	}

	fmt.Fprintln(cmd.OutOrStdout(), styles.RenderSuccess(fmt.Sprintf("%s = %s", args[0], args[1])))
	return nil
}

// readConfigFile decodes path over the defaults without environment
// overrides. A missing file yields the defaults.
func readConfigFile(path string) (*config.Config, error) {
	cfg := config.Default()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = config.LoadJSON(cfg, path)
	case ".yaml", ".yml":
		err = config.LoadYAML(cfg, path)
	default:
		err = config.LoadTOML(cfg, path)
	}
	return cfg, err
}
