// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/healthnest-tui/internal/session"
	"github.com/jeranaias/healthnest-tui/internal/ui/chat"
	"github.com/jeranaias/healthnest-tui/internal/ui/styles"
)

func (a *app) newTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:         "tui",
		Short:       "Open the terminal dashboard (default)",
		Args:        noArgs,
		Annotations: map[string]string{screenAnnotation: "true"},
		RunE:        a.runTUI,
	}
}

// runTUI runs the full-screen dashboard until the user quits.
func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	if !IsTTY() || !IsStdoutTTY() {
		return &UsageError{Reason: "the terminal dashboard needs an interactive terminal; try 'healthnest chat' or 'healthnest serve'"}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	m := chat.New(chat.Options{
		Registry:       a.registry(),
		Session:        session.New(a.cfg.Profile),
		Theme:          styles.NewTheme(a.cfg.UI.Theme),
		QuickQuestions: a.cfg.UI.QuickQuestions,
		Markdown:       a.cfg.UI.Markdown,
		ShowTimestamps: a.cfg.UI.ShowTimestamps,
		Context:        ctx,
		Logger:         a.logger,
	})

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
