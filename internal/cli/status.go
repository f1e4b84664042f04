// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/spf13/cobra"

	"github.com/jeranaias/healthnest-tui/internal/commands"
	"github.com/jeranaias/healthnest-tui/internal/session"
	"github.com/jeranaias/healthnest-tui/internal/ui/styles"
)

// StatusData is the --json payload of the status command.
type StatusData struct {
	Backend string `json:"backend"`
	Status  string `json:"status"`
	Label   string `json:"label"`
	Ready   bool   `json:"ready"`
}

func (a *app) newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the backend is reachable",
		Long: `Probe the backend health endpoint.

Exits 0 when the backend reports healthy, non-zero otherwise.`,
		Args: noArgs,
		RunE: a.runStatus,
	}
}

func (a *app) runStatus(cmd *cobra.Command, _ []string) error {
	s := session.New(a.cfg.Profile)
	_, err := a.registry().Dispatch(cmd.Context(), s, commands.EventLoad, commands.Input{})
	snap := s.Snapshot()

	if a.jsonOut {
		return a.printJSON(cmd, StatusData{
			Backend: a.cfg.Backend.URL,
			Status:  snap.Status.String(),
			Label:   snap.StatusLabel,
			Ready:   snap.Status == session.StatusReady,
		}, err)
	}

	out := cmd.OutOrStdout()
	printTitle(out, "HealthNest Backend")
	printField(out, "URL", a.cfg.Backend.URL)
	if snap.Status == session.StatusReady {
		printField(out, "Status", styles.RenderSuccess(snap.StatusLabel))
	} else {
		printField(out, "Status", styles.RenderError(snap.StatusLabel))
	}

	// The offline message explains how to start the backend.
	for _, e := range snap.VisibleEntries() {
		printIndented(out, e.Text)
	}
	return silent(err)
}
