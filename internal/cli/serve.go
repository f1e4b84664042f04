// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/healthnest-tui/internal/server"
)

func (a *app) newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web dashboard",
		Long: `Serve the HealthNest dashboard over HTTP.

Each browser gets its own session (profile, metrics and transcript). The
page works without JavaScript; /api/* returns the same data as JSON.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.verbose {
				gin.SetMode(gin.ReleaseMode)
			}
			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			srv, err := server.New(a.registry(), server.Options{
				Addr:           addr,
				Logger:         a.logger,
				QuickQuestions: a.cfg.UI.QuickQuestions,
				RateLimitRPS:   a.cfg.Server.RateLimitRPS,
				RateLimitBurst: a.cfg.Server.RateLimitBurst,
				SessionIdle:    a.cfg.Server.SessionIdle(),
				InitialProfile: a.cfg.Profile,
			})
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.logger.Info("web dashboard starting",
				zap.String("addr", srv.Addr()),
				zap.String("backend", a.cfg.Backend.URL))
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config, e.g. :8080)")
	return cmd
}
