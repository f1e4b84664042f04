// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/healthnest-tui/internal/commands"
	"github.com/jeranaias/healthnest-tui/internal/config"
	"github.com/jeranaias/healthnest-tui/internal/dashboard"
	"github.com/jeranaias/healthnest-tui/internal/model"
	"github.com/jeranaias/healthnest-tui/internal/session"
	"github.com/jeranaias/healthnest-tui/internal/ui/styles"
	"github.com/jeranaias/healthnest-tui/internal/util"
)

const chatPrompt = "healthnest> "

// =============================================================================
// INPUT HISTORY
// =============================================================================

// lineReader reads one line of input.
type lineReader interface {
	Prompt(prompt string) (string, error)
}

// ChatCLI provides input history, line editing and slash command completion
// for line-mode chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI completing slash commands with complete.
func NewChatCLI(complete func(string) []string) *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetTabCompletionStyle(liner.TabPrints)
	if complete != nil {
		line.SetCompleter(complete)
	}

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	c.LoadHistory()
	return c
}

// LoadHistory loads input history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		_, _ = c.line.ReadHistory(f)
		f.Close()
	}
}

// Prompt reads a line with history navigation. Non-empty input is added to
// the history.
func (c *ChatCLI) Prompt(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists input history with owner-only permissions.
func (c *ChatCLI) SaveHistory() error {
	return util.AtomicWrite(c.historyFile, 0600, func(w io.Writer) error {
		_, err := c.line.WriteHistory(w)
		return err
	})
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() error {
	err := c.SaveHistory()
	if cerr := c.line.Close(); err == nil {
		err = cerr
	}
	return err
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

func (a *app) newChatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant line by line",
		Long: `Start a line-mode chat session. Type a message and press Enter.
Slash commands work as in the dashboard (/help lists them); Tab completes
them. Ctrl+C cancels a pending request, Ctrl+D or /quit exits.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := a.registry()

			var input lineReader
			if cmd.InOrStdin() == os.Stdin && IsTTY() {
				cli := NewChatCLI(commands.NewCompleter(reg).Lines)
				defer func() {
					if err := cli.Close(); err != nil {
						a.logger.Warn("saving chat history failed", zap.Error(err))
					}
				}()
				input = cli
			} else {
				input = newPlainReader(cmd.InOrStdin())
			}

			repl := &chatREPL{
				registry: reg,
				session:  session.New(a.cfg.Profile),
				input:    input,
				out:      cmd.OutOrStdout(),
				render:   a.renderReply,
				logger:   a.logger,
			}
			return repl.run(cmd.Context())
		},
	}
}

// =============================================================================
// REPL
// =============================================================================

// chatREPL runs dashboard events from lines of input and prints the
// transcript as it grows.
type chatREPL struct {
	registry *commands.Registry
	session  *session.Session
	input    lineReader
	out      io.Writer
	render   func(io.Writer, string) string
	logger   *zap.Logger

	// printed counts the visible entries already written to out.
	printed int
}

func (r *chatREPL) run(ctx context.Context) error {
	fmt.Fprintln(r.out, TitleStyle.Render("HealthNest Chat"))
	fmt.Fprintln(r.out, DimStyle.Render("Type /help for commands, /quit to exit."))

	_, _ = r.registry.Dispatch(ctx, r.session, commands.EventLoad, commands.Input{})
	r.printStatus()
	r.flush("")

	for {
		line, err := r.input.Prompt(PromptStyle.Render(chatPrompt))
		if err != nil {
			// Ctrl+C at the prompt, Ctrl+D or end of input
			fmt.Fprintln(r.out)
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
			return nil
		}
		if r.execute(ctx, line) {
			return nil
		}
	}
}

// execute runs one line and reports whether the session should end.
func (r *chatREPL) execute(parent context.Context, line string) bool {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	res, err := r.registry.Execute(ctx, r.session, line)
	r.flush(line)

	switch {
	case err == nil:
	case errors.Is(err, dashboard.ErrEmptyMessage), errors.Is(err, dashboard.ErrNoReply):
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(r.out, styles.RenderWarning("Cancelled"))
	case errors.Is(err, commands.ErrUsage), errors.Is(err, commands.ErrUnknownEvent):
		fmt.Fprintln(r.out, styles.RenderWarning(err.Error()))
	default:
		// Failures already left a message in the transcript.
		r.logger.Debug("chat command failed", zap.String("event", res.Event), zap.Error(err))
	}

	switch res.Event {
	case commands.EventHelp:
		fmt.Fprintln(r.out, res.Reply)
	case commands.EventLoad:
		r.printStatus()
	case commands.EventUpdateProfile:
		if res.Analysis.HasMetrics() {
			r.printMetrics()
		}
	}
	return res.Quit
}

// flush prints the entries added since the last call. The user's own line
// is not echoed back.
func (r *chatREPL) flush(typed string) {
	entries := r.session.Snapshot().VisibleEntries()
	if r.printed > len(entries) {
		r.printed = len(entries)
	}
	for _, e := range entries[r.printed:] {
		if e.IsUser() && e.Text == typed {
			continue
		}
		r.printEntry(e)
	}
	r.printed = len(entries)
}

func (r *chatREPL) printEntry(e model.Entry) {
	switch {
	case e.IsUser():
		fmt.Fprintf(r.out, "%s %s\n", PromptStyle.Render("You:"), e.Text)
	case e.Label != "" && e.Text == "":
		fmt.Fprintln(r.out, SectionStyle.Render(e.Label))
	case e.Label != "":
		fmt.Fprintf(r.out, "  %s %s\n", SectionStyle.Render(e.Label+":"), e.Text)
	default:
		fmt.Fprintf(r.out, "%s %s\n", BotStyle.Render(model.RoleBot.DisplayName()+":"), r.render(r.out, e.Text))
	}
}

func (r *chatREPL) printStatus() {
	snap := r.session.Snapshot()
	if snap.Status == session.StatusReady {
		fmt.Fprintln(r.out, styles.RenderSuccess(snap.StatusLabel))
		return
	}
	fmt.Fprintln(r.out, styles.RenderError(snap.StatusLabel))
}

func (r *chatREPL) printMetrics() {
	fmt.Fprintln(r.out, TitleStyle.Render("Your Health Metrics"))
	for _, f := range r.session.Snapshot().MetricFields() {
		printField(r.out, f.Label, f.Value)
	}
}

// =============================================================================
// NON-INTERACTIVE INPUT
// =============================================================================

// plainReader reads lines from a pipe. The prompt is not printed.
type plainReader struct {
	scanner *bufio.Scanner
}

func newPlainReader(in io.Reader) *plainReader {
	return &plainReader{scanner: bufio.NewScanner(in)}
}

func (p *plainReader) Prompt(string) (string, error) {
	if p.scanner.Scan() {
		return p.scanner.Text(), nil
	}
	if err := p.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
