// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jeranaias/healthnest-tui/internal/api"
	"github.com/jeranaias/healthnest-tui/internal/model"
	"github.com/jeranaias/healthnest-tui/internal/session"
)

// =============================================================================
// EVENTS
// =============================================================================

// Dashboard events dispatched by every front end.
const (
	EventLoad          = "load"
	EventUpdateProfile = "update-profile"
	EventSendMessage   = "send-message"
	EventAskQuestion   = "ask-question"
	EventQuick         = "quick"
	EventHelp          = "help"
	EventQuit          = "quit"
)

// Dispatch errors.
var (
	ErrUnknownEvent = errors.New("unknown event")
	ErrUsage        = errors.New("invalid usage")
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Handler executes one event against a session.
type Handler func(ctx context.Context, s *session.Session, in Input) (Result, error)

// Command binds an event name to its handler.
type Command struct {
	// Name is the event name (e.g., "update-profile")
	Name string

	// Aliases are slash forms typed in the chat input (e.g., "/profile")
	Aliases []string

	// Description is shown in help and completion
	Description string

	// Usage shows argument syntax (e.g., "/quick <1-5>")
	Usage string

	// Args defines argument completion for the slash form
	Args []ArgDef

	// Handler is the function that executes the command
	Handler Handler

	// Hidden commands don't appear in help
	Hidden bool
}

// ArgDef describes a key=value argument of a slash command.
type ArgDef struct {
	Name        string
	Description string

	// Values for enumerated arguments
	Values []string
}

// Input carries the event payload. Front ends fill the fields they have.
type Input struct {
	// Text is the message or question
	Text string

	// Args are the slash command arguments
	Args []string

	// Form holds raw profile form values; nil means build from Args
	Form *model.FormValues
}

// Result reports what a handler did besides mutating the session.
type Result struct {
	Event    string
	Status   session.Status
	Reply    string
	Analysis *api.AnalysisResponse

	// Quit asks the front end to exit
	Quit bool
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) *Command {
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns all registered commands sorted by name.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// Dispatch runs the handler registered for event.
func (r *Registry) Dispatch(ctx context.Context, s *session.Session, event string, in Input) (Result, error) {
	cmd := r.Get(event)
	if cmd == nil || cmd.Handler == nil {
		return Result{Event: event}, fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
	s.Touch()

	res, err := cmd.Handler(ctx, s, in)
	res.Event = cmd.Name
	return res, err
}

// Execute parses a line typed into a chat input. Slash commands dispatch
// their event; anything else is sent as a chat message.
func (r *Registry) Execute(ctx context.Context, s *session.Session, line string) (Result, error) {
	l := ParseLine(line)
	if !l.IsCommand() {
		return r.Dispatch(ctx, s, EventSendMessage, Input{Text: l.Text})
	}
	if r.aliases[l.Name] == nil {
		return Result{}, fmt.Errorf("%w: %q (try /help)", ErrUnknownEvent, l.Name)
	}
	return r.Dispatch(ctx, s, l.Name, Input{Text: l.Rest, Args: l.Args})
}
