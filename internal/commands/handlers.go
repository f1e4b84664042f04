// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/healthnest-tui/internal/dashboard"
	"github.com/jeranaias/healthnest-tui/internal/model"
	"github.com/jeranaias/healthnest-tui/internal/session"
)

// =============================================================================
// DEFAULT REGISTRY
// =============================================================================

// Default returns a registry binding the dashboard events to ctrl.
// quick is the list of predefined questions reachable through /quick.
func Default(ctrl *dashboard.Controller, quick []string) *Registry {
	r := NewRegistry()
	h := &handlers{ctrl: ctrl, quick: quick}

	r.Register(&Command{
		Name:        EventLoad,
		Aliases:     []string{"/status"},
		Description: "Check whether the backend is reachable",
		Usage:       "/status",
		Handler:     h.load,
	})

	r.Register(&Command{
		Name:        EventUpdateProfile,
		Aliases:     []string{"/profile", "/p"},
		Description: "Update the profile and analyze it",
		Usage:       "/profile [age=N] [gender=G] [weight=KG] [height=CM] [activity=LEVEL]",
		Args: []ArgDef{
			{Name: "age", Description: "Age in years"},
			{Name: "gender", Description: "Gender", Values: model.Genders},
			{Name: "weight", Description: "Weight in kg"},
			{Name: "height", Description: "Height in cm"},
			{Name: "activity", Description: "Activity level", Values: model.ActivityLevels},
		},
		Handler: h.updateProfile,
	})

	r.Register(&Command{
		Name:        EventSendMessage,
		Description: "Send a chat message",
		Handler:     h.sendMessage,
		Hidden:      true,
	})

	r.Register(&Command{
		Name:        EventAskQuestion,
		Aliases:     []string{"/ask"},
		Description: "Ask a question",
		Usage:       "/ask <question>",
		Handler:     h.askQuestion,
	})

	r.Register(&Command{
		Name:        EventQuick,
		Aliases:     []string{"/quick"},
		Description: "Ask one of the quick questions",
		Usage:       fmt.Sprintf("/quick <1-%d>", len(quick)),
		Handler:     h.quickQuestion,
	})

	r.Register(&Command{
		Name:        EventHelp,
		Aliases:     []string{"/help", "/h", "/?"},
		Description: "Show available commands",
		Usage:       "/help",
		Handler: func(context.Context, *session.Session, Input) (Result, error) {
			return Result{Reply: Help(r, quick)}, nil
		},
	})

	r.Register(&Command{
		Name:        EventQuit,
		Aliases:     []string{"/quit", "/q", "/exit"},
		Description: "Exit",
		Usage:       "/quit",
		Handler: func(context.Context, *session.Session, Input) (Result, error) {
			return Result{Quit: true}, nil
		},
	})

	return r
}

// =============================================================================
// HANDLER IMPLEMENTATIONS
// =============================================================================

type handlers struct {
	ctrl  *dashboard.Controller
	quick []string
}

func (h *handlers) load(ctx context.Context, s *session.Session, _ Input) (Result, error) {
	st, err := h.ctrl.CheckHealth(ctx, s)
	return Result{Status: st}, err
}

func (h *handlers) updateProfile(ctx context.Context, s *session.Session, in Input) (Result, error) {
	var form model.FormValues
	if in.Form != nil {
		form = *in.Form
	} else {
		var err error
		if form, err = ProfileForm(s.Profile(), in.Args); err != nil {
			return Result{}, err
		}
	}

	resp, err := h.ctrl.SubmitProfile(ctx, s, form)
	st, _ := s.Status()
	return Result{Status: st, Analysis: resp}, err
}

func (h *handlers) sendMessage(ctx context.Context, s *session.Session, in Input) (Result, error) {
	reply, err := h.ctrl.SendChatMessage(ctx, s, in.Text)
	return Result{Reply: reply}, err
}

func (h *handlers) askQuestion(ctx context.Context, s *session.Session, in Input) (Result, error) {
	reply, err := h.ctrl.AskQuestion(ctx, s, in.Text)
	return Result{Reply: reply}, err
}

func (h *handlers) quickQuestion(ctx context.Context, s *session.Session, in Input) (Result, error) {
	q, err := QuickQuestion(h.quick, strings.TrimSpace(in.Text))
	if err != nil {
		return Result{}, err
	}
	reply, err := h.ctrl.AskQuestion(ctx, s, q)
	return Result{Reply: reply}, err
}

// =============================================================================
// ARGUMENT HELPERS
// =============================================================================

// ProfileForm overlays key=value arguments on the current profile.
// Keys are the profile field names; unknown keys are a usage error.
func ProfileForm(current model.Profile, args []string) (model.FormValues, error) {
	form := current.FormValues()
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return form, fmt.Errorf("%w: expected key=value, got %q", ErrUsage, arg)
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "age":
			form.Age = value
		case "gender":
			form.Gender = value
		case "weight":
			form.Weight = value
		case "height":
			form.Height = value
		case "activity":
			form.Activity = value
		default:
			return form, fmt.Errorf("%w: unknown profile field %q", ErrUsage, key)
		}
	}
	return form, nil
}

// QuickQuestion returns the question at the 1-based position arg.
func QuickQuestion(quick []string, arg string) (string, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(quick) {
		return "", fmt.Errorf("%w: pick a quick question between 1 and %d", ErrUsage, len(quick))
	}
	return quick[n-1], nil
}

// Help renders the visible commands and the quick question list.
func Help(r *Registry, quick []string) string {
	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, cmd := range r.All() {
		if cmd.Hidden || len(cmd.Aliases) == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %-28s %s\n", cmd.Usage, cmd.Description)
	}
	if len(quick) > 0 {
		b.WriteString("\nQuick questions:\n")
		for i, q := range quick {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, q)
		}
	}
	b.WriteString("\nAnything else is sent as a chat message.")
	return b.String()
}
