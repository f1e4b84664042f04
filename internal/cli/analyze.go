// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jeranaias/healthnest-tui/internal/commands"
	"github.com/jeranaias/healthnest-tui/internal/dashboard"
	"github.com/jeranaias/healthnest-tui/internal/model"
	"github.com/jeranaias/healthnest-tui/internal/session"
	"github.com/jeranaias/healthnest-tui/internal/ui/components"
	"github.com/jeranaias/healthnest-tui/internal/ui/styles"
)

// =============================================================================
// PROFILE FLAGS
// =============================================================================

// profileFlags are the profile fields accepted on the command line. Values
// stay strings so the profile parser reports bad input per field.
type profileFlags struct {
	age      string
	gender   string
	weight   string
	height   string
	activity string
}

func (pf *profileFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&pf.age, "age", "", "Age in years (1-150)")
	fs.StringVar(&pf.gender, "gender", "", "Gender: "+strings.Join(model.Genders, ", "))
	fs.StringVar(&pf.weight, "weight", "", "Weight in kg")
	fs.StringVar(&pf.height, "height", "", "Height in cm")
	fs.StringVar(&pf.activity, "activity", "", "Activity level: "+strings.Join(model.ActivityLevels, ", "))
}

// apply overlays the flags that were set onto base.
func (pf *profileFlags) apply(fs *pflag.FlagSet, base model.FormValues) model.FormValues {
	if fs.Changed("age") {
		base.Age = pf.age
	}
	if fs.Changed("gender") {
		base.Gender = pf.gender
	}
	if fs.Changed("weight") {
		base.Weight = pf.weight
	}
	if fs.Changed("height") {
		base.Height = pf.height
	}
	if fs.Changed("activity") {
		base.Activity = pf.activity
	}
	return base
}

// printValidation lists the fields the profile parser rejected.
func printValidation(w io.Writer, err error) {
	var verrs model.ValidationErrors
	if !errors.As(err, &verrs) {
		return
	}
	fmt.Fprintln(w, styles.RenderError("Invalid profile:"))
	for _, fe := range verrs {
		fmt.Fprintf(w, "  --%s: %s\n", fe.Field, fe.Message)
	}
}

// =============================================================================
// ANALYZE
// =============================================================================

// AnalysisData is the --json payload of the analyze command.
type AnalysisData struct {
	Profile         model.Profile          `json:"profile"`
	Metrics         *model.Metrics         `json:"metrics,omitempty"`
	Recommendations []model.Recommendation `json:"recommendations,omitempty"`
}

func (a *app) newAnalyzeCommand() *cobra.Command {
	var pf profileFlags

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a profile and print health metrics",
		Long: `Send a profile to the backend and print the computed metrics and
recommendations. Fields not given on the command line come from the
configured profile.`,
		Example: `  healthnest analyze --age 30 --gender female --weight 62 --height 168
  healthnest analyze --activity active --json`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form := pf.apply(cmd.Flags(), a.cfg.Profile.FormValues())
			return a.runAnalyze(cmd, form)
		},
	}
	pf.register(cmd.Flags())
	return cmd
}

func (a *app) runAnalyze(cmd *cobra.Command, form model.FormValues) error {
	s := session.New(a.cfg.Profile)
	res, err := a.registry().Dispatch(cmd.Context(), s, commands.EventUpdateProfile, commands.Input{Form: &form})

	if a.jsonOut {
		data := AnalysisData{Profile: s.Profile()}
		if res.Analysis != nil {
			data.Metrics = res.Analysis.Metrics
			data.Recommendations = res.Analysis.Recommendations
		}
		return a.printJSON(cmd, data, err)
	}

	out := cmd.OutOrStdout()
	if err != nil {
		var verrs model.ValidationErrors
		if errors.As(err, &verrs) {
			printValidation(out, err)
			return silent(err)
		}
		return fmt.Errorf("analysis failed: %w", err)
	}

	printTitle(out, "Your Health Metrics")
	for _, f := range s.Snapshot().MetricFields() {
		printField(out, f.Label, f.Value)
	}

	if recs := res.Analysis.Recommendations; len(recs) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, SectionStyle.Render(dashboard.SummaryLabel))
		for _, rec := range recs {
			fmt.Fprintf(out, "  %s %s\n", SectionStyle.Render(rec.Type+":"), rec.Message)
		}
	}
	return nil
}

// =============================================================================
// ASK
// =============================================================================

// AskData is the --json payload of the ask command.
type AskData struct {
	Question string `json:"question"`
	Reply    string `json:"reply"`
}

func (a *app) newAskCommand() *cobra.Command {
	var (
		pf    profileFlags
		quick int
	)

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the assistant one question",
		Long: `Send one question to the assistant with your profile as context and
print the reply. --quick N asks the Nth configured quick question.`,
		Example: `  healthnest ask "How much water should I drink?"
  healthnest ask --quick 1
  healthnest ask --age 45 "Is my step goal realistic?"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if cmd.Flags().Changed("quick") {
				if question != "" {
					return &UsageError{Reason: "give either a question or --quick, not both"}
				}
				q, err := commands.QuickQuestion(a.cfg.UI.QuickQuestions, fmt.Sprint(quick))
				if err != nil {
					return &UsageError{Reason: err.Error()}
				}
				question = q
			}
			if question == "" {
				return &UsageError{Reason: "a question is required"}
			}

			form := pf.apply(cmd.Flags(), a.cfg.Profile.FormValues())
			profile, err := model.ParseProfile(form)
			if err != nil {
				printValidation(cmd.ErrOrStderr(), err)
				return silent(err)
			}
			return a.runAsk(cmd, profile, question)
		},
	}
	pf.register(cmd.Flags())
	cmd.Flags().IntVarP(&quick, "quick", "q", 0, "Ask quick question N (see 'healthnest config get ui.quick_questions')")
	return cmd
}

func (a *app) runAsk(cmd *cobra.Command, profile model.Profile, question string) error {
	s := session.New(profile)
	res, err := a.registry().Dispatch(cmd.Context(), s, commands.EventAskQuestion, commands.Input{Text: question})

	// A missing reply still produces the fallback text.
	if errors.Is(err, dashboard.ErrNoReply) {
		err = nil
	}

	if a.jsonOut {
		return a.printJSON(cmd, AskData{Question: question, Reply: res.Reply}, err)
	}
	if err != nil {
		return fmt.Errorf("no reply: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, a.renderReply(out, res.Reply))
	return nil
}

// renderReply renders bot text through glamour when writing to a terminal
// with markdown enabled.
func (a *app) renderReply(w io.Writer, text string) string {
	if !a.cfg.UI.Markdown || !isTerminalWriter(w) {
		return text
	}
	r, err := components.NewMarkdownRenderer(terminalWidth(w) - 4)
	if err != nil {
		a.logger.Debug("markdown renderer unavailable", zap.Error(err))
		return text
	}
	rendered, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(rendered, "\n")
}
