// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/healthnest-tui/internal/api"
	"github.com/jeranaias/healthnest-tui/internal/util"
)

// Pregnancy weeks accepted by the backend.
const (
	minPregnancyWeek = 1
	maxPregnancyWeek = 42
)

var exerciseGoals = []string{api.GoalGeneral, api.GoalWeightLoss, api.GoalMuscleGain}

// =============================================================================
// EXERCISE
// =============================================================================

func (a *app) newExerciseCommand() *cobra.Command {
	var (
		weight float64
		goal   string
	)

	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "Recommend exercises for a goal",
		Example: `  healthnest exercise --goal weight_loss
  healthnest exercise --weight 80 --goal muscle_gain`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !slices.Contains(exerciseGoals, goal) {
				return &UsageError{Reason: fmt.Sprintf("--goal must be one of %s", strings.Join(exerciseGoals, ", "))}
			}
			if !cmd.Flags().Changed("weight") {
				weight = a.cfg.Profile.Weight
			}
			if weight <= 0 {
				return &UsageError{Reason: "--weight must be positive"}
			}

			resp, err := a.client.RecommendExercise(cmd.Context(), api.ExerciseRequest{Weight: weight, Goal: goal})
			if a.jsonOut {
				return a.printJSON(cmd, resp, err)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printTitle(out, "Recommended Exercises ("+resp.Goal+")")
			for _, ex := range resp.Exercises {
				amount := ex.Duration
				if amount == "" {
					amount = ex.Sets
				}
				printField(out, ex.Name, fmt.Sprintf("%s, ~%s kcal", amount, util.FormatNumber(ex.Calories)))
			}
			printField(out, "Total", util.FormatNumber(resp.TotalCalories)+" kcal")
			return nil
		},
	}

	cmd.Flags().Float64Var(&weight, "weight", 0, "Weight in kg (default from profile)")
	cmd.Flags().StringVar(&goal, "goal", api.GoalGeneral, "Goal: "+strings.Join(exerciseGoals, ", "))
	return cmd
}

// =============================================================================
// CALORIES
// =============================================================================

func (a *app) newCaloriesCommand() *cobra.Command {
	var req api.MacrosRequest

	cmd := &cobra.Command{
		Use:     "calories",
		Short:   "Predict calories from macronutrients",
		Example: `  healthnest calories --protein 30 --carbs 50 --fat 10`,
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.Protein < 0 || req.Carbs < 0 || req.Fat < 0 {
				return &UsageError{Reason: "macronutrient grams cannot be negative"}
			}

			resp, err := a.client.PredictCalories(cmd.Context(), req)
			if a.jsonOut {
				return a.printJSON(cmd, resp, err)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printTitle(out, "Predicted Calories")
			printField(out, "Protein", util.FormatNumber(resp.ProteinG)+" g")
			printField(out, "Carbs", util.FormatNumber(resp.CarbsG)+" g")
			printField(out, "Fat", util.FormatNumber(resp.FatG)+" g")
			printField(out, "Calories", util.FormatNumber(resp.PredictedCalories)+" kcal")
			return nil
		},
	}

	fs := cmd.Flags()
	fs.Float64Var(&req.Protein, "protein", 0, "Protein in grams")
	fs.Float64Var(&req.Carbs, "carbs", 0, "Carbohydrates in grams")
	fs.Float64Var(&req.Fat, "fat", 0, "Fat in grams")
	cmd.MarkFlagsOneRequired("protein", "carbs", "fat")
	return cmd
}

// =============================================================================
// PREGNANCY
// =============================================================================

func (a *app) newPregnancyCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "pregnancy <week>",
		Short:   "Show week-by-week pregnancy information",
		Example: `  healthnest pregnancy 12`,
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := strconv.Atoi(args[0])
			if err != nil || week < minPregnancyWeek || week > maxPregnancyWeek {
				return &UsageError{Reason: fmt.Sprintf("week must be a number from %d to %d", minPregnancyWeek, maxPregnancyWeek)}
			}

			resp, err := a.client.PregnancyInfo(cmd.Context(), week)
			if a.jsonOut {
				return a.printJSON(cmd, resp, err)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printTitle(out, fmt.Sprintf("Week %d (trimester %d)", resp.Week, resp.Trimester))
			for _, section := range []struct{ title, text string }{
				{"Baby", resp.BabyDevelopment},
				{"Mother", resp.MotherChanges},
				{"Advice", resp.Advice},
			} {
				if section.text == "" {
					continue
				}
				fmt.Fprintln(out, SectionStyle.Render(section.title))
				printIndented(out, section.text)
			}
			return nil
		},
	}
}
