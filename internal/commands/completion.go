// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"sort"
	"strings"
)

// =============================================================================
// COMPLETION TYPE
// =============================================================================

// Completion represents a completion suggestion.
type Completion struct {
	Value       string
	Display     string
	Description string
	Score       int
}

// =============================================================================
// COMPLETER
// =============================================================================

// Completer handles tab completion for slash commands and their arguments.
type Completer struct {
	registry *Registry
}

// NewCompleter creates a new completer with the given registry.
func NewCompleter(registry *Registry) *Completer {
	return &Completer{registry: registry}
}

// Complete returns completions for the input typed so far.
func (c *Completer) Complete(input string) []Completion {
	if !strings.HasPrefix(strings.TrimLeft(input, " "), "/") {
		return nil
	}
	input = strings.TrimLeft(input, " ")

	parts := Fields(input)
	if len(parts) == 1 && !strings.HasSuffix(input, " ") {
		return c.completeCommands(parts[0])
	}

	cmd := c.registry.Get(parts[0])
	if cmd == nil || len(cmd.Args) == 0 {
		return nil
	}

	partial := ""
	if !strings.HasSuffix(input, " ") {
		partial = parts[len(parts)-1]
	}
	return c.completeArg(cmd, partial)
}

// Lines returns whole-line completions for line editors.
func (c *Completer) Lines(line string) []string {
	completions := c.Complete(line)
	if len(completions) == 0 {
		return nil
	}

	prefix := ""
	if idx := strings.LastIndex(line, " "); idx >= 0 {
		prefix = line[:idx+1]
	}

	out := make([]string, 0, len(completions))
	for _, comp := range completions {
		out = append(out, prefix+comp.Value)
	}
	return out
}

// =============================================================================
// COMMAND COMPLETION
// =============================================================================

func (c *Completer) completeCommands(partial string) []Completion {
	var completions []Completion
	partial = strings.ToLower(partial)

	for _, cmd := range c.registry.All() {
		if cmd.Hidden {
			continue
		}
		for i, alias := range cmd.Aliases {
			if !strings.HasPrefix(alias, partial) {
				continue
			}
			score := calculateScore(alias, partial)
			display := alias
			if i > 0 {
				// Slightly lower score for secondary aliases
				score -= 10
				display = alias + " -> " + cmd.Aliases[0]
			}
			completions = append(completions, Completion{
				Value:       alias,
				Display:     display,
				Description: cmd.Description,
				Score:       score,
			})
		}
	}

	sortCompletions(completions)
	return completions
}

// =============================================================================
// ARGUMENT COMPLETION
// =============================================================================

// completeArg completes "key=" names and the values of enumerated keys.
func (c *Completer) completeArg(cmd *Command, partial string) []Completion {
	var completions []Completion

	key, value, hasValue := strings.Cut(partial, "=")
	for _, arg := range cmd.Args {
		if !hasValue {
			if strings.HasPrefix(arg.Name, strings.ToLower(key)) {
				completions = append(completions, Completion{
					Value:       arg.Name + "=",
					Display:     arg.Name + "=",
					Description: arg.Description,
					Score:       calculateScore(arg.Name, key),
				})
			}
			continue
		}
		if arg.Name != strings.ToLower(key) {
			continue
		}
		for _, v := range arg.Values {
			if strings.HasPrefix(v, strings.ToLower(value)) {
				completions = append(completions, Completion{
					Value:       arg.Name + "=" + v,
					Display:     v,
					Description: arg.Description,
					Score:       calculateScore(v, value),
				})
			}
		}
	}

	sortCompletions(completions)
	return completions
}

// =============================================================================
// SCORING
// =============================================================================

// calculateScore calculates a match score for completion ranking.
// Higher score = better match.
func calculateScore(value, partial string) int {
	value = strings.ToLower(value)
	partial = strings.ToLower(partial)

	score := 100

	if value == partial {
		return score + 100
	}

	if strings.HasPrefix(value, partial) {
		score += 50
		// Bonus for shorter completions
		score += 20 - len(value)
	}

	score -= len(value) / 2

	return score
}

// sortCompletions sorts completions by score (descending), then alphabetically.
func sortCompletions(completions []Completion) {
	sort.Slice(completions, func(i, j int) bool {
		if completions[i].Score != completions[j].Score {
			return completions[i].Score > completions[j].Score
		}
		return completions[i].Value < completions[j].Value
	})
}
