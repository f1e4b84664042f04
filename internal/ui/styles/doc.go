// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the HealthNest terminal
dashboard.

All colors use Lip Gloss AdaptiveColor so they follow the terminal background.

# Color System (colors.go)

  - Emerald - Brand color, focus and user highlights
  - Teal    - Bot accents and metric values
  - Green   - Ready status
  - Amber   - Analyzing and warnings
  - Rose    - Errors and offline status

# Theme System (theme.go)

	theme := styles.NewTheme(cfg.UI.Theme) // "auto", "dark" or "light"
	theme.SetSize(width, height)
	if theme.GetLayoutMode() == styles.LayoutNarrow {
		// stack panels vertically
	}

# Animation System (animations.go)

	s := spinner.New(spinner.WithSpinner(styles.DotsSpinner.Spinner()))
*/
package styles
