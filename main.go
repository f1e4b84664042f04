// HealthNest - a terminal and web dashboard for the HealthNest health assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"os"

	"github.com/jeranaias/healthnest-tui/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
