// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/palash-droid/folio/internal/content"
	"github.com/palash-droid/folio/internal/output"
)

// Version is shown in the welcome banner.
const Version = "1.0.0"

// Welcome returns the banner a new session starts with.
func Welcome(prof *content.Profile) []output.Record {
	owner := "My"
	if prof != nil && prof.About.Name != "" {
		owner = prof.About.Name + "'s"
	}
	return []output.Record{
		output.Success(fmt.Sprintf("Welcome to %s Portfolio Terminal v%s", owner, Version)),
		output.Info(`Type "help" for commands, "ask <question>" to chat with AI, or "simple" for GUI.`),
	}
}
