package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/tourneybot/tourneybot/internal/discord"
)

// NewHelpHandler lists the available commands in private, split into
// general, linked-captain, and admin sections.
func NewHelpHandler(deps HandlerDeps, router *discord.Router) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		var general, linked, admin []discord.Command
		for _, cmd := range router.Commands() {
			switch cmd.Section {
			case discord.SectionAdmin:
				admin = append(admin, cmd)
			case discord.SectionLinked:
				linked = append(linked, cmd)
			default:
				general = append(general, cmd)
			}
		}

		prefix := deps.Config.Discord.CommandPrefix

		ev.DM("```General Commands```" +
			"*Bot available commands.\n" +
			"Note: The **[alias]** parameter is the `Tournament Alias` field that can " +
			"be found in the tournaments description. To see available tournaments, " +
			"use `" + prefix + "show tournaments`*\n\n" +
			formatCommands(prefix, general))

		ev.DM("```Linked Captains Commands```" +
			"*Commands available to captains linked to a team*\n\n" +
			formatCommands(prefix, linked))

		if deps.isTournamentAdmin(ctx, ev) {
			ev.DM("```Admin Commands```\n" + formatCommands(prefix, admin))
		}
	}
}

func formatCommands(prefix string, cmds []discord.Command) string {
	lines := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		name := cmd.Name
		if cmd.Args != "" {
			name += " " + cmd.Args
		}
		lines = append(lines, fmt.Sprintf("**%s%s**\n%s", prefix, name, cmd.Description))
	}
	return strings.Join(lines, "\n\n")
}
