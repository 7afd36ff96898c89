package handlers

import (
	"context"
	"slices"
	"strings"

	"github.com/tourneybot/tourneybot/internal/discord"
)

// AdminOnly restricts a command to bot admins and tournament administrators.
func AdminOnly(deps HandlerDeps) discord.Middleware {
	return func(next discord.HandlerFunc) discord.HandlerFunc {
		return func(ctx context.Context, ev *discord.Event) {
			if !deps.isTournamentAdmin(ctx, ev) {
				deps.Logger.WarnContext(ctx, "Unauthorized admin command", "user", ev.AuthorTag())
				ev.Reply("You are not allowed to perform this action")
				return
			}
			next(ctx, ev)
		}
	}
}

// PrivateMessageOnly restricts a command to direct messages.
func PrivateMessageOnly(deps HandlerDeps) discord.Middleware {
	return func(next discord.HandlerFunc) discord.HandlerFunc {
		return func(ctx context.Context, ev *discord.Event) {
			if !ev.IsDM() {
				ev.Reply("Please use this command in private message.")
				return
			}
			next(ctx, ev)
		}
	}
}

// TournamentChannelOnly restricts a command to direct messages or the
// channels linked to the sender's tournament. Tournaments without linked
// channels accept the command anywhere.
func TournamentChannelOnly(deps HandlerDeps) discord.Middleware {
	return func(next discord.HandlerFunc) discord.HandlerFunc {
		return func(ctx context.Context, ev *discord.Event) {
			if ev.IsDM() {
				next(ctx, ev)
				return
			}

			tournament, _ := deps.captainTeam(ctx, ev)
			if tournament == nil || len(tournament.Channels) == 0 {
				next(ctx, ev)
				return
			}

			channel := ev.ChannelName()
			if slices.ContainsFunc(tournament.Channels, func(c string) bool {
				return strings.EqualFold(c, channel)
			}) {
				next(ctx, ev)
				return
			}

			ev.Reply("Please use this command in private or in the tournament " +
				"assigned bot channels: " + strings.Join(tournament.Channels, " "))
		}
	}
}
