package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/tourneybot/tourneybot/internal/discord"
	"github.com/tourneybot/tourneybot/internal/model"
	"github.com/tourneybot/tourneybot/internal/service"
)

// NewCreateMatchHandler creates a match, optionally bound to a Toornament
// match ID. Pass "0" as match_id for an unbound match open to every team.
func NewCreateMatchHandler(deps HandlerDeps) discord.HandlerFunc {
	log := deps.Logger.With("handler", "create_match")

	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) != 4 {
			ev.Reply("Usage: `!create match [alias] [match_name] [password] [match_id]`")
			return
		}
		alias, matchName, password, matchID := ev.Args[0], ev.Args[1], ev.Args[2], ev.Args[3]
		if matchID == "0" {
			matchID = ""
		}
		defer deps.lockStore()()

		tournament, ok := deps.loadTournament(ctx, ev, alias)
		if !ok {
			return
		}

		match, err := deps.Matches.Create(ctx, tournament, matchID, matchName, ev.AuthorTag(), password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrMatchExists):
				ev.Reply("Match name already exists")
			case errors.Is(err, service.ErrMatchNotFound):
				ev.Reply(fmt.Sprintf("Match id `%s` not found", matchID))
			default:
				log.ErrorContext(ctx, "Failed to create match", "alias", alias, "match", matchName, "error", err)
				ev.Reply("Could not fetch match data from Toornament, please try again later.")
			}
			return
		}

		if !deps.saveTournament(ctx, ev, tournament) {
			return
		}
		ev.Reply(fmt.Sprintf("Match `%s` successfully created.", matchName))
		viewerTeam := tournament.FindTeamByCaptain(ev.AuthorTag())
		ev.DMEmbed(discord.MatchEmbed(tournament, match, viewerTeam))
	}
}

// NewRemoveMatchHandler deletes a match from a tournament.
func NewRemoveMatchHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) != 2 {
			ev.Reply("Usage: `!remove match [alias] [match_name]`")
			return
		}
		defer deps.lockStore()()

		tournament, ok := deps.loadTournament(ctx, ev, ev.Args[0])
		if !ok {
			return
		}
		if _, err := deps.Matches.Remove(tournament, ev.Args[1]); err != nil {
			ev.Reply("Match not found")
			return
		}
		if !deps.saveTournament(ctx, ev, tournament) {
			return
		}
		ev.Reply(fmt.Sprintf("Match `%s` successfully removed.", ev.Args[1]))
	}
}

// NewStartMatchHandler moves a match to ONGOING and notifies the linked
// channels and the captains of joined teams.
func NewStartMatchHandler(deps HandlerDeps) discord.HandlerFunc {
	log := deps.Logger.With("handler", "start_match")

	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) != 2 {
			ev.Reply("Usage: `!start match [alias] [match_name]`")
			return
		}
		alias, matchName := ev.Args[0], ev.Args[1]
		defer deps.lockStore()()

		tournament, ok := deps.loadTournament(ctx, ev, alias)
		if !ok {
			return
		}
		match, err := deps.Matches.Start(tournament, matchName)
		if err != nil {
			if errors.Is(err, service.ErrMatchNotFound) {
				ev.Reply("Match not found")
				return
			}
			existing := tournament.FindMatchByName(matchName)
			ev.Reply(fmt.Sprintf("Can't start match with status `%s`", existing.Status))
			return
		}

		for _, channel := range tournament.Channels {
			channelID, found := discord.FindChannel(ev.Session, channel)
			if !found {
				log.WarnContext(ctx, "Linked channel not found", "channel", channel)
				continue
			}
			text := fmt.Sprintf("The match `%s` will start in ~30 seconds!", matchName)
			if _, err := ev.Session.ChannelMessageSend(channelID, text); err != nil {
				log.WarnContext(ctx, "Failed to notify channel", "channel", channel, "error", err)
			}
		}

		for _, teamID := range match.TeamsJoined {
			team := tournament.FindTeamByID(teamID)
			if team == nil || team.Captain == "" {
				continue
			}
			notifyCaptain(ev.Session, log, team.Captain,
				fmt.Sprintf("The match `%s` for the team `%s` will start in ~30 seconds!", matchName, team.Name))
		}

		if !deps.saveTournament(ctx, ev, tournament) {
			return
		}
		ev.Reply(fmt.Sprintf("Match `%s` status set to ONGOING.", matchName))
	}
}

// NewEndMatchHandler completes a match, locking its score submissions.
// "--force" ends the match regardless of its status.
func NewEndMatchHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		args, force := splitForceFlag(ev.Args)
		if len(args) != 2 {
			ev.Reply("Usage: `!end match [alias] [match_name] [--force]`")
			return
		}
		alias, matchName := args[0], args[1]
		defer deps.lockStore()()

		tournament, ok := deps.loadTournament(ctx, ev, alias)
		if !ok {
			return
		}
		if _, err := deps.Matches.End(tournament, matchName, force); err != nil {
			if errors.Is(err, service.ErrMatchNotFound) {
				ev.Reply("Match not found")
				return
			}
			existing := tournament.FindMatchByName(matchName)
			ev.Reply(fmt.Sprintf("Can't end match with status `%s`", existing.Status))
			return
		}
		if !deps.saveTournament(ctx, ev, tournament) {
			return
		}
		ev.Reply(fmt.Sprintf("Match `%s` status set to COMPLETED.", matchName))
	}
}

// NewSetMatchStatusHandler forces a match into an arbitrary status.
func NewSetMatchStatusHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) != 3 {
			ev.Reply("Usage: `!set match status [alias] [match_name] [status]`")
			return
		}
		alias, matchName, status := ev.Args[0], ev.Args[1], ev.Args[2]
		defer deps.lockStore()()

		tournament, ok := deps.loadTournament(ctx, ev, alias)
		if !ok {
			return
		}
		if _, err := deps.Matches.SetStatus(tournament, matchName, status); err != nil {
			if errors.Is(err, service.ErrMatchNotFound) {
				ev.Reply("Match not found")
				return
			}
			ev.Reply(fmt.Sprintf("Match status `%s` doesn't exist. Choices are: %s",
				status, strings.Join(model.MatchStatusNames(), ", ")))
			return
		}
		if !deps.saveTournament(ctx, ev, tournament) {
			return
		}
		ev.Reply(fmt.Sprintf("Match `%s` status set to `%s`.", matchName, tournament.FindMatchByName(matchName).Status))
	}
}

// NewJoinHandler marks the sender's team as ready for a match.
func NewJoinHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) != 1 {
			ev.Reply("Usage: `!join [match_name]`")
			return
		}
		matchName := ev.Args[0]
		defer deps.lockStore()()

		tournament, team := deps.captainTeam(ctx, ev)
		if team == nil {
			ev.Reply("You are not a team captain.")
			return
		}

		match, err := deps.Matches.Join(tournament, matchName, team)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrMatchNotFound):
				ev.Reply("Match not found")
			case errors.Is(err, service.ErrTeamNotRegistered):
				existing := tournament.FindMatchByName(matchName)
				ev.Reply(fmt.Sprintf(
					"You are not authorized to join this match (ﾉ°□°)ﾉ ﾐ ┻━┻ !! "+
						"Team `%s` is not in this match group `%s`", team.Name, existing.GroupName))
			case errors.Is(err, service.ErrAlreadyJoined):
				ev.Reply(fmt.Sprintf("Team `%s` has already joined this match", team.Name))
			default:
				existing := tournament.FindMatchByName(matchName)
				ev.Reply(fmt.Sprintf("Can't join match with status `%s`", existing.Status))
			}
			return
		}

		if !deps.saveTournament(ctx, ev, tournament) {
			return
		}
		ev.Reply(fmt.Sprintf("Team `%s` is now ready for the match %s!", team.Name, match.Name))
		ev.DMEmbed(discord.MatchEmbed(tournament, match, team))
	}
}

// NewLeaveHandler withdraws the sender's team from a pending match.
func NewLeaveHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) != 1 {
			ev.Reply("Usage: `!leave [match_name]`")
			return
		}
		matchName := ev.Args[0]
		defer deps.lockStore()()

		tournament, team := deps.captainTeam(ctx, ev)
		if team == nil {
			ev.Reply("You are not a team captain.")
			return
		}

		match, err := deps.Matches.Leave(tournament, matchName, team)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrMatchNotFound):
				ev.Reply("Match not found")
			case errors.Is(err, service.ErrNotJoined):
				ev.Reply(fmt.Sprintf("Team `%s` is not in this match", team.Name))
			default:
				existing := tournament.FindMatchByName(matchName)
				ev.Reply(fmt.Sprintf("Can't leave match with status `%s`", existing.Status))
			}
			return
		}

		if !deps.saveTournament(ctx, ev, tournament) {
			return
		}
		ev.Reply(fmt.Sprintf("Team `%s` has left the match `%s`!", team.Name, match.Name))
	}
}

// NewShowMatchHandler displays one match card in private.
func NewShowMatchHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) != 2 {
			ev.Reply("Usage: `!show match [alias] [match_name]`")
			return
		}
		tournament, ok := deps.loadTournament(ctx, ev, ev.Args[0])
		if !ok {
			return
		}
		match := tournament.FindMatchByName(ev.Args[1])
		if match == nil {
			ev.Reply(fmt.Sprintf("Match `%s` not found in tournament `%s`", ev.Args[1], tournament.Alias))
			return
		}
		viewerTeam := tournament.FindTeamByCaptain(ev.AuthorTag())
		ev.DMEmbed(discord.MatchEmbed(tournament, match, viewerTeam))
	}
}

// NewShowMatchesHandler lists the matches of a tournament.
func NewShowMatchesHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) != 1 {
			ev.Reply("Usage: `!show matches [alias]`")
			return
		}
		tournament, ok := deps.loadTournament(ctx, ev, ev.Args[0])
		if !ok {
			return
		}

		team := tournament.FindTeamByCaptain(ev.AuthorTag())
		fields := make([]*discordgo.MessageEmbedField, 0, len(tournament.Matches))
		for _, match := range tournament.Matches {
			joined := team != nil && match.HasJoined(team.ID)
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:  match.Name,
				Value: discord.MatchSummary(match, joined),
			})
		}
		ev.ReplyEmbed(&discordgo.MessageEmbed{
			Title:  tournament.Alias,
			Color:  discord.ColorGrey,
			Fields: fields,
		})
	}
}

func splitForceFlag(args []string) ([]string, bool) {
	out := make([]string, 0, len(args))
	force := false
	for _, arg := range args {
		if arg == "--force" || arg == "-f" {
			force = true
			continue
		}
		out = append(out, arg)
	}
	return out, force
}

func notifyCaptain(s *discordgo.Session, log *slog.Logger, captainTag, text string) {
	_, member, ok := discord.FindMember(s, captainTag)
	if !ok {
		log.Warn("Captain not found on Discord", "user", captainTag)
		return
	}
	channel, err := s.UserChannelCreate(member.User.ID)
	if err != nil {
		log.Warn("Failed to open DM channel", "user", captainTag, "error", err)
		return
	}
	if _, err := s.ChannelMessageSend(channel.ID, text); err != nil {
		log.Warn("Failed to DM captain", "user", captainTag, "error", err)
	}
}
