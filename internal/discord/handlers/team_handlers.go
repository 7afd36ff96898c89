package handlers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/tourneybot/tourneybot/internal/discord"
	"github.com/tourneybot/tourneybot/internal/model"
)

// teamsPerPage bounds the card size when listing registrations.
const teamsPerPage = 100

// NewLinkHandler links the sender as the captain of a team.
func NewLinkHandler(deps HandlerDeps) discord.HandlerFunc {
	log := deps.Logger.With("handler", "link")

	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) < 2 {
			ev.Reply("Usage: `!link [alias] [team_name]`")
			return
		}
		alias, teamName := ev.Args[0], ev.ArgsFrom(1)
		defer deps.lockStore()()

		linkedTournament, linkedTeam := deps.captainTeam(ctx, ev)
		if linkedTeam != nil {
			if linkedTeam.Name == teamName {
				ev.Reply("You are already linked to this team")
				return
			}
			ev.Reply(fmt.Sprintf(
				"You can't be the captain of more than one team.\n"+
					"You are currently the captain of the team `%s` for the tournament %s",
				linkedTeam.Name, linkedTournament.Info.Name))
			return
		}

		tournament, ok := deps.loadTournament(ctx, ev, alias)
		if !ok {
			return
		}

		team, err := deps.Tournaments.LinkCaptain(tournament, teamName, ev.AuthorTag())
		if err != nil {
			existing := tournament.FindTeamByName(teamName)
			if existing == nil {
				ev.Reply(fmt.Sprintf("Team `%s` not found in the tournament `%s`", teamName, tournament.Alias))
			} else {
				ev.Reply(fmt.Sprintf("Team `%s` is already registered to the captain `%s`", teamName, existing.Captain))
			}
			return
		}

		if !deps.saveTournament(ctx, ev, tournament) {
			return
		}

		if err := discord.GrantCaptain(ev.Session, ev.AuthorTag(), team.Name, tournament.CaptainRole); err != nil {
			log.WarnContext(ctx, "Failed to tag captain on Discord", "user", ev.AuthorTag(), "error", err)
		}

		ev.Reply(fmt.Sprintf(
			"You are now the captain of the team `%s`. "+
				"Use `!show status` in private to display information about your team.", teamName))
	}
}

// NewUnlinkHandler removes the sender's captain link. The team name must be
// retyped as confirmation.
func NewUnlinkHandler(deps HandlerDeps) discord.HandlerFunc {
	log := deps.Logger.With("handler", "unlink")

	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) < 1 {
			ev.Reply("Usage: `!unlink [team_name]`")
			return
		}
		teamName := ev.ArgsFrom(0)
		defer deps.lockStore()()

		tournament, team := deps.captainTeam(ctx, ev)
		if team == nil {
			ev.Reply("You are not the captain of a team.")
			return
		}
		if team.Name != teamName {
			ev.Reply(fmt.Sprintf(
				"Your linked team name `%s` is different from your entry `%s`. "+
					"To confirm your unregistration, please type the right team name.",
				team.Name, teamName))
			return
		}

		if _, err := deps.Tournaments.UnlinkCaptain(tournament, ev.AuthorTag(), teamName); err != nil {
			ev.Reply("You are not the captain of a team.")
			return
		}
		if !deps.saveTournament(ctx, ev, tournament) {
			return
		}

		if err := discord.RevokeCaptain(ev.Session, ev.AuthorTag(), tournament.CaptainRole); err != nil {
			log.WarnContext(ctx, "Failed to untag captain on Discord", "user", ev.AuthorTag(), "error", err)
		}

		ev.Reply(fmt.Sprintf("You are no longer the captain of the team `%s`.", teamName))
	}
}

// NewLinkTeamCaptainHandler links an arbitrary Discord user as a team's
// captain, replacing any previous link.
func NewLinkTeamCaptainHandler(deps HandlerDeps) discord.HandlerFunc {
	log := deps.Logger.With("handler", "link_team_captain")

	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) < 3 {
			ev.Reply("Usage: `!link team captain [alias] [team_id] [discord_user]`")
			return
		}
		alias, teamID, userTag := ev.Args[0], ev.Args[1], ev.ArgsFrom(2)

		if _, _, ok := discord.FindMember(ev.Session, userTag); !ok {
			ev.Reply(fmt.Sprintf("User `%s` not found.", userTag))
			return
		}
		defer deps.lockStore()()

		tournaments, err := deps.Store.ListTournaments(ctx)
		if err != nil {
			log.ErrorContext(ctx, "Failed to list tournaments", "error", err)
			ev.Reply("Something went wrong, please try again later.")
			return
		}
		if _, linked := deps.Tournaments.FindCaptainTeam(tournaments, userTag); linked != nil {
			ev.Reply(fmt.Sprintf("User `%s` is already the captain of a team.", userTag))
			return
		}

		tournament, ok := deps.loadTournament(ctx, ev, alias)
		if !ok {
			return
		}
		team := tournament.FindTeamByID(teamID)
		if team == nil {
			ev.Reply(fmt.Sprintf("Team `%s` not found in the tournament `%s`", teamID, tournament.Alias))
			return
		}

		if team.Captain != "" {
			if err := discord.RevokeCaptain(ev.Session, team.Captain, tournament.CaptainRole); err != nil {
				log.WarnContext(ctx, "Failed to untag previous captain", "user", team.Captain, "error", err)
			}
		}
		team.Captain = userTag

		if !deps.saveTournament(ctx, ev, tournament) {
			return
		}
		if err := discord.GrantCaptain(ev.Session, userTag, team.Name, tournament.CaptainRole); err != nil {
			log.WarnContext(ctx, "Failed to tag captain on Discord", "user", userTag, "error", err)
		}
		ev.Reply(fmt.Sprintf("Team `%s` captain successfully linked to `%s`.", team.Name, userTag))
	}
}

// NewRemoveTeamHandler deletes a team from a tournament.
func NewRemoveTeamHandler(deps HandlerDeps) discord.HandlerFunc {
	log := deps.Logger.With("handler", "remove_team")

	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) != 2 {
			ev.Reply("Usage: `!remove team [alias] [team_id]`")
			return
		}
		alias, teamID := ev.Args[0], ev.Args[1]
		defer deps.lockStore()()

		tournament, ok := deps.loadTournament(ctx, ev, alias)
		if !ok {
			return
		}
		team, err := deps.Tournaments.RemoveTeam(tournament, teamID)
		if err != nil {
			ev.Reply(fmt.Sprintf("Team `%s` not found in the tournament %s", teamID, tournament.Alias))
			return
		}

		if team.Captain != "" {
			if err := discord.RevokeCaptain(ev.Session, team.Captain, tournament.CaptainRole); err != nil {
				log.WarnContext(ctx, "Failed to untag captain on Discord", "user", team.Captain, "error", err)
			}
		}

		if !deps.saveTournament(ctx, ev, tournament) {
			return
		}
		ev.Reply(fmt.Sprintf("Team %s successfully removed.", team.Name))
	}
}

// NewResetTeamHandler restores a team from Toornament and drops its captain.
func NewResetTeamHandler(deps HandlerDeps) discord.HandlerFunc {
	log := deps.Logger.With("handler", "reset_team")

	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) != 2 {
			ev.Reply("Usage: `!reset team [alias] [team_id]`")
			return
		}
		alias, teamID := ev.Args[0], ev.Args[1]
		defer deps.lockStore()()

		tournament, ok := deps.loadTournament(ctx, ev, alias)
		if !ok {
			return
		}
		team := tournament.FindTeamByID(teamID)
		if team == nil {
			ev.Reply(fmt.Sprintf(
				"Team `%s` not found in the tournament %s. Try to refresh the tournament instead.",
				teamID, tournament.Alias))
			return
		}

		previousCaptain := team.Captain
		if _, err := deps.Tournaments.ResetTeam(ctx, tournament, teamID); err != nil {
			log.ErrorContext(ctx, "Failed to reset team", "alias", alias, "team_id", teamID, "error", err)
			ev.Reply("Could not retrieve participant's info")
			return
		}

		if previousCaptain != "" {
			if err := discord.RevokeCaptain(ev.Session, previousCaptain, tournament.CaptainRole); err != nil {
				log.WarnContext(ctx, "Failed to untag captain on Discord", "user", previousCaptain, "error", err)
			}
		}

		if !deps.saveTournament(ctx, ev, tournament) {
			return
		}
		ev.Reply(fmt.Sprintf("Team %s successfully updated.", team.Name))
	}
}

// NewShowTeamHandler displays a team card by name.
func NewShowTeamHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) < 2 {
			ev.Reply("Usage: `!show team [alias] [team_name]`")
			return
		}
		alias, teamName := ev.Args[0], ev.ArgsFrom(1)

		tournament, ok := deps.loadTournament(ctx, ev, alias)
		if !ok {
			return
		}
		team := tournament.FindTeamByName(teamName)
		if team == nil {
			ev.Reply(fmt.Sprintf("Team `%s` not found in the tournament `%s`", teamName, tournament.Alias))
			return
		}
		ev.ReplyEmbed(discord.TeamEmbed(tournament, team))
	}
}

// NewShowTeamByIDHandler displays a team card by participant ID.
func NewShowTeamByIDHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) != 2 {
			ev.Reply("Usage: `!show team by id [alias] [team_id]`")
			return
		}
		alias, teamID := ev.Args[0], ev.Args[1]

		tournament, ok := deps.loadTournament(ctx, ev, alias)
		if !ok {
			return
		}
		team := tournament.FindTeamByID(teamID)
		if team == nil {
			ev.Reply(fmt.Sprintf("Team `%s` not found in the tournament `%s`", teamID, tournament.Alias))
			return
		}
		ev.ReplyEmbed(discord.TeamEmbed(tournament, team))
	}
}

// NewShowTeamsHandler lists teams with a linked captain.
func NewShowTeamsHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) != 1 {
			ev.Reply("Usage: `!show teams [alias]`")
			return
		}
		tournament, ok := deps.loadTournament(ctx, ev, ev.Args[0])
		if !ok {
			return
		}

		linked := filterTeams(tournament.Teams, func(t *model.Team) bool { return t.Captain != "" })
		if len(linked) == 0 {
			ev.Reply("No team registered for this tournament")
			return
		}

		summary := fmt.Sprintf("Number of teams: %d\nNumber of registrations: %d",
			len(tournament.Teams), tournament.LinkedTeamCount())
		sendTeamPages(ev, fmt.Sprintf("%s Registered Participants", tournament.Alias), summary, linked)
	}
}

// NewShowTeamsMissingHandler lists teams without a linked captain.
func NewShowTeamsMissingHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) != 1 {
			ev.Reply("Usage: `!show teams missing [alias]`")
			return
		}
		tournament, ok := deps.loadTournament(ctx, ev, ev.Args[0])
		if !ok {
			return
		}

		missing := filterTeams(tournament.Teams, func(t *model.Team) bool { return t.Captain == "" })
		if len(missing) == 0 {
			ev.Reply("Every team are registered for this tournament")
			return
		}

		summary := fmt.Sprintf("Number of teams: %d\nNumber of missing registrations: %d",
			len(tournament.Teams), len(tournament.Teams)-tournament.LinkedTeamCount())
		sendTeamPages(ev, fmt.Sprintf("%s Missing Registrations", tournament.Alias), summary, missing)
	}
}

// NewShowStatusHandler shows the sender's linked team and joined matches.
func NewShowStatusHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		tournament, team := deps.captainTeam(ctx, ev)
		if team == nil {
			ev.Reply("You are not the captain of a team.")
			return
		}

		embed := discord.TeamEmbed(tournament, team)
		embed.Title = fmt.Sprintf("%s Team @ %s", team.Name, tournament.Info.Name)
		embed.Color = discord.ColorGreen
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("To unregister, type:\n!unlink %s", team.Name),
		}
		ev.DMEmbed(embed)

		var fields []*discordgo.MessageEmbedField
		for _, match := range tournament.Matches {
			if !match.HasJoined(team.ID) {
				continue
			}
			submission := "none"
			if score := team.FindSubmissionByMatch(match.Name); score != nil {
				submission = discord.ScoreSummary(score)
			}
			fields = append(fields, &discordgo.MessageEmbedField{
				Name: match.Name,
				Value: fmt.Sprintf("**Status:** %s\n**Password:** %s\n**Score Submission:** %s",
					match.Status, match.Password, submission),
			})
		}
		if len(fields) > 0 {
			ev.DMEmbed(&discordgo.MessageEmbed{
				Title:  fmt.Sprintf("%s Matches @ %s", team.Name, tournament.Info.Name),
				Color:  discord.ColorGreen,
				Fields: fields,
			})
		}
	}
}

func filterTeams(teams []*model.Team, keep func(*model.Team) bool) []*model.Team {
	var out []*model.Team
	for _, team := range teams {
		if keep(team) {
			out = append(out, team)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func sendTeamPages(ev *discord.Event, title, summary string, teams []*model.Team) {
	pages := (len(teams) + teamsPerPage - 1) / teamsPerPage
	for page := 0; page < pages; page++ {
		var names strings.Builder
		lo := page * teamsPerPage
		hi := min(lo+teamsPerPage, len(teams))
		for i := lo; i < hi; i++ {
			fmt.Fprintf(&names, "%d. %s\n", i+1, teams[i].Name)
		}
		ev.ReplyEmbed(&discordgo.MessageEmbed{
			Title:       fmt.Sprintf("%s (%d/%d)", title, page+1, pages),
			Description: fmt.Sprintf("%s\n\n%s", summary, names.String()),
			Color:       discord.ColorGrey,
		})
	}
}
