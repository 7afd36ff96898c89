package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tourneybot/tourneybot/internal/discord"
	"github.com/tourneybot/tourneybot/internal/service"
)

// NewAddTournamentHandler registers a Toornament tournament under an alias.
func NewAddTournamentHandler(deps HandlerDeps) discord.HandlerFunc {
	log := deps.Logger.With("handler", "add_tournament")

	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) != 2 {
			ev.Reply("Usage: `!add tournament [alias] [tournament_id]`")
			return
		}
		alias, tournamentID := ev.Args[0], ev.Args[1]
		defer deps.lockStore()()

		existing, err := deps.Store.GetTournament(ctx, alias)
		if err != nil {
			log.ErrorContext(ctx, "Failed to check alias", "alias", alias, "error", err)
			ev.Reply("Something went wrong, please try again later.")
			return
		}
		if existing != nil {
			ev.Reply("Tournament with this alias already exists.")
			return
		}

		tournament, err := deps.Tournaments.Create(ctx, tournamentID, alias)
		if err != nil {
			if errors.Is(err, service.ErrTournamentNotFound) {
				ev.Reply("Tournament not found.")
				return
			}
			log.ErrorContext(ctx, "Failed to create tournament", "tournament_id", tournamentID, "error", err)
			ev.Reply("Could not fetch tournament data from Toornament, please try again later.")
			return
		}

		if !deps.saveTournament(ctx, ev, tournament) {
			return
		}
		ev.Reply(fmt.Sprintf("Tournament `%s` successfully added", tournament.Info.Name))
	}
}

// NewRemoveTournamentHandler deletes a stored tournament.
func NewRemoveTournamentHandler(deps HandlerDeps) discord.HandlerFunc {
	log := deps.Logger.With("handler", "remove_tournament")

	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) != 1 {
			ev.Reply("Usage: `!remove tournament [alias]`")
			return
		}
		alias := ev.Args[0]
		defer deps.lockStore()()

		if _, ok := deps.loadTournament(ctx, ev, alias); !ok {
			return
		}
		if err := deps.Store.DeleteTournament(ctx, alias); err != nil {
			log.ErrorContext(ctx, "Failed to delete tournament", "alias", alias, "error", err)
			ev.Reply("Something went wrong, please try again later.")
			return
		}
		ev.Reply("Tournament successfully removed.")
	}
}

// NewRefreshTournamentHandler re-fetches tournament data from Toornament.
func NewRefreshTournamentHandler(deps HandlerDeps) discord.HandlerFunc {
	log := deps.Logger.With("handler", "refresh_tournament")

	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) != 1 {
			ev.Reply("Usage: `!refresh tournament [alias]`")
			return
		}
		defer deps.lockStore()()

		tournament, ok := deps.loadTournament(ctx, ev, ev.Args[0])
		if !ok {
			return
		}

		if err := deps.Tournaments.Refresh(ctx, tournament); err != nil {
			if errors.Is(err, service.ErrTournamentNotFound) {
				ev.Reply("Tournament not found on Toornament.")
				return
			}
			log.ErrorContext(ctx, "Failed to refresh tournament", "alias", tournament.Alias, "error", err)
			ev.Reply("Could not fetch tournament data from Toornament, please try again later.")
			return
		}

		if !deps.saveTournament(ctx, ev, tournament) {
			return
		}
		ev.Reply(fmt.Sprintf("Tournament %s successfully refreshed.", tournament.Alias))
	}
}

// NewRefreshStatusHandler shows the participant diff against Toornament
// without applying it.
func NewRefreshStatusHandler(deps HandlerDeps) discord.HandlerFunc {
	log := deps.Logger.With("handler", "show_tournament_refresh_status")

	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) != 1 {
			ev.Reply("Usage: `!show tournament refresh status [alias]`")
			return
		}
		tournament, ok := deps.loadTournament(ctx, ev, ev.Args[0])
		if !ok {
			return
		}

		added, removed, err := deps.Tournaments.RefreshDiff(ctx, tournament)
		if err != nil {
			log.ErrorContext(ctx, "Failed to diff tournament", "alias", tournament.Alias, "error", err)
			ev.Reply("Could not fetch participant data from Toornament, please try again later.")
			return
		}

		ev.DM("**Teams ID deleted:**\n" + strings.Join(removed, "\n"))
		ev.DM("**Teams ID added:**\n" + strings.Join(added, "\n"))
	}
}

// NewShowTournamentHandler displays one tournament card.
func NewShowTournamentHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) != 1 {
			ev.Reply("Usage: `!show tournament [alias]`")
			return
		}
		tournament, ok := deps.loadTournament(ctx, ev, ev.Args[0])
		if !ok {
			return
		}
		viewerTeam := tournament.FindTeamByCaptain(ev.AuthorTag())
		ev.ReplyEmbed(discord.TournamentEmbed(tournament, viewerTeam))
	}
}

// NewShowTournamentsHandler displays every stored tournament.
func NewShowTournamentsHandler(deps HandlerDeps) discord.HandlerFunc {
	log := deps.Logger.With("handler", "show_tournaments")

	return func(ctx context.Context, ev *discord.Event) {
		tournaments, err := deps.Store.ListTournaments(ctx)
		if err != nil {
			log.ErrorContext(ctx, "Failed to list tournaments", "error", err)
			ev.Reply("Something went wrong, please try again later.")
			return
		}
		if len(tournaments) == 0 {
			ev.Reply("No tournaments to show.")
			return
		}
		for _, tournament := range tournaments {
			viewerTeam := tournament.FindTeamByCaptain(ev.AuthorTag())
			ev.ReplyEmbed(discord.TournamentEmbed(tournament, viewerTeam))
		}
	}
}

// NewAddAdminRoleHandler grants a Discord role admin rights on a tournament.
func NewAddAdminRoleHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) < 2 {
			ev.Reply("Usage: `!add admin role [alias] [role]`")
			return
		}
		alias, role := ev.Args[0], ev.ArgsFrom(1)

		if _, _, ok := discord.FindRole(ev.Session, role); !ok {
			ev.Reply(fmt.Sprintf("Role `%s` not found", role))
			return
		}

		defer deps.lockStore()()

		tournament, ok := deps.loadTournament(ctx, ev, alias)
		if !ok {
			return
		}
		if err := deps.Tournaments.AddAdminRole(tournament, role); err != nil {
			ev.Reply(fmt.Sprintf("Role `%s` is already a tournament administrator role of `%s`", role, tournament.Alias))
			return
		}
		if !deps.saveTournament(ctx, ev, tournament) {
			return
		}
		ev.Reply(fmt.Sprintf("Role `%s` successfully added to the tournament `%s`", role, tournament.Alias))
	}
}

// NewRemoveAdminRoleHandler revokes a Discord admin role from a tournament.
func NewRemoveAdminRoleHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) < 2 {
			ev.Reply("Usage: `!remove admin role [alias] [role]`")
			return
		}
		alias, role := ev.Args[0], ev.ArgsFrom(1)

		defer deps.lockStore()()

		tournament, ok := deps.loadTournament(ctx, ev, alias)
		if !ok {
			return
		}
		if err := deps.Tournaments.RemoveAdminRole(tournament, role); err != nil {
			ev.Reply(fmt.Sprintf("Role `%s` is not a role of `%s`", role, tournament.Alias))
			return
		}
		if !deps.saveTournament(ctx, ev, tournament) {
			return
		}
		ev.Reply(fmt.Sprintf("Role successfully removed from the tournament `%s`", tournament.Alias))
	}
}

// NewAddCaptainRoleHandler sets the Discord role granted to linked captains.
func NewAddCaptainRoleHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) < 2 {
			ev.Reply("Usage: `!add captain role [alias] [role]`")
			return
		}
		alias, role := ev.Args[0], ev.ArgsFrom(1)

		if _, _, ok := discord.FindRole(ev.Session, role); !ok {
			ev.Reply(fmt.Sprintf("Role `%s` not found", role))
			return
		}

		defer deps.lockStore()()

		tournament, ok := deps.loadTournament(ctx, ev, alias)
		if !ok {
			return
		}
		deps.Tournaments.SetCaptainRole(tournament, role)
		if !deps.saveTournament(ctx, ev, tournament) {
			return
		}
		ev.Reply(fmt.Sprintf("Captain role `%s` successfully added to the tournament `%s`", role, tournament.Alias))
	}
}

// NewRemoveCaptainRoleHandler clears the tournament captain role.
func NewRemoveCaptainRoleHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) != 1 {
			ev.Reply("Usage: `!remove captain role [alias]`")
			return
		}
		defer deps.lockStore()()

		tournament, ok := deps.loadTournament(ctx, ev, ev.Args[0])
		if !ok {
			return
		}
		deps.Tournaments.RemoveCaptainRole(tournament)
		if !deps.saveTournament(ctx, ev, tournament) {
			return
		}
		ev.Reply(fmt.Sprintf("Captain role removed from the tournament `%s`", tournament.Alias))
	}
}

// NewAddChannelHandler links a Discord channel to a tournament.
func NewAddChannelHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) != 2 {
			ev.Reply("Usage: `!add channel [alias] [#channel]`")
			return
		}
		alias, channel := ev.Args[0], ev.Args[1]

		if _, ok := discord.FindChannel(ev.Session, channel); !ok {
			ev.Reply("Invalid channel name")
			return
		}

		defer deps.lockStore()()

		tournament, ok := deps.loadTournament(ctx, ev, alias)
		if !ok {
			return
		}
		if err := deps.Tournaments.AddChannel(tournament, channel); err != nil {
			ev.Reply(fmt.Sprintf("Channel `%s` is already set for the tournament `%s`", channel, tournament.Alias))
			return
		}
		if !deps.saveTournament(ctx, ev, tournament) {
			return
		}
		ev.Reply("Channel successfully added to the tournament")
	}
}

// NewRemoveChannelHandler unlinks a Discord channel from a tournament.
func NewRemoveChannelHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) != 2 {
			ev.Reply("Usage: `!remove channel [alias] [#channel]`")
			return
		}
		alias, channel := ev.Args[0], ev.Args[1]

		defer deps.lockStore()()

		tournament, ok := deps.loadTournament(ctx, ev, alias)
		if !ok {
			return
		}
		if err := deps.Tournaments.RemoveChannel(tournament, channel); err != nil {
			ev.Reply(fmt.Sprintf("Channel `%s` is not set for the tournament `%s`", channel, tournament.Alias))
			return
		}
		if !deps.saveTournament(ctx, ev, tournament) {
			return
		}
		ev.Reply("Channel successfully removed from the tournament")
	}
}
