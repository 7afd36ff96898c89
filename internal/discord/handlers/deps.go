// Package handlers contains the Discord command handlers, their
// registration table, and the access-control middleware.
package handlers

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/tourneybot/tourneybot/internal/config"
	"github.com/tourneybot/tourneybot/internal/database"
	"github.com/tourneybot/tourneybot/internal/discord"
	"github.com/tourneybot/tourneybot/internal/model"
	"github.com/tourneybot/tourneybot/internal/service"
)

// HandlerDeps provides dependencies for Discord command handlers.
// StoreMu guards load-modify-save sequences on stored tournaments, shared
// with the scheduled tasks that write to the same store.
type HandlerDeps struct {
	Logger      *slog.Logger
	Config      *config.Config
	Store       database.Store
	StoreMu     *sync.Mutex
	Tournaments *service.TournamentService
	Matches     *service.MatchService
}

// lockStore serializes handlers that modify stored tournaments. Each
// handler runs in its own goroutine, and two concurrent load-modify-save
// sequences on the same tournament would lose one of the updates.
func (d HandlerDeps) lockStore() func() {
	if d.StoreMu == nil {
		return func() {}
	}
	d.StoreMu.Lock()
	return d.StoreMu.Unlock
}

// loadTournament fetches a tournament by alias, replying to the user when
// it does not exist.
func (d HandlerDeps) loadTournament(ctx context.Context, ev *discord.Event, alias string) (*model.Tournament, bool) {
	tournament, err := d.Store.GetTournament(ctx, alias)
	if err != nil {
		d.Logger.ErrorContext(ctx, "Failed to load tournament", "alias", alias, "error", err)
		ev.Reply("Something went wrong, please try again later.")
		return nil, false
	}
	if tournament == nil {
		ev.Reply("Tournament not found.")
		return nil, false
	}
	return tournament, true
}

// saveTournament persists the aggregate, replying to the user on failure.
func (d HandlerDeps) saveTournament(ctx context.Context, ev *discord.Event, tournament *model.Tournament) bool {
	if err := d.Store.SaveTournament(ctx, tournament); err != nil {
		d.Logger.ErrorContext(ctx, "Failed to save tournament", "alias", tournament.Alias, "error", err)
		ev.Reply("Something went wrong, please try again later.")
		return false
	}
	return true
}

// captainTeam finds the team and tournament the sender is linked to as
// captain, across every stored tournament. Returns nils when unlinked.
func (d HandlerDeps) captainTeam(ctx context.Context, ev *discord.Event) (*model.Tournament, *model.Team) {
	tournaments, err := d.Store.ListTournaments(ctx)
	if err != nil {
		d.Logger.ErrorContext(ctx, "Failed to list tournaments", "error", err)
		return nil, nil
	}
	return d.Tournaments.FindCaptainTeam(tournaments, ev.AuthorTag())
}

// isBotAdmin reports whether the sender is in the configured admin list.
func (d HandlerDeps) isBotAdmin(ev *discord.Event) bool {
	return slices.Contains(d.Config.Discord.Admins, ev.AuthorTag())
}

// isTournamentAdmin reports whether the sender is a bot admin or carries an
// administrator role of any stored tournament.
func (d HandlerDeps) isTournamentAdmin(ctx context.Context, ev *discord.Event) bool {
	if d.isBotAdmin(ev) {
		return true
	}

	tournaments, err := d.Store.ListTournaments(ctx)
	if err != nil {
		d.Logger.ErrorContext(ctx, "Failed to list tournaments", "error", err)
		return false
	}

	guildID, member := ev.Message.GuildID, ev.Message.Member
	if member == nil {
		guildID, member, _ = discord.FindMember(ev.Session, ev.AuthorTag())
	}
	if member == nil {
		return false
	}
	if member.User == nil {
		member.User = ev.Message.Author
	}

	for _, tournament := range tournaments {
		for _, role := range tournament.AdministratorRoles {
			if discord.MemberHasRole(ev.Session, guildID, member, role) {
				return true
			}
		}
	}
	return false
}
