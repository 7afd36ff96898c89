package tasks

import (
	"context"
	"fmt"
)

// newTournamentRefreshTask returns a task that re-syncs every stored
// tournament with the Toornament API. Failures are logged per tournament so
// one broken alias does not block the others.
func newTournamentRefreshTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "tournament_refresh")

	return func(ctx context.Context) error {
		tournaments, err := deps.Store.ListTournaments(ctx)
		if err != nil {
			log.ErrorContext(ctx, "Failed to list tournaments", "error", err)
			return fmt.Errorf("failed to list tournaments: %w", err)
		}

		if len(tournaments) == 0 {
			log.DebugContext(ctx, "No tournaments to refresh.")
			return nil
		}

		var failed int
		for _, tournament := range tournaments {
			if err := deps.Tournaments.Refresh(ctx, tournament); err != nil {
				log.ErrorContext(ctx, "Failed to refresh tournament",
					"alias", tournament.Alias, "tournament_id", tournament.ID, "error", err)
				failed++
				continue
			}

			// Hold the store lock only for the write so a slow API refresh
			// does not stall command handlers.
			if deps.StoreMu != nil {
				deps.StoreMu.Lock()
			}
			err := deps.Store.SaveTournament(ctx, tournament)
			if deps.StoreMu != nil {
				deps.StoreMu.Unlock()
			}
			if err != nil {
				log.ErrorContext(ctx, "Failed to save refreshed tournament",
					"alias", tournament.Alias, "error", err)
				failed++
			}
		}

		log.InfoContext(ctx, "Tournament refresh completed",
			"total", len(tournaments), "failed", failed)

		if failed > 0 {
			return fmt.Errorf("%d of %d tournaments failed to refresh", failed, len(tournaments))
		}
		return nil
	}
}
