// Package tasks contains the scheduled background tasks run by the bot.
package tasks

import (
	"log/slog"
	"sync"

	"github.com/tourneybot/tourneybot/internal/config"
	"github.com/tourneybot/tourneybot/internal/database"
	"github.com/tourneybot/tourneybot/internal/service"
)

// TaskDeps holds the dependencies required by scheduled task functions.
// StoreMu is shared with the command handlers so background writes do not
// race their load-modify-save sequences.
type TaskDeps struct {
	Logger      *slog.Logger
	Config      *config.Config
	Store       database.Store
	StoreMu     *sync.Mutex
	Tournaments *service.TournamentService
}
