// Package main contains the entrypoint for the tournament Discord bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/tourneybot/tourneybot/internal/bot"
	"github.com/tourneybot/tourneybot/internal/bot/tasks"
	"github.com/tourneybot/tourneybot/internal/config"
	"github.com/tourneybot/tourneybot/internal/database"
	"github.com/tourneybot/tourneybot/internal/discord"
	"github.com/tourneybot/tourneybot/internal/discord/handlers"
	"github.com/tourneybot/tourneybot/internal/logger"
	"github.com/tourneybot/tourneybot/internal/server"
	"github.com/tourneybot/tourneybot/internal/service"
	"github.com/tourneybot/tourneybot/internal/toornament"

	_ "modernc.org/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger, db,
// Toornament client, Discord session, scheduler, operator API), handles
// graceful shutdown, and returns an exit code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.Format)
	log.Info("Logger initialized", "level", cfg.Log.Level, "format", cfg.Log.Format)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	toornamentClient, err := toornament.NewHTTPClient(toornament.Config{
		BaseURL:            cfg.Toornament.BaseURL,
		APIKey:             cfg.Toornament.APIKey,
		ClientID:           cfg.Toornament.ClientID,
		ClientSecret:       cfg.Toornament.ClientSecret,
		Timeout:            cfg.Toornament.Timeout,
		MaxRetries:         cfg.Toornament.MaxRetries,
		RetryDelay:         cfg.Toornament.RetryDelay,
		InsecureSkipVerify: cfg.Toornament.InsecureSkipVerify,
	}, log)
	if err != nil {
		log.Error("Failed to initialize Toornament client", "error", err)
		return 1
	}

	tournamentService := service.NewTournamentService(toornamentClient, log)
	matchService := service.NewMatchService(toornamentClient, log)

	session, err := discord.NewSession(&cfg.Discord, log)
	if err != nil {
		log.Error("Failed to create Discord session", "error", err)
		return 1
	}

	var storeMu sync.Mutex

	router := discord.NewRouter(&cfg.Discord, log)
	handlers.RegisterAllCommands(router, handlers.HandlerDeps{
		Logger:      log,
		Config:      cfg,
		Store:       store,
		StoreMu:     &storeMu,
		Tournaments: tournamentService,
		Matches:     matchService,
	})
	router.Attach(session)

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tasks.TaskDeps{
		Logger:      log,
		Config:      cfg,
		Store:       store,
		StoreMu:     &storeMu,
		Tournaments: tournamentService,
	}))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	var srv *server.Server
	if cfg.Server.Enabled {
		srv = server.NewServer(&cfg.Server, store, log)
	}

	app := bot.NewBot(log, cfg, db, store, session, srv, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
