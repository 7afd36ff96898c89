// Package discord wraps the Discord gateway connection and provides the
// command router, embed builders, and guild helpers used by the bot.
package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/tourneybot/tourneybot/internal/config"
)

// NewSession creates a configured Discord session. The connection is not
// opened; the orchestrator opens and closes it.
func NewSession(cfg *config.DiscordConfig, logger *slog.Logger) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	// GuildMembers is needed for nickname tagging and role checks,
	// MessageContent for prefix commands.
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	session.StateEnabled = true

	if cfg.Status != "" {
		status := cfg.Status
		session.AddHandler(func(s *discordgo.Session, _ *discordgo.Ready) {
			if err := s.UpdateGameStatus(0, status); err != nil {
				logger.Warn("Failed to set presence status", "error", err)
			}
		})
	}

	return session, nil
}

// UserTag returns the stable identity string used to link captains.
func UserTag(u *discordgo.User) string {
	if u == nil {
		return ""
	}
	return u.String()
}
