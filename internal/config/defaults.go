package config

import "time"

// Default values for configuration
const (
	// Log defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// Discord defaults
	DefaultCommandPrefix = "!"
	DefaultBotStatus     = "!help"

	// Toornament defaults
	DefaultToornamentBaseURL = "https://api.toornament.com"
	DefaultToornamentTimeout = 15 * time.Second
	DefaultMaxRetries        = 3
	DefaultRetryDelay        = 2 * time.Second

	// Database defaults
	DefaultDBPath = "storage.db" // Default SQLite database path

	// Server defaults
	DefaultServerAddr = ":8080"
)
