// Package config manages application configuration from environment variables,
// config files, and default values.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrConfiguration indicates a configuration loading or validation failure.
var ErrConfiguration = errors.New("configuration error")

// Config defines the application configuration. Values can be set via environment
// variables prefixed with BOT_ (e.g., BOT_DISCORD_TOKEN) or through config.yaml.
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Discord    DiscordConfig    `mapstructure:"discord"`
	Toornament ToornamentConfig `mapstructure:"toornament"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Server     ServerConfig     `mapstructure:"server"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"  validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// DiscordConfig holds Discord connection and command settings.
type DiscordConfig struct {
	Token string `mapstructure:"token" validate:"required"`

	// CommandPrefix triggers commands (e.g. "!"); AltPrefixes are accepted
	// as alternatives.
	CommandPrefix string   `mapstructure:"command_prefix" validate:"required"`
	AltPrefixes   []string `mapstructure:"alt_prefixes"`

	// Admins are Discord user tags with bot-admin rights everywhere.
	Admins []string `mapstructure:"admins"`

	// Status is the presence text shown under the bot's name.
	Status string `mapstructure:"status"`
}

// ToornamentConfig holds Toornament API credentials and client tuning.
type ToornamentConfig struct {
	BaseURL      string        `mapstructure:"base_url"      validate:"required,url"`
	APIKey       string        `mapstructure:"api_key"       validate:"required"`
	ClientID     string        `mapstructure:"client_id"     validate:"required"`
	ClientSecret string        `mapstructure:"client_secret" validate:"required"`
	Timeout      time.Duration `mapstructure:"timeout"       validate:"required,min=1s,max=5m"`
	MaxRetries   int           `mapstructure:"max_retries"   validate:"min=0,max=10"`
	RetryDelay   time.Duration `mapstructure:"retry_delay"   validate:"min=0"`

	// InsecureSkipVerify disables TLS certificate verification, for
	// environments with intercepting proxies.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// ServerConfig holds the operator HTTP API settings.
type ServerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr" validate:"required_if=Enabled true"`
}

// SchedulerConfig holds the scheduled task table, keyed by task name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig enables a named task and sets its cron schedule.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// Validate checks the complete configuration against the struct rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
