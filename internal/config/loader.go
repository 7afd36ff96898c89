package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load loads and validates configuration from:
// 1. Default values
// 2. The YAML config file at configPath (optional)
// 3. BOT_* environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if err := readConfig(v, configPath); err != nil {
		return nil, fmt.Errorf("%w: failed to load config file: %v", ErrConfiguration, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return cfg, nil
}

// readConfig initializes and loads the configuration using viper
func readConfig(v *viper.Viper, configPath string) error {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Setup environment variables
	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Allow missing config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %v", err)
		}
	}

	return nil
}

// setDefaults sets default values for optional configuration parameters
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)

	// Discord defaults
	v.SetDefault("discord.command_prefix", DefaultCommandPrefix)
	v.SetDefault("discord.status", DefaultBotStatus)

	// Toornament defaults
	v.SetDefault("toornament.base_url", DefaultToornamentBaseURL)
	v.SetDefault("toornament.timeout", DefaultToornamentTimeout)
	v.SetDefault("toornament.max_retries", DefaultMaxRetries)
	v.SetDefault("toornament.retry_delay", DefaultRetryDelay)
	v.SetDefault("toornament.insecure_skip_verify", false)

	// Database defaults
	v.SetDefault("database.path", DefaultDBPath)

	// Server defaults
	v.SetDefault("server.enabled", true)
	v.SetDefault("server.addr", DefaultServerAddr)

	// Scheduler defaults
	v.SetDefault("scheduler.tasks.sql_maintenance.enabled", true)
	v.SetDefault("scheduler.tasks.sql_maintenance.schedule", "0 0 4 * * *")
	v.SetDefault("scheduler.tasks.tournament_refresh.enabled", false)
	v.SetDefault("scheduler.tasks.tournament_refresh.schedule", "0 */30 * * * *")
}
