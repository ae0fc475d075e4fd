package config

import (
	"os"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	FormatText = "text"
	FormatJSON = "json"

	defaultPaceInterval = time.Second
)

type Config struct {
	Env          string
	DiscordToken string

	// PaceInterval is the pause between paced replies and before handling a message.
	PaceInterval time.Duration

	LogLevel  string
	LogFormat string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:          getEnv("PERSOOLE_ENV", EnvDevelopment),
		DiscordToken: strings.TrimSpace(os.Getenv("DISCORD_BOT_TOKEN")),
		PaceInterval: defaultPaceInterval,
		LogFormat:    strings.ToLower(getEnv("PERSOOLE_LOG_FORMAT", FormatText)),
	}

	defaultLevel := "info"
	if cfg.IsDevelopment() {
		defaultLevel = "debug"
	}
	cfg.LogLevel = strings.ToLower(getEnv("PERSOOLE_LOG_LEVEL", defaultLevel))

	if raw := os.Getenv("PERSOOLE_PACE_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "config: PERSOOLE_PACE_INTERVAL %q", raw)
		}
		if d <= 0 {
			return nil, errors.Newf("config: PERSOOLE_PACE_INTERVAL must be positive, got %s", d)
		}
		cfg.PaceInterval = d
	}

	if _, err := charmlog.ParseLevel(cfg.LogLevel); err != nil {
		return nil, errors.Wrapf(err, "config: PERSOOLE_LOG_LEVEL %q", cfg.LogLevel)
	}

	switch cfg.LogFormat {
	case FormatText, FormatJSON:
	default:
		return nil, errors.Newf("config: PERSOOLE_LOG_FORMAT must be %q or %q, got %q", FormatText, FormatJSON, cfg.LogFormat)
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
