package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config carries every recognized environment option. godotenv populates the
// process environment in main; viper reads it here with defaults.
type Config struct {
	Port           int
	DatabaseURL    string
	WhopAPIURL     string
	WebhookSecret  string
	RedisAddr      string
	AllowedOrigins string

	LogLevel  string
	LogFormat string
	LogOutput string

	SnapshotInterval time.Duration
	SnapshotTopN     int
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 5300)
	v.SetDefault("WHOP_API_URL", "https://api.whop.com")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("SNAPSHOT_INTERVAL_MINUTES", 60)
	v.SetDefault("SNAPSHOT_TOP_N", 100)

	cfg := &Config{
		Port:             v.GetInt("PORT"),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		WhopAPIURL:       v.GetString("WHOP_API_URL"),
		WebhookSecret:    v.GetString("WHOP_WEBHOOK_SECRET"),
		RedisAddr:        v.GetString("REDIS_ADDR"),
		AllowedOrigins:   v.GetString("ALLOWED_ORIGINS"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
		LogOutput:        v.GetString("LOG_OUTPUT"),
		SnapshotInterval: time.Duration(v.GetInt("SNAPSHOT_INTERVAL_MINUTES")) * time.Minute,
		SnapshotTopN:     v.GetInt("SNAPSHOT_TOP_N"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}
	if cfg.WebhookSecret == "" {
		return nil, fmt.Errorf("WHOP_WEBHOOK_SECRET environment variable not set")
	}
	return cfg, nil
}
