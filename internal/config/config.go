package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken     string  `yaml:"bot_token"`
		AllowedChats []int64 `yaml:"allowed_chats"`
	} `yaml:"telegram"`
	Session struct {
		IdleTTL      time.Duration `yaml:"idle_ttl"`
		HistoryLimit int           `yaml:"history_limit"`
		ChartWindow  int           `yaml:"chart_window"`
	} `yaml:"session"`
	Engine struct {
		TrendProjection *bool `yaml:"trend_projection"`
	} `yaml:"engine"`
	Schedule struct {
		SweepCron string `yaml:"sweep_cron"`
		StatsCron string `yaml:"stats_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SESSION_IDLE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse SESSION_IDLE_TTL: %w", err)
		}
		cfg.Session.IdleTTL = d
	}
	if v := os.Getenv("HISTORY_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse HISTORY_LIMIT: %w", err)
		}
		cfg.Session.HistoryLimit = n
	}
	if v := os.Getenv("TREND_PROJECTION"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parse TREND_PROJECTION: %w", err)
		}
		cfg.Engine.TrendProjection = &b
	}
	if v := os.Getenv("CRON_SWEEP"); v != "" {
		cfg.Schedule.SweepCron = v
	}
	if v := os.Getenv("CRON_STATS"); v != "" {
		cfg.Schedule.StatsCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Session.IdleTTL == 0 {
		cfg.Session.IdleTTL = 24 * time.Hour
	}
	if cfg.Session.HistoryLimit == 0 {
		cfg.Session.HistoryLimit = 30
	}
	if cfg.Session.ChartWindow == 0 {
		cfg.Session.ChartWindow = 10
	}
	if cfg.Engine.TrendProjection == nil {
		enabled := true
		cfg.Engine.TrendProjection = &enabled
	}
	if cfg.Schedule.SweepCron == "" {
		cfg.Schedule.SweepCron = "0 */10 * * * *"
	}
	if cfg.Schedule.StatsCron == "" {
		cfg.Schedule.StatsCron = "0 0 * * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/multiplier_sentinel.db"
	}

	return cfg, nil
}

// TrendEnabled reports whether the forecaster should fit a trend line.
func (c *Config) TrendEnabled() bool {
	return c.Engine.TrendProjection == nil || *c.Engine.TrendProjection
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	if c.Session.IdleTTL <= 0 {
		return fmt.Errorf("session.idle_ttl must be positive")
	}
	if c.Session.HistoryLimit <= 0 {
		return fmt.Errorf("session.history_limit must be positive")
	}
	if c.Session.ChartWindow <= 0 {
		return fmt.Errorf("session.chart_window must be positive")
	}
	return nil
}
