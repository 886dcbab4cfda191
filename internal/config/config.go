package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Invalid top-level commands are either answered or silently ignored.
const (
	InvalidChoiceReport = "report"
	InvalidChoiceIgnore = "ignore"
)

// Config keeps runtime settings for the planner.
type Config struct {
	DatabaseURL    string `yaml:"database_url"`
	LogLevel       string `yaml:"log_level"`
	InvalidChoice  string `yaml:"invalid_choice"`
	ExportSchedule string `yaml:"export_schedule"`
	ExportPath     string `yaml:"export_path"`

	TelegramToken       string `yaml:"telegram_token"`
	TelegramAllowUserID int64  `yaml:"telegram_allow_user_id"`
}

// Load reads the optional YAML file at path, then applies environment
// variables and defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	overrideString(&cfg.DatabaseURL, "DATABASE_URL")
	overrideString(&cfg.LogLevel, "LOG_LEVEL")
	overrideString(&cfg.InvalidChoice, "INVALID_CHOICE")
	overrideString(&cfg.ExportSchedule, "EXPORT_SCHEDULE")
	overrideString(&cfg.ExportPath, "EXPORT_PATH")
	overrideString(&cfg.TelegramToken, "TELEGRAM_TOKEN")

	if raw := strings.TrimSpace(os.Getenv("TELEGRAM_ALLOW_USER_ID")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("TELEGRAM_ALLOW_USER_ID must be a number: %w", err)
		}
		cfg.TelegramAllowUserID = id
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "meal_planner.db"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.ExportPath == "" {
		cfg.ExportPath = "shopping_list.txt"
	}

	cfg.InvalidChoice = strings.ToLower(strings.TrimSpace(cfg.InvalidChoice))
	switch cfg.InvalidChoice {
	case "":
		cfg.InvalidChoice = InvalidChoiceReport
	case InvalidChoiceReport, InvalidChoiceIgnore:
	default:
		return cfg, fmt.Errorf("invalid_choice must be %q or %q, got %q", InvalidChoiceReport, InvalidChoiceIgnore, cfg.InvalidChoice)
	}

	return cfg, nil
}

// ValidateTelegram checks the settings needed to run the session over Telegram.
func (c Config) ValidateTelegram() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	if c.TelegramAllowUserID == 0 {
		return fmt.Errorf("TELEGRAM_ALLOW_USER_ID is required")
	}
	return nil
}

func overrideString(dst *string, env string) {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		*dst = v
	}
}
