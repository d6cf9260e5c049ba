package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config carries everything the trainer needs from the environment.
type Config struct {
	Env           string `env:"APP_ENV" env-default:"development"`
	TelegramToken string `env:"TELEGRAM_BOT_TOKEN" env-required:"true"`
	WordsFile     string `env:"WORDS_FILE" env-default:"data/words.xlsx"`

	DB       DBConfig
	Reminder ReminderConfig
}

// DBConfig selects the history store backend. The sqlite3 driver is the
// default; postgres needs a full DSN.
type DBConfig struct {
	Driver string `env:"DB_DRIVER" env-default:"sqlite3"`
	Path   string `env:"DB_PATH" env-default:"data/trainer.db"`
	DSN    string `env:"DB_DSN"`
}

// ReminderConfig bounds the daily practice reminder.
type ReminderConfig struct {
	Enabled   bool `env:"REMINDER_ENABLED" env-default:"true"`
	StartHour int  `env:"REMINDER_START_HOUR" env-default:"9"`
	EndHour   int  `env:"REMINDER_END_HOUR" env-default:"21"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	// Missing .env is fine, real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if cfg.DB.Driver != "sqlite3" && cfg.DB.Driver != "postgres" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}
	if cfg.DB.Driver == "postgres" && cfg.DB.DSN == "" {
		return nil, fmt.Errorf("DB_DSN is required for the postgres driver")
	}
	if cfg.Reminder.StartHour < 0 || cfg.Reminder.StartHour > 23 ||
		cfg.Reminder.EndHour < 0 || cfg.Reminder.EndHour > 23 {
		return nil, fmt.Errorf("reminder hours must be within 0-23")
	}
	if cfg.Reminder.StartHour > cfg.Reminder.EndHour {
		return nil, fmt.Errorf("reminder window start hour %d is after end hour %d",
			cfg.Reminder.StartHour, cfg.Reminder.EndHour)
	}

	return &cfg, nil
}
