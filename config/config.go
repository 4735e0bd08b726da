package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/Dosada05/mcr-results/models"
	"github.com/Dosada05/mcr-results/storage"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort int    `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	// Источники данных
	DataBaseURL   string `env:"DATA_BASE_URL,required,notEmpty"`
	BackupBaseURL string `env:"BACKUP_BASE_URL"`
	ScheduleFile  string `env:"SCHEDULE_FILE" envDefault:"rozpis.json"`
	ResultsFile   string `env:"RESULTS_FILE" envDefault:"vysledky.json"`
	TeamsFile     string `env:"TEAMS_FILE" envDefault:"tymy.json"`
	BackupSuffix  string `env:"BACKUP_SUFFIX" envDefault:".backup.json"`

	CacheDriver string `env:"CACHE_DRIVER" envDefault:"sqlite"`
	CacheDSN    string `env:"CACHE_DSN" envDefault:"mcr-cache.db"`

	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"60s"`
	FetchTimeout    time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s"`

	TournamentDays map[string]string `env:"TOURNAMENT_DAYS" envKeyValSeparator:"=" envDefault:"patek=2026-04-24,sobota=2026-04-25,nedele=2026-04-26"`
	TimeZone       string            `env:"TIMEZONE" envDefault:"Europe/Prague"`
	GroupLegs      int               `env:"GROUP_LEGS" envDefault:"1"`

	JWTSecretKey       string   `env:"JWT_SECRET_KEY,required,notEmpty"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	R2 storage.CloudflareR2Config `envPrefix:"R2_"`
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load() // .env не обязателен

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort)
	}
	if _, err := url.ParseRequestURI(c.DataBaseURL); err != nil {
		return fmt.Errorf("invalid DATA_BASE_URL: %w", err)
	}
	if c.BackupBaseURL != "" {
		if _, err := url.ParseRequestURI(c.BackupBaseURL); err != nil {
			return fmt.Errorf("invalid BACKUP_BASE_URL: %w", err)
		}
	}
	switch c.CacheDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("CACHE_DRIVER must be sqlite or postgres, got %q", c.CacheDriver)
	}
	if c.GroupLegs != 1 && c.GroupLegs != 2 {
		return fmt.Errorf("GROUP_LEGS must be 1 or 2, got %d", c.GroupLegs)
	}
	if c.RefreshInterval < time.Second {
		return fmt.Errorf("REFRESH_INTERVAL must be at least 1s, got %s", c.RefreshInterval)
	}
	for day, date := range c.TournamentDays {
		if !isDayKey(day) {
			return fmt.Errorf("TOURNAMENT_DAYS: unknown day %q", day)
		}
		if _, err := time.Parse(time.DateOnly, date); err != nil {
			return fmt.Errorf("TOURNAMENT_DAYS: invalid date for %s: %w", day, err)
		}
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Location returns the tournament time zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// ResourceURL joins a base URL and a file name.
func ResourceURL(base, file string) string {
	if base == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(file, "/")
}

// BackupName turns rozpis.json into rozpis.backup.json.
func (c *Config) BackupName(file string) string {
	return strings.TrimSuffix(file, ".json") + c.BackupSuffix
}

func isDayKey(day string) bool {
	for _, d := range models.Days {
		if d == day {
			return true
		}
	}
	return false
}
