package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// envFiles are read in order; earlier files win and real environment
// variables win over both.
var envFiles = []string{".env.local", ".env"}

type Config struct {
	// Database
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JobSpy API
	JobSpyBaseURL       string
	JobSpyAPIKey        string
	JobSpyTimeout       time.Duration
	JobSpyResultsWanted int
	JobSpyHoursOld      int
	JobSpyCountry       string

	// Telegram reports, optional
	TelegramToken  string
	TelegramChatID int64

	// Logging
	LogLevel string
}

func Load() (*Config, error) {
	for _, f := range envFiles {
		// missing files are fine
		_ = godotenv.Load(f)
	}

	cfg := &Config{
		// Defaults
		JobSpyBaseURL:       "http://localhost:8000",
		JobSpyTimeout:       120 * time.Second,
		JobSpyResultsWanted: 50,
		JobSpyHoursOld:      168,
		JobSpyCountry:       "USA",
		LogLevel:            "info",
		RedisDB:             0,
	}

	cfg.PostgresDSN = os.Getenv("POSTGRES_DSN")
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required")
	}

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		db, err := strconv.Atoi(redisDB)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	if baseURL := os.Getenv("JOBSPY_BASE_URL"); baseURL != "" {
		cfg.JobSpyBaseURL = baseURL
	}

	cfg.JobSpyAPIKey = os.Getenv("JOBSPY_API_KEY")

	if timeout := os.Getenv("JOBSPY_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid JOBSPY_TIMEOUT: %w", err)
		}
		cfg.JobSpyTimeout = d
	}

	if wanted := os.Getenv("JOBSPY_RESULTS_WANTED"); wanted != "" {
		n, err := strconv.Atoi(wanted)
		if err != nil {
			return nil, fmt.Errorf("invalid JOBSPY_RESULTS_WANTED: %w", err)
		}
		cfg.JobSpyResultsWanted = n
	}

	if hours := os.Getenv("JOBSPY_HOURS_OLD"); hours != "" {
		n, err := strconv.Atoi(hours)
		if err != nil {
			return nil, fmt.Errorf("invalid JOBSPY_HOURS_OLD: %w", err)
		}
		cfg.JobSpyHoursOld = n
	}

	if country := os.Getenv("JOBSPY_COUNTRY"); country != "" {
		cfg.JobSpyCountry = country
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres DSN is empty")
	}

	if c.JobSpyBaseURL == "" {
		return fmt.Errorf("jobspy base URL is empty")
	}

	if c.JobSpyTimeout < time.Second {
		return fmt.Errorf("jobspy timeout too small: %v", c.JobSpyTimeout)
	}

	if c.JobSpyResultsWanted < 1 || c.JobSpyResultsWanted > 1000 {
		return fmt.Errorf("results wanted must be between 1 and 1000")
	}

	if c.JobSpyHoursOld < 1 {
		return fmt.Errorf("hours old must be positive")
	}

	if (c.TelegramToken == "") != (c.TelegramChatID == 0) {
		return fmt.Errorf("TELEGRAM_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}

// RedisEnabled reports whether a cache address was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// TelegramEnabled reports whether run reports should be sent.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
