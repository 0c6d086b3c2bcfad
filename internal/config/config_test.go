package config_test

import (
	"testing"
	"time"

	"remote-jobs-pipeline/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"POSTGRES_DSN", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"JOBSPY_BASE_URL", "JOBSPY_API_KEY", "JOBSPY_TIMEOUT", "JOBSPY_RESULTS_WANTED",
		"JOBSPY_HOURS_OLD", "JOBSPY_COUNTRY", "TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRES_DSN", "postgres://localhost/jobs")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.JobSpyBaseURL != "http://localhost:8000" || cfg.JobSpyTimeout != 120*time.Second {
		t.Errorf("jobspy defaults = %q %v", cfg.JobSpyBaseURL, cfg.JobSpyTimeout)
	}
	if cfg.JobSpyResultsWanted != 50 || cfg.JobSpyHoursOld != 168 || cfg.JobSpyCountry != "USA" {
		t.Errorf("search defaults = %d %d %q", cfg.JobSpyResultsWanted, cfg.JobSpyHoursOld, cfg.JobSpyCountry)
	}
	if cfg.RedisEnabled() || cfg.TelegramEnabled() {
		t.Error("optional integrations should be off by default")
	}
}

func TestLoad_RequiresDSN(t *testing.T) {
	clearEnv(t)
	if _, err := config.Load(); err == nil {
		t.Error("expected error without POSTGRES_DSN")
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRES_DSN", "postgres://localhost/jobs")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("JOBSPY_TIMEOUT", "45s")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if !cfg.RedisEnabled() || cfg.RedisDB != 2 {
		t.Errorf("redis = %q db %d", cfg.RedisAddr, cfg.RedisDB)
	}
	if cfg.JobSpyTimeout != 45*time.Second {
		t.Errorf("timeout = %v", cfg.JobSpyTimeout)
	}
	if !cfg.TelegramEnabled() || cfg.TelegramChatID != -100200 {
		t.Errorf("telegram = %q %d", cfg.TelegramToken, cfg.TelegramChatID)
	}
}

func TestLoad_InvalidNumber(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRES_DSN", "postgres://localhost/jobs")
	t.Setenv("JOBSPY_HOURS_OLD", "a week")

	if _, err := config.Load(); err == nil {
		t.Error("expected error for non-numeric JOBSPY_HOURS_OLD")
	}
}

func TestValidate(t *testing.T) {
	base := func() config.Config {
		return config.Config{
			PostgresDSN:         "postgres://x",
			JobSpyBaseURL:       "http://localhost:8000",
			JobSpyTimeout:       time.Minute,
			JobSpyResultsWanted: 50,
			JobSpyHoursOld:      168,
			LogLevel:            "info",
		}
	}

	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"bad log level", func(c *config.Config) { c.LogLevel = "verbose" }},
		{"token without chat", func(c *config.Config) { c.TelegramToken = "t" }},
		{"chat without token", func(c *config.Config) { c.TelegramChatID = 5 }},
		{"zero results", func(c *config.Config) { c.JobSpyResultsWanted = 0 }},
		{"tiny timeout", func(c *config.Config) { c.JobSpyTimeout = time.Millisecond }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := base()
			c.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	ok := base()
	if err := ok.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}
