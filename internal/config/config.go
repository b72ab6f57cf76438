package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Bitrix     BitrixConfig
	Generation GenerationConfig
	Queue      QueueConfig
	Mail       MailConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	URL string
}

type BitrixConfig struct {
	// WebhookURL is the inbound webhook base, e.g.
	// https://example.bitrix24.ru/rest/1/xxxx/ — method names are appended to it.
	WebhookURL string
}

type GenerationConfig struct {
	APIURL        string
	APIToken      string
	PublicBaseURL string
	CallbackURL   string
	UploadDir     string
	PollInterval  time.Duration
	PollTimeout   time.Duration
	CleanupDelay  time.Duration
}

type QueueConfig struct {
	// URL enables the lead event producer when set (amqp://...).
	URL string
}

type MailConfig struct {
	// Host enables the lead notification sender when set.
	Host     string
	Port     int
	User     string
	Password string
	NotifyTo string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "5000"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Bitrix: BitrixConfig{
			WebhookURL: os.Getenv("BITRIX_WEBHOOK_URL"),
		},
		Generation: GenerationConfig{
			APIURL:        getEnv("GEN_API_URL", "https://api.kie.ai"),
			APIToken:      os.Getenv("GEN_API_TOKEN"),
			PublicBaseURL: strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
			CallbackURL:   os.Getenv("GEN_CALLBACK_URL"),
			UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
			PollInterval:  getEnvSeconds("GEN_POLL_INTERVAL_SECONDS", 5),
			PollTimeout:   getEnvSeconds("GEN_POLL_TIMEOUT_SECONDS", 120),
			CleanupDelay:  getEnvSeconds("GEN_CLEANUP_DELAY_SECONDS", 120),
		},
		Queue: QueueConfig{
			URL: os.Getenv("AMQP_URL"),
		},
		Mail: MailConfig{
			Host:     os.Getenv("MAIL_HOST"),
			Port:     getEnvInt("MAIL_PORT", 587),
			User:     os.Getenv("MAIL_USER"),
			Password: os.Getenv("MAIL_PASS"),
			NotifyTo: os.Getenv("MAIL_NOTIFY_TO"),
		},
	}

	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("missing required env var: DATABASE_URL")
	}
	if cfg.Bitrix.WebhookURL == "" {
		return nil, fmt.Errorf("missing required env var: BITRIX_WEBHOOK_URL")
	}
	if cfg.Generation.APIToken == "" {
		return nil, fmt.Errorf("missing required env var: GEN_API_TOKEN")
	}
	if cfg.Generation.PublicBaseURL == "" {
		return nil, fmt.Errorf("missing required env var: PUBLIC_BASE_URL")
	}
	if cfg.Generation.CallbackURL == "" {
		cfg.Generation.CallbackURL = cfg.Generation.PublicBaseURL + "/callbackimage"
	}
	if cfg.Generation.PollInterval <= 0 {
		return nil, fmt.Errorf("GEN_POLL_INTERVAL_SECONDS must be > 0")
	}
	if cfg.Generation.PollTimeout <= 0 {
		return nil, fmt.Errorf("GEN_POLL_TIMEOUT_SECONDS must be > 0")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvSeconds(key string, def int) time.Duration {
	return time.Duration(getEnvInt(key, def)) * time.Second
}
