package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains runtime configuration values.
type Config struct {
	OpenAIAPIKey string
	OpenAIModel  string

	CredentialsPath string
	CredentialsB64  string

	SMTPServer   string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string
	Recipients   []string

	CollectCron string
	DeliverCron string

	RequestTimeout time.Duration
	JobTimeout     time.Duration
	ArticlePause   time.Duration

	DashboardAddr   string
	DeliveryLogPath string
}

const (
	defaultModel       = "gpt-3.5-turbo"
	defaultCollectCron = "15 18 * * *" // 18:15 UTC every day
	defaultDeliverCron = "55 18 * * *" // 18:55 UTC every day
	defaultSMTPPort    = 587
	defaultTimeout     = 60 * time.Second
	defaultJobTimeout  = 45 * time.Minute
	defaultPause       = 5 * time.Second
	defaultDashAddr    = ":8080"
	defaultDeliveryLog = "delivery.log"
)

// Load builds a Config from environment variables with sane defaults. A .env
// file in the working directory is merged in first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     getenvDefault("OPENAI_MODEL", defaultModel),
		CredentialsPath: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		CredentialsB64:  os.Getenv("FIREBASE_CREDENTIALS_B64"),
		SMTPServer:      os.Getenv("SMTP_SERVER"),
		SMTPPort:        parseIntDefault("SMTP_PORT", defaultSMTPPort),
		SMTPUsername:    os.Getenv("SMTP_USERNAME"),
		SMTPPassword:    os.Getenv("SMTP_PASSWORD"),
		EmailFrom:       os.Getenv("EMAIL_FROM"),
		Recipients:      splitRecipients(os.Getenv("EMAIL_RECIPIENTS")),
		CollectCron:     getenvDefault("COLLECT_CRON", defaultCollectCron),
		DeliverCron:     getenvDefault("DELIVER_CRON", defaultDeliverCron),
		RequestTimeout:  parseDurationDefault("REQUEST_TIMEOUT", defaultTimeout),
		JobTimeout:      parseDurationDefault("JOB_TIMEOUT", defaultJobTimeout),
		ArticlePause:    parseDurationDefault("ARTICLE_PAUSE", defaultPause),
		DashboardAddr:   getenvDefault("DASHBOARD_ADDR", defaultDashAddr),
		DeliveryLogPath: getenvDefault("DELIVERY_LOG", defaultDeliveryLog),
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultTimeout
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = defaultJobTimeout
	}
	if cfg.ArticlePause < 0 {
		cfg.ArticlePause = defaultPause
	}

	return cfg, nil
}

// RequireCollection validates the variables the collection job depends on.
func (c *Config) RequireCollection() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	return c.requireCredentials()
}

// RequireDelivery validates the variables the delivery job depends on.
func (c *Config) RequireDelivery() error {
	switch {
	case c.SMTPServer == "":
		return fmt.Errorf("SMTP_SERVER is required")
	case c.SMTPUsername == "":
		return fmt.Errorf("SMTP_USERNAME is required")
	case c.SMTPPassword == "":
		return fmt.Errorf("SMTP_PASSWORD is required")
	case c.EmailFrom == "":
		return fmt.Errorf("EMAIL_FROM is required")
	case len(c.Recipients) == 0:
		return fmt.Errorf("EMAIL_RECIPIENTS is required")
	}
	return c.requireCredentials()
}

func (c *Config) requireCredentials() error {
	if c.CredentialsPath == "" && c.CredentialsB64 == "" {
		return fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS or FIREBASE_CREDENTIALS_B64 is required")
	}
	return nil
}

func splitRecipients(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if addr := strings.TrimSpace(p); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

func getenvDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseIntDefault(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func parseDurationDefault(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
