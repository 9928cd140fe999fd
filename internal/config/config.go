package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Naver Open API credentials. Empty disables the Naver source.
	NaverClientID     string
	NaverClientSecret string

	// Gemini API key. Empty disables summaries.
	GeminiAPIKey string

	// Postgres DSN. Empty disables the database sink.
	DatabaseURL string

	// Topic/keyword configuration file.
	TopicsConfigPath string

	// Collection behavior.
	Workers        int
	KeywordTimeout time.Duration
	TopicTimeout   time.Duration
	PacingInterval time.Duration
	MaxPerSource   int
	TargetDate     string // YYYY-MM-DD, empty = no target filter

	// Output.
	ArchiveDir string

	// Monitoring HTTP server, 0 disables it.
	MonitorPort int

	Debug bool
}

func Load() *Config {
	return &Config{
		NaverClientID:     os.Getenv("NAVER_CLIENT_ID"),
		NaverClientSecret: os.Getenv("NAVER_CLIENT_SECRET"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		TopicsConfigPath:  getEnvOrDefault("TOPICS_CONFIG_PATH", "configs/topics.yaml"),
		Workers:           getEnvIntOrDefault("COLLECT_WORKERS", 3),
		KeywordTimeout:    getEnvDurationOrDefault("KEYWORD_TIMEOUT", 30*time.Second),
		TopicTimeout:      getEnvDurationOrDefault("TOPIC_TIMEOUT", 60*time.Second),
		PacingInterval:    getEnvDurationOrDefault("PACING_INTERVAL", time.Second),
		MaxPerSource:      getEnvIntOrDefault("MAX_PER_SOURCE", 10),
		TargetDate:        os.Getenv("TARGET_DATE"),
		ArchiveDir:        getEnvOrDefault("ARCHIVE_DIR", "archives"),
		MonitorPort:       getEnvIntOrDefault("MONITOR_PORT", 0),
		Debug:             os.Getenv("DEBUG") == "true",
	}
}

func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("COLLECT_WORKERS must be at least 1, got %d", c.Workers)
	}
	if c.KeywordTimeout <= 0 {
		return fmt.Errorf("KEYWORD_TIMEOUT must be positive")
	}
	if c.TopicTimeout <= 0 {
		return fmt.Errorf("TOPIC_TIMEOUT must be positive")
	}
	if c.PacingInterval < 0 {
		return fmt.Errorf("PACING_INTERVAL must not be negative")
	}
	if c.TopicsConfigPath == "" {
		return fmt.Errorf("TOPICS_CONFIG_PATH is required")
	}
	if (c.NaverClientID == "") != (c.NaverClientSecret == "") {
		return fmt.Errorf("NAVER_CLIENT_ID and NAVER_CLIENT_SECRET must be set together")
	}
	if c.TargetDate != "" {
		if _, err := time.Parse("2006-01-02", c.TargetDate); err != nil {
			return fmt.Errorf("TARGET_DATE must be YYYY-MM-DD: %w", err)
		}
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
