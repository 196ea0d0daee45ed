// ABOUTME: Centralized configuration for the EDA assistant
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the EDA assistant.
type Config struct {
	// Storage settings
	DataDir string
	DBPath  string

	// OpenAI settings
	OpenAIKey  string
	ChatModel  string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	// Query resolution settings
	MemoryLimit     int
	SampleRows      int
	MaxContextChars int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		DataDir:         getEnv("EDA_DATA_DIR", "data"),
		DBPath:          getEnv("EDA_DB_PATH", "db/memory.db"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		ChatModel:       getEnv("EDA_OPENAI_MODEL", "gpt-4o-mini"),
		Timeout:         getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:      getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:      getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		MemoryLimit:     getEnvInt("EDA_MEMORY_LIMIT", 5),
		SampleRows:      getEnvInt("EDA_SAMPLE_ROWS", 5),
		MaxContextChars: getEnvInt("EDA_MAX_CONTEXT_CHARS", 4000),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.MemoryLimit < 0 {
		return fmt.Errorf("EDA_MEMORY_LIMIT must be >= 0, got %d", c.MemoryLimit)
	}
	if c.SampleRows < 1 {
		return fmt.Errorf("EDA_SAMPLE_ROWS must be >= 1, got %d", c.SampleRows)
	}
	if c.MaxContextChars < 100 {
		return fmt.Errorf("EDA_MAX_CONTEXT_CHARS must be >= 100, got %d", c.MaxContextChars)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
