package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// DefaultTable is the DynamoDB table receipts are written to when TABLE is unset.
const DefaultTable = "Receipts"

// Config holds the settings read once at cold start
type Config struct {
	Table    string        // DynamoDB table name
	Topic    string        // SNS topic ARN for failure notifications, empty disables them
	Region   string        // optional AWS region override
	LogLevel zerolog.Level
}

// Load reads configuration from the environment (and a .env file when present).
func Load() (*Config, error) {
	// Lambda sets variables directly; .env only exists for local runs.
	_ = godotenv.Load()

	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("config: LOG_LEVEL: %w", err)
	}

	return &Config{
		Table:    getEnv("TABLE", DefaultTable),
		Topic:    getEnv("TOPIC", ""),
		Region:   getEnv("AWS_REGION", ""),
		LogLevel: level,
	}, nil
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
