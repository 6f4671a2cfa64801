package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings loaded from the environment
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	OpenAI   OpenAIConfig
	Session  SessionConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string
	Port string
	Env  string // "development" or "production"
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Type string // "sqlite" or "postgres"
	DSN  string
}

// OpenAIConfig holds settings for the word-generation client
type OpenAIConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// SessionConfig holds login session settings
type SessionConfig struct {
	TTL time.Duration
}

// Load reads configuration from the environment, with a .env file as an
// optional source. The OpenAI API key is the only required value.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	dbType := getEnv("DB_TYPE", "sqlite")
	dsn, err := buildDSN(dbType)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Type: dbType,
			DSN:  dsn,
		},
		OpenAI: OpenAIConfig{
			APIKey:  apiKey,
			Model:   getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
			Timeout: getDuration("OPENAI_TIMEOUT", 15*time.Second),
		},
		Session: SessionConfig{
			TTL: getDuration("SESSION_TTL", 24*time.Hour),
		},
	}, nil
}

func buildDSN(dbType string) (string, error) {
	switch dbType {
	case "postgres":
		host := getEnv("DB_HOST", "localhost")
		port := getEnv("DB_PORT", "5432")
		user := getEnv("DB_USER", "postgres")
		password := getEnv("DB_PASSWORD", "postgres")
		name := getEnv("DB_NAME", "linguaweb")
		sslMode := getEnv("DB_SSLMODE", "disable")
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, name, sslMode,
		), nil
	case "sqlite":
		return getEnv("SQLITE_PATH", "data/linguaweb.db"), nil
	default:
		return "", fmt.Errorf("unsupported DB_TYPE: %s", dbType)
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return defaultValue
}
