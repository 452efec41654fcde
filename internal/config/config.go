package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration
type Config struct {
	BotToken           string
	BotPassword        string
	SessionIdleTimeout time.Duration
	Database           DatabaseConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	SQLitePath string
}

// Load reads the bot configuration from environment variables
func Load() (*Config, error) {
	db, err := LoadDatabase()
	if err != nil {
		return nil, err
	}

	idle, err := time.ParseDuration(getEnv("SESSION_IDLE_TIMEOUT", "2h"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_IDLE_TIMEOUT is invalid: %w", err)
	}
	if idle <= 0 {
		return nil, fmt.Errorf("SESSION_IDLE_TIMEOUT must be positive")
	}

	cfg := &Config{
		BotToken:           os.Getenv("BOT_TOKEN"),
		BotPassword:        os.Getenv("BOT_PASSWORD"),
		SessionIdleTimeout: idle,
		Database:           *db,
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.BotPassword == "" {
		return nil, fmt.Errorf("BOT_PASSWORD is required")
	}

	return cfg, nil
}

// LoadDatabase reads only the database settings, for tools that don't run the bot
func LoadDatabase() (*DatabaseConfig, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	db := &DatabaseConfig{
		Driver:     getEnv("DB_DRIVER", DriverPostgres),
		Host:       getEnv("DB_HOST", "localhost"),
		Port:       getEnv("DB_PORT", "5432"),
		Name:       getEnv("DB_NAME", "linguahouse"),
		User:       getEnv("DB_USER", "linguahouse"),
		Password:   os.Getenv("DB_PASSWORD"),
		SQLitePath: getEnv("SQLITE_PATH", "data/linguahouse.db"),
	}

	switch db.Driver {
	case DriverPostgres:
		if db.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required")
		}
	case DriverSQLite:
	default:
		return nil, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, db.Driver)
	}

	return db, nil
}

// DSN returns PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
