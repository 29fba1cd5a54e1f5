package config

import (
	"os"
	"strconv"
	"time"

	"evidencija/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Session   SessionConfig
	ORS       ORSConfig
	Templates TemplateConfig
	Log       LogConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver string
	URL    string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// SessionConfig holds login session settings
type SessionConfig struct {
	CookieName   string
	TTL          time.Duration
	PruneSpec    string
	SecureCookie bool
}

// ORSConfig holds openrouteservice settings. An empty APIKey disables
// geocoding and routing; the rest of the application keeps working.
type ORSConfig struct {
	APIKey  string
	BaseURL string
	Country string
	Timeout time.Duration
}

// TemplateConfig points at an optional directory overriding the embedded templates
type TemplateConfig struct {
	Dir string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
	JSON  bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	dbConfig, err := loadDatabaseConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load database configuration")
	}
	config.Database = *dbConfig

	config.Server = *loadServerConfig()
	config.Session = *loadSessionConfig()
	config.ORS = *loadORSConfig()
	config.Templates = TemplateConfig{Dir: getEnvOrDefault("TEMPLATES_DIR", "")}
	config.Log = LogConfig{
		Level: getEnvOrDefault("LOG_LEVEL", "INFO"),
		JSON:  getEnvBoolOrDefault("LOG_JSON", false),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDatabaseConfig() (*DatabaseConfig, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	return &DatabaseConfig{
		Driver: getEnvOrDefault("DATABASE_DRIVER", "postgres"),
		URL:    url,
	}, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadSessionConfig() *SessionConfig {
	return &SessionConfig{
		CookieName:   getEnvOrDefault("SESSION_COOKIE", "evidencija_session"),
		TTL:          getEnvDurationOrDefault("SESSION_TTL", 7*24*time.Hour),
		PruneSpec:    getEnvOrDefault("SESSION_PRUNE", "@hourly"),
		SecureCookie: getEnvBoolOrDefault("SESSION_SECURE", false),
	}
}

func loadORSConfig() *ORSConfig {
	return &ORSConfig{
		APIKey:  getEnvOrDefault("ORS_API_KEY", ""),
		BaseURL: getEnvOrDefault("ORS_BASE_URL", "https://api.openrouteservice.org"),
		Country: getEnvOrDefault("ORS_COUNTRY", "HR"),
		Timeout: getEnvDurationOrDefault("ORS_TIMEOUT", 10*time.Second),
	}
}

func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case "postgres", "sqlite3":
	default:
		return errors.ConfigInvalid("DATABASE_DRIVER must be postgres or sqlite3")
	}
	if config.Session.TTL <= 0 {
		return errors.ConfigInvalid("SESSION_TTL must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
