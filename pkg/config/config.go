package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/platinummonkey/menuboard/pkg/observability"
)

// MinJWTSecretLength is the shortest accepted signing secret, in bytes
const MinJWTSecretLength = 16

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Authentication configuration
	Auth AuthConfig

	// Observability configuration
	Observability ObservabilityConfig

	// PublicUserID owns the menus served by /getPublicMenus
	PublicUserID int64
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	MaxBodyBytes    int64

	// Health/metrics server (separate port for k8s probes)
	OpsPort string
}

// DatabaseConfig holds PostgreSQL settings
type DatabaseConfig struct {
	URL         string
	MaxConns    int
	MinConns    int
	Timeout     time.Duration
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
	AutoMigrate bool
}

// AuthConfig holds token signing settings
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	// Logging
	LogLevel observability.LogLevel

	// Metrics
	MetricsEnabled bool

	// OpenTelemetry
	OTelEnabled        bool
	OTelEndpoint       string
	OTelServiceName    string
	OTelServiceVersion string
	OTelInsecure       bool // Use insecure gRPC connection
	OTelSampleRatio    float64
}

// LoadConfig loads configuration from environment variables. Variables from
// envFiles (".env" when none are given) are applied first without overriding
// the real environment; a missing file is not an error.
func LoadConfig(envFiles ...string) (*Config, error) {
	if err := loadDotEnv(envFiles...); err != nil {
		return nil, err
	}

	cfg := &Config{
		Server:        loadServerConfig(),
		Database:      loadDatabaseConfig(),
		Auth:          loadAuthConfig(),
		Observability: loadObservabilityConfig(),
		PublicUserID:  getEnvInt64("MENUBOARD_PUBLIC_USER_ID", 2),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// loadServerConfig loads server configuration from environment
func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("MENUBOARD_HOST", "0.0.0.0"),
		Port:            getEnv("MENUBOARD_PORT", "8080"),
		ReadTimeout:     getEnvDuration("MENUBOARD_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("MENUBOARD_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("MENUBOARD_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("MENUBOARD_SHUTDOWN_TIMEOUT", 30*time.Second),
		CORSOrigins:     getEnvList("MENUBOARD_CORS_ORIGINS"),
		MaxBodyBytes:    getEnvInt64("MENUBOARD_MAX_BODY_BYTES", 1<<20),
		OpsPort:         getEnv("MENUBOARD_OPS_PORT", "9090"),
	}
}

// loadDatabaseConfig loads PostgreSQL configuration from environment
func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URL:         getEnv("MENUBOARD_POSTGRES_URL", ""),
		MaxConns:    getEnvInt("MENUBOARD_POSTGRES_MAX_CONNS", 20),
		MinConns:    getEnvInt("MENUBOARD_POSTGRES_MIN_CONNS", 2),
		Timeout:     getEnvDuration("MENUBOARD_POSTGRES_TIMEOUT", 5*time.Second),
		MaxLifetime: getEnvDuration("MENUBOARD_POSTGRES_MAX_LIFETIME", 30*time.Minute),
		MaxIdleTime: getEnvDuration("MENUBOARD_POSTGRES_MAX_IDLE_TIME", 5*time.Minute),
		AutoMigrate: getEnvBool("MENUBOARD_AUTO_MIGRATE", true),
	}
}

// loadAuthConfig loads token configuration from environment
func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret: getEnv("MENUBOARD_JWT_SECRET", ""),
		TokenTTL:  getEnvDuration("MENUBOARD_TOKEN_TTL", 2*time.Hour),
	}
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:           observability.ParseLogLevel(strings.ToLower(getEnv("MENUBOARD_LOG_LEVEL", "info"))),
		MetricsEnabled:     getEnvBool("MENUBOARD_METRICS_ENABLED", true),
		OTelEnabled:        getEnvBool("MENUBOARD_OTEL_ENABLED", false),
		OTelEndpoint:       getEnv("MENUBOARD_OTEL_ENDPOINT", "localhost:4317"),
		OTelServiceName:    getEnv("MENUBOARD_OTEL_SERVICE_NAME", "menuboard"),
		OTelServiceVersion: getEnv("MENUBOARD_OTEL_SERVICE_VERSION", "1.0.0"),
		OTelInsecure:       getEnvBool("MENUBOARD_OTEL_INSECURE", true),
		OTelSampleRatio:    getEnvFloat("MENUBOARD_OTEL_SAMPLE_RATIO", 1.0),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.OpsPort == "" {
		return fmt.Errorf("ops port is required")
	}
	if c.Server.Port == c.Server.OpsPort {
		return fmt.Errorf("server port and ops port must be different")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("postgres URL is required (MENUBOARD_POSTGRES_URL)")
	}
	if c.Database.MaxConns > 0 && c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("postgres min conns (%d) exceeds max conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required (MENUBOARD_JWT_SECRET)")
	}
	if len(c.Auth.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("JWT secret must be at least %d bytes", MinJWTSecretLength)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive")
	}

	if c.PublicUserID <= 0 {
		return fmt.Errorf("public user id must be positive, got %d", c.PublicUserID)
	}

	if c.Observability.OTelEnabled {
		if c.Observability.OTelEndpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.Observability.OTelServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when OTel is enabled")
		}
	}

	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvInt64 returns an int64 environment variable or a default
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat returns a float environment variable or a default
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvList splits a comma-separated environment variable, dropping blanks
func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
