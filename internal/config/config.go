package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full gateway configuration, loaded from the environment
// with optional .env support.
type Config struct {
	Server   ServerConfig
	Backends BackendsConfig
	Client   ClientConfig
	Cache    CacheConfig
	Redis    RedisConfig
	Session  SessionConfig
	Log      LogConfig
	CORS     CORSConfig
	Metrics  MetricsConfig
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// BackendsConfig holds the base URLs of the clinic backends.
type BackendsConfig struct {
	Appointment string
	Reservation string
	User        string
	Billing     string
}

// ClientConfig configures the outbound HTTP client. A zero timeout leaves
// hung requests to the transport, matching the frontend this replaces.
type ClientConfig struct {
	Timeout time.Duration
}

// CacheConfig selects the identity cache backend.
type CacheConfig struct {
	Enabled bool
	Type    string // memory or redis
}

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig holds the identity cache TTL and the session idle eviction
// TTL.
type SessionConfig struct {
	IdentityTTL time.Duration
	IdleTTL     time.Duration
}

// LogConfig holds the logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// CORSConfig holds the CORS settings of the gateway surface.
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

// Load reads configuration from the environment. A missing .env file is not
// an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Backends: BackendsConfig{
			Appointment: getEnv("APPOINTMENT_BASE_URL", "http://localhost:8081"),
			Reservation: getEnv("RESERVATION_BASE_URL", "http://localhost:8083"),
			User:        getEnv("USER_BASE_URL", "http://localhost:8084"),
			Billing:     getEnv("BILLING_BASE_URL", "http://localhost:8085"),
		},
		Client: ClientConfig{
			Timeout: getEnvDuration("CLIENT_TIMEOUT", 0),
		},
		Cache: CacheConfig{
			Enabled: getEnvBool("CACHE_ENABLED", true),
			Type:    getEnv("CACHE_TYPE", "memory"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			IdentityTTL: getEnvDuration("SESSION_IDENTITY_TTL", 5*time.Minute),
			IdleTTL:     getEnvDuration("SESSION_IDLE_TTL", 30*time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders: getEnvSlice("CORS_ALLOWED_HEADERS", []string{"Accept", "Authorization", "Content-Type"}),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
		},
	}

	return cfg, nil
}

// Validate checks that every backend base URL is set.
func (c *Config) Validate() error {
	backends := map[string]string{
		"APPOINTMENT_BASE_URL": c.Backends.Appointment,
		"RESERVATION_BASE_URL": c.Backends.Reservation,
		"USER_BASE_URL":        c.Backends.User,
		"BILLING_BASE_URL":     c.Backends.Billing,
	}
	for name, value := range backends {
		if value == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}

	if c.Cache.Type != "memory" && c.Cache.Type != "redis" {
		return fmt.Errorf("unsupported cache type: %s", c.Cache.Type)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return fallback
}
