package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

// Config holds configuration shared by the redirector and shortener binaries.
// Every value comes from the environment (optionally seeded from .env).
type Config struct {
	// Server configuration
	Environment   string
	ServerPort    string // redirector
	ShortenerPort string

	// Redis configuration
	RedisHost         string
	RedisPort         string
	RedisPassword     string
	RedisDB           int
	RedisKeyPrefix    string
	RedisDialTimeout  time.Duration
	RedisReadTimeout  time.Duration
	RedisWriteTimeout time.Duration
	RedisPoolSize     int

	// LookupTimeout bounds a single redirect lookup on top of the client's
	// own read timeout. Zero disables it.
	LookupTimeout time.Duration

	// Shortener settings
	RedirectBaseURL        string
	ShortCodeLength        int
	CodeAllocationAttempts int
	RateLimitPerMinute     int
	StrictURLValidation    bool
	EnableAuthentication   bool
	APIKey                 string
	CORSAllowedOrigin      string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		ServerPort:    getEnv("PORT", "3000"),
		ShortenerPort: getEnv("SHORTENER_PORT", "5000"),

		RedisHost:         getEnv("REDIS_HOST", "localhost"),
		RedisPort:         getEnv("REDIS_PORT", "6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		RedisKeyPrefix:    getEnv("REDIS_KEY_PREFIX", ""),
		RedisDialTimeout:  getEnvAsMillis("REDIS_DIAL_TIMEOUT_MS", 5000),
		RedisReadTimeout:  getEnvAsMillis("REDIS_READ_TIMEOUT_MS", 3000),
		RedisWriteTimeout: getEnvAsMillis("REDIS_WRITE_TIMEOUT_MS", 3000),
		RedisPoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),

		LookupTimeout: getEnvAsMillis("LOOKUP_TIMEOUT_MS", 0),

		RedirectBaseURL:        getEnv("REDIRECT_BASE_URL", ""),
		ShortCodeLength:        getEnvAsInt("SHORT_CODE_LENGTH", 5),
		CodeAllocationAttempts: getEnvAsInt("CODE_ALLOCATION_ATTEMPTS", 10),
		RateLimitPerMinute:     getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		StrictURLValidation:    getEnvAsBool("STRICT_URL_VALIDATION", false),
		EnableAuthentication:   getEnvAsBool("ENABLE_AUTHENTICATION", false),
		APIKey:                 getEnv("API_KEY", ""),
		CORSAllowedOrigin:      getEnv("CORS_ALLOWED_ORIGIN", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings every binary depends on: the redirector's
// listen port and the Redis connection.
func (c *Config) Validate() error {
	if err := validatePort("PORT", c.ServerPort); err != nil {
		return err
	}

	if err := validatePort("REDIS_PORT", c.RedisPort); err != nil {
		return err
	}

	if c.RedisHost == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	if c.RedisDialTimeout < 0 || c.RedisReadTimeout < 0 || c.RedisWriteTimeout < 0 || c.LookupTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}

	return nil
}

// ValidateShortener checks the settings only the shortener reads
func (c *Config) ValidateShortener() error {
	if err := validatePort("SHORTENER_PORT", c.ShortenerPort); err != nil {
		return err
	}

	if c.ShortCodeLength < 4 || c.ShortCodeLength > 12 {
		return fmt.Errorf("SHORT_CODE_LENGTH must be between 4 and 12, got %d", c.ShortCodeLength)
	}

	if c.CodeAllocationAttempts < 1 {
		return fmt.Errorf("CODE_ALLOCATION_ATTEMPTS must be at least 1, got %d", c.CodeAllocationAttempts)
	}

	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative, got %d", c.RateLimitPerMinute)
	}

	if c.EnableAuthentication && c.APIKey == "" {
		return fmt.Errorf("API_KEY is required when ENABLE_AUTHENTICATION is true")
	}

	return nil
}

func validatePort(name, port string) error {
	p, err := strconv.Atoi(port)
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("%s must be a port number, got %q", name, port)
	}
	return nil
}

// RedisAddr returns the host:port pair for the store
func (c *Config) RedisAddr() string {
	return net.JoinHostPort(c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer or returns default
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsBool reads an environment variable as boolean or returns default
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsMillis(key string, defaultValue int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultValue)) * time.Millisecond
}
