package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	App     AppConfig
	Logging LoggingConfig
	Redis   RedisConfig

	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	DBMigrate         bool
	JWTSecret         string
	JWTAccessTokenTTL time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	UploadDir      string
	MaxUploadBytes int64
}

// AppConfig identifies the running service in logs.
type AppConfig struct {
	Name        string
	Environment string
	Version     string
}

type LoggingConfig struct {
	Level    string
	Format   string // json | console
	Output   string // stdout | stderr | file
	FilePath string
}

// RedisConfig is optional; an empty Address selects the in-memory rate limiter.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{}
	var err error

	// Application environment (default: dev)
	cfg.App.Environment = getEnv("APP_ENV", "dev")
	cfg.IsProduction = cfg.App.Environment == PROD_STRING
	cfg.App.Name = getEnv("APP_NAME", "shareit")
	cfg.App.Version = getEnv("APP_VERSION", "dev")

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	cfg.DBMigrate, err = getEnvAsBool("DB_MIGRATE", true)
	if err != nil {
		return nil, err
	}

	// JWT secret is optional. Without it only the X-Sharer-User-Id header identifies callers.
	cfg.JWTSecret = os.Getenv("JWT_SECRET")

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	ttlStr := getEnv("JWT_ACCESS_TOKEN_TTL", "15m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.JWTAccessTokenTTL = ttl

	cfg.Logging = LoggingConfig{
		Level:    getEnv("LOG_LEVEL", "info"),
		Format:   getEnv("LOG_FORMAT", "json"),
		Output:   getEnv("LOG_OUTPUT", "stdout"),
		FilePath: getEnv("LOG_FILE_PATH", ""),
	}

	cfg.Redis.Address = getEnv("REDIS_ADDR", "")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB, err = getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	cfg.RateLimitRPS, err = getEnvAsFloat("RATE_LIMIT_RPS", 5)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitBurst, err = getEnvAsInt("RATE_LIMIT_BURST", 10)
	if err != nil {
		return nil, err
	}

	cfg.UploadDir = getEnv("UPLOAD_DIR", "./uploads")
	maxUpload, err := getEnvAsInt("MAX_UPLOAD_BYTES", 5<<20)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadBytes = int64(maxUpload)

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid number: %w", key, valStr, err)
	}

	return val, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false, fmt.Errorf("env %s value %q is not a valid bool: %w", key, valStr, err)
	}

	return val, nil
}
