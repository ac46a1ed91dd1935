package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAccessSecret  = "dev-access-secret"
	defaultRefreshSecret = "dev-refresh-secret"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Lifecycle LifecycleConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	CORSAllowOrigins      string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	AccessSecret           string
	RefreshSecret          string
	AccessTokenTTLMinutes  int
	RefreshTokenTTLHours   int
	BcryptCost             int
	RateLimitMax           int
	RateLimitWindowMinutes int
}

// LifecycleConfig toggles status transition enforcement.
type LifecycleConfig struct {
	StrictTransitions bool
}

// Load reads configuration from the environment (and a .env file when present),
// applying defaults for unset keys. Malformed values are reported, not defaulted.
func Load() (*Config, error) {
	_ = godotenv.Load()

	env := &envReader{}
	cfg := &Config{
		App: AppConfig{
			Name:                  env.str("APP_NAME", "jobboard-service"),
			Env:                   env.str("APP_ENV", "development"),
			Host:                  env.str("APP_HOST", "0.0.0.0"),
			Port:                  env.str("APP_PORT", "8080"),
			Version:               env.str("APP_VERSION", "dev"),
			RequestTimeoutSeconds: env.intVal("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			CORSAllowOrigins:      env.str("CORS_ALLOW_ORIGINS", "http://localhost:5000"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(env.intVal("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(env.intVal("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  env.boolVal("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir:  env.str("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: int32(env.intVal("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(env.intVal("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     env.str("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       env.intVal("REDIS_DB", 0),
		},
		Logger: LoggerConfig{
			Level: env.str("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			AccessSecret:           env.str("AUTH_JWT_ACCESS_SECRET", defaultAccessSecret),
			RefreshSecret:          env.str("AUTH_JWT_REFRESH_SECRET", defaultRefreshSecret),
			AccessTokenTTLMinutes:  env.intVal("AUTH_ACCESS_TOKEN_TTL_MINUTES", 15),
			RefreshTokenTTLHours:   env.intVal("AUTH_REFRESH_TOKEN_TTL_HOURS", 7*24),
			BcryptCost:             env.intVal("AUTH_BCRYPT_COST", 10),
			RateLimitMax:           env.intVal("AUTH_RATE_LIMIT_MAX", 30),
			RateLimitWindowMinutes: env.intVal("AUTH_RATE_LIMIT_WINDOW_MINUTES", 15),
		},
		Lifecycle: LifecycleConfig{
			StrictTransitions: env.boolVal("LIFECYCLE_STRICT_TRANSITIONS", false),
		},
	}
	if err := env.err(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.AccessSecret == c.Auth.RefreshSecret {
		return errors.New("access and refresh secrets must differ")
	}
	if c.App.IsProduction() {
		if c.Auth.AccessSecret == defaultAccessSecret || c.Auth.RefreshSecret == defaultRefreshSecret {
			return errors.New("default JWT secrets are not allowed in production")
		}
		if strings.TrimSpace(c.Postgres.DSN) == "" {
			return errors.New("POSTGRES_DSN is required in production")
		}
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// IsProduction reports whether the service runs with production hardening.
func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Env, "production")
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// AccessTTL returns the access token lifetime.
func (a AuthConfig) AccessTTL() time.Duration {
	if a.AccessTokenTTLMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// RefreshTTL returns the refresh token lifetime.
func (a AuthConfig) RefreshTTL() time.Duration {
	if a.RefreshTokenTTLHours <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(a.RefreshTokenTTLHours) * time.Hour
}

// RateLimitWindow returns the sliding window for auth rate limiting.
func (a AuthConfig) RateLimitWindow() time.Duration {
	if a.RateLimitWindowMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(a.RateLimitWindowMinutes) * time.Minute
}

// envReader collects parse failures so every bad key is reported at once.
type envReader struct {
	errs []error
}

func (r *envReader) str(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func (r *envReader) intVal(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("invalid %s: %q is not an integer", key, val))
		return fallback
	}
	return parsed
}

func (r *envReader) boolVal(key string, fallback bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("invalid %s: %q is not a boolean", key, val))
		return fallback
	}
	return parsed
}

func (r *envReader) err() error {
	return errors.Join(r.errs...)
}
