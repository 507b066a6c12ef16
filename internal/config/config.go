package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	App          AppConfig
	OAuth2Google OAuth2GoogleConfig
	SMTP         SMTPConfig
	Telemetry    TelemetryConfig
	Payroll      PayrollConfig
	Worker       WorkerConfig
}

type DatabaseConfig struct {
	Host          string `envconfig:"DB_HOST" default:"localhost"`
	Port          int    `envconfig:"DB_PORT" default:"5432"`
	User          string `envconfig:"DB_USER" default:"postgres"`
	Password      string `envconfig:"DB_PASSWORD"`
	Name          string `envconfig:"DB_NAME" default:"cmlabs-hrms"`
	SSLMode       string `envconfig:"DB_SSL_MODE" default:"disable"`
	MigrationsDir string `envconfig:"DB_MIGRATIONS_DIR" default:"migrations"`
	AutoMigrate   bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`

	MaxConns        int32         `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns        int32         `envconfig:"DB_MIN_CONNS" default:"5"`
	MaxConnIdleTime time.Duration `envconfig:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL time.Duration `envconfig:"REDIS_CACHE_TTL" default:"5m"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string `envconfig:"JWT_SECRET_KEY"`
	RefreshExpiration string `envconfig:"JWT_REFRESH_EXPIRATION_TIME" default:"168h"`
	AccessExpiration  string `envconfig:"JWT_ACCESS_EXPIRATION_TIME" default:"1h"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Name            string        `envconfig:"APP_NAME" default:"hrms-cmlabs"`
	Version         string        `envconfig:"APP_VERSION" default:"v1.0.0"`
	Port            int           `envconfig:"APP_PORT" default:"8080"`
	Env             string        `envconfig:"APP_ENV" default:"development"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	AllowedOrigins  []string      `envconfig:"APP_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	FrontendURL     string        `envconfig:"APP_FRONTEND_URL" default:"http://localhost:3000"`
	RateLimit       int           `envconfig:"APP_RATE_LIMIT" default:"120"`
	LoginRateLimit  int           `envconfig:"APP_LOGIN_RATE_LIMIT" default:"10"`
	ShutdownTimeout time.Duration `envconfig:"APP_SHUTDOWN_TIMEOUT" default:"15s"`
}

type OAuth2GoogleConfig struct {
	ClientID     string   `envconfig:"CLIENT_ID"`
	ClientSecret string   `envconfig:"CLIENT_SECRET"`
	RedirectURL  string   `envconfig:"REDIRECT_URL"`
	Scopes       []string `envconfig:"SCOPES"`
}

type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USERNAME"`
	Password string `envconfig:"SMTP_PASSWORD"`
	From     string `envconfig:"SMTP_FROM" default:"no-reply@hrms.local"`
	FromName string `envconfig:"SMTP_FROM_NAME" default:"HRMS"`
}

type TelemetryConfig struct {
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

type PayrollConfig struct {
	TaxRate string `envconfig:"PAYROLL_TAX_RATE" default:"0.05"`
}

// WorkerConfig tunes the background job process.
type WorkerConfig struct {
	Concurrency  int    `envconfig:"WORKER_CONCURRENCY" default:"5"`
	MetricsPort  int    `envconfig:"WORKER_METRICS_PORT" default:"9091"`
	RolloverCron string `envconfig:"WORKER_ROLLOVER_CRON"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	config := &Config{}
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return errors.New("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.ParseDuration(c.JWT.RefreshExpiration); err != nil {
		return fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_TIME: %w", err)
	}
	// Google login is optional, but a partial setup is a mistake.
	if c.OAuth2Google.ClientID != "" {
		if c.OAuth2Google.ClientSecret == "" {
			return errors.New("CLIENT_SECRET is required when CLIENT_ID is set")
		}
		if c.OAuth2Google.RedirectURL == "" {
			return errors.New("REDIRECT_URL is required when CLIENT_ID is set")
		}
		if len(c.OAuth2Google.Scopes) == 0 {
			return errors.New("SCOPES is required when CLIENT_ID is set")
		}
	}
	return nil
}

// IsProduction reports whether the app runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.App.Env == "production"
}

// PoolOptions maps the pool settings onto database options.
func (d DatabaseConfig) PoolOptions() []database.Option {
	return []database.Option{
		database.WithPoolSize(d.MaxConns, d.MinConns),
		database.WithMaxConnIdleTime(d.MaxConnIdleTime),
	}
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
