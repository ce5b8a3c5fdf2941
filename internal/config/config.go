package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EmailProviderResend   = "resend"
	EmailProviderSendGrid = "sendgrid"
)

type Config struct {
	Port            int
	Environment     string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	DBDriver      string
	DatabaseURL   string
	DBAutoMigrate bool

	JWTSecret string
	JWTExpiry time.Duration

	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	NatsURL string

	EmailProvider string
	EmailAPIKey   string
	EmailSender   string

	RateLimitRPS     float64
	RateLimitBurst   int
	LoginRateWindow  time.Duration
	LoginMaxAttempts int
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            GetEnvAsInt("PORT", 8080),
		Environment:     GetEnvAsString("APP_ENV", "development"),
		LogLevel:        GetEnvAsString("LOG_LEVEL", "info"),
		LogFormat:       GetEnvAsString("LOG_FORMAT", ""),
		ShutdownTimeout: GetEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		DBDriver:      GetEnvAsString("DB_DRIVER", DriverPostgres),
		DatabaseURL:   GetEnvAsString("DATABASE_URL", ""),
		DBAutoMigrate: GetEnvAsBool("DB_AUTO_MIGRATE", true),

		JWTSecret: GetEnvAsString("JWT_SECRET_KEY", ""),
		JWTExpiry: GetEnvAsDuration("JWT_EXPIRY", 24*time.Hour),

		RedisURL:      GetEnvAsString("REDIS_URL", ""),
		RedisHost:     GetEnvAsString("REDIS_HOST", "localhost"),
		RedisPort:     GetEnvAsString("REDIS_PORT", "6379"),
		RedisPassword: GetEnvAsString("REDIS_PASSWORD", ""),
		RedisDB:       GetEnvAsInt("REDIS_DB", 0),

		NatsURL: GetEnvAsString("NATS_URL", ""),

		EmailProvider: GetEnvAsString("EMAIL_PROVIDER", EmailProviderResend),
		EmailAPIKey:   GetEnvAsString("EMAIL_API_KEY", ""),
		EmailSender:   GetEnvAsString("EMAIL_SENDER", "notes@localhost"),

		RateLimitRPS:     GetEnvAsFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:   GetEnvAsInt("RATE_LIMIT_BURST", 40),
		LoginRateWindow:  GetEnvAsDuration("LOGIN_RATE_WINDOW", 15*time.Minute),
		LoginMaxAttempts: GetEnvAsInt("LOGIN_MAX_ATTEMPTS", 5),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate reports every missing or inconsistent setting at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.DBDriver))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.JWTSecret == "" && c.IsProduction() {
		errs = append(errs, errors.New("JWT_SECRET_KEY is required in production"))
	}
	if c.JWTExpiry <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRY must be positive"))
	}
	switch c.EmailProvider {
	case EmailProviderResend, EmailProviderSendGrid:
	default:
		errs = append(errs, fmt.Errorf("EMAIL_PROVIDER must be %q or %q, got %q", EmailProviderResend, EmailProviderSendGrid, c.EmailProvider))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}

	return errors.Join(errs...)
}
