package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultCORSOrigins are the frontends the brokerage site is served from.
var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"https://pittmetrorealty.com",
	"https://www.pittmetrorealty.com",
}

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"PORT"`
	ServerTimeout time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`

	// Database Configuration
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSL_MODE"`
	DBTimezone        string        `mapstructure:"DB_TIMEZONE"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DBSource          string        `mapstructure:"-"`

	// Public list reads give up after these ceilings and answer with an empty page.
	ListAcquireTimeout time.Duration `mapstructure:"LIST_ACQUIRE_TIMEOUT_SECONDS"`
	ListRetryAttempts  int           `mapstructure:"LIST_RETRY_ATTEMPTS"`
	ListRetryBackoff   time.Duration `mapstructure:"LIST_RETRY_BACKOFF_MS"`
	ListQueryTimeout   time.Duration `mapstructure:"LIST_QUERY_TIMEOUT_SECONDS"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Email
	SMTPHost       string `mapstructure:"SMTP_HOST"`
	SMTPPort       int    `mapstructure:"SMTP_PORT"`
	SMTPUser       string `mapstructure:"SMTP_USER"`
	SMTPPass       string `mapstructure:"SMTP_PASS"`
	SendGridAPIKey string `mapstructure:"SENDGRID_API_KEY"`
	EmailFrom      string `mapstructure:"EMAIL_FROM"`
	EmailFromName  string `mapstructure:"EMAIL_FROM_NAME"`
	EmailTo        string `mapstructure:"EMAIL_TO"`

	// CORS
	CORSAllowedOrigins []string `mapstructure:"-"`

	// Geocoding
	GoogleMapsAPIKey string        `mapstructure:"GOOGLE_MAPS_API_KEY"`
	NominatimURL     string        `mapstructure:"NOMINATIM_URL"`
	GeocodeTimeout   time.Duration `mapstructure:"GEOCODE_TIMEOUT_SECONDS"`

	// Cron Jobs
	HealthCheckSchedule string `mapstructure:"HEALTH_CHECK_SCHEDULE"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
// Nothing here is mandatory: a missing mail or maps credential only selects a fallback.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("PORT", "3001")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "pittmetro_realty")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	v.SetDefault("DATABASE_URL", "")

	v.SetDefault("LIST_ACQUIRE_TIMEOUT_SECONDS", 8)
	v.SetDefault("LIST_RETRY_ATTEMPTS", 3)
	v.SetDefault("LIST_RETRY_BACKOFF_MS", 1000)
	v.SetDefault("LIST_QUERY_TIMEOUT_SECONDS", 5)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASS", "")
	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("EMAIL_FROM", "noreply@pittmetrorealty.com")
	v.SetDefault("EMAIL_FROM_NAME", "Pitt Metro Realty")
	v.SetDefault("EMAIL_TO", "info@pittmetrorealty.com")

	v.SetDefault("CORS_ALLOWED_ORIGINS", "")

	v.SetDefault("GOOGLE_MAPS_API_KEY", "")
	v.SetDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org")
	v.SetDefault("GEOCODE_TIMEOUT_SECONDS", 5)

	v.SetDefault("HEALTH_CHECK_SCHEDULE", "@every 5m")
}

func fromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Convert duration fields
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.DBConnMaxLifetime = time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute
	cfg.ListAcquireTimeout = time.Duration(v.GetInt("LIST_ACQUIRE_TIMEOUT_SECONDS")) * time.Second
	cfg.ListRetryBackoff = time.Duration(v.GetInt("LIST_RETRY_BACKOFF_MS")) * time.Millisecond
	cfg.ListQueryTimeout = time.Duration(v.GetInt("LIST_QUERY_TIMEOUT_SECONDS")) * time.Second
	cfg.GeocodeTimeout = time.Duration(v.GetInt("GEOCODE_TIMEOUT_SECONDS")) * time.Second

	if cfg.ListRetryAttempts < 1 {
		cfg.ListRetryAttempts = 1
	}

	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = append([]string(nil), DefaultCORSOrigins...)
	}

	cfg.DBSource = cfg.DatabaseURL
	if strings.TrimSpace(cfg.DBSource) == "" {
		cfg.DBSource = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode, cfg.DBTimezone)
	}

	return &cfg, nil
}

// SMTPConfigured reports whether enough SMTP settings are present to deliver mail.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPass != ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
