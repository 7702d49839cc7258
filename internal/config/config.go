package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Reconcile ReconcileConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// ReconcileConfig holds the attendance reconciliation policy options.
type ReconcileConfig struct {
	ShiftMaxHours     float64 // daily overtime cap
	LactationMaxHours float64 // reduced cap during an active lactation period
	ToleranceHours    float64 // lone punch to schedule boundary matching window
	GraceWindowDays   int     // rolling window for the autocomplete budget
	GraceLimit        int     // autocompletions allowed inside the window
	FallbackMode      string  // "employee" or "department"
	TimezoneOffsetHrs int     // fixed civil zone for all interval arithmetic
	Workers           int     // per-employee reconciliation fan-out
}

func Load() (*Config, error) {
	// Missing .env is fine in containers; env vars take over.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timeclock"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), ","),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Reconciliation policy
	shiftCap, err := getEnvFloat("SHIFT_MAX_HOURS", 8)
	if err != nil {
		return nil, err
	}
	lactationCap, err := getEnvFloat("LACTATION_MAX_HOURS", 6)
	if err != nil {
		return nil, err
	}
	tolerance, err := getEnvFloat("RANGE_OF_TOLERANCE_HOURS", 2)
	if err != nil {
		return nil, err
	}
	graceWindow, err := getEnvInt("GRACE_WINDOW_DAYS", 30)
	if err != nil {
		return nil, err
	}
	graceLimit, err := getEnvInt("GRACE_LIMIT", 3)
	if err != nil {
		return nil, err
	}
	tzOffset, err := getEnvInt("ATTENDANCE_TZ_OFFSET_HOURS", -5)
	if err != nil {
		return nil, err
	}
	workers, err := getEnvInt("RECONCILE_WORKERS", 4)
	if err != nil {
		return nil, err
	}

	config.Reconcile = ReconcileConfig{
		ShiftMaxHours:     shiftCap,
		LactationMaxHours: lactationCap,
		ToleranceHours:    tolerance,
		GraceWindowDays:   graceWindow,
		GraceLimit:        graceLimit,
		FallbackMode:      getEnv("ATTENDANCE_FALLBACK", "employee"),
		TimezoneOffsetHrs: tzOffset,
		Workers:           workers,
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
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Reconcile.FallbackMode != "employee" && c.Reconcile.FallbackMode != "department" {
		return fmt.Errorf("ATTENDANCE_FALLBACK must be employee or department")
	}
	if c.Reconcile.Workers < 1 {
		return fmt.Errorf("RECONCILE_WORKERS must be at least 1")
	}
	if c.Reconcile.GraceLimit < 0 || c.Reconcile.GraceWindowDays < 1 {
		return fmt.Errorf("grace period configuration is invalid")
	}
	return nil
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

// Timezone returns the fixed civil zone reconciliation computes in.
// The zone has no DST; only ingestion and assembly cross the UTC boundary.
func (c *Config) Timezone() *time.Location {
	name := fmt.Sprintf("UTC%+03d:00", c.Reconcile.TimezoneOffsetHrs)
	return time.FixedZone(name, c.Reconcile.TimezoneOffsetHrs*3600)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
