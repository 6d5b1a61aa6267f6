package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL     string
	DBMaxConns      int
	DBTxMaxAttempts int
	MigrationsDir   string

	// Redis
	RedisURL string

	// JWT
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// Gamification
	Timezone           string
	Location           *time.Location
	WheelSpinCost      int
	ShopEnforceCatalog bool

	// Events
	AMQPURL     string
	EventsQueue string

	// Reminders
	ReminderHour int
	WorkerCount  int

	// SMTP
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:               getEnvOrDefault("PORT", "8080"),
		Env:                getEnvOrDefault("ENV", "development"),
		DatabaseURL:        mustGetEnv("DATABASE_URL"),
		DBMaxConns:         getEnvAsIntOrDefault("DB_MAX_CONNS", 25),
		DBTxMaxAttempts:    getEnvAsIntOrDefault("DB_TX_MAX_ATTEMPTS", 5),
		MigrationsDir:      getEnvOrDefault("MIGRATIONS_DIR", "migrations"),
		RedisURL:           mustGetEnv("REDIS_URL"),
		JWTSecret:          mustGetEnv("JWT_SECRET"),
		AccessTokenTTL:     time.Duration(getEnvAsIntOrDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		RefreshTokenTTL:    getEnvAsDurationOrDefault("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		Timezone:           getEnvOrDefault("TIMEZONE", "UTC"),
		WheelSpinCost:      getEnvAsIntOrDefault("WHEEL_SPIN_COST", 10),
		ShopEnforceCatalog: getEnvAsBoolOrDefault("SHOP_ENFORCE_CATALOG", true),
		AMQPURL:            getEnvOrDefault("AMQP_URL", ""),
		EventsQueue:        getEnvOrDefault("EVENTS_QUEUE", "focus.events"),
		ReminderHour:       getEnvAsIntOrDefault("REMINDER_HOUR", 19),
		WorkerCount:        getEnvAsIntOrDefault("WORKER_COUNT", 3),
		SMTPHost:           getEnvOrDefault("SMTP_HOST", ""),
		SMTPPort:           getEnvOrDefault("SMTP_PORT", "587"),
		SMTPUser:           getEnvOrDefault("SMTP_USER", ""),
		SMTPPass:           getEnvOrDefault("SMTP_PASS", ""),
		SMTPFrom:           getEnvOrDefault("SMTP_FROM", "noreply@focus.app"),
		FrontendURL:        getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("⚠ Unknown TIMEZONE %q, falling back to UTC", cfg.Timezone)
		loc = time.UTC
		cfg.Timezone = "UTC"
	}
	cfg.Location = loc

	if cfg.WheelSpinCost < 0 {
		cfg.WheelSpinCost = 10
	}
	if cfg.ReminderHour < 0 || cfg.ReminderHour > 23 {
		cfg.ReminderHour = 19
	}

	return cfg
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate rejects settings that are only acceptable in development.
func (c *Config) Validate() error {
	if !c.IsProduction() {
		return nil
	}
	if !c.ShopEnforceCatalog {
		return errors.New("SHOP_ENFORCE_CATALOG=false trusts client prices and is not allowed in production")
	}
	for _, o := range strings.Split(c.FrontendURL, ",") {
		if strings.TrimSpace(o) == "*" {
			return errors.New("FRONTEND_URL must list explicit origins in production")
		}
	}
	return nil
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
