package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Security SecurityConfig
	Jobs     JobsConfig
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Version     string
	LogLevel    string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	GracefulTimeout time.Duration
}

// DatabaseConfig holds Postgres configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int32
	MinConnections  int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
	RunMigrations   bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

// SecurityConfig holds auth configuration
type SecurityConfig struct {
	JWTSecret     string
	JWTExpiration time.Duration
	AdminUser     string
	AdminPassword string
}

// JobsConfig holds background job configuration
type JobsConfig struct {
	Enabled            bool
	LowStockThreshold  int
	LowStockInterval   time.Duration
}

// Addr returns host:port for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// Addr returns host:port for Redis.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// URL builds the database connection URL used by the migrator.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// DSN builds the keyword/value DSN used by pgxpool.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
		int(d.ConnectTimeout.Seconds()),
	)
}

// Load loads configuration from environment variables, reading a .env file
// first when running in development.
func Load(logger *zap.Logger) (*Config, error) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	env := getEnv("APP_ENV", "development")

	if env == "development" || env == "local" {
		if err := godotenv.Load(); err != nil {
			logger.Debug("no .env file found, using environment variables")
		}
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "tienda"),
			Environment: env,
			Version:     getEnv("APP_VERSION", "dev"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnv("PORT", "8080"),
			GracefulTimeout: getDurationEnv("SERVER_GRACEFUL_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "tienda"),
			Password:        getEnv("DB_PASSWORD", "tienda"),
			Name:            getEnv("DB_NAME", "tienda"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConnections:  int32(getIntEnv("DB_MAX_CONNECTIONS", 25)),
			MinConnections:  int32(getIntEnv("DB_MIN_CONNECTIONS", 2)),
			MaxConnLifetime: getDurationEnv("DB_CONNECTION_LIFETIME", time.Hour),
			MaxConnIdleTime: getDurationEnv("DB_IDLE_TIME", 30*time.Minute),
			ConnectTimeout:  getDurationEnv("DB_CONNECT_TIMEOUT", 10*time.Second),
			RunMigrations:   getBoolEnv("DB_RUN_MIGRATIONS", true),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
			TTL:      getDurationEnv("REDIS_TTL", 15*time.Minute),
		},
		Security: SecurityConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			JWTExpiration: getDurationEnv("JWT_EXPIRATION", 24*time.Hour),
			AdminUser:     getEnv("ADMIN_USER", "admin"),
			AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		},
		Jobs: JobsConfig{
			Enabled:           getBoolEnv("JOBS_ENABLED", true),
			LowStockThreshold: getIntEnv("LOW_STOCK_THRESHOLD", 10),
			LowStockInterval:  getDurationEnv("LOW_STOCK_INTERVAL", time.Hour),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks required values that have no safe default.
func (c *Config) Validate() error {
	if c.Security.JWTSecret == "" && c.App.Environment == "production" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	if c.Security.AdminPassword == "" && c.App.Environment == "production" {
		return fmt.Errorf("ADMIN_PASSWORD is required in production")
	}
	if c.Jobs.LowStockThreshold < 0 {
		return fmt.Errorf("LOW_STOCK_THRESHOLD cannot be negative")
	}
	return nil
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if viper.IsSet(key) {
		if d := viper.GetDuration(key); d > 0 {
			return d
		}
	}
	return defaultValue
}
