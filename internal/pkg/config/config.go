// Package config provides application configuration management using Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration values.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Log      LogConfig
	App      AppConfig
	Solver   SolverConfig

	// UseDatabase mirrors the original source's USE_DB toggle: true when
	// DATABASE_URL is set, selecting the gorm-backed stores; false selects
	// the JSON-file stores rooted at JSONStorePath.
	UseDatabase   bool
	JSONStorePath string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN returns the PostgreSQL connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// JWTConfig holds JWT authentication configuration.
type JWTConfig struct {
	Secret           string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
	Issuer           string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// AppConfig holds general application configuration.
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
}

// SolverConfig holds solver settings. Only DefaultTimeLimitSeconds is read:
// cmd/api passes it to the schedule module as the time limit used when a
// request doesn't override it. MaxWorkers and DefaultMaxConsec are loaded but
// not read by any caller.
type SolverConfig struct {
	DefaultTimeLimitSeconds int
	MaxWorkers              int
	DefaultMaxConsec        int
}

// IsDevelopment returns true if the application is running in development mode.
func (c AppConfig) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// IsProduction returns true if the application is running in production mode.
func (c AppConfig) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// Load reads configuration from environment variables and returns a Config struct.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnvVars(v)

	cfg := &Config{
		App: AppConfig{
			Name:        v.GetString("APP_NAME"),
			Environment: v.GetString("APP_ENV"),
			Debug:       v.GetBool("APP_DEBUG"),
		},
		Server: ServerConfig{
			Host:         v.GetString("SERVER_HOST"),
			Port:         v.GetInt("SERVER_PORT"),
			ReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:  v.GetDuration("SERVER_IDLE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		JWT: JWTConfig{
			Secret:           v.GetString("JWT_SECRET"),
			AccessExpiresIn:  v.GetDuration("JWT_ACCESS_EXPIRES_IN"),
			RefreshExpiresIn: v.GetDuration("JWT_REFRESH_EXPIRES_IN"),
			Issuer:           v.GetString("JWT_ISSUER"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Solver: SolverConfig{
			DefaultTimeLimitSeconds: v.GetInt("SOLVER_DEFAULT_TIME_LIMIT_SECONDS"),
			MaxWorkers:              v.GetInt("SOLVER_MAX_WORKERS"),
			DefaultMaxConsec:        v.GetInt("SOLVER_DEFAULT_MAX_CONSEC"),
		},
		UseDatabase:   v.GetString("DATABASE_URL") != "",
		JSONStorePath: v.GetString("JSON_STORE_PATH"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "timetable-backend")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_DEBUG", true)

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_READ_TIMEOUT", "15s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "15s")
	v.SetDefault("SERVER_IDLE_TIMEOUT", "60s")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "timetable")
	v.SetDefault("DB_PASSWORD", "timetable_password")
	v.SetDefault("DB_NAME", "timetable")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")

	v.SetDefault("JWT_SECRET", "change-me-in-production")
	v.SetDefault("JWT_ACCESS_EXPIRES_IN", "15m")
	v.SetDefault("JWT_REFRESH_EXPIRES_IN", "168h") // 7 days
	v.SetDefault("JWT_ISSUER", "timetable-backend")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SOLVER_DEFAULT_TIME_LIMIT_SECONDS", 30)
	v.SetDefault("SOLVER_MAX_WORKERS", 8)
	v.SetDefault("SOLVER_DEFAULT_MAX_CONSEC", 0)

	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JSON_STORE_PATH", "./data/storage.json")
}

func bindEnvVars(v *viper.Viper) {
	envVars := []string{
		"APP_NAME", "APP_ENV", "APP_DEBUG",
		"SERVER_HOST", "SERVER_PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_IDLE_TIMEOUT",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME",
		"JWT_SECRET", "JWT_ACCESS_EXPIRES_IN", "JWT_REFRESH_EXPIRES_IN", "JWT_ISSUER",
		"LOG_LEVEL", "LOG_FORMAT",
		"SOLVER_DEFAULT_TIME_LIMIT_SECONDS", "SOLVER_MAX_WORKERS", "SOLVER_DEFAULT_MAX_CONSEC",
		"DATABASE_URL", "JSON_STORE_PATH",
	}

	for _, env := range envVars {
		_ = v.BindEnv(env)
	}
}
