package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration options for the worktrack service
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Sweep    SweepConfig
	Log      LogConfig
	Environ  string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string        `env:"WT_HTTP_PORT"`
	ReadTimeout     time.Duration `env:"WT_HTTP_READ_TIMEOUT"`
	WriteTimeout    time.Duration `env:"WT_HTTP_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"WT_HTTP_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path string `env:"WT_DB_PATH"`
}

// SweepConfig holds inactivity sweeper configuration
type SweepConfig struct {
	Schedule   string `env:"WT_SWEEP_SCHEDULE"`
	CronSecret string `env:"WT_CRON_SECRET"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `env:"WT_LOG_LEVEL"`
}

// Load reads configuration from a .env file (if present) and the process
// environment, falling back to sensible defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// No .env file is fine; the process environment wins anyway.
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		Server: ServerConfig{
			Port:            getEnv("WT_HTTP_PORT", "8080"),
			ReadTimeout:     getEnvDuration("WT_HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("WT_HTTP_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getEnvDuration("WT_HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Path: getEnv("WT_DB_PATH", "worktrack.db"),
		},
		Sweep: SweepConfig{
			Schedule:   getEnv("WT_SWEEP_SCHEDULE", "*/5 * * * *"),
			CronSecret: getEnv("WT_CRON_SECRET", ""),
		},
		Log: LogConfig{
			Level: getEnv("WT_LOG_LEVEL", "info"),
		},
		Environ: getEnv("WT_ENV", "production"),
	}
}

// IsDev reports whether the service runs in a development environment
func (c *Config) IsDev() bool {
	return c.Environ == "development"
}

func getEnv(key string, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
