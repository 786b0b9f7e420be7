package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	App      AppConfig
	Log      LogConfig
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
}

// AppConfig holds HTTP server settings.
type AppConfig struct {
	Env              string
	Port             string
	StaticDir        string
	CORSAllowOrigins string
	SeedDemoData     bool
	ShutdownTimeout  time.Duration
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string
	JSON  bool
}

// DatabaseConfig holds database settings.
type DatabaseConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogSQL          bool
}

// RabbitMQConfig holds the event broker settings. An empty URL disables publishing.
type RabbitMQConfig struct {
	URL      string
	Exchange string
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads an optional .env file, then environment variables, on top of defaults.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("STATIC_DIR", "./web")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("SEED_DEMO_DATA", false)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)

	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("LOG_JSON", false)

	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "file:inventory.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", time.Hour)
	v.SetDefault("DB_LOG_SQL", false)

	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "inventory")
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:              v.GetString("APP_ENV"),
			Port:             v.GetString("APP_PORT"),
			StaticDir:        v.GetString("STATIC_DIR"),
			CORSAllowOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
			SeedDemoData:     v.GetBool("SEED_DEMO_DATA"),
			ShutdownTimeout:  v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
			JSON:  v.GetBool("LOG_JSON"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:             v.GetString("DATABASE_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			LogSQL:          v.GetBool("DB_LOG_SQL"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      v.GetString("RABBITMQ_URL"),
			Exchange: v.GetString("RABBITMQ_EXCHANGE"),
		},
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "debug"
		if cfg.App.IsProduction() {
			cfg.Log.Level = "info"
		}
	}
	if cfg.App.IsProduction() {
		cfg.Log.JSON = true
	}

	switch cfg.Database.Driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want sqlite or postgres)", cfg.Database.Driver)
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required")
	}
	if cfg.App.Port == "" {
		return nil, fmt.Errorf("APP_PORT is required")
	}
	if !strings.Contains(cfg.App.Port, ":") {
		cfg.App.Port = ":" + cfg.App.Port
	}
	return cfg, nil
}
