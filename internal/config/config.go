package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
)

// Backends de almacenamiento soportados.
const (
	BackendPostgres = "postgres"
	BackendDynamoDB = "dynamodb"
	BackendRedis    = "redis"
	BackendBadger   = "badger"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort         string `env:"HTTP_PORT" envDefault:"8080"`
	TableName        string `env:"TABLE_NAME,required"`
	StoreBackend     string `env:"STORE_BACKEND" envDefault:"postgres"`
	DatabaseURL      string `env:"DATABASE_URL"`
	AWSRegion        string `env:"AWS_REGION"`
	DynamoDBEndpoint string `env:"DYNAMODB_ENDPOINT"`
	RedisAddr        string `env:"REDIS_ADDR"`
	RedisPassword    string `env:"REDIS_PASSWORD"`
	RedisDB          int    `env:"REDIS_DB" envDefault:"0"`
	BadgerPath       string `env:"BADGER_PATH" envDefault:"data/badger"`
	SQLitePath       string `env:"SQLITE_PATH" envDefault:"data/messages.db"`
	CORSAllowOrigin  string `env:"CORS_ALLOW_ORIGIN" envDefault:"*"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate comprueba que el backend elegido tenga lo que necesita.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TableName) == "" {
		return fmt.Errorf("TABLE_NAME is required")
	}
	switch c.StoreBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for store backend %q", c.StoreBackend)
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for store backend %q", c.StoreBackend)
		}
	case BackendBadger:
		if c.BadgerPath == "" {
			return fmt.Errorf("BADGER_PATH is required for store backend %q", c.StoreBackend)
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for store backend %q", c.StoreBackend)
		}
	case BackendDynamoDB, BackendMemory:
	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
	return nil
}
