package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/contactbook-backend/internal/platform/envutil"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Auth       AuthConfig       `yaml:"auth"`
	Store      StoreConfig      `yaml:"store"`
	Redis      RedisConfig      `yaml:"redis"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Otel       OtelConfig       `yaml:"otel"`
	Pagination PaginationConfig `yaml:"pagination"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	BasePath        string        `yaml:"base_path"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Mode string `yaml:"mode"`
	File string `yaml:"file"`
}

type AuthConfig struct {
	JWTSecretKey   string        `yaml:"jwt_secret_key"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl"`
}

type StoreConfig struct {
	Driver   string         `yaml:"driver"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Postgres PostgresConfig `yaml:"postgres"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Channel  string `yaml:"channel"`
}

type MetricsConfig struct {
	Enabled        bool          `yaml:"enabled"`
	ScrapeInterval time.Duration `yaml:"scrape_interval"`
}

type OtelConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	Headers     string  `yaml:"headers"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type PaginationConfig struct {
	DefaultLimit int `yaml:"default_limit"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Log:  LogConfig{Mode: "development"},
		Auth: AuthConfig{JWTSecretKey: "defaultsecret", AccessTokenTTL: 24 * time.Hour},
		Store: StoreConfig{
			Driver: StoreMongo,
			Mongo:  MongoConfig{URI: "mongodb://localhost:27017", Database: "contactbook"},
			Postgres: PostgresConfig{
				Host: "localhost",
				Port: "5432",
				User: "postgres",
				Name: "contactbook",
			},
			SQLite: SQLiteConfig{Path: "contactbook.db"},
		},
		Redis:      RedisConfig{Channel: "contacts"},
		Metrics:    MetricsConfig{Enabled: true, ScrapeInterval: 10 * time.Second},
		Otel:       OtelConfig{ServiceName: "contactbook", SampleRatio: 0.1},
		Pagination: PaginationConfig{DefaultLimit: 5},
	}
}

// LoadConfig layers defaults, the optional YAML file at path, then the
// environment. A missing file is an error only when path was given.
func LoadConfig(path string, log *logger.Logger) (Config, error) {
	cfg := DefaultConfig()
	if path = strings.TrimSpace(path); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		if log != nil {
			log.Info("Loaded config file", "path", path)
		}
	}
	cfg.applyEnv(log)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(log *logger.Logger) {
	c.Server.Port = envutil.GetEnv("PORT", c.Server.Port, log)
	c.Server.BasePath = envutil.GetEnv("API_BASE_PATH", c.Server.BasePath, log)
	c.Server.CORSOrigins = envutil.GetEnvAsList("CORS_ORIGINS", c.Server.CORSOrigins, log)
	c.Server.ShutdownTimeout = envutil.GetEnvAsDuration("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout, log)

	c.Log.Mode = envutil.GetEnv("LOG_MODE", c.Log.Mode, log)
	c.Log.File = envutil.GetEnv("LOG_FILE", c.Log.File, log)

	c.Auth.JWTSecretKey = envutil.GetEnv("JWT_SECRET_KEY", c.Auth.JWTSecretKey, log)
	c.Auth.AccessTokenTTL = envutil.GetEnvAsDuration("ACCESS_TOKEN_TTL", c.Auth.AccessTokenTTL, log)

	c.Store.Driver = strings.ToLower(envutil.GetEnv("STORE_DRIVER", c.Store.Driver, log))
	c.Store.Mongo.URI = envutil.GetEnv("MONGO_URI", c.Store.Mongo.URI, log)
	c.Store.Mongo.Database = envutil.GetEnv("MONGO_DATABASE", c.Store.Mongo.Database, log)
	c.Store.Postgres.Host = envutil.GetEnv("POSTGRES_HOST", c.Store.Postgres.Host, log)
	c.Store.Postgres.Port = envutil.GetEnv("POSTGRES_PORT", c.Store.Postgres.Port, log)
	c.Store.Postgres.User = envutil.GetEnv("POSTGRES_USER", c.Store.Postgres.User, log)
	c.Store.Postgres.Password = envutil.GetEnv("POSTGRES_PASSWORD", c.Store.Postgres.Password, log)
	c.Store.Postgres.Name = envutil.GetEnv("POSTGRES_NAME", c.Store.Postgres.Name, log)
	c.Store.Postgres.SSLMode = envutil.GetEnv("POSTGRES_SSLMODE", c.Store.Postgres.SSLMode, log)
	c.Store.SQLite.Path = envutil.GetEnv("SQLITE_PATH", c.Store.SQLite.Path, log)

	c.Redis.Addr = envutil.GetEnv("REDIS_ADDR", c.Redis.Addr, log)
	c.Redis.Password = envutil.GetEnv("REDIS_PASSWORD", c.Redis.Password, log)
	c.Redis.DB = envutil.GetEnvAsInt("REDIS_DB", c.Redis.DB, log)
	c.Redis.Channel = envutil.GetEnv("REDIS_CHANNEL", c.Redis.Channel, log)

	c.Metrics.Enabled = envutil.GetEnvAsBool("METRICS_ENABLED", c.Metrics.Enabled, log)
	c.Metrics.ScrapeInterval = envutil.GetEnvAsDuration("METRICS_SCRAPE_INTERVAL_SECONDS", c.Metrics.ScrapeInterval, log)

	c.Otel.Enabled = envutil.GetEnvAsBool("OTEL_ENABLED", c.Otel.Enabled, log)
	c.Otel.ServiceName = envutil.GetEnv("OTEL_SERVICE_NAME", c.Otel.ServiceName, log)
	c.Otel.Endpoint = envutil.GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", c.Otel.Endpoint, log)
	c.Otel.Insecure = envutil.GetEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", c.Otel.Insecure, log)
	c.Otel.Headers = envutil.GetEnv("OTEL_EXPORTER_OTLP_HEADERS", c.Otel.Headers, log)
	c.Otel.SampleRatio = envutil.GetEnvAsFloat("OTEL_SAMPLER_RATIO", c.Otel.SampleRatio, log)

	c.Pagination.DefaultLimit = envutil.GetEnvAsInt("PAGINATION_DEFAULT_LIMIT", c.Pagination.DefaultLimit, log)
}

func (c Config) Validate() error {
	var errs []error
	switch c.Store.Driver {
	case StoreMongo:
		if c.Store.Mongo.URI == "" || c.Store.Mongo.Database == "" {
			errs = append(errs, errors.New("store.mongo uri and database are required"))
		}
	case StorePostgres:
		if c.Store.Postgres.Host == "" || c.Store.Postgres.Name == "" {
			errs = append(errs, errors.New("store.postgres host and name are required"))
		}
	case StoreSQLite:
		if c.Store.SQLite.Path == "" {
			errs = append(errs, errors.New("store.sqlite path is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q (want mongo, postgres or sqlite)", c.Store.Driver))
	}
	if strings.TrimSpace(c.Auth.JWTSecretKey) == "" {
		errs = append(errs, errors.New("auth.jwt_secret_key is required"))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		errs = append(errs, errors.New("auth.access_token_ttl must be positive"))
	}
	return errors.Join(errs...)
}
