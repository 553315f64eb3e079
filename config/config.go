package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

type Config struct {
	APIPort     int           `yaml:"api_port"`
	LogLevel    string        `yaml:"log_level"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	Store       string        `yaml:"store"`

	Postgres struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Database string `yaml:"database"`
	} `yaml:"postgres"`

	SQLitePath string `yaml:"sqlite_path"`

	YoutubeAPIKey  string `yaml:"youtube_api_key"`
	OpenAIAPIKey   string `yaml:"openai_api_key"`
	WeaviateHost   string `yaml:"weaviate_host"`
	WeaviateScheme string `yaml:"weaviate_scheme"`
	WeaviateAPIKey string `yaml:"weaviate_api_key"`
}

func defaultConfig() *Config {
	c := &Config{
		APIPort:     8080,
		LogLevel:    "info",
		HTTPTimeout: 20 * time.Second,
		Store:       StoreSQLite,
		SQLitePath:  "potongin.db",
	}
	c.Postgres.Host = "localhost"
	c.Postgres.Port = "5432"
	c.Postgres.User = "potongin"
	c.Postgres.Password = "potongin"
	c.Postgres.Database = "potongin"

	return c
}

// Load builds the configuration from the defaults, the optional YAML file at
// path and the environment, in that order. A .env file in the working
// directory is read into the environment first, without overriding variables
// that are already set.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	c := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) applyEnv() error {
	for env, dst := range map[string]*string{
		"LOG_LEVEL":         &c.LogLevel,
		"STORE":             &c.Store,
		"POSTGRES_HOST":     &c.Postgres.Host,
		"POSTGRES_PORT":     &c.Postgres.Port,
		"POSTGRES_USER":     &c.Postgres.User,
		"POSTGRES_PASSWORD": &c.Postgres.Password,
		"POSTGRES_DB":       &c.Postgres.Database,
		"SQLITE_PATH":       &c.SQLitePath,
		"YOUTUBE_API_KEY":   &c.YoutubeAPIKey,
		"OPENAI_API_KEY":    &c.OpenAIAPIKey,
		"WEAVIATE_HOST":     &c.WeaviateHost,
		"WEAVIATE_SCHEME":   &c.WeaviateScheme,
		"WEAVIATE_API_KEY":  &c.WeaviateAPIKey,
	} {
		if val, ok := os.LookupEnv(env); ok {
			*dst = val
		}
	}

	if val, ok := os.LookupEnv("API_PORT"); ok {
		port, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid API_PORT %q: %w", val, err)
		}
		c.APIPort = port
	}
	if val, ok := os.LookupEnv("HTTP_TIMEOUT"); ok {
		timeout, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", val, err)
		}
		c.HTTPTimeout = timeout
	}

	return nil
}

func (c *Config) Validate() error {
	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("invalid api port %d", c.APIPort)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("invalid http timeout %v", c.HTTPTimeout)
	}
	switch c.Store {
	case StorePostgres:
	case StoreSQLite:
		if c.SQLitePath == "" {
			return errors.New("sqlite store needs a path")
		}
	default:
		return fmt.Errorf("unknown store %q, use %q or %q", c.Store, StorePostgres, StoreSQLite)
	}
	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}

	return level, nil
}
