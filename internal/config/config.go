package config

import (
	"fmt"
	"log/slog"
	"munsite/db"
	"munsite/internal/source"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Data source kinds accepted in DATA_SOURCE.
const (
	SourceDir      = "dir"
	SourceHTTP     = "http"
	SourceRedis    = "redis"
	SourcePostgres = "postgres"
)

type Config struct {
	DataDir     string `yaml:"data_dir"`
	DataURL     string `yaml:"data_url"`
	DataSource  string `yaml:"data_source"`
	RedisURL    string `yaml:"redis_url"`
	DatabaseURL string `yaml:"database_url"`
	Timezone    string `yaml:"timezone"`
	Port        string `yaml:"port"`
	FrontendURL string `yaml:"frontend_url"`
}

func defaults() Config {
	return Config{
		DataDir:    ".",
		DataSource: SourceDir,
		Timezone:   "Local",
		Port:       "8080",
	}
}

// Load reads .env, then the optional YAML file named by MUNSITE_CONFIG, then
// the environment. Later layers win.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("MUNSITE_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	for key, dst := range map[string]*string{
		"DATA_DIR":      &c.DataDir,
		"DATA_URL":      &c.DataURL,
		"DATA_SOURCE":   &c.DataSource,
		"REDIS_URL":     &c.RedisURL,
		"DATABASE_URL":  &c.DatabaseURL,
		"SITE_TIMEZONE": &c.Timezone,
		"PORT":          &c.Port,
		"FRONTEND_URL":  &c.FrontendURL,
	} {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
}

func (c *Config) Validate() error {
	switch c.DataSource {
	case SourceDir, SourceRedis, SourcePostgres:
	case SourceHTTP:
		if c.DataURL == "" {
			return fmt.Errorf("DATA_SOURCE=%s needs DATA_URL", c.DataSource)
		}
	default:
		return fmt.Errorf("unknown DATA_SOURCE %q", c.DataSource)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location is the zone meeting times are interpreted in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("SITE_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// OpenSource connects the configured data source. The returned func releases
// any connection it opened.
func (c *Config) OpenSource() (source.Source, func(), error) {
	noop := func() {}

	switch c.DataSource {
	case SourceHTTP:
		return source.NewHTTP(c.DataURL), noop, nil
	case SourceRedis:
		if err := db.ConnectRedis(c.RedisURL); err != nil {
			return nil, noop, fmt.Errorf("connect redis: %w", err)
		}
		return source.NewRedis(db.Redis, db.FileKeyPrefix), db.CloseRedis, nil
	case SourcePostgres:
		if err := db.Connect(c.DatabaseURL); err != nil {
			return nil, noop, fmt.Errorf("connect postgres: %w", err)
		}
		return source.NewPostgres(db.DB), db.Close, nil
	default:
		slog.Debug("serving data from directory", "dir", c.DataDir)
		return source.NewDir(c.DataDir), noop, nil
	}
}
