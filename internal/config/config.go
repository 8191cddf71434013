package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"yesno-quiz/internal/domain"
)

// Storage backends accepted in storage.backend.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Question sources accepted in quiz.source.
const (
	SourceConfig   = "config"
	SourcePostgres = "postgres"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Storage struct {
		Backend string `yaml:"backend"`
	} `yaml:"storage"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Quiz struct {
		Source string `yaml:"source"`
		ID     string `yaml:"id"`
		// CacheTTL bounds how long a Postgres question set stays cached in Redis.
		CacheTTL string `yaml:"cacheTtl"`
	} `yaml:"quiz"`
	Questions domain.QuestionSet `yaml:"questions"`
}

// Load reads YAML config from path and applies defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendMemory
	}
	if c.SQLite.Path == "" {
		c.SQLite.Path = "data/quiz.db"
	}
	if c.Quiz.Source == "" {
		c.Quiz.Source = SourceConfig
	}
	if c.Quiz.ID == "" {
		c.Quiz.ID = "default"
	}
}

// Validate checks that the selected backend and question source are usable.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendSQLite:
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("storage backend %q requires redis.addr", c.Storage.Backend)
		}
	case BackendPostgres:
		if c.Postgres.URL == "" {
			return fmt.Errorf("storage backend %q requires postgres.url", c.Storage.Backend)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	switch c.Quiz.Source {
	case SourceConfig:
		if len(c.Questions) > 0 {
			if err := c.Questions.Validate(); err != nil {
				return fmt.Errorf("questions: %w", err)
			}
		}
	case SourcePostgres:
		if c.Postgres.URL == "" {
			return fmt.Errorf("quiz source %q requires postgres.url", c.Quiz.Source)
		}
	default:
		return fmt.Errorf("unknown quiz source %q", c.Quiz.Source)
	}
	return nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
