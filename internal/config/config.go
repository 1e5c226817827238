// Package config loads command configuration from YAML and the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration of the langtable command.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// DataConfig controls where documents are searched and how they are parsed.
type DataConfig struct {
	Dirs             []string `yaml:"dirs"              env:"LANGTABLE_DATADIR"           env-separator:":" env-default:"/usr/share/langtable:."`
	Sequential       bool     `yaml:"sequential"        env:"LANGTABLE_SEQUENTIAL"        env-default:"false"`
	RequireDocuments bool     `yaml:"require_documents" env:"LANGTABLE_REQUIRE_DOCUMENTS" env-default:"false"`
	MaxDepth         int      `yaml:"max_depth"         env:"LANGTABLE_MAX_DEPTH"         env-default:"256"`
	MaxTokenSize     int      `yaml:"max_token_size"    env:"LANGTABLE_MAX_TOKEN_SIZE"    env-default:"4194304"`
}

// DatabaseConfig holds PostgreSQL settings used by the export command.
type DatabaseConfig struct {
	DSN       string `yaml:"dsn"        env:"DATABASE_DSN"`
	MaxConns  int32  `yaml:"max_conns"  env:"DATABASE_MAX_CONNS"  env-default:"4"`
	BatchSize int    `yaml:"batch_size" env:"DATABASE_BATCH_SIZE" env-default:"500"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The file is path, or CONFIG_PATH when path is empty. Without either,
// configuration comes from ENV and defaults only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks values the tags cannot express.
func (c *Config) Validate() error {
	if len(c.Data.Dirs) == 0 {
		return fmt.Errorf("data.dirs must not be empty")
	}
	for _, dir := range c.Data.Dirs {
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf("data.dirs contains an empty directory")
		}
	}
	if c.Data.MaxDepth < 0 {
		return fmt.Errorf("data.max_depth must be >= 0 (got %d)", c.Data.MaxDepth)
	}
	if c.Data.MaxTokenSize < 0 {
		return fmt.Errorf("data.max_token_size must be >= 0 (got %d)", c.Data.MaxTokenSize)
	}
	if c.Database.BatchSize <= 0 {
		return fmt.Errorf("database.batch_size must be > 0 (got %d)", c.Database.BatchSize)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error (got %q)", c.Log.Level)
	}
	return nil
}
