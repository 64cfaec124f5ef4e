package core

import (
	"errors"
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/go-barry/items/store"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const DefaultConfigFile = "items.config.yml"

type Config struct {
	Port         int    `yaml:"port"`
	Env          string `yaml:"env"`
	Storage      string `yaml:"storage"`
	DataFile     string `yaml:"dataFile"`
	IDs          string `yaml:"ids"`
	MaxBodyBytes int64  `yaml:"maxBodyBytes"`
	Title        string `yaml:"title"`
	UIFile       string `yaml:"uiFile"`
	DebugHeaders bool   `yaml:"debugHeaders"`
	DebugLogs    bool   `yaml:"debugLogs"`
}

func DefaultConfig() Config {
	return Config{
		Port:         3000,
		Env:          "dev",
		Storage:      store.KindMemory,
		DataFile:     "./items.db",
		IDs:          store.IDsSequence,
		MaxBodyBytes: 1 << 20,
		Title:        "Items",
	}
}

// LoadConfig reads the YAML file at path, fills unset fields from
// DefaultConfig and applies environment overrides. A missing file is
// not an error.
var LoadConfig = func(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := mergo.Merge(&cfg, DefaultConfig()); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := cast.ToIntE(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("ITEMS_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("ITEMS_STORAGE"); v != "" {
		cfg.Storage = v
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Env {
	case "dev", "prod":
	default:
		return fmt.Errorf("env must be dev or prod, got %q", c.Env)
	}
	switch c.Storage {
	case store.KindMemory, store.KindSQLite:
	default:
		return fmt.Errorf("storage must be memory or sqlite, got %q", c.Storage)
	}
	switch c.IDs {
	case store.IDsSequence, store.IDsTimestamp:
	default:
		return fmt.Errorf("ids must be sequence or timestamp, got %q", c.IDs)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("maxBodyBytes must be positive, got %d", c.MaxBodyBytes)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	return nil
}
