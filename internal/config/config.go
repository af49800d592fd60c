package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Backends understood by the app.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds all shoplist settings.
type Config struct {
	// Backend selects the persistence substrate: json, sqlite or memory.
	Backend string `yaml:"backend"`
	// DataDir holds shoppingList.json or shoplist.db.
	DataDir string `yaml:"data_dir"`
	// Theme for one-shot CLI output: classic, neon or mono.
	Theme string `yaml:"theme"`

	Web     WebConfig     `yaml:"web"`
	Logging LoggingConfig `yaml:"logging"`
}

// WebConfig configures the browser surface.
type WebConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty means stderr
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendJSON,
		DataDir: ".",
		Theme:   "classic",
		Web:     WebConfig{Addr: ":8080"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML config on top of the defaults. A missing file is not an
// error. Environment overrides are applied last. The result is not
// validated: callers apply their own overrides and then call Validate.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from SHOPLIST_* variables.
func (c *Config) ApplyEnv() {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.Backend, "SHOPLIST_BACKEND")
	set(&c.DataDir, "SHOPLIST_DATA_DIR")
	set(&c.Theme, "SHOPLIST_THEME")
	set(&c.Web.Addr, "SHOPLIST_ADDR")
	set(&c.Logging.Level, "SHOPLIST_LOG_LEVEL")
	set(&c.Logging.File, "SHOPLIST_LOG_FILE")
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendJSON, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want json, sqlite or memory)", c.Backend)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}
