// Package config holds all avplanner configuration: a YAML file of sections
// with environment overrides layered on top.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all avplanner configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	Server  ServerConfig  `yaml:"server"`
	LLM     LLMConfig     `yaml:"llm"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr       string `yaml:"addr"`
	CORSOrigin string `yaml:"cors_origin"`
}

// LLMConfig configures the generative backend client.
type LLMConfig struct {
	APIKey          string `yaml:"api_key"`
	Model           string `yaml:"model"`
	BaseURL         string `yaml:"base_url"`
	Timeout         string `yaml:"timeout"`
	MaxOutputTokens int    `yaml:"max_output_tokens"`
}

// StorageConfig selects and configures the document store backend.
type StorageConfig struct {
	Backend      string `yaml:"backend"` // file, sqlite, memory
	DataDir      string `yaml:"data_dir"`
	DatabasePath string `yaml:"database_path"`
}

// LoggingConfig configures the categorized file logger.
type LoggingConfig struct {
	Debug bool   `yaml:"debug"`
	Level string `yaml:"level"` // debug, info, warn, error
	Dir   string `yaml:"dir"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "avplanner",
		Version: "1.0.0",
		Server: ServerConfig{
			Addr:       ":8090",
			CORSOrigin: "*",
		},
		LLM: LLMConfig{
			Model:           "gemini-2.0-flash",
			BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
			Timeout:         "60s",
			MaxOutputTokens: 4096,
		},
		Storage: StorageConfig{
			Backend:      "file",
			DataDir:      "data",
			DatabasePath: "data/planner.db",
		},
		Logging: LoggingConfig{
			Debug: false,
			Level: "info",
			Dir:   "logs",
		},
	}
}

// Load reads a YAML config from path, layered over defaults, then applies
// environment overrides. A missing file is not an error: defaults plus
// environment are a complete configuration.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides layers environment variables over the file values.
// Deployment environments set secrets here rather than in the YAML.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("AVPLANNER_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("AVPLANNER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("AVPLANNER_DATA_DIR"); v != "" {
		c.Storage.DataDir = v
	}
	if v := os.Getenv("AVPLANNER_STORAGE"); v != "" {
		c.Storage.Backend = v
	}
	if os.Getenv("AVPLANNER_DEBUG") == "1" {
		c.Logging.Debug = true
		c.Logging.Level = "debug"
	}
}

// LLMTimeout parses the configured backend timeout, falling back to a minute
// on bad input. The generative call is the one suspension point per request;
// it must always carry a deadline.
func (c *Config) LLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}

// Validate rejects configurations the process cannot start with.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr required")
	}
	return nil
}
