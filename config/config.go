// Package config loads and validates runtime configuration from YAML or
// JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete runtime configuration.
type Config struct {
	Game     GameConfig     `json:"game" yaml:"game"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Narrator NarratorConfig `json:"narrator" yaml:"narrator"`
	Server   ServerConfig   `json:"server" yaml:"server"`
}

// GameConfig contains simulation parameters.
type GameConfig struct {
	// Seed for the random source; 0 means seed from the clock.
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
	// Language tag passed through to the event narrator.
	Language string `json:"language" yaml:"language"`
}

// JournalConfig selects where tick and message records are written.
type JournalConfig struct {
	Type         string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	TicksFile    string `json:"ticks_file,omitempty" yaml:"ticks_file,omitempty"`
	MessagesFile string `json:"messages_file,omitempty" yaml:"messages_file,omitempty"`
	DBPath       string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// NarratorConfig contains the generative event narrator parameters. The
// API key is never stored in the file; it comes from the environment.
type NarratorConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Model     string `json:"model,omitempty" yaml:"model,omitempty"`
	KeyEnvVar string `json:"key_env_var,omitempty" yaml:"key_env_var,omitempty"`
	TimeoutMS int    `json:"timeout_ms,omitempty" yaml:"timeout_ms,omitempty"`
}

// ServerConfig contains the HTTP API parameters.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// LoadFromFile loads configuration from a file, trying YAML first and
// falling back to JSON.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file, choosing the format by
// extension.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Game.Language == "" {
		return fmt.Errorf("game.language is required")
	}
	switch c.Journal.Type {
	case "none":
	case "csv":
		if c.Journal.TicksFile == "" || c.Journal.MessagesFile == "" {
			return fmt.Errorf("journal ticks_file and messages_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	if c.Narrator.Enabled {
		if c.Narrator.KeyEnvVar == "" {
			return fmt.Errorf("narrator.key_env_var is required when the narrator is enabled")
		}
		if c.Narrator.TimeoutMS < 0 {
			return fmt.Errorf("narrator.timeout_ms must not be negative")
		}
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Game: GameConfig{
			Language: "English",
		},
		Journal: JournalConfig{
			Type:         "csv",
			TicksFile:    "./ticks.csv",
			MessagesFile: "./messages.csv",
		},
		Narrator: NarratorConfig{
			Enabled:   true,
			Model:     "gemini-2.0-flash",
			KeyEnvVar: "GEMINI_API_KEY",
			TimeoutMS: 15000,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}
