package immstruct

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/omniscientjs/immstruct/history"
)

// Config is the serializable form of the options of a structure.
//
//	key: todos
//	history: true
//	historyLimit: 50
//	data:
//	  items: []
type Config struct {
	// Key names the structure. Empty means a random key.
	Key string `yaml:"key,omitempty"`

	// History enables the undo log.
	History bool `yaml:"history,omitempty"`

	// HistoryLimit bounds the undo log. Zero means unlimited.
	HistoryLimit int `yaml:"historyLimit,omitempty"`

	// Data is the initial root. Nil means an empty map.
	Data any `yaml:"data,omitempty"`
}

// LoadConfig loads a configuration file in YAML (or JSON) format.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns a Config for an anonymous structure without
// history.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.HistoryLimit < 0 && c.HistoryLimit != history.Unlimited {
		return fmt.Errorf("%w: historyLimit %d is negative", ErrBadConfig, c.HistoryLimit)
	}
	if c.HistoryLimit != 0 && !c.History {
		return fmt.Errorf("%w: historyLimit set without history", ErrBadConfig)
	}
	return nil
}

// Options returns the options described by c.
func (c *Config) Options() []Option {
	var res []Option
	if c.Key != "" {
		res = append(res, WithKey(c.Key))
	}
	if c.History {
		res = append(res, WithHistory(c.HistoryLimit))
	}
	if c.Data != nil {
		res = append(res, WithData(c.Data))
	}
	return res
}
