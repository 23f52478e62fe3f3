package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of the flowdock-push command.
type Config struct {
	Tokens    []string      `yaml:"tokens"`
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	StatusLog string        `yaml:"status_log"` // file receiving failed deliveries
	Debug     bool          `yaml:"debug"`
}

// Load reads configuration from a YAML file. ${VAR} references are expanded
// from the environment, so tokens need not be stored in the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	data = []byte(os.ExpandEnv(string(data)))

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Tokens:  []string{},
		Timeout: 30 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return errors.New("timeout must be non-negative")
	}

	for i, token := range c.Tokens {
		if token == "" {
			return fmt.Errorf("token at index %d is empty", i)
		}
	}

	return nil
}
