// Package config loads and validates the process configuration from
// a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	FeedURL     string `yaml:"feedURL" validate:"required,url"`
	Origin      string `yaml:"origin" validate:"required"`
	Destination string `yaml:"destination" validate:"required"`

	Timezone       string `yaml:"timezone"`
	RefreshMinutes int    `yaml:"refreshMinutes" validate:"gte=0"`
	TimeoutSeconds int    `yaml:"timeoutSeconds" validate:"gte=0"`

	Listen     string `yaml:"listen"`
	Title      string `yaml:"title"`
	Limit      int    `yaml:"limit" validate:"gte=0"`
	SQLitePath string `yaml:"sqlitePath"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.RefreshMinutes == 0 {
		c.RefreshMinutes = 360
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 60
	}
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.Title == "" {
		c.Title = "Next departures"
	}
	if c.Limit == 0 {
		c.Limit = 3
	}
}

func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshMinutes) * time.Minute
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
