// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by LoadConfig.
const (
	EnvConfigFile   = "RECIPES_CONFIG"
	EnvDBPath       = "RECIPES_DB_PATH"
	EnvDBDebug      = "RECIPES_DB_DEBUG"
	EnvMediaDir     = "RECIPES_MEDIA_DIR"
	EnvSMTPAddr     = "RECIPES_SMTP_ADDR"
	EnvSMTPUsername = "RECIPES_SMTP_USERNAME"
	EnvSMTPPassword = "RECIPES_SMTP_PASSWORD"

	DefaultDBPath   = "data/recipes.db"
	DefaultMediaDir = "data/media"
)

// Config is the application configuration.
type Config struct {
	DB       DBConfig       `yaml:"db"`
	MediaDir string         `yaml:"mediaDir"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Selector SelectorConfig `yaml:"selector"`
	// PersistLogLevel is the minimum level written to the log_entries
	// table; "off" disables persistence.
	PersistLogLevel string `yaml:"persistLogLevel"`
}

type DBConfig struct {
	Path  string `yaml:"path"`
	Debug bool   `yaml:"debug"`
}

// SMTPConfig configures outgoing mail. An empty Addr logs mail instead.
type SMTPConfig struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type SelectorConfig struct {
	Category      string `yaml:"category"`
	MaxCollisions int    `yaml:"maxCollisions"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		DB:              DBConfig{Path: DefaultDBPath},
		MediaDir:        DefaultMediaDir,
		PersistLogLevel: "warn",
	}
}

// LoadConfig returns the defaults, overlaid with the YAML file named by
// RECIPES_CONFIG when set, overlaid with the environment.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.loadEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	slog.Debug("config file loaded", "path", path)
	return nil
}

func (c *Config) loadEnv() {
	setFromEnv(&c.DB.Path, EnvDBPath)
	setFromEnv(&c.MediaDir, EnvMediaDir)
	setFromEnv(&c.SMTP.Addr, EnvSMTPAddr)
	setFromEnv(&c.SMTP.Username, EnvSMTPUsername)
	setFromEnv(&c.SMTP.Password, EnvSMTPPassword)

	if v := os.Getenv(EnvDBDebug); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.DB.Debug = b
		} else {
			slog.Warn("ignoring invalid boolean", "env", EnvDBDebug, "value", v)
		}
	}
}

func setFromEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// Validate checks the configuration for missing required values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DB.Path) == "" {
		return fmt.Errorf("db path is required")
	}
	if strings.TrimSpace(c.MediaDir) == "" {
		return fmt.Errorf("media dir is required")
	}
	if c.Selector.MaxCollisions < 0 {
		return fmt.Errorf("selector maxCollisions must not be negative, got %d", c.Selector.MaxCollisions)
	}
	return nil
}
