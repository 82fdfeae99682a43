/* SPDX-License-Identifier: BSD-2-Clause */

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

const appName = "html2frame"

type Config struct {
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
}

type OutputConfig struct {
	Format    string `toml:"format"` // "pretty", "csv" or "json"
	Delimiter string `toml:"delimiter"`
	NoHeader  bool   `toml:"no_header"`
	Encoding  string `toml:"encoding"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format:    "pretty",
			Delimiter: ",",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

func defaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

func LoadConfigFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil // no config file, return defaults
	}

	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	switch c.Output.Format {
	case "pretty", "csv", "json":
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	if len([]rune(c.Output.Delimiter)) != 1 {
		return fmt.Errorf("delimiter must be a single character")
	}
	return nil
}
