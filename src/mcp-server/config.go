// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	x509validate "github.com/H0llyW00dzZ/x509-chain-validator/src/internal/x509/validate"
)

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config represents the MCP server configuration structure.
// It carries the default validation policy and operational defaults applied
// when a tool call leaves the corresponding parameter unset.
//
// The configuration can be loaded from a JSON or YAML file specified by the
// MCP_X509_CONFIG_FILE environment variable, with defaults applied for any
// missing values. Supported file extensions: .json, .yaml, .yml
type Config struct {
	// Defaults: Default settings for validation tool calls
	Defaults struct {
		// WarnDays: Number of days before expiry to show warnings
		WarnDays int `json:"warnDays" yaml:"warnDays"`
		// Timeout: Default timeout in seconds for operations
		Timeout int `json:"timeoutSeconds" yaml:"timeoutSeconds"`
	} `json:"defaults" yaml:"defaults"`

	// Checks: Default validation policy for validate_cert_chain calls
	Checks x509validate.Checks `json:"checks" yaml:"checks"`

	// AnchorsFile: Path to a PEM bundle of trust anchors used when a call
	// does not supply its own
	AnchorsFile string `json:"anchorsFile,omitempty" yaml:"anchorsFile,omitempty"`
}

// detectConfigFormat determines the configuration file format based on file
// extension, matching case-insensitively for cross-platform compatibility.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// loadConfig loads MCP server configuration from a JSON or YAML file or
// applies defaults.
//
// Configuration Priority:
//  1. Default values are set (recommended checks, 30-day warning window)
//  2. MCP_X509_CONFIG_FILE environment variable is checked if configPath is empty
//  3. Config file values override defaults (if file exists and is valid)
func loadConfig(configPath string) (*Config, error) {
	config := &Config{Checks: x509validate.DefaultChecks()}

	// Set defaults
	config.Defaults.WarnDays = 30
	config.Defaults.Timeout = 30

	// Check environment variable for config file path if not provided
	if configPath == "" {
		configPath = os.Getenv("MCP_X509_CONFIG_FILE")
	}

	// Try to load from file if path is provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Detect format and unmarshal accordingly
		format := detectConfigFormat(configPath)
		if err := unmarshalConfig(data, config, format); err != nil {
			return nil, err
		}

		// Validate and set defaults for invalid values
		if config.Defaults.WarnDays <= 0 {
			config.Defaults.WarnDays = 30
		}
		if config.Defaults.Timeout <= 0 {
			config.Defaults.Timeout = 30
		}
	}

	return config, nil
}
