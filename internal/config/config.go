// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the engine configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Paths
	Artifact   string `json:"artifact,omitempty"`   // Path to the trained pipeline artifact
	Dictionary string `json:"dictionary,omitempty"` // Path to a skill dictionary YAML (default: embedded)

	// Extraction
	DisableRecognizer bool `json:"disable_recognizer,omitempty"`    // Force dictionary-only extraction
	RecognizerTimeout int  `json:"recognizer_timeout_ms,omitempty"` // Recognizer timeout in milliseconds

	// Training
	Folds int `json:"folds,omitempty"` // Cross-validation folds

	// Serving
	ListenAddr string `json:"listen_addr,omitempty"` // HTTP listen address

	// Behavior
	Verbose  bool `json:"verbose,omitempty"`   // Print detailed debug information
	JSONLogs bool `json:"json_logs,omitempty"` // Emit JSON-encoded logs
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.RecognizerTimeout < 0 {
		return fmt.Errorf("config error: 'recognizer_timeout_ms' must be non-negative")
	}
	if c.Folds < 0 {
		return fmt.Errorf("config error: 'folds' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.Dictionary != "" {
		if _, err := os.Stat(c.Dictionary); os.IsNotExist(err) {
			return fmt.Errorf("config error: dictionary file not found: %s", c.Dictionary)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Artifact == "" {
		result.Artifact = defaults.Artifact
	}
	if result.Dictionary == "" {
		result.Dictionary = defaults.Dictionary
	}
	if result.ListenAddr == "" {
		result.ListenAddr = defaults.ListenAddr
	}
	if result.RecognizerTimeout == 0 {
		result.RecognizerTimeout = defaults.RecognizerTimeout
	}
	if result.Folds == 0 {
		result.Folds = defaults.Folds
	}
	if !result.DisableRecognizer {
		result.DisableRecognizer = defaults.DisableRecognizer
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}
	if !result.JSONLogs {
		result.JSONLogs = defaults.JSONLogs
	}

	return result
}
