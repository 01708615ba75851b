// Copyright 2025 The octopus-api Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	// Octopus Energy credentials
	APIKey string `yaml:"api_key"`

	// Meter identifiers
	ElectricityMPAN   string `yaml:"electricity_mpan"`
	ElectricitySerial string `yaml:"electricity_serial"`

	// Region selection
	Postcode string `yaml:"postcode"`

	// Comparison settings
	ComparatorProduct string `yaml:"comparator_product"`
	PeriodDays        int    `yaml:"period_days"`
	BucketDays        int    `yaml:"bucket_days"`

	// Storage
	StoragePath string `yaml:"storage_path"`

	// Debugging
	Debug bool `yaml:"debug"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	// Set defaults
	config := &Config{
		PeriodDays:  28,
		BucketDays:  7,
		StoragePath: getDefaultStoragePath(),
		Debug:       false,
	}

	// If no path provided, return defaults with env var overrides
	if path == "" {
		config.applyEnvironmentVariables()
		return config, nil
	}

	// Read the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply environment variable overrides
	config.applyEnvironmentVariables()

	return config, nil
}

// getDefaultStoragePath returns the default storage path
func getDefaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".octopus-api"
	}
	return filepath.Join(home, ".config", "octopus-api")
}

// applyEnvironmentVariables overrides config with environment variables
func (c *Config) applyEnvironmentVariables() {
	if val := os.Getenv("OCTOPUS_API_KEY"); val != "" {
		c.APIKey = val
	}
	if val := os.Getenv("OCTOPUS_ELECTRICITY_MPAN"); val != "" {
		c.ElectricityMPAN = val
	}
	if val := os.Getenv("OCTOPUS_ELECTRICITY_SERIAL"); val != "" {
		c.ElectricitySerial = val
	}
	if val := os.Getenv("OCTOPUS_POSTCODE"); val != "" {
		c.Postcode = val
	}
	if val := os.Getenv("OCTOPUS_COMPARATOR_PRODUCT"); val != "" {
		c.ComparatorProduct = val
	}
	if val := os.Getenv("OCTOPUS_STORAGE_PATH"); val != "" {
		c.StoragePath = val
	}
	if val := os.Getenv("OCTOPUS_DEBUG"); val == "true" || val == "1" {
		c.Debug = true
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errors []string

	// Required fields
	if c.APIKey == "" {
		errors = append(errors, "api_key is required")
	} else if len(c.APIKey) < 20 {
		errors = append(errors, "api_key appears to be invalid (too short)")
	}

	if c.ElectricityMPAN == "" {
		errors = append(errors, "electricity_mpan is required")
	}
	if c.ElectricitySerial == "" {
		errors = append(errors, "electricity_serial is required")
	}
	if c.ComparatorProduct == "" {
		errors = append(errors, "comparator_product is required")
	}

	// Validate comparison period
	if c.PeriodDays < 1 || c.PeriodDays > 365 {
		errors = append(errors, "period_days must be between 1 and 365")
	}

	// Validate bucket duration
	if c.BucketDays < 1 {
		errors = append(errors, "bucket_days must be at least 1")
	} else if c.PeriodDays >= 1 && c.BucketDays > c.PeriodDays {
		errors = append(errors, "bucket_days must not exceed period_days")
	}

	// Set default storage path if empty
	if c.StoragePath == "" {
		c.StoragePath = getDefaultStoragePath()
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}
