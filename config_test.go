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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
api_key: sk_live_testkey_00000000
electricity_mpan: "1200012345678"
electricity_serial: "21E1234567"
postcode: SW1A 1AA
comparator_product: VAR-22-11-01
period_days: 56
bucket_days: 14
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "sk_live_testkey_00000000", config.APIKey)
	assert.Equal(t, "1200012345678", config.ElectricityMPAN)
	assert.Equal(t, "21E1234567", config.ElectricitySerial)
	assert.Equal(t, "SW1A 1AA", config.Postcode)
	assert.Equal(t, "VAR-22-11-01", config.ComparatorProduct)
	assert.Equal(t, 56, config.PeriodDays)
	assert.Equal(t, 14, config.BucketDays)
	assert.NotEmpty(t, config.StoragePath)
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 28, config.PeriodDays)
	assert.Equal(t, 7, config.BucketDays)
	assert.False(t, config.Debug)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	path := writeConfigFile(t, `
api_key: file_key_0000000000000000
comparator_product: FILE-PRODUCT
`)

	t.Setenv("OCTOPUS_API_KEY", "env_key_00000000000000000")
	t.Setenv("OCTOPUS_ELECTRICITY_MPAN", "9900099999999")
	t.Setenv("OCTOPUS_COMPARATOR_PRODUCT", "ENV-PRODUCT")
	t.Setenv("OCTOPUS_DEBUG", "true")

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env_key_00000000000000000", config.APIKey)
	assert.Equal(t, "9900099999999", config.ElectricityMPAN)
	assert.Equal(t, "ENV-PRODUCT", config.ComparatorProduct)
	assert.True(t, config.Debug)
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			APIKey:            "sk_live_testkey_00000000",
			ElectricityMPAN:   "1200012345678",
			ElectricitySerial: "21E1234567",
			ComparatorProduct: "VAR-22-11-01",
			PeriodDays:        28,
			BucketDays:        7,
		}
	}

	t.Run("valid config", func(t *testing.T) {
		config := valid()
		require.NoError(t, config.Validate())
		assert.NotEmpty(t, config.StoragePath, "storage path defaults when empty")
	})

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing api key", func(c *Config) { c.APIKey = "" }, "api_key is required"},
		{"short api key", func(c *Config) { c.APIKey = "short" }, "api_key appears to be invalid"},
		{"missing mpan", func(c *Config) { c.ElectricityMPAN = "" }, "electricity_mpan is required"},
		{"missing serial", func(c *Config) { c.ElectricitySerial = "" }, "electricity_serial is required"},
		{"missing comparator", func(c *Config) { c.ComparatorProduct = "" }, "comparator_product is required"},
		{"period too small", func(c *Config) { c.PeriodDays = 0 }, "period_days must be between"},
		{"period too large", func(c *Config) { c.PeriodDays = 400 }, "period_days must be between"},
		{"bucket too small", func(c *Config) { c.BucketDays = 0 }, "bucket_days must be at least 1"},
		{"bucket exceeds period", func(c *Config) { c.BucketDays = 56 }, "bucket_days must not exceed period_days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(config)
			err := config.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
