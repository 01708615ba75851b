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
	"time"
)

// APIError represents an API-related error
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("API error at %s (status %d): %s: %v", e.Endpoint, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("API error at %s (status %d): %s", e.Endpoint, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if this error should be retried
func (e *APIError) IsRetryable() bool {
	return isRetryableStatus(e.StatusCode)
}

func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

// NoMatchingRateError indicates that no rate window in a schedule covered
// the searched consumption interval. It carries the interval bounds so the
// caller can report exactly which period had no pricing data.
type NoMatchingRateError struct {
	IntervalStart time.Time
	IntervalEnd   time.Time
}

func (e *NoMatchingRateError) Error() string {
	return fmt.Sprintf("no matching rate for interval %s to %s",
		e.IntervalStart.Format(time.RFC3339), e.IntervalEnd.Format(time.RFC3339))
}

// NoTariffForRegionError indicates that a product carries no tariffs at all
// for the requested grid-supply-point region. Distinct from a missing rate
// within a tariff, which is handled per-slot.
type NoTariffForRegionError struct {
	ProductCode string
	Region      string
}

func (e *NoTariffForRegionError) Error() string {
	return fmt.Sprintf("product %s has no tariffs for region %q", e.ProductCode, e.Region)
}

// TooManyMissingRatesError aborts a comparison run once unit-rate lookup
// failures exceed the threshold. Isolated gaps are tolerated; a systemic
// pattern of missing rates is not.
type TooManyMissingRatesError struct {
	Count     int
	Threshold int
}

func (e *TooManyMissingRatesError) Error() string {
	return fmt.Sprintf("too many missing rates: %d lookups failed (threshold %d)", e.Count, e.Threshold)
}

// ValidationError represents a configuration or input validation error
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("validation error for %s (%s): %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// StorageError represents a storage operation error
type StorageError struct {
	Operation string
	Path      string
	Err       error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s at %s: %v", e.Operation, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// DataError represents insufficient or missing data error
type DataError struct {
	DataType string
	Message  string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("data error for %s: %s", e.DataType, e.Message)
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error for %s: %s", e.Field, e.Message)
}
