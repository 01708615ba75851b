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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Storage handles persistent storage of comparison results and cached API
// responses. The charge engine itself is stateless; everything here belongs
// to the collaborator plumbing around it.
type Storage struct {
	basePath string
	cache    *Cache
	logger   *Logger
}

// NewStorage creates a new storage handler with caching
func NewStorage(basePath string, meterID string, logger *Logger) (*Storage, error) {
	// Ensure storage directory exists
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, &StorageError{
			Operation: "create_directory",
			Path:      basePath,
			Err:       err,
		}
	}

	// Initialize cache
	cache, err := NewCache(basePath, meterID, logger)
	if err != nil {
		return nil, &StorageError{
			Operation: "initialize_cache",
			Path:      basePath,
			Err:       err,
		}
	}

	logger.Debug("Storage initialized", "path", basePath)

	return &Storage{
		basePath: basePath,
		cache:    cache,
		logger:   logger,
	}, nil
}

// SaveComparison saves a comparison result
func (s *Storage) SaveComparison(comparison *Comparison, meterID string) error {
	filename := fmt.Sprintf("%s_comparison_%s.json", meterID, comparison.GeneratedAt.Format("2006-01-02_15-04-05"))
	path := filepath.Join(s.basePath, filename)

	s.logger.LogStorageOperation("save_comparison", path)

	return s.saveJSON(path, comparison)
}

// LoadLatestComparison loads the most recent comparison result for the
// given meter point
func (s *Storage) LoadLatestComparison(meterID string) (*Comparison, error) {
	pattern := filepath.Join(s.basePath, fmt.Sprintf("%s_comparison_*.json", meterID))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, &StorageError{
			Operation: "glob_comparison",
			Path:      pattern,
			Err:       err,
		}
	}

	if len(matches) == 0 {
		return nil, nil // No previous comparison found
	}

	// Get the most recent file (files are sorted by date in filename)
	latestFile := matches[len(matches)-1]

	s.logger.LogStorageOperation("load_latest_comparison", latestFile)

	var comparison Comparison
	if err := s.loadJSON(latestFile, &comparison); err != nil {
		return nil, err
	}

	return &comparison, nil
}

// saveJSON saves data as JSON to a file
func (s *Storage) saveJSON(path string, data interface{}) error {
	file, err := os.Create(path)
	if err != nil {
		return &StorageError{
			Operation: "create_file",
			Path:      path,
			Err:       err,
		}
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(data); err != nil {
		return &StorageError{
			Operation: "encode_json",
			Path:      path,
			Err:       err,
		}
	}

	return nil
}

// loadJSON loads data from a JSON file
func (s *Storage) loadJSON(path string, target interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		return &StorageError{
			Operation: "open_file",
			Path:      path,
			Err:       err,
		}
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(target); err != nil {
		return &StorageError{
			Operation: "decode_json",
			Path:      path,
			Err:       err,
		}
	}

	return nil
}

// SaveCache saves data to cache with a TTL (time-to-live)
func (s *Storage) SaveCache(key string, data interface{}, ttl time.Duration) error {
	return s.cache.Set(key, data, ttl)
}

// LoadCache loads data from cache if it exists and hasn't expired
func (s *Storage) LoadCache(key string, target interface{}) (bool, error) {
	return s.cache.Get(key, target)
}

// ClearCache clears all cache entries for the current meter point
func (s *Storage) ClearCache() error {
	return s.cache.Clear()
}

// Close closes all storage resources
func (s *Storage) Close() error {
	if s.cache != nil {
		return s.cache.Close()
	}
	return nil
}
