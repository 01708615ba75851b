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
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with domain-specific methods
type Logger struct {
	*slog.Logger
}

// NewLogger creates a text-formatted logger
func NewLogger(debug bool) *Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	return &Logger{slog.New(handler)}
}

// NewJSONLogger creates a JSON-formatted logger
func NewJSONLogger(debug bool) *Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewJSONHandler(os.Stderr, opts)
	return &Logger{slog.New(handler)}
}

// WithComponent adds a component field to the logger
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{l.With("component", component)}
}

// LogAPIRequest logs an API request
func (l *Logger) LogAPIRequest(method, endpoint string) {
	l.Debug("API request",
		"method", method,
		"endpoint", endpoint,
	)
}

// LogAPIError logs an API error
func (l *Logger) LogAPIError(endpoint string, statusCode int, err error) {
	l.Error("API request failed",
		"endpoint", endpoint,
		"status_code", statusCode,
		"error", err,
	)
}

// LogDataCollection logs data collection progress
func (l *Logger) LogDataCollection(dataType string, count int) {
	l.Info("Data collected",
		"type", dataType,
		"count", count,
	)
}

// LogRateStraddle warns that a consumption interval crosses a rate-change
// boundary. The charge is not split across windows; scanning continues.
func (l *Logger) LogRateStraddle(intervalStart, intervalEnd, validTo time.Time) {
	l.Warn("Consumption interval straddles rate-change boundary",
		"interval_start", intervalStart.Format(time.RFC3339),
		"interval_end", intervalEnd.Format(time.RFC3339),
		"window_valid_to", validTo.Format(time.RFC3339),
	)
}

// LogMissingRate logs a recoverable rate-lookup failure
func (l *Logger) LogMissingRate(tariffCode, kind string, err error) {
	l.Warn("Rate lookup failed",
		"tariff", tariffCode,
		"kind", kind,
		"error", err,
	)
}

// LogComparisonStage logs comparison stage completion
func (l *Logger) LogComparisonStage(stage string) {
	l.Info("Comparison stage completed",
		"stage", stage,
	)
}

// LogStorageOperation logs storage operations
func (l *Logger) LogStorageOperation(operation, path string) {
	l.Debug("Storage operation",
		"operation", operation,
		"path", path,
	)
}

// UserMessage outputs a message directly to stdout (bypassing structured logging)
func (l *Logger) UserMessage(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}
