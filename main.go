// Copyright 2025 The octopus-api Authors
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

package main

import (
	"flag"
	"fmt"
	"os"
	"time"
)

func main() {
	// Define command-line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	apiKey := flag.String("key", "", "Octopus Energy API Key (overrides config)")
	postcode := flag.String("postcode", "", "Postcode for region lookup (overrides config)")
	comparatorProduct := flag.String("compare", "", "Product code to compare against (overrides config)")
	format := flag.String("format", "text", "Report format: text, json or csv")
	outputPath := flag.String("output", "", "Output file for report (default: stdout)")
	htmlOutput := flag.Bool("html", false, "Generate HTML report instead of text")
	clearCache := flag.Bool("clear-cache", false, "Clear cached API responses before collecting")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	// Show version and exit
	if *showVersion {
		fmt.Printf("octopus-api %s\n", GetVersion())
		os.Exit(0)
	}

	// Initialize logger
	logger := NewLogger(*debug)
	logger.Info("Starting octopus-api", "version", GetVersion())

	// Check for updates (non-blocking)
	go CheckForUpdates(logger)

	// Load configuration
	logger.Info("Loading configuration", "config_file", *configPath)
	config, err := LoadConfig(*configPath)
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Override with command-line flags
	if *apiKey != "" {
		config.APIKey = *apiKey
	}
	if *postcode != "" {
		config.Postcode = *postcode
	}
	if *comparatorProduct != "" {
		config.ComparatorProduct = *comparatorProduct
	}
	if *debug {
		config.Debug = true
		// Recreate logger with debug enabled
		logger = NewLogger(true)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Configuration loaded successfully")

	// Initialize storage
	logger.Info("Initializing storage", "path", config.StoragePath)
	storage, err := NewStorage(config.StoragePath, config.ElectricityMPAN, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer storage.Close()

	if *clearCache {
		if err := storage.ClearCache(); err != nil {
			logger.Warn("Failed to clear cache", "error", err)
		} else {
			logger.Info("Cache cleared")
		}
	}

	// Create API clients
	logger.Info("Creating API client")
	client := NewOctopusClient(config.APIKey, logger)
	regionClient := NewRegionClient(logger)

	// Create data collector
	logger.Info("Initializing data collector")
	collector := NewCollector(client, regionClient, config, storage, logger)

	// Fetch consumption, products and rate history from the API
	logger.Info("Collecting data from Octopus Energy API")
	data, err := collector.CollectAll()
	if err != nil {
		logger.Error("Failed to collect data", "error", err)
		os.Exit(1)
	}

	// Rank candidate tariffs against the comparator
	logger.Info("Comparing tariffs", "candidates", len(data.Candidates))
	comparator := NewComparator(logger)
	bucketDuration := time.Duration(config.BucketDays) * 24 * time.Hour
	comparison, err := comparator.Compare(data.Comparator, data.Candidates, data.Region, data.PeriodStart, bucketDuration, data.Slots)
	if err != nil {
		logger.Error("Failed to compare tariffs", "error", err)
		os.Exit(1)
	}

	// Save comparison results
	logger.Info("Saving comparison results")
	if err := storage.SaveComparison(comparison, config.ElectricityMPAN); err != nil {
		logger.Warn("Failed to save comparison results", "error", err)
	}

	// Generate report (HTML, text, JSON or CSV)
	if *htmlOutput {
		logger.Info("Generating HTML report")
		htmlReporter := NewHTMLReporter(logger)
		if err := htmlReporter.GenerateHTMLReport(comparison, len(data.Slots), *outputPath); err != nil {
			logger.Error("Failed to generate HTML report", "error", err)
			os.Exit(1)
		}
	} else {
		reporter := NewReporter(logger)
		var reportErr error
		switch *format {
		case "json":
			reportErr = reporter.WriteJSON(comparison, *outputPath)
		case "csv":
			reportErr = reporter.WriteCSV(comparison, *outputPath)
		case "text":
			reportErr = reporter.WriteText(comparison, len(data.Slots), *outputPath)
		default:
			logger.Error("Unknown report format", "format", *format)
			os.Exit(1)
		}
		if reportErr != nil {
			logger.Error("Failed to generate report", "error", reportErr)
			os.Exit(1)
		}
	}

	logger.Info("Comparison completed successfully")
}
