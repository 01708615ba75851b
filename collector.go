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

// Collector orchestrates data collection from the Octopus Energy API: region
// resolution, product discovery, lazy tariff-charge population and the
// consumption trace. All data is fully materialised in memory before any
// charge calculation begins.
type Collector struct {
	client       *OctopusClient
	regionClient *RegionClient
	config       *Config
	storage      *Storage
	logger       *Logger
}

// NewCollector creates a new data collector
func NewCollector(client *OctopusClient, regionClient *RegionClient, config *Config, storage *Storage, logger *Logger) *Collector {
	return &Collector{
		client:       client,
		regionClient: regionClient,
		config:       config,
		storage:      storage,
		logger:       logger,
	}
}

// CollectAll fetches everything one comparison run needs
func (c *Collector) CollectAll() (*CollectedData, error) {
	c.logger.Info("Starting data collection")

	periodEnd := time.Now().UTC().Truncate(24 * time.Hour)
	periodStart := periodEnd.AddDate(0, 0, -c.config.PeriodDays)

	c.logger.Info("Comparison period",
		"start", periodStart.Format("2006-01-02"),
		"end", periodEnd.Format("2006-01-02"),
		"days", c.config.PeriodDays,
	)

	data := &CollectedData{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		FetchedAt:   time.Now(),
	}

	// Resolve the grid-supply-point region for the configured postcode
	data.Region = c.resolveRegionCached(c.config.Postcode)

	// Fetch the consumption trace
	slots, err := c.client.FetchConsumption(
		c.config.ElectricityMPAN,
		c.config.ElectricitySerial,
		periodStart,
		periodEnd,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch consumption: %w", err)
	}
	if len(slots) == 0 {
		return nil, &DataError{
			DataType: "consumption",
			Message:  "no consumption data for the requested period",
		}
	}
	data.Slots = slots

	// Discover candidate products
	listings, err := c.fetchProductsCached()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	for _, listing := range listings {
		product, err := c.fetchPricedProductCached(listing.Code, data.Region, periodStart, periodEnd)
		if err != nil {
			c.logger.Warn("Skipping product", "product", listing.Code, "error", err)
			continue
		}
		if listing.Code == c.config.ComparatorProduct {
			data.Comparator = product
		} else {
			data.Candidates = append(data.Candidates, product)
		}
	}

	// A comparator product that is no longer listed (e.g. retired from sale)
	// can still be fetched directly.
	if data.Comparator == nil {
		product, err := c.fetchPricedProductCached(c.config.ComparatorProduct, data.Region, periodStart, periodEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch comparator product %s: %w", c.config.ComparatorProduct, err)
		}
		data.Comparator = product
	}

	c.logger.Info("Data collection completed successfully",
		"region", data.Region,
		"slots", len(data.Slots),
		"candidates", len(data.Candidates),
	)
	return data, nil
}

// resolveRegionCached resolves a postcode to a region, caching the lookup
func (c *Collector) resolveRegionCached(postcode string) string {
	if postcode == "" {
		return ""
	}

	cacheKey := fmt.Sprintf("gsp_%s", postcode)
	var region string
	cached, err := c.storage.LoadCache(cacheKey, &region)
	if err != nil {
		c.logger.Warn("Failed to load region from cache", "error", err)
	}
	if cached {
		return region
	}

	region = c.regionClient.ResolveRegion(postcode)
	if region != "" {
		if err := c.storage.SaveCache(cacheKey, region, regionCacheTTL); err != nil {
			c.logger.Warn("Failed to cache region", "error", err)
		}
	}
	return region
}

// fetchProductsCached fetches the product listing with caching
func (c *Collector) fetchProductsCached() ([]ProductListing, error) {
	var listings []ProductListing
	cached, err := c.storage.LoadCache("products", &listings)
	if err != nil {
		c.logger.Warn("Failed to load products from cache", "error", err)
	}

	if !cached {
		listings, err = c.client.FetchProducts()
		if err != nil {
			return nil, err
		}
		if err := c.storage.SaveCache("products", listings, productCacheTTL); err != nil {
			c.logger.Warn("Failed to cache products", "error", err)
		}
	} else {
		c.logger.Debug("Loaded products from cache", "count", len(listings))
	}

	return listings, nil
}

// fetchPricedProductCached fetches a product's detail and populates its rate
// history for the region and reporting period, with caching. Only the
// resolved region's schedules are fetched; every other region stays
// identity-only.
func (c *Collector) fetchPricedProductCached(code, region string, periodFrom, periodTo time.Time) (*Product, error) {
	cacheKey := fmt.Sprintf("priced_%s_%s_%s_%s",
		code,
		region,
		periodFrom.Format("2006-01-02"),
		periodTo.Format("2006-01-02"),
	)

	var product Product
	cached, err := c.storage.LoadCache(cacheKey, &product)
	if err != nil {
		c.logger.Warn("Failed to load priced product from cache", "error", err)
	}
	if cached {
		return &product, nil
	}

	detail, err := c.client.FetchProductDetail(code)
	if err != nil {
		return nil, err
	}

	p := NewProduct(detail, region)
	if region != "" {
		if err := p.PopulateRateHistory(c.client, region, periodFrom, periodTo); err != nil {
			return nil, err
		}
	}

	if err := c.storage.SaveCache(cacheKey, p, ratesCacheTTL); err != nil {
		c.logger.Warn("Failed to cache priced product", "error", err)
	}

	return p, nil
}
