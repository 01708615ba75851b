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
	"fmt"
	"time"
)

// FetchProducts fetches the full product listing, following pagination
func (c *OctopusClient) FetchProducts() ([]ProductListing, error) {
	url := fmt.Sprintf("%s/products/?page_size=%d", c.baseURL, DefaultPageSize)

	var listings []ProductListing
	for url != "" {
		var page ProductsResponse
		if err := c.getJSON(url, &page); err != nil {
			return nil, err
		}
		listings = append(listings, page.Results...)
		url = page.Next
	}

	c.logger.LogDataCollection("products", len(listings))
	return listings, nil
}

// FetchProductDetail fetches a single product with its per-region tariff
// listings
func (c *OctopusClient) FetchProductDetail(code string) (*ProductDetailResponse, error) {
	url := fmt.Sprintf("%s/products/%s/", c.baseURL, code)

	var detail ProductDetailResponse
	if err := c.getJSON(url, &detail); err != nil {
		return nil, err
	}

	return &detail, nil
}

// TariffCharges fetches the rate history of one tariff for a reporting
// period: the standing-charge schedule, the primary unit-rate schedule and,
// for dual-register tariffs only, the night-register schedule.
func (c *OctopusClient) TariffCharges(productCode, tariffCode string, tariffType TariffType, periodFrom, periodTo time.Time) (RateSchedule, RateSchedule, RateSchedule, error) {
	var fuel, primaryRates string
	var wantSecondary bool

	switch tariffType {
	case SingleRegisterElectricity:
		fuel = "electricity-tariffs"
		primaryRates = "standard-unit-rates"
	case DualRegisterElectricity:
		fuel = "electricity-tariffs"
		primaryRates = "day-unit-rates"
		wantSecondary = true
	case SingleRegisterGas:
		fuel = "gas-tariffs"
		primaryRates = "standard-unit-rates"
	}

	standing, err := c.fetchRateSchedule(productCode, tariffCode, fuel, "standing-charges", periodFrom, periodTo)
	if err != nil {
		return nil, nil, nil, err
	}

	primary, err := c.fetchRateSchedule(productCode, tariffCode, fuel, primaryRates, periodFrom, periodTo)
	if err != nil {
		return nil, nil, nil, err
	}

	var secondary RateSchedule
	if wantSecondary {
		secondary, err = c.fetchRateSchedule(productCode, tariffCode, fuel, "night-unit-rates", periodFrom, periodTo)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	return standing, primary, secondary, nil
}

// fetchRateSchedule fetches one paginated rate schedule, preserving the
// API's most-recent-first ordering across pages
func (c *OctopusClient) fetchRateSchedule(productCode, tariffCode, fuel, rateKind string, periodFrom, periodTo time.Time) (RateSchedule, error) {
	url := fmt.Sprintf("%s/products/%s/%s/%s/%s/?page_size=%d&period_from=%sZ&period_to=%sZ",
		c.baseURL,
		productCode,
		fuel,
		tariffCode,
		rateKind,
		DefaultPageSize,
		periodFrom.Format("2006-01-02T15:04:05"),
		periodTo.Format("2006-01-02T15:04:05"),
	)

	var schedule RateSchedule
	for url != "" {
		var page TariffRatesResponse
		if err := c.getJSON(url, &page); err != nil {
			return nil, err
		}
		schedule = append(schedule, NewRateSchedule(&page)...)
		url = page.Next
	}

	return schedule, nil
}
