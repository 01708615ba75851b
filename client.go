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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OctopusClient talks to the Octopus Energy REST API
type OctopusClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *Logger
}

// NewOctopusClient creates a new REST API client
func NewOctopusClient(apiKey string, logger *Logger) *OctopusClient {
	return &OctopusClient{
		apiKey:  apiKey,
		baseURL: OctopusRESTAPIBase,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// getJSON performs an authenticated GET and decodes the JSON response into
// target. Non-200 responses become typed APIErrors carrying the status code
// and response body.
func (c *OctopusClient) getJSON(url string, target interface{}) error {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// The API accepts the key as a basic-auth username with empty password
	if c.apiKey != "" {
		req.SetBasicAuth(c.apiKey, "")
	}
	req.Header.Set("User-Agent", GetUserAgent())

	c.logger.LogAPIRequest("GET", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{
			Endpoint: url,
			Message:  "request failed",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.logger.LogAPIError(url, resp.StatusCode, fmt.Errorf("%s", string(bodyBytes)))
		return &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   url,
			Message:    string(bodyBytes),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// FetchConsumption fetches the half-hourly consumption trace for a meter,
// following pagination until the full period is materialised. Slots come
// back ordered ascending by interval start (order_by=period).
func (c *OctopusClient) FetchConsumption(mpan, serialNumber string, periodFrom, periodTo time.Time) ([]ConsumptionSlot, error) {
	c.logger.Info("Fetching electricity consumption",
		"mpan", mpan,
		"serial", serialNumber,
		"start", periodFrom.Format("2006-01-02"),
		"end", periodTo.Format("2006-01-02"),
	)

	url := fmt.Sprintf("%s/electricity-meter-points/%s/meters/%s/consumption/?page_size=%d&period_from=%sZ&period_to=%sZ&order_by=period",
		c.baseURL,
		mpan,
		serialNumber,
		DefaultPageSize,
		periodFrom.Format("2006-01-02T15:04:05"),
		periodTo.Format("2006-01-02T15:04:05"),
	)

	var slots []ConsumptionSlot
	for url != "" {
		var page RESTConsumptionResponse
		if err := c.getJSON(url, &page); err != nil {
			return nil, err
		}

		for _, r := range page.Results {
			start, err := time.Parse(time.RFC3339, r.IntervalStart)
			if err != nil {
				return nil, fmt.Errorf("malformed interval_start %q: %w", r.IntervalStart, err)
			}
			end, err := time.Parse(time.RFC3339, r.IntervalEnd)
			if err != nil {
				return nil, fmt.Errorf("malformed interval_end %q: %w", r.IntervalEnd, err)
			}
			slots = append(slots, ConsumptionSlot{
				IntervalStart: start,
				IntervalEnd:   end,
				Consumption:   r.Consumption,
			})
		}

		url = page.Next
	}

	c.logger.LogDataCollection("electricity_consumption", len(slots))
	return slots, nil
}
