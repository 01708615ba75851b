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
	"net/http"
	"net/url"
	"time"
)

// RegionClient resolves postcodes to grid-supply-point regions via the
// industry endpoint. Resolution is best-effort: a failed or ambiguous lookup
// leaves the comparison region-less rather than failing the run.
type RegionClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *Logger
}

// NewRegionClient creates a new grid-supply-point lookup client
func NewRegionClient(logger *Logger) *RegionClient {
	return &RegionClient{
		baseURL:    OctopusRESTAPIBase,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// ResolveRegion returns the grid-supply-point group for a postcode, or an
// empty string when no postcode is given, the lookup fails, or the postcode
// maps to more than one group.
func (r *RegionClient) ResolveRegion(postcode string) string {
	if postcode == "" {
		return ""
	}

	endpoint := fmt.Sprintf("%s/industry/grid-supply-points/?postcode=%s",
		r.baseURL, url.QueryEscape(postcode))

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		r.logger.Warn("Failed to create grid-supply-point request", "error", err)
		return ""
	}
	req.Header.Set("User-Agent", GetUserAgent())

	r.logger.LogAPIRequest("GET", endpoint)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Warn("Grid-supply-point lookup failed", "postcode", postcode, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Warn("Grid-supply-point lookup returned non-200 status",
			"postcode", postcode,
			"status", resp.StatusCode,
		)
		return ""
	}

	var gspResp GridSupplyPointsResponse
	if err := json.NewDecoder(resp.Body).Decode(&gspResp); err != nil {
		r.logger.Warn("Failed to decode grid-supply-point response", "error", err)
		return ""
	}

	if len(gspResp.Results) != 1 {
		r.logger.Warn("Postcode did not resolve to a single grid-supply point",
			"postcode", postcode,
			"matches", len(gspResp.Results),
		)
		return ""
	}

	region := gspResp.Results[0].GroupID
	r.logger.Info("Resolved grid-supply point", "postcode", postcode, "region", region)
	return region
}
