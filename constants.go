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

import "time"

const (
	// OctopusRESTAPIBase is the base URL for the Octopus Energy REST API
	OctopusRESTAPIBase = "https://api.octopus.energy/v1"

	// DefaultPageSize is the page size requested from paginated endpoints
	DefaultPageSize = 1500

	// MissingRateThreshold is the number of unit-rate lookup failures
	// tolerated within one comparison run. Isolated gaps in a rate schedule
	// are logged and skipped; exceeding this count aborts the run.
	MissingRateThreshold = 5

	// PaymentDirectDebitMonthly is the payment model selected from a
	// product's per-region tariff listings.
	PaymentDirectDebitMonthly = "direct_debit_monthly"

	// SecondsPerDay is the day length used for standing-charge day indexing.
	SecondsPerDay = 86400
)

// farFuture is the sentinel for rate windows with a missing or unparsable
// valid_to: an open-ended window is treated as valid until the year 2116.
var farFuture = time.Date(2116, 1, 1, 0, 0, 0, 0, time.UTC)

// Cache TTLs for API responses. Product listings and grid-supply-point
// lookups change rarely; rate schedules update periodically.
const (
	productCacheTTL = 24 * time.Hour
	ratesCacheTTL   = 6 * time.Hour
	regionCacheTTL  = 24 * time.Hour
)
