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
	"time"
)

// NewRateWindow builds a rate window from raw API timestamp strings.
// Malformed timestamps never produce an error from this path: an unparsable
// valid_from is treated as the epoch and a missing or unparsable valid_to as
// the far-future sentinel.
func NewRateWindow(validFrom string, validTo *string, valueIncVAT float64) RateWindow {
	from, err := time.Parse(time.RFC3339, validFrom)
	if err != nil {
		from = time.Unix(0, 0).UTC()
	}

	to := farFuture
	if validTo != nil {
		if parsed, err := time.Parse(time.RFC3339, *validTo); err == nil {
			to = parsed
		}
	}

	return RateWindow{
		ValidFrom:   from,
		ValidTo:     to,
		ValueIncVAT: valueIncVAT,
	}
}

// Contains reports whether t falls within the window's inclusive span
func (w RateWindow) Contains(t time.Time) bool {
	return !t.Before(w.ValidFrom) && !t.After(w.ValidTo)
}

// NewRateSchedule converts one rates response page into schedule windows,
// preserving the API's most-recent-first ordering
func NewRateSchedule(resp *TariffRatesResponse) RateSchedule {
	schedule := make(RateSchedule, 0, len(resp.Results))
	for _, r := range resp.Results {
		schedule = append(schedule, NewRateWindow(r.ValidFrom, r.ValidTo, r.ValueIncVAT))
	}
	return schedule
}

// FindRate returns the inc-VAT value of the rate window covering the
// consumption interval. The schedule is scanned in order (most recent
// first). A window covering intervalStart but not intervalEnd means the
// interval straddles a rate-change boundary: that is logged and scanning
// continues rather than splitting the charge across windows. If no window
// qualifies the lookup fails with a NoMatchingRateError carrying the
// searched bounds.
func (s RateSchedule) FindRate(intervalStart, intervalEnd time.Time, logger *Logger) (float64, error) {
	for _, w := range s {
		if !w.Contains(intervalStart) {
			continue
		}
		if intervalEnd.After(w.ValidTo) {
			if logger != nil {
				logger.LogRateStraddle(intervalStart, intervalEnd, w.ValidTo)
			}
			continue
		}
		return w.ValueIncVAT, nil
	}

	return 0, &NoMatchingRateError{
		IntervalStart: intervalStart,
		IntervalEnd:   intervalEnd,
	}
}
