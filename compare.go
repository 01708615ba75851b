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
	"errors"
	"sort"
	"time"
)

// Comparator prices a consumption trace under every candidate product and
// ranks the results against a designated comparator product.
type Comparator struct {
	logger *Logger
}

// NewComparator creates a new tariff comparator
func NewComparator(logger *Logger) *Comparator {
	return &Comparator{logger: logger}
}

// Compare runs the charge calculation once for the comparator and once per
// candidate over the same trace, then ranks every priced entry by ascending
// total cost and reverses the order: index 0 is the most expensive and the
// last entry is the cheapest, the winner. Savings are relative to the
// comparator, in pounds.
//
// Candidates pricing to exactly (0, 0) carry no applicable tariff or region
// data and are filtered from the ranking; that is deliberate, not an error.
// A candidate with no tariffs for the region is logged and skipped, and the
// run continues with the rest. Only a systemic failure aborts the whole
// comparison: the missing-rate counter crossing its threshold anywhere in
// the run.
func (c *Comparator) Compare(comparator *Product, candidates []*Product, region string, referenceStart time.Time, bucketDuration time.Duration, slots []ConsumptionSlot) (*Comparison, error) {
	run := newChargeRun(c.logger)

	compSC, compTC, err := run.calcCharges(comparator, region, referenceStart, bucketDuration, slots)
	if err != nil {
		return nil, err
	}
	compTotal := compSC + compTC
	c.logger.LogComparisonStage("comparator_priced")

	comparatorResult := TariffComparison{
		ProductCode:     comparator.Code,
		DisplayName:     comparator.DisplayName,
		StandingCharges: compSC,
		TariffCharges:   compTC,
	}

	entries := []TariffComparison{comparatorResult}

	for _, candidate := range candidates {
		sc, tc, err := run.calcCharges(candidate, region, referenceStart, bucketDuration, slots)
		if err != nil {
			var noTariff *NoTariffForRegionError
			if errors.As(err, &noTariff) {
				c.logger.Warn("Excluding candidate from ranking",
					"product", candidate.Code,
					"error", err,
				)
				continue
			}
			return nil, err
		}
		if sc == 0 && tc == 0 {
			c.logger.Debug("Candidate priced to zero, excluding", "product", candidate.Code)
			continue
		}
		entries = append(entries, TariffComparison{
			ProductCode:     candidate.Code,
			DisplayName:     candidate.DisplayName,
			StandingCharges: sc,
			TariffCharges:   tc,
			Saving:          (compTotal - (sc + tc)) / 100,
		})
	}

	c.logger.LogComparisonStage("candidates_priced")
	rankByTotalDescending(entries)

	return &Comparison{
		PeriodStart:  referenceStart,
		PeriodEnd:    periodEnd(referenceStart, slots),
		GeneratedAt:  time.Now(),
		Comparator:   comparatorResult,
		Alternatives: entries,
	}, nil
}

// rankByTotalDescending sorts ascending by total cost and reverses, leaving
// the most expensive entry first and the winner last. Downstream formatting
// depends on this exact ordering.
func rankByTotalDescending(entries []TariffComparison) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total() < entries[j].Total()
	})
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}

// periodEnd reports the end of the compared period: the final slot's
// interval end, or the reference start for an empty trace.
func periodEnd(referenceStart time.Time, slots []ConsumptionSlot) time.Time {
	if len(slots) == 0 {
		return referenceStart
	}
	return slots[len(slots)-1].IntervalEnd
}
