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

// chargeRun holds the state of one comparison run. The missing-rate counter
// is shared across every tariff priced within the run, so a systemic data
// problem is caught even when each individual tariff stays under the limit,
// and a fresh run always starts from zero.
type chargeRun struct {
	logger       *Logger
	missingRates int
}

func newChargeRun(logger *Logger) *chargeRun {
	return &chargeRun{logger: logger}
}

// calcCharges walks the consumption trace once per scoreable tariff of the
// product in the given region and returns the total standing charge and
// total consumption charge in pence. Fractional pence from unit-rate
// multiplication are kept; nothing is rounded here.
//
// Only single-register electricity tariffs are scored. Dual-register and gas
// tariffs remain priceable in principle but are excluded from comparison
// scoring.
//
// Standing charges accrue at day rollovers: when a slot's day index passes
// the day marker, the elapsed days are charged at the standing rate covering
// that slot. A failed standing-charge lookup skips that delta and continues;
// this is the one place a missing rate does not count toward the abort
// threshold. At bucket rollovers both running accumulators fold into the
// totals and reset. The trailing partial bucket is never folded after the
// loop ends; callers supply traces spanning whole buckets.
func (run *chargeRun) calcCharges(product *Product, region string, referenceStart time.Time, bucketDuration time.Duration, slots []ConsumptionSlot) (float64, float64, error) {
	tariffs := product.Tariffs[region]
	if len(tariffs) == 0 {
		return 0, 0, &NoTariffForRegionError{ProductCode: product.Code, Region: region}
	}

	var totalSC, totalTC float64

	for _, tariff := range tariffs {
		switch tariff.Type {
		case SingleRegisterElectricity:
			// scored below
		case DualRegisterElectricity:
			run.logger.Debug("Skipping dual-register tariff", "tariff", tariff.Code)
			continue
		case SingleRegisterGas:
			run.logger.Debug("Skipping gas tariff", "tariff", tariff.Code)
			continue
		}

		dayMarker := 0
		bucketMarker := 0
		var standingCharge, bucket float64

		for _, slot := range slots {
			day, err := dayIndex(slot.IntervalStart, referenceStart)
			if err != nil {
				return 0, 0, err
			}
			if day > dayMarker {
				rate, err := tariff.StandingCharges.FindRate(slot.IntervalStart, slot.IntervalEnd, run.logger)
				if err != nil {
					run.logger.LogMissingRate(tariff.Code, "standing_charge", err)
				} else {
					standingCharge += float64(day-dayMarker) * rate
				}
				dayMarker = day
			}

			idx, err := bucketIndex(slot.IntervalStart, referenceStart, bucketDuration)
			if err != nil {
				return 0, 0, err
			}
			if idx > bucketMarker {
				totalSC += standingCharge
				totalTC += bucket
				standingCharge = 0
				bucket = 0
				bucketMarker = idx
			}

			rate, err := tariff.UnitRates.FindRate(slot.IntervalStart, slot.IntervalEnd, run.logger)
			if err != nil {
				run.missingRates++
				run.logger.LogMissingRate(tariff.Code, "unit_rate", err)
				if run.missingRates > MissingRateThreshold {
					return 0, 0, &TooManyMissingRatesError{
						Count:     run.missingRates,
						Threshold: MissingRateThreshold,
					}
				}
				continue
			}
			bucket += slot.Consumption * rate
		}
	}

	return totalSC, totalTC, nil
}

// daysBetween returns the number of whole 86400-second days from start to
// end, used for reporting the comparison period length.
func daysBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start) / (SecondsPerDay * time.Second))
}
