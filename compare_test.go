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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareRanking(t *testing.T) {
	ref := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	slots := halfHourlySlots(ref, 96, 1.0)

	// One folded day each: total = standing + 48 * unit rate.
	comparator := flatProduct("CURRENT", 2.0, 4.0) // total 100p
	mid := flatProduct("MID", 1.5, 3.0)            // total 75p
	cheap := flatProduct("CHEAP", 1.0, 2.0)        // total 50p

	c := NewComparator(NewLogger(false))
	result, err := c.Compare(comparator, []*Product{cheap, mid}, "A", ref, 24*time.Hour, slots)
	require.NoError(t, err)

	require.Len(t, result.Alternatives, 3)

	// Most expensive first, winner last
	assert.Equal(t, "CURRENT", result.Alternatives[0].ProductCode)
	assert.Equal(t, "MID", result.Alternatives[1].ProductCode)
	assert.Equal(t, "CHEAP", result.Alternatives[2].ProductCode)

	assert.InDelta(t, 100.0, result.Alternatives[0].Total(), 1e-9)
	assert.InDelta(t, 75.0, result.Alternatives[1].Total(), 1e-9)
	assert.InDelta(t, 50.0, result.Alternatives[2].Total(), 1e-9)

	winner := result.Winner()
	assert.Equal(t, "CHEAP", winner.ProductCode)
	assert.InDelta(t, 0.50, winner.Saving, 1e-9, "saving is in pounds")
	assert.InDelta(t, 0.25, result.Alternatives[1].Saving, 1e-9)

	assert.Equal(t, "CURRENT", result.Comparator.ProductCode)
	assert.Equal(t, 0.0, result.Comparator.Saving, "comparator saves nothing against itself")

	assert.True(t, result.PeriodStart.Equal(ref))
	assert.True(t, result.PeriodEnd.Equal(slots[len(slots)-1].IntervalEnd))
}

func TestCompareFiltersZeroPricedCandidates(t *testing.T) {
	ref := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	slots := halfHourlySlots(ref, 96, 1.0)

	comparator := flatProduct("CURRENT", 2.0, 4.0)

	// Gas-only product: tariffs exist for the region but none are scored,
	// so it prices to exactly (0, 0) and is excluded from the ranking.
	gasOnly := &Product{
		Code: "GAS-ONLY",
		Tariffs: map[string][]TariffSummary{
			"A": {NewTariffSummary("GAS-TARIFF", SingleRegisterGas, PaymentDirectDebitMonthly)},
		},
	}

	c := NewComparator(NewLogger(false))
	result, err := c.Compare(comparator, []*Product{gasOnly}, "A", ref, 24*time.Hour, slots)
	require.NoError(t, err)

	require.Len(t, result.Alternatives, 1)
	assert.Equal(t, "CURRENT", result.Alternatives[0].ProductCode)
}

func TestCompareSkipsCandidatesWithoutRegion(t *testing.T) {
	ref := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	slots := halfHourlySlots(ref, 96, 1.0)

	comparator := flatProduct("CURRENT", 2.0, 4.0)
	elsewhere := flatProduct("ELSEWHERE", 1.0, 2.0)
	delete(elsewhere.Tariffs, "A")
	elsewhere.Tariffs["B"] = []TariffSummary{NewTariffSummary("B-TARIFF", SingleRegisterElectricity, PaymentDirectDebitMonthly)}

	c := NewComparator(NewLogger(false))
	result, err := c.Compare(comparator, []*Product{elsewhere}, "A", ref, 24*time.Hour, slots)
	require.NoError(t, err)

	// The unavailable candidate is dropped, not fatal
	require.Len(t, result.Alternatives, 1)
	assert.Equal(t, "CURRENT", result.Alternatives[0].ProductCode)
}

func TestCompareComparatorFailureIsFatal(t *testing.T) {
	ref := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	comparator := flatProduct("CURRENT", 2.0, 4.0)

	c := NewComparator(NewLogger(false))
	_, err := c.Compare(comparator, nil, "Z", ref, 24*time.Hour, nil)
	require.Error(t, err)
}

func TestCompareComparatorOnly(t *testing.T) {
	ref := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	slots := halfHourlySlots(ref, 96, 1.0)

	comparator := flatProduct("CURRENT", 2.0, 4.0)

	c := NewComparator(NewLogger(false))
	result, err := c.Compare(comparator, nil, "A", ref, 24*time.Hour, slots)
	require.NoError(t, err)

	require.Len(t, result.Alternatives, 1)
	assert.Equal(t, "CURRENT", result.Winner().ProductCode)
	assert.Equal(t, 0.0, result.Winner().Saving)
}

func TestCompareEmptyTrace(t *testing.T) {
	ref := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	comparator := flatProduct("CURRENT", 2.0, 4.0)

	c := NewComparator(NewLogger(false))
	result, err := c.Compare(comparator, nil, "A", ref, 24*time.Hour, nil)
	require.NoError(t, err)

	assert.True(t, result.PeriodEnd.Equal(ref), "empty trace ends at the reference start")
}

func TestRankByTotalDescending(t *testing.T) {
	entries := []TariffComparison{
		{ProductCode: "B", TariffCharges: 75},
		{ProductCode: "C", TariffCharges: 50},
		{ProductCode: "A", TariffCharges: 100},
	}

	rankByTotalDescending(entries)

	assert.Equal(t, "A", entries[0].ProductCode)
	assert.Equal(t, "B", entries[1].ProductCode)
	assert.Equal(t, "C", entries[2].ProductCode)
}
