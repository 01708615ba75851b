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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestNewRateWindow(t *testing.T) {
	tests := []struct {
		name      string
		validFrom string
		validTo   *string
		wantFrom  time.Time
		wantTo    time.Time
	}{
		{
			name:      "both timestamps valid",
			validFrom: "2025-01-01T00:00:00Z",
			validTo:   strPtr("2025-02-01T00:00:00Z"),
			wantFrom:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			wantTo:    time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "missing valid_to becomes far future",
			validFrom: "2025-01-01T00:00:00Z",
			validTo:   nil,
			wantFrom:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			wantTo:    farFuture,
		},
		{
			name:      "malformed valid_from becomes epoch",
			validFrom: "not-a-timestamp",
			validTo:   strPtr("2025-02-01T00:00:00Z"),
			wantFrom:  time.Unix(0, 0).UTC(),
			wantTo:    time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "malformed valid_to becomes far future",
			validFrom: "2025-01-01T00:00:00Z",
			validTo:   strPtr("garbage"),
			wantFrom:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			wantTo:    farFuture,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewRateWindow(tt.validFrom, tt.validTo, 21.5)
			assert.True(t, w.ValidFrom.Equal(tt.wantFrom), "ValidFrom = %s, want %s", w.ValidFrom, tt.wantFrom)
			assert.True(t, w.ValidTo.Equal(tt.wantTo), "ValidTo = %s, want %s", w.ValidTo, tt.wantTo)
			assert.Equal(t, 21.5, w.ValueIncVAT)
		})
	}
}

func TestRateWindowContains(t *testing.T) {
	w := NewRateWindow("2025-01-01T00:00:00Z", strPtr("2025-01-31T00:00:00Z"), 10)

	assert.True(t, w.Contains(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)), "lower bound is inclusive")
	assert.True(t, w.Contains(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)), "upper bound is inclusive")
	assert.True(t, w.Contains(time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2025, 1, 31, 0, 0, 1, 0, time.UTC)))
}

func TestFindRate(t *testing.T) {
	logger := NewLogger(false)

	// Most recent first, matching API ordering
	schedule := RateSchedule{
		NewRateWindow("2025-02-01T00:00:00Z", nil, 25.0),
		NewRateWindow("2025-01-01T00:00:00Z", strPtr("2025-02-01T00:00:00Z"), 20.0),
	}

	t.Run("interval inside older window", func(t *testing.T) {
		rate, err := schedule.FindRate(
			time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 10, 10, 30, 0, 0, time.UTC),
			logger,
		)
		require.NoError(t, err)
		assert.Equal(t, 20.0, rate)
	})

	t.Run("interval inside open-ended window", func(t *testing.T) {
		rate, err := schedule.FindRate(
			time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 1, 0, 30, 0, 0, time.UTC),
			logger,
		)
		require.NoError(t, err)
		assert.Equal(t, 25.0, rate)
	})

	t.Run("no window covers interval", func(t *testing.T) {
		start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 6, 1, 0, 30, 0, 0, time.UTC)

		_, err := schedule.FindRate(start, end, logger)
		require.Error(t, err)

		var noRate *NoMatchingRateError
		require.True(t, errors.As(err, &noRate))
		assert.True(t, noRate.IntervalStart.Equal(start))
		assert.True(t, noRate.IntervalEnd.Equal(end))
	})

	t.Run("straddling interval skips the window", func(t *testing.T) {
		// The interval begins inside the older window but ends past its
		// valid_to. Scanning continues and nothing else matches the start.
		straddled := RateSchedule{
			NewRateWindow("2025-01-01T00:00:00Z", strPtr("2025-01-10T00:00:00Z"), 20.0),
		}
		_, err := straddled.FindRate(
			time.Date(2025, 1, 9, 23, 45, 0, 0, time.UTC),
			time.Date(2025, 1, 10, 0, 15, 0, 0, time.UTC),
			logger,
		)
		var noRate *NoMatchingRateError
		require.True(t, errors.As(err, &noRate))
	})

	t.Run("straddle falls through to a covering window", func(t *testing.T) {
		// A later, wider window also covers the start; the straddled
		// window is skipped and the wider one supplies the rate.
		layered := RateSchedule{
			NewRateWindow("2025-01-01T00:00:00Z", strPtr("2025-01-10T00:00:00Z"), 20.0),
			NewRateWindow("2024-12-01T00:00:00Z", nil, 18.0),
		}
		rate, err := layered.FindRate(
			time.Date(2025, 1, 9, 23, 45, 0, 0, time.UTC),
			time.Date(2025, 1, 10, 0, 15, 0, 0, time.UTC),
			logger,
		)
		require.NoError(t, err)
		assert.Equal(t, 18.0, rate)
	})

	t.Run("empty schedule", func(t *testing.T) {
		var empty RateSchedule
		_, err := empty.FindRate(
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 1, 0, 30, 0, 0, time.UTC),
			logger,
		)
		var noRate *NoMatchingRateError
		require.True(t, errors.As(err, &noRate))
	})
}

func TestNewRateSchedule(t *testing.T) {
	resp := &TariffRatesResponse{Count: 2}
	resp.Results = append(resp.Results, struct {
		ValidFrom   string  `json:"valid_from"`
		ValidTo     *string `json:"valid_to"`
		ValueExcVAT float64 `json:"value_exc_vat"`
		ValueIncVAT float64 `json:"value_inc_vat"`
	}{ValidFrom: "2025-02-01T00:00:00Z", ValidTo: nil, ValueIncVAT: 25.0})
	resp.Results = append(resp.Results, struct {
		ValidFrom   string  `json:"valid_from"`
		ValidTo     *string `json:"valid_to"`
		ValueExcVAT float64 `json:"value_exc_vat"`
		ValueIncVAT float64 `json:"value_inc_vat"`
	}{ValidFrom: "2025-01-01T00:00:00Z", ValidTo: strPtr("2025-02-01T00:00:00Z"), ValueIncVAT: 20.0})

	schedule := NewRateSchedule(resp)
	require.Len(t, schedule, 2)
	assert.Equal(t, 25.0, schedule[0].ValueIncVAT)
	assert.Equal(t, 20.0, schedule[1].ValueIncVAT)
	assert.True(t, schedule[0].ValidTo.Equal(farFuture))
}
