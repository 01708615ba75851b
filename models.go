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

// ConsumptionSlot is one metering interval. Slots arrive ordered ascending
// by IntervalStart and are usually contiguous half-hours, but nothing in the
// charge engine assumes that: bucket and day indices are derived from
// absolute time, not slot position.
type ConsumptionSlot struct {
	IntervalStart time.Time `json:"interval_start"`
	IntervalEnd   time.Time `json:"interval_end"`
	Consumption   float64   `json:"consumption"` // kWh, non-negative
}

// RateWindow is one validity-windowed rate entry. ValidFrom and ValidTo are
// normalised at construction: an unparsable valid_from becomes the epoch and
// a missing or unparsable valid_to becomes the far-future sentinel.
type RateWindow struct {
	ValidFrom   time.Time `json:"valid_from"`
	ValidTo     time.Time `json:"valid_to"`
	ValueIncVAT float64   `json:"value_inc_vat"` // pence per kWh or pence per day
}

// RateSchedule is an ordered-by-recency (most recent first) sequence of rate
// windows. Windows should not overlap ambiguously for the same instant, but
// the schedule does not enforce that; lookup returns the first match found
// scanning most-recent-first.
type RateSchedule []RateWindow

// TariffType is the closed set of tariff variants a product can carry.
type TariffType int

const (
	// SingleRegisterElectricity is a standard electricity tariff with one
	// unit-rate register. The only variant scored by the comparison engine.
	SingleRegisterElectricity TariffType = iota
	// DualRegisterElectricity is an economy tariff with separate day and
	// night registers. Priceable in principle, excluded from scoring.
	DualRegisterElectricity
	// SingleRegisterGas is a standard gas tariff.
	SingleRegisterGas
)

// String returns the API listing key for the tariff type
func (t TariffType) String() string {
	switch t {
	case SingleRegisterElectricity:
		return "single_register_electricity_tariffs"
	case DualRegisterElectricity:
		return "dual_register_electricity_tariffs"
	case SingleRegisterGas:
		return "single_register_gas_tariffs"
	default:
		panic("unknown tariff type")
	}
}

// TariffSummary is one tariff's identity plus, once enriched, its rate
// history for a reporting period. Identity fields are populated from the
// product listing; WithRateHistory returns an enriched copy so a summary is
// never observed half-populated.
type TariffSummary struct {
	Code         string     `json:"code"`
	Type         TariffType `json:"type"`
	PaymentModel string     `json:"payment_model"`

	// Rate history, populated by WithRateHistory for a concrete period.
	StandingCharges RateSchedule `json:"standing_charges,omitempty"`
	UnitRates       RateSchedule `json:"unit_rates,omitempty"`
	// NightUnitRates is only populated for dual-register tariffs.
	NightUnitRates RateSchedule `json:"night_unit_rates,omitempty"`
}

// Product is a priceable plan: identity plus a mapping from grid-supply-point
// region to the tariffs offered there. Created once per query and not mutated
// after tariff-charge population completes.
type Product struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
	FullName    string `json:"full_name"`
	Brand       string `json:"brand"`

	// Region is the resolved grid-supply-point code for the selected
	// postcode, or empty if no postcode was given or it was ambiguous.
	Region string `json:"region,omitempty"`

	Tariffs map[string][]TariffSummary `json:"tariffs"`
}

// TariffComparison is one tariff's priced result within a comparison run.
// Charges are in pence; Saving is in pounds relative to the comparator.
type TariffComparison struct {
	ProductCode     string  `json:"product_code"`
	DisplayName     string  `json:"display_name"`
	StandingCharges float64 `json:"standing_charges"`
	TariffCharges   float64 `json:"tariff_charges"`
	Saving          float64 `json:"saving"`
}

// Total returns the grand total in pence
func (t TariffComparison) Total() float64 {
	return t.StandingCharges + t.TariffCharges
}

// Comparison is the output of one comparison run. Alternatives are ranked
// most-expensive-first, so the last entry is the cheapest; the comparator is
// always present among them.
type Comparison struct {
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	GeneratedAt time.Time `json:"generated_at"`

	Comparator   TariffComparison   `json:"comparator"`
	Alternatives []TariffComparison `json:"alternatives"`
}

// Winner returns the cheapest entry, which ranking places last. A run with
// no candidates still has a winner: the comparator itself.
func (c *Comparison) Winner() TariffComparison {
	return c.Alternatives[len(c.Alternatives)-1]
}

// REST response structures for API calls

// RESTConsumptionResponse represents one page of the consumption endpoint
type RESTConsumptionResponse struct {
	Count    int    `json:"count"`
	Next     string `json:"next"`
	Previous string `json:"previous"`
	Results  []struct {
		IntervalStart string  `json:"interval_start"`
		IntervalEnd   string  `json:"interval_end"`
		Consumption   float64 `json:"consumption"`
	} `json:"results"`
}

// ProductsResponse represents one page of the products listing
type ProductsResponse struct {
	Count   int              `json:"count"`
	Next    string           `json:"next"`
	Results []ProductListing `json:"results"`
}

// ProductListing is one entry of the products listing
type ProductListing struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
	FullName    string `json:"full_name"`
	Brand       string `json:"brand"`
}

// ProductDetailResponse represents the single-product endpoint. Each tariff
// type maps region codes to payment-model keyed tariff identities.
type ProductDetailResponse struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
	FullName    string `json:"full_name"`
	Brand       string `json:"brand"`

	SingleRegisterElectricityTariffs map[string]map[string]TariffIdentity `json:"single_register_electricity_tariffs"`
	DualRegisterElectricityTariffs   map[string]map[string]TariffIdentity `json:"dual_register_electricity_tariffs"`
	SingleRegisterGasTariffs         map[string]map[string]TariffIdentity `json:"single_register_gas_tariffs"`
}

// TariffIdentity is the per-region, per-payment-model tariff entry inside a
// product detail response
type TariffIdentity struct {
	Code string `json:"code"`
}

// TariffRatesResponse represents one page of a standing-charge or unit-rate
// schedule. Timestamps stay strings here: they are normalised leniently when
// converted to RateWindow values.
type TariffRatesResponse struct {
	Count   int    `json:"count"`
	Next    string `json:"next"`
	Results []struct {
		ValidFrom   string  `json:"valid_from"`
		ValidTo     *string `json:"valid_to"`
		ValueExcVAT float64 `json:"value_exc_vat"`
		ValueIncVAT float64 `json:"value_inc_vat"`
	} `json:"results"`
}

// GridSupplyPointsResponse represents the industry grid-supply-point lookup
type GridSupplyPointsResponse struct {
	Count   int `json:"count"`
	Results []struct {
		GroupID string `json:"group_id"`
	} `json:"results"`
}

// CollectedData holds everything fetched for one comparison invocation
type CollectedData struct {
	Region      string            `json:"region"`
	PeriodStart time.Time         `json:"period_start"`
	PeriodEnd   time.Time         `json:"period_end"`
	Slots       []ConsumptionSlot `json:"slots"`
	Comparator  *Product          `json:"comparator"`
	Candidates  []*Product        `json:"candidates"`
	FetchedAt   time.Time         `json:"fetched_at"`
}
