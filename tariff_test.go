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
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTariffSummary(t *testing.T) {
	summary := NewTariffSummary("E-1R-AGILE-24-10-01-C", SingleRegisterElectricity, PaymentDirectDebitMonthly)

	assert.Equal(t, "E-1R-AGILE-24-10-01-C", summary.Code)
	assert.Equal(t, SingleRegisterElectricity, summary.Type)
	assert.Equal(t, PaymentDirectDebitMonthly, summary.PaymentModel)
	assert.Nil(t, summary.StandingCharges, "rate history is attached separately")
	assert.Nil(t, summary.UnitRates)
}

func TestTariffTypeString(t *testing.T) {
	assert.Equal(t, "single_register_electricity_tariffs", SingleRegisterElectricity.String())
	assert.Equal(t, "dual_register_electricity_tariffs", DualRegisterElectricity.String())
	assert.Equal(t, "single_register_gas_tariffs", SingleRegisterGas.String())
}

func TestNewProduct(t *testing.T) {
	detail := &ProductDetailResponse{
		Code:        "AGILE-24-10-01",
		DisplayName: "Agile Octopus",
		FullName:    "Agile Octopus October 2024 v1",
		Brand:       "OCTOPUS_ENERGY",
		SingleRegisterElectricityTariffs: map[string]map[string]TariffIdentity{
			"_A": {"direct_debit_monthly": {Code: "E-1R-AGILE-24-10-01-A"}},
			"_B": {"varying": {Code: "E-1R-AGILE-24-10-01-B-VAR"}},
		},
		SingleRegisterGasTariffs: map[string]map[string]TariffIdentity{
			"_A": {"direct_debit_monthly": {Code: "G-1R-AGILE-24-10-01-A"}},
		},
	}

	product := NewProduct(detail, "_A")

	assert.Equal(t, "AGILE-24-10-01", product.Code)
	assert.Equal(t, "Agile Octopus", product.DisplayName)
	assert.Equal(t, "_A", product.Region)

	// Region _A carries both the electricity and the gas tariff; region _B
	// offers no direct-debit entry and is dropped entirely.
	require.Len(t, product.Tariffs["_A"], 2)
	assert.Equal(t, "E-1R-AGILE-24-10-01-A", product.Tariffs["_A"][0].Code)
	assert.Equal(t, SingleRegisterElectricity, product.Tariffs["_A"][0].Type)
	assert.Equal(t, "G-1R-AGILE-24-10-01-A", product.Tariffs["_A"][1].Code)
	assert.Equal(t, SingleRegisterGas, product.Tariffs["_A"][1].Type)

	assert.Empty(t, product.Tariffs["_B"])
}

func TestWithRateHistory(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"count": 1,
			"next": "",
			"results": [
				{"valid_from": "2025-01-01T00:00:00Z", "valid_to": null, "value_exc_vat": 20.0, "value_inc_vat": 21.0}
			]
		}`)
	})

	client, _ := newTestClient(t, mux)

	summary := NewTariffSummary("E-1R-PROD-A", SingleRegisterElectricity, PaymentDirectDebitMonthly)
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 29, 0, 0, 0, 0, time.UTC)

	enriched, err := summary.WithRateHistory(client, "PROD", from, to)
	require.NoError(t, err)

	require.Len(t, enriched.StandingCharges, 1)
	require.Len(t, enriched.UnitRates, 1)
	assert.Equal(t, 21.0, enriched.UnitRates[0].ValueIncVAT)

	// The receiver stays identity-only
	assert.Nil(t, summary.StandingCharges)
	assert.Nil(t, summary.UnitRates)
}

func TestPopulateRateHistory(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"count": 1,
			"next": "",
			"results": [
				{"valid_from": "2025-01-01T00:00:00Z", "valid_to": null, "value_exc_vat": 20.0, "value_inc_vat": 21.0}
			]
		}`)
	})

	client, _ := newTestClient(t, mux)

	product := &Product{
		Code: "PROD",
		Tariffs: map[string][]TariffSummary{
			"_A": {NewTariffSummary("E-1R-PROD-A", SingleRegisterElectricity, PaymentDirectDebitMonthly)},
			"_B": {NewTariffSummary("E-1R-PROD-B", SingleRegisterElectricity, PaymentDirectDebitMonthly)},
		},
	}

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 29, 0, 0, 0, 0, time.UTC)
	require.NoError(t, product.PopulateRateHistory(client, "_A", from, to))

	require.Len(t, product.Tariffs["_A"][0].UnitRates, 1)
	assert.Nil(t, product.Tariffs["_B"][0].UnitRates, "other regions stay identity-only")
}
