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
	"fmt"
	"time"
)

// NewTariffSummary assembles a tariff's identity. Rate history is attached
// separately with WithRateHistory once a reporting period is known, so the
// full rate schedules of every tariff/region combination are never fetched
// unconditionally.
func NewTariffSummary(code string, tariffType TariffType, paymentModel string) TariffSummary {
	return TariffSummary{
		Code:         code,
		Type:         tariffType,
		PaymentModel: paymentModel,
	}
}

// WithRateHistory returns a copy of the summary enriched with the standing
// charge and unit-rate schedules covering the reporting period. The receiver
// is never mutated, so identity-only summaries and enriched summaries cannot
// be confused.
func (t TariffSummary) WithRateHistory(client *OctopusClient, productCode string, periodFrom, periodTo time.Time) (TariffSummary, error) {
	standing, primary, secondary, err := client.TariffCharges(productCode, t.Code, t.Type, periodFrom, periodTo)
	if err != nil {
		return TariffSummary{}, fmt.Errorf("failed to fetch charges for tariff %s: %w", t.Code, err)
	}

	enriched := t
	enriched.StandingCharges = standing
	enriched.UnitRates = primary
	enriched.NightUnitRates = secondary
	return enriched, nil
}

// NewProduct builds a Product from a product detail response, collecting
// every tariff type offered per region. Ordering within a region follows the
// tariff type declaration order so single-register electricity tariffs are
// scored first.
func NewProduct(detail *ProductDetailResponse, region string) *Product {
	p := &Product{
		Code:        detail.Code,
		DisplayName: detail.DisplayName,
		FullName:    detail.FullName,
		Brand:       detail.Brand,
		Region:      region,
		Tariffs:     make(map[string][]TariffSummary),
	}

	appendTariffs(p.Tariffs, detail.SingleRegisterElectricityTariffs, SingleRegisterElectricity)
	appendTariffs(p.Tariffs, detail.DualRegisterElectricityTariffs, DualRegisterElectricity)
	appendTariffs(p.Tariffs, detail.SingleRegisterGasTariffs, SingleRegisterGas)

	return p
}

func appendTariffs(dst map[string][]TariffSummary, listing map[string]map[string]TariffIdentity, tariffType TariffType) {
	for region, byPayment := range listing {
		identity, ok := byPayment[PaymentDirectDebitMonthly]
		if !ok || identity.Code == "" {
			continue
		}
		dst[region] = append(dst[region], NewTariffSummary(identity.Code, tariffType, PaymentDirectDebitMonthly))
	}
}

// PopulateRateHistory enriches the product's tariffs for one region with
// rate schedules covering the reporting period. Other regions stay
// identity-only; their histories are never needed for a single comparison.
func (p *Product) PopulateRateHistory(client *OctopusClient, region string, periodFrom, periodTo time.Time) error {
	tariffs := p.Tariffs[region]
	for i, tariff := range tariffs {
		enriched, err := tariff.WithRateHistory(client, p.Code, periodFrom, periodTo)
		if err != nil {
			return err
		}
		tariffs[i] = enriched
	}
	return nil
}
