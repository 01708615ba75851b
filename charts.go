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
	"encoding/base64"
	"fmt"

	charts "github.com/vicanso/go-charts/v2"
)

// ChartGenerator handles chart generation
type ChartGenerator struct {
	theme string
}

// NewChartGenerator creates a new chart generator
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{
		theme: "dark", // Match our HTML report dark theme
	}
}

// GenerateComparisonChart creates a bar chart of total cost per tariff in
// pounds, stacked from standing and consumption charges, in ranking order
// (most expensive first).
func (cg *ChartGenerator) GenerateComparisonChart(comparison *Comparison) (string, error) {
	if len(comparison.Alternatives) == 0 {
		return "", fmt.Errorf("no ranked tariffs available")
	}

	var labels []string
	var standing []float64
	var consumption []float64

	for _, entry := range comparison.Alternatives {
		label := entry.ProductCode
		if entry.ProductCode == comparison.Comparator.ProductCode {
			label = "* " + label
		}
		labels = append(labels, label)
		standing = append(standing, entry.StandingCharges/100)
		consumption = append(consumption, entry.TariffCharges/100)
	}

	p, err := charts.BarRender(
		[][]float64{standing, consumption},
		charts.TitleTextOptionFunc("Tariff Cost Comparison (£)"),
		charts.XAxisDataOptionFunc(labels),
		charts.LegendLabelsOptionFunc([]string{"Standing charges", "Consumption charges"}, charts.PositionRight),
		charts.ThemeOptionFunc(cg.getTheme()),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(400),
		charts.PaddingOptionFunc(charts.Box{
			Top:    20,
			Right:  20,
			Bottom: 20,
			Left:   20,
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render comparison chart: %w", err)
	}

	// Convert to base64 for embedding in HTML
	buf, err := p.Bytes()
	if err != nil {
		return "", fmt.Errorf("failed to generate chart bytes: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf), nil
}

// getTheme returns the chart theme name
func (cg *ChartGenerator) getTheme() string {
	return cg.theme
}
