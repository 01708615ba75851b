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
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
)

// Reporter renders comparison results as text, JSON or CSV
type Reporter struct {
	logger *Logger
}

// NewReporter creates a new report generator
func NewReporter(logger *Logger) *Reporter {
	return &Reporter{
		logger: logger,
	}
}

// openOutput returns a writer for the output path, defaulting to stdout
func (r *Reporter) openOutput(outputPath string) (io.Writer, func() error, error) {
	if outputPath == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create report file: %w", err)
	}
	return file, file.Close, nil
}

// WriteText renders the human-readable comparison, one ranked line per
// tariff, most expensive first and the winner last. The comparator's line is
// prefixed with "*** " so it stands out in the ranking.
func (r *Reporter) WriteText(comparison *Comparison, slotCount int, outputPath string) error {
	w, closeFn, err := r.openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeFn()

	fmt.Fprintf(w, "Tariff comparison for %s to %s (%s half-hourly readings over %d days)\n\n",
		comparison.PeriodStart.Format("2006-01-02"),
		comparison.PeriodEnd.Format("2006-01-02"),
		humanize.Comma(int64(slotCount)),
		daysBetween(comparison.PeriodStart, comparison.PeriodEnd),
	)

	for _, entry := range comparison.Alternatives {
		code := entry.ProductCode
		if entry.ProductCode == comparison.Comparator.ProductCode {
			code = "*** " + code
		}
		fmt.Fprintf(w, "%28s: Standing charges: %5.2f, tariff charges %5.2f; total £%5.2f, saving: £%5.2f\n",
			code,
			entry.StandingCharges/100,
			entry.TariffCharges/100,
			entry.Total()/100,
			entry.Saving,
		)
	}

	winner := comparison.Winner()
	fmt.Fprintf(w, "\nCheapest tariff: %s (%s), saving £%.2f against %s\n",
		winner.ProductCode,
		winner.DisplayName,
		winner.Saving,
		comparison.Comparator.ProductCode,
	)

	if outputPath != "" {
		r.logger.Info("Report saved", "path", outputPath)
	}
	return nil
}

// comparisonDocument is the structured rendering of a comparison
type comparisonDocument struct {
	PeriodStart  string             `json:"period_start"`
	PeriodEnd    string             `json:"period_end"`
	Comparator   TariffComparison   `json:"comparator"`
	Alternatives []TariffComparison `json:"alternatives"`
	Winner       TariffComparison   `json:"winner"`
}

// WriteJSON renders the comparison as a structured JSON document
func (r *Reporter) WriteJSON(comparison *Comparison, outputPath string) error {
	w, closeFn, err := r.openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeFn()

	doc := comparisonDocument{
		PeriodStart:  comparison.PeriodStart.Format("2006-01-02T15:04:05Z07:00"),
		PeriodEnd:    comparison.PeriodEnd.Format("2006-01-02T15:04:05Z07:00"),
		Comparator:   comparison.Comparator,
		Alternatives: comparison.Alternatives,
		Winner:       comparison.Winner(),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode comparison: %w", err)
	}

	if outputPath != "" {
		r.logger.Info("Report saved", "path", outputPath)
	}
	return nil
}

// WriteCSV renders the ranked comparison as CSV, one row per tariff
func (r *Reporter) WriteCSV(comparison *Comparison, outputPath string) error {
	w, closeFn, err := r.openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeFn()

	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"rank",
		"product_code",
		"display_name",
		"standing_charges_pence",
		"tariff_charges_pence",
		"total_pence",
		"saving_pounds",
		"is_comparator",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, entry := range comparison.Alternatives {
		row := []string{
			strconv.Itoa(i + 1),
			entry.ProductCode,
			entry.DisplayName,
			fmtPence(entry.StandingCharges),
			fmtPence(entry.TariffCharges),
			fmtPence(entry.Total()),
			fmtPence(entry.Saving),
			strconv.FormatBool(entry.ProductCode == comparison.Comparator.ProductCode),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	if outputPath != "" {
		r.logger.Info("Report saved", "path", outputPath)
	}
	return cw.Error()
}

func fmtPence(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}

// FormatCurrency formats a value in pounds
func FormatCurrency(value float64) string {
	return fmt.Sprintf("£%.2f", value)
}
