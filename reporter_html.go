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
	"html"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
)

// HTMLReporter generates HTML reports from comparison results
type HTMLReporter struct {
	logger *Logger
	charts *ChartGenerator
}

// NewHTMLReporter creates a new HTML report generator
func NewHTMLReporter(logger *Logger) *HTMLReporter {
	return &HTMLReporter{
		logger: logger,
		charts: NewChartGenerator(),
	}
}

// GenerateHTMLReport generates an HTML report
func (r *HTMLReporter) GenerateHTMLReport(comparison *Comparison, slotCount int, outputPath string) error {
	r.logger.Info("Generating HTML report")

	var writer io.Writer
	if outputPath == "" {
		writer = os.Stdout
	} else {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create HTML report file: %w", err)
		}
		defer file.Close()
		writer = file
	}

	r.writeHTMLHeader(writer, comparison)
	r.writeHTMLSummary(writer, comparison, slotCount)
	r.writeHTMLChart(writer, comparison)
	r.writeHTMLRankingTable(writer, comparison)
	r.writeHTMLFooter(writer)

	if outputPath != "" {
		r.logger.Info("HTML report saved", "path", outputPath)
	}

	return nil
}

func (r *HTMLReporter) writeHTMLHeader(w io.Writer, comparison *Comparison) {
	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Octopus Energy Tariff Comparison Report</title>
    <style>
        :root {
            --primary-color: #FF006E;
            --secondary-color: #00C896;
            --bg-color: #0A0F1E;
            --card-bg: #1A2332;
            --text-color: #E8EAF6;
            --text-muted: #9FA8DA;
            --border-color: #2A3550;
        }

        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
            background: var(--bg-color);
            color: var(--text-color);
            line-height: 1.6;
            padding: 20px;
        }

        .container {
            max-width: 1200px;
            margin: 0 auto;
        }

        h1 {
            color: var(--primary-color);
            margin-bottom: 10px;
        }

        h2 {
            color: var(--secondary-color);
            margin: 30px 0 15px 0;
            border-bottom: 1px solid var(--border-color);
            padding-bottom: 8px;
        }

        .card {
            background: var(--card-bg);
            border: 1px solid var(--border-color);
            border-radius: 8px;
            padding: 20px;
            margin-bottom: 20px;
        }

        .muted {
            color: var(--text-muted);
        }

        table {
            width: 100%%;
            border-collapse: collapse;
            margin-top: 10px;
        }

        th, td {
            text-align: left;
            padding: 10px 12px;
            border-bottom: 1px solid var(--border-color);
        }

        th {
            color: var(--text-muted);
            font-weight: 600;
            text-transform: uppercase;
            font-size: 0.8em;
        }

        tr.comparator {
            color: var(--primary-color);
        }

        tr.winner {
            color: var(--secondary-color);
            font-weight: 600;
        }

        .chart img {
            width: 100%%;
            border-radius: 8px;
        }

        footer {
            margin-top: 40px;
            color: var(--text-muted);
            font-size: 0.9em;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>Tariff Comparison Report</h1>
        <p class="muted">Period: %s to %s &middot; Generated %s</p>
`,
		comparison.PeriodStart.Format("2 January 2006"),
		comparison.PeriodEnd.Format("2 January 2006"),
		comparison.GeneratedAt.Format(time.RFC1123))
}

func (r *HTMLReporter) writeHTMLSummary(w io.Writer, comparison *Comparison, slotCount int) {
	winner := comparison.Winner()
	days := daysBetween(comparison.PeriodStart, comparison.PeriodEnd)

	fmt.Fprintf(w, `
        <h2>Summary</h2>
        <div class="card">
            <p>Compared <strong>%d</strong> tariffs against <strong>%s</strong> over <strong>%s</strong> consumption readings (%d days).</p>
            <p>Cheapest tariff: <strong>%s</strong> at <strong>%s</strong>, saving <strong>%s</strong> against the comparator.</p>
        </div>
`,
		len(comparison.Alternatives),
		html.EscapeString(comparison.Comparator.ProductCode),
		humanize.Comma(int64(slotCount)),
		days,
		html.EscapeString(winner.ProductCode),
		FormatCurrency(winner.Total()/100),
		FormatCurrency(winner.Saving))
}

func (r *HTMLReporter) writeHTMLChart(w io.Writer, comparison *Comparison) {
	chart, err := r.charts.GenerateComparisonChart(comparison)
	if err != nil {
		r.logger.Warn("Failed to generate comparison chart", "error", err)
		return
	}

	fmt.Fprintf(w, `
        <h2>Cost Breakdown</h2>
        <div class="card chart">
            <img src="data:image/png;base64,%s" alt="Tariff cost comparison chart">
        </div>
`, chart)
}

func (r *HTMLReporter) writeHTMLRankingTable(w io.Writer, comparison *Comparison) {
	fmt.Fprintf(w, `
        <h2>Ranking</h2>
        <div class="card">
            <table>
                <thead>
                    <tr>
                        <th>#</th>
                        <th>Product</th>
                        <th>Standing charges</th>
                        <th>Tariff charges</th>
                        <th>Total</th>
                        <th>Saving</th>
                    </tr>
                </thead>
                <tbody>
`)

	for i, entry := range comparison.Alternatives {
		class := ""
		name := entry.ProductCode
		if entry.ProductCode == comparison.Comparator.ProductCode {
			class = ` class="comparator"`
			name = name + " (current)"
		} else if i == len(comparison.Alternatives)-1 {
			class = ` class="winner"`
		}

		fmt.Fprintf(w, `                    <tr%s>
                        <td>%d</td>
                        <td>%s</td>
                        <td>%s</td>
                        <td>%s</td>
                        <td>%s</td>
                        <td>%s</td>
                    </tr>
`,
			class,
			i+1,
			html.EscapeString(name),
			FormatCurrency(entry.StandingCharges/100),
			FormatCurrency(entry.TariffCharges/100),
			FormatCurrency(entry.Total()/100),
			FormatCurrency(entry.Saving))
	}

	fmt.Fprintf(w, `                </tbody>
            </table>
        </div>
`)
}

func (r *HTMLReporter) writeHTMLFooter(w io.Writer) {
	fmt.Fprintf(w, `
        <footer>
            <p><em>This report is based on historical consumption and published rates; projections may vary with seasonal changes, tariff adjustments, and usage patterns.</em></p>
            <hr style="margin: 20px 0; border: none; border-top: 1px solid var(--border-color); opacity: 0.3;">
            <p style="opacity: 0.7; font-size: 0.9em;">This is an unofficial third-party application. "Octopus Energy" is a trademark of Octopus Energy Group Limited. This application is not affiliated with, endorsed by, or connected to Octopus Energy.</p>
        </footer>
    </div>
</body>
</html>
`)
}
