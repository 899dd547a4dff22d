// Package output provides utilities for formatting and displaying
// affordability reports.
package output

import (
	"fmt"
	"strings"

	"github.com/dmolina/homeplan/internal/report"
	"github.com/dmolina/homeplan/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []report.Report) {
	p := message.NewPrinter(language.Spanish)
	for i, result := range results {
		_, _ = p.Printf("--- Results for scenario %s (%.0f €/month net, saving %.0f €/month, %.0f%%) ---\n",
			result.Scenario, result.Income, result.Savings, result.SavingsRate)
		fmt.Printf("House                | Target        | Months | Date    | Quota     | Risk             | Investment\n")
		fmt.Printf("_____                | ______        | ______ | ____    | _____     | ____             | __________\n")
		for _, row := range result.Rows {
			months := fmt.Sprintf("%d", row.Months)
			date := row.AchievementDate
			if !row.Reachable {
				months = months + "*"
				date = "never"
			}
			riskCell := "n/a"
			if row.RatioDefined {
				riskCell = fmt.Sprintf("%s (%.0f%%)", row.Risk.Label, row.Ratio)
			}
			projection := "-"
			if row.Projection > 0 {
				projection = format.Euro(row.Projection)
			}
			fmt.Printf("%-20s | %13s | %6s | %-7s | %9s | %-16s | %s\n",
				row.House, format.Euro(row.Target), months, date, format.Euro(row.Quota), riskCell, projection)
		}
		if i < len(results)-1 {
			fmt.Printf("\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []report.Report) {
	fmt.Print(CsvString(results))
}

// CsvString renders the reports in comma-separated value format. Shared by the
// CLI output and the HTTP API response.
func CsvString(results []report.Report) string {
	var builder strings.Builder
	builder.WriteString(`"scenario","income","savings","house","price","target","months","reachable","date","quota","ratio","risk","investment"`)
	builder.WriteString("\n")
	for _, result := range results {
		for _, row := range result.Rows {
			ratio := ""
			riskLabel := ""
			if row.RatioDefined {
				ratio = fmt.Sprintf("%.2f", row.Ratio)
				riskLabel = row.Risk.Label
			}
			builder.WriteString(fmt.Sprintf(`"%s","%.2f","%.2f","%s","%.2f","%.2f","%d","%t","%s","%.2f","%s","%s","%.2f"`,
				result.Scenario, result.Income, result.Savings,
				row.House, row.Price, row.Target, row.Months, row.Reachable,
				row.AchievementDate, row.Quota, ratio, riskLabel, row.Projection))
			builder.WriteString("\n")
		}
	}
	return builder.String()
}
