package utils

import (
	"fmt"
	"strings"

	"analyzer/models"
)

const divider = "======================================================================"

// RenderReportText renders a report as the plain-text document offered
// for download. Presentation only; every number comes straight from the
// report.
func RenderReportText(report *models.Report, insights string) string {
	var b strings.Builder
	m := report.Metrics

	b.WriteString("SUPPLY CHAIN ANALYSIS REPORT\n")
	b.WriteString(divider + "\n\n")

	if insights != "" {
		b.WriteString(insights + "\n\n" + divider + "\n\n")
	}

	b.WriteString("KEY METRICS:\n")
	fmt.Fprintf(&b, "- Total Records: %d\n", m.TotalOrders)
	fmt.Fprintf(&b, "- Date Range: %s to %s\n",
		m.DateRange.From.Format("2006-01-02"), m.DateRange.To.Format("2006-01-02"))
	fmt.Fprintf(&b, "- Average Delivery Time: %.2f days\n", m.AvgDeliveryTime)
	fmt.Fprintf(&b, "- Maximum Delivery Time: %.2f days\n", m.MaxDeliveryTime)
	fmt.Fprintf(&b, "- On-Time Delivery Rate: %.1f%%\n", m.OnTimeDeliveryRate*100)
	fmt.Fprintf(&b, "- Delayed Orders: %d\n", m.DelayedOrders)
	fmt.Fprintf(&b, "- Minimum Inventory Level: %.0f units\n", m.MinInventory)
	fmt.Fprintf(&b, "- Average Inventory Level: %.2f units\n", m.AvgInventory)
	fmt.Fprintf(&b, "- Total Order Value: $%s\n", m.TotalOrderValue.StringFixed(2))
	fmt.Fprintf(&b, "- Estimated Inventory Value: $%s\n", m.TotalInventoryValue.StringFixed(2))
	fmt.Fprintf(&b, "- Suppliers: %d, Products: %d\n", m.DistinctSuppliers, m.DistinctProducts)

	b.WriteString("\nSUPPLIER RISK SCORES:\n")
	for _, s := range report.RiskScores {
		fmt.Fprintf(&b, "- %-20s %5.0f / 100 (%d anomalies)\n",
			s.Supplier, s.Score, len(s.ContributingAnomalies))
	}

	b.WriteString("\nANOMALIES:\n")
	if len(report.Anomalies) == 0 {
		b.WriteString("- none detected\n")
	}
	for _, a := range report.Anomalies {
		fmt.Fprintf(&b, "- %s [%s/%s] %s\n",
			a.Date.Format("2006-01-02"), a.Severity, a.Kind, a.Message)
	}

	if len(report.Diagnostics.RejectedRows) > 0 {
		fmt.Fprintf(&b, "\nREJECTED ROWS (%d of %d):\n",
			len(report.Diagnostics.RejectedRows), report.Diagnostics.TotalRows)
		for _, r := range report.Diagnostics.RejectedRows {
			fmt.Fprintf(&b, "- row %d: %s\n", r.Line, r.Reason)
		}
	}
	if len(report.Diagnostics.LowConfidenceGroups) > 0 {
		b.WriteString("\nLOW-CONFIDENCE GROUPS (too few samples for outlier testing):\n")
		for _, g := range report.Diagnostics.LowConfidenceGroups {
			fmt.Fprintf(&b, "- %s\n", g)
		}
	}

	return b.String()
}
