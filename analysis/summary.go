package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"analyzer/models"
)

// BuildReport assembles the final structured report. It is a read-only
// projection over the earlier stages and is fully deterministic: two runs
// over the same input and options produce identical content.
func BuildReport(orders []models.Order, suppliers, products []Group, anomalies []models.Anomaly, scores []models.RiskScore, rejections []models.Rejection, totalRows int) *models.Report {
	report := &models.Report{
		Metrics:       summarize(orders, suppliers, products, anomalies),
		SupplierStats: groupStatsOf(suppliers),
		ProductStats:  groupStatsOf(products),
		Anomalies:     sortAnomalies(anomalies),
		RiskScores:    scores,
		OverallRisk:   OverallRisk(scores),
		Diagnostics: models.Diagnostics{
			TotalRows:           totalRows,
			ValidRows:           len(orders),
			RejectedRows:        rejections,
			LowConfidenceGroups: lowConfidenceKeys(suppliers, products),
		},
	}
	return report
}

func summarize(orders []models.Order, suppliers, products []Group, anomalies []models.Anomaly) models.SummaryMetrics {
	metrics := models.SummaryMetrics{
		TotalOrders:     len(orders),
		AnomaliesByKind: make(map[models.AnomalyKind]int),
	}
	if len(orders) == 0 {
		return metrics
	}

	totalValue := decimal.Zero
	inventoryValue := decimal.Zero
	var deliverySum, inventorySum float64
	var delivered, delayed int
	from, to := orders[0].Date, orders[0].Date
	// Seed the minimum from the first order: zero is a legitimate
	// inventory level, not an unset marker.
	metrics.MinInventory = orders[0].InventoryLevel

	for _, o := range orders {
		totalValue = totalValue.Add(decimal.NewFromFloat(o.OrderValue))
		deliverySum += o.DeliveryTimeDays
		inventorySum += o.InventoryLevel
		if o.OrderQuantity > 0 {
			unit := o.OrderValue / float64(o.OrderQuantity)
			inventoryValue = inventoryValue.Add(decimal.NewFromFloat(o.InventoryLevel * unit))
		}
		if o.DeliveryTimeDays > metrics.MaxDeliveryTime {
			metrics.MaxDeliveryTime = o.DeliveryTimeDays
		}
		if o.InventoryLevel < metrics.MinInventory {
			metrics.MinInventory = o.InventoryLevel
		}
		switch o.Status {
		case models.StatusDelivered:
			delivered++
		case models.StatusDelayed:
			delayed++
		}
		if o.Date.Before(from) {
			from = o.Date
		}
		if o.Date.After(to) {
			to = o.Date
		}
	}

	n := float64(len(orders))
	metrics.DateRange = models.DateRange{From: from, To: to}
	metrics.AvgDeliveryTime = deliverySum / n
	metrics.TotalOrderValue = totalValue.Round(2)
	metrics.AvgOrderValue = totalValue.Div(decimal.NewFromInt(int64(len(orders)))).Round(2)
	metrics.OnTimeDeliveryRate = float64(delivered) / n
	metrics.DelayedOrders = delayed
	metrics.AvgInventory = inventorySum / n
	metrics.TotalInventoryUnits = inventorySum
	metrics.TotalInventoryValue = inventoryValue.Round(2)
	metrics.DistinctSuppliers = len(suppliers)
	metrics.DistinctProducts = len(products)

	for _, a := range anomalies {
		metrics.AnomaliesByKind[a.Kind]++
	}
	return metrics
}

func groupStatsOf(groups []Group) []models.GroupStats {
	stats := make([]models.GroupStats, 0, len(groups))
	for _, g := range groups {
		stats = append(stats, g.Stats)
	}
	return stats
}

func lowConfidenceKeys(suppliers, products []Group) []string {
	keys := make([]string, 0)
	for _, g := range suppliers {
		if g.Stats.LowConfidence {
			keys = append(keys, string(g.Dimension)+":"+g.Key)
		}
	}
	for _, g := range products {
		if g.Stats.LowConfidence {
			keys = append(keys, string(g.Dimension)+":"+g.Key)
		}
	}
	return keys
}

// sortAnomalies orders anomalies by severity descending, then date, with
// a full tiebreak so the sequence is stable across runs and input
// shuffles.
func sortAnomalies(anomalies []models.Anomaly) []models.Anomaly {
	sorted := make([]models.Anomaly, len(anomalies))
	copy(sorted, anomalies)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Dimension != b.Dimension {
			return a.Dimension < b.Dimension
		}
		if a.Key != b.Key {
			return a.Key < b.Key
		}
		if a.Metric != b.Metric {
			return a.Metric < b.Metric
		}
		return a.Value < b.Value
	})
	return sorted
}
