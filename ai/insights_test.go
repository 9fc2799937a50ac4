package ai

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"analyzer/models"
)

func TestBuildPrompt(t *testing.T) {
	report := &models.Report{
		Metrics: models.SummaryMetrics{
			TotalOrders: 8,
			DateRange: models.DateRange{
				From: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC),
			},
			AvgDeliveryTime: 4.25,
			MinInventory:    300,
			DelayedOrders:   1,
			TotalOrderValue: decimal.NewFromInt(7000),
		},
		SupplierStats: []models.GroupStats{
			{
				Dimension: models.DimensionSupplier,
				Key:       "Acme",
				Count:     4,
				Metrics: map[string]models.MetricStats{
					models.MetricDeliveryTime: {Mean: 6.5, Max: 20},
				},
			},
		},
		RiskScores: []models.RiskScore{{Supplier: "Acme", Score: 20}},
		Anomalies: []models.Anomaly{
			{
				Severity: models.SeverityHigh,
				Kind:     models.KindDeliveryDegradation,
				Message:  "supplier Acme trailing mean delivery time 20.0 days is 3.1x the historical mean 6.5",
			},
		},
	}

	prompt := BuildPrompt(report)

	assert.Contains(t, prompt, "Date Range: 2024-03-01 to 2024-03-13")
	assert.Contains(t, prompt, "Total Records: 8")
	assert.Contains(t, prompt, "Acme: mean 6.50 days, max 20.00 days (4 orders)")
	assert.Contains(t, prompt, "- Acme: 20")
	assert.Contains(t, prompt, "[high/delivery_degradation]")
	assert.Contains(t, prompt, "TOP 3 CRITICAL ISSUES")
}

func TestBuildPromptTruncatesAnomalies(t *testing.T) {
	report := &models.Report{}
	for i := 0; i < 30; i++ {
		report.Anomalies = append(report.Anomalies, models.Anomaly{
			Severity: models.SeverityLow,
			Kind:     models.KindDemandSpike,
			Message:  "spike",
		})
	}
	prompt := BuildPrompt(report)
	assert.LessOrEqual(t, len(prompt), 4000)
}

func TestBuildPromptNoAnomalies(t *testing.T) {
	prompt := BuildPrompt(&models.Report{})
	assert.Contains(t, prompt, "- none detected")
}
