package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateRange is the span of order dates covered by one analysis run.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// SummaryMetrics holds the headline KPIs for one analysis run. Monetary
// totals are decimals rounded to 2 places.
type SummaryMetrics struct {
	TotalOrders         int             `json:"totalOrders"`
	DateRange           DateRange       `json:"dateRange"`
	AvgDeliveryTime     float64         `json:"avgDeliveryTimeDays"`
	MaxDeliveryTime     float64         `json:"maxDeliveryTimeDays"`
	AvgOrderValue       decimal.Decimal `json:"avgOrderValue"`
	TotalOrderValue     decimal.Decimal `json:"totalOrderValue"`
	OnTimeDeliveryRate  float64         `json:"onTimeDeliveryRate"`
	DelayedOrders       int             `json:"delayedOrders"`
	MinInventory        float64         `json:"minInventoryLevel"`
	AvgInventory        float64         `json:"avgInventoryLevel"`
	TotalInventoryUnits float64         `json:"totalInventoryUnits"`
	// TotalInventoryValue estimates the monetary worth of held inventory:
	// each order's level priced at that order's per-unit value. Orders
	// with zero quantity contribute nothing (no unit price to apply).
	TotalInventoryValue decimal.Decimal     `json:"totalInventoryValue"`
	DistinctSuppliers   int                 `json:"distinctSuppliers"`
	DistinctProducts    int                 `json:"distinctProducts"`
	AnomaliesByKind     map[AnomalyKind]int `json:"anomaliesByKind"`
}

// Diagnostics accumulates the non-fatal conditions of a run. Nothing in
// here aborts the analysis; it is reported so the caller can decide what
// partial data is worth.
type Diagnostics struct {
	TotalRows           int         `json:"totalRows"`
	ValidRows           int         `json:"validRows"`
	RejectedRows        []Rejection `json:"rejectedRows"`
	LowConfidenceGroups []string    `json:"lowConfidenceGroups"`
}

// Report is the full structured output of one analysis run. Anomalies are
// sorted by severity descending then date; risk scores descending by score.
// Deliberately carries no identifier or timestamp: the same input and
// options always produce identical content.
type Report struct {
	Metrics       SummaryMetrics `json:"metrics"`
	SupplierStats []GroupStats   `json:"supplierStats"`
	ProductStats  []GroupStats   `json:"productStats"`
	Anomalies     []Anomaly      `json:"anomalies"`
	RiskScores    []RiskScore    `json:"riskScores"`
	OverallRisk   float64        `json:"overallRisk"`
	Diagnostics   Diagnostics    `json:"diagnostics"`
}

// AnalysisResponse wraps a report for the HTTP surface, adding the
// per-invocation identity the core itself never generates.
type AnalysisResponse struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generatedAt"`
	Report      Report    `json:"report"`
}
