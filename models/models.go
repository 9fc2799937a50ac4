package models

import "time"

// RawRow is one unvalidated input row, keyed by CSV column name.
type RawRow map[string]string

// Status enumerates the delivery status of an order.
type Status string

const (
	StatusDelivered Status = "Delivered"
	StatusInTransit Status = "In_Transit"
	StatusDelayed   Status = "Delayed"
)

// Order is a single supply-chain transaction after validation.
type Order struct {
	Date             time.Time `json:"date"`
	Supplier         string    `json:"supplier"`
	Product          string    `json:"product"`
	OrderQuantity    int       `json:"orderQuantity"`
	DeliveryTimeDays float64   `json:"deliveryTimeDays"`
	InventoryLevel   float64   `json:"inventoryLevel"`
	OrderValue       float64   `json:"orderValue"`
	Status           Status    `json:"status"`
}

// Rejection records one input row that failed validation and was
// excluded from the analysis.
type Rejection struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Dimension names a grouping axis for statistics and anomalies.
type Dimension string

const (
	DimensionSupplier Dimension = "supplier"
	DimensionProduct  Dimension = "product"
)

// Tracked metric names, matching the input columns they derive from.
const (
	MetricDeliveryTime = "delivery_time_days"
	MetricInventory    = "inventory_level"
	MetricQuantity     = "order_quantity"
	MetricOrderValue   = "order_value"
	MetricUnitValue    = "unit_value"
)

// MetricStats holds descriptive statistics for one metric within a group.
// StdDev is the population standard deviation (n denominator).
type MetricStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// GroupStats holds per-metric statistics for one supplier or product group.
// LowConfidence groups are below the configured minimum sample size and are
// excluded from outlier testing.
type GroupStats struct {
	Dimension     Dimension              `json:"dimension"`
	Key           string                 `json:"key"`
	Count         int                    `json:"count"`
	LowConfidence bool                   `json:"lowConfidence"`
	Metrics       map[string]MetricStats `json:"metrics"`
}

// Severity is the coarse bucket for how far an anomalous value deviates
// from its expected range.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Rank orders severities for sorting, highest first.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// AnomalyKind tags the rule family that produced an anomaly.
type AnomalyKind string

const (
	KindDeliveryDegradation AnomalyKind = "delivery_degradation"
	KindInventoryShortage   AnomalyKind = "inventory_shortage"
	KindDemandSpike         AnomalyKind = "demand_spike"
	KindPriceVolatility     AnomalyKind = "price_volatility"
	KindDelayedPattern      AnomalyKind = "delayed_pattern"
)

// Range is the expected interval an anomalous value fell outside of.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Anomaly is a single flagged observation. Supplier carries the supplier
// the anomaly is attributed to for risk scoring, even when the grouping
// dimension is product. Immutable once produced.
type Anomaly struct {
	Dimension Dimension   `json:"dimension"`
	Key       string      `json:"key"`
	Metric    string      `json:"metric"`
	Value     float64     `json:"value"`
	Expected  Range       `json:"expectedRange"`
	Severity  Severity    `json:"severity"`
	Kind      AnomalyKind `json:"kind"`
	Date      time.Time   `json:"date"`
	Supplier  string      `json:"supplier"`
	Message   string      `json:"message"`
}

// RiskScore is the normalized [0,100] anomaly burden for one supplier.
type RiskScore struct {
	Supplier              string    `json:"supplier"`
	Score                 float64   `json:"score"`
	ContributingAnomalies []Anomaly `json:"contributingAnomalies"`
}
