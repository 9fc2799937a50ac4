package analysis

import "analyzer/models"

// SeverityWeights maps each severity bucket to its risk-score contribution.
type SeverityWeights struct {
	Low    float64 `json:"low" mapstructure:"low"`
	Medium float64 `json:"medium" mapstructure:"medium"`
	High   float64 `json:"high" mapstructure:"high"`
}

// Weight returns the contribution for one severity.
func (w SeverityWeights) Weight(s models.Severity) float64 {
	switch s {
	case models.SeverityHigh:
		return w.High
	case models.SeverityMedium:
		return w.Medium
	default:
		return w.Low
	}
}

// Options is the full configuration surface of the analysis pipeline.
// Every threshold the detector uses lives here; nothing is hard-coded.
type Options struct {
	// OutlierK is the z-score multiplier for the generic outlier rule.
	OutlierK float64 `json:"outlierK" mapstructure:"outlier_k"`
	// MinGroupSize is the smallest sample size a group needs before it is
	// eligible for outlier testing. Smaller groups are reported as
	// low-confidence.
	MinGroupSize int `json:"minGroupSize" mapstructure:"min_group_size"`
	// DeliveryWindowFraction is the trailing share of a supplier's orders
	// (by date) used for the delivery degradation check.
	DeliveryWindowFraction float64 `json:"deliveryWindowFraction" mapstructure:"delivery_window_fraction"`
	// DegradationRatio is how much the trailing mean delivery time must
	// exceed the full-history mean before degradation is flagged.
	DegradationRatio float64 `json:"degradationRatio" mapstructure:"degradation_ratio"`
	// DelayedThreshold is the fraction of Delayed orders above which a
	// supplier is flagged for a delayed pattern.
	DelayedThreshold float64 `json:"delayedThreshold" mapstructure:"delayed_threshold"`
	// InventoryFloorPercentile sets the per-product inventory floor as a
	// percentile of that product's observed inventory levels.
	InventoryFloorPercentile float64 `json:"inventoryFloorPercentile" mapstructure:"inventory_floor_percentile"`
	// SeverityWeights control the risk score contribution per severity.
	SeverityWeights SeverityWeights `json:"severityWeights" mapstructure:"severity_weights"`
}

// DefaultOptions returns the documented defaults. Callers may override any
// subset before Validate.
func DefaultOptions() Options {
	return Options{
		OutlierK:                 2.0,
		MinGroupSize:             2,
		DeliveryWindowFraction:   0.25,
		DegradationRatio:         1.3,
		DelayedThreshold:         0.2,
		InventoryFloorPercentile: 0.10,
		SeverityWeights:          SeverityWeights{Low: 5, Medium: 10, High: 20},
	}
}

// Validate rejects unusable option values before any analysis begins.
func (o Options) Validate() error {
	switch {
	case o.OutlierK <= 0:
		return &ConfigurationError{Option: "outlier_k", Reason: "must be positive"}
	case o.MinGroupSize < 1:
		return &ConfigurationError{Option: "min_group_size", Reason: "must be at least 1"}
	case o.DeliveryWindowFraction <= 0 || o.DeliveryWindowFraction > 1:
		return &ConfigurationError{Option: "delivery_window_fraction", Reason: "must be in (0, 1]"}
	case o.DegradationRatio <= 0:
		return &ConfigurationError{Option: "degradation_ratio", Reason: "must be positive"}
	case o.DelayedThreshold <= 0 || o.DelayedThreshold >= 1:
		return &ConfigurationError{Option: "delayed_threshold", Reason: "must be in (0, 1)"}
	case o.InventoryFloorPercentile < 0 || o.InventoryFloorPercentile > 1:
		return &ConfigurationError{Option: "inventory_floor_percentile", Reason: "must be in [0, 1]"}
	case o.SeverityWeights.Low < 0 || o.SeverityWeights.Medium < 0 || o.SeverityWeights.High < 0:
		return &ConfigurationError{Option: "severity_weights", Reason: "must be non-negative"}
	}
	return nil
}
