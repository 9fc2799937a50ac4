package analysis

import (
	"fmt"
	"math"

	"analyzer/models"
)

// Detect runs every outlier rule over the aggregated groups and returns
// the flagged anomalies. Low-confidence groups are skipped entirely: they
// have no statistical basis for outlier testing. The result depends only
// on the group contents, never on input row order.
func Detect(suppliers, products []Group, opts Options) []models.Anomaly {
	anomalies := make([]models.Anomaly, 0)

	for _, g := range suppliers {
		if g.Stats.LowConfidence {
			continue
		}
		anomalies = append(anomalies, detectDeliveryOutliers(g, opts)...)
		if a, ok := detectDeliveryDegradation(g, opts); ok {
			anomalies = append(anomalies, a)
		}
		if a, ok := detectDelayedPattern(g, opts); ok {
			anomalies = append(anomalies, a)
		}
	}

	for _, g := range products {
		if g.Stats.LowConfidence {
			continue
		}
		anomalies = append(anomalies, detectDemandSpikes(g, opts)...)
		anomalies = append(anomalies, detectPriceVolatility(g, opts)...)
		anomalies = append(anomalies, detectInventoryShortage(g, opts)...)
	}

	return anomalies
}

// detectDeliveryOutliers applies the generic z-score rule to per-order
// delivery times. Only the high side is flagged: an unusually fast
// delivery is not a degradation.
func detectDeliveryOutliers(g Group, opts Options) []models.Anomaly {
	stats := g.Stats.Metrics[models.MetricDeliveryTime]
	if stats.StdDev == 0 {
		return nil
	}

	var out []models.Anomaly
	for _, o := range g.Orders {
		dev := (o.DeliveryTimeDays - stats.Mean) / stats.StdDev
		if dev <= opts.OutlierK {
			continue
		}
		out = append(out, models.Anomaly{
			Dimension: models.DimensionSupplier,
			Key:       g.Key,
			Metric:    models.MetricDeliveryTime,
			Value:     o.DeliveryTimeDays,
			Expected:  zRange(stats, opts.OutlierK),
			Severity:  zSeverity(dev, opts.OutlierK),
			Kind:      models.KindDeliveryDegradation,
			Date:      o.Date,
			Supplier:  o.Supplier,
			Message: fmt.Sprintf("delivery took %.1f days, expected at most %.1f for supplier %s",
				o.DeliveryTimeDays, stats.Mean+opts.OutlierK*stats.StdDev, g.Key),
		})
	}
	return out
}

// detectDeliveryDegradation compares the trailing mean delivery time (the
// most recent DeliveryWindowFraction of the supplier's orders, by date)
// against the full-history mean.
func detectDeliveryDegradation(g Group, opts Options) (models.Anomaly, bool) {
	full := g.Stats.Metrics[models.MetricDeliveryTime]
	if full.Mean <= 0 {
		return models.Anomaly{}, false
	}

	window := int(math.Ceil(opts.DeliveryWindowFraction * float64(len(g.Orders))))
	if window < 1 {
		window = 1
	}
	recent := g.Orders[len(g.Orders)-window:]

	var sum float64
	for _, o := range recent {
		sum += o.DeliveryTimeDays
	}
	trailing := sum / float64(len(recent))

	ratio := trailing / full.Mean
	if ratio <= opts.DegradationRatio {
		return models.Anomaly{}, false
	}

	last := recent[len(recent)-1]
	return models.Anomaly{
		Dimension: models.DimensionSupplier,
		Key:       g.Key,
		Metric:    models.MetricDeliveryTime,
		Value:     trailing,
		Expected:  models.Range{Low: 0, High: opts.DegradationRatio * full.Mean},
		Severity:  ratioSeverity(ratio / opts.DegradationRatio),
		Kind:      models.KindDeliveryDegradation,
		Date:      last.Date,
		Supplier:  g.Key,
		Message: fmt.Sprintf("supplier %s trailing mean delivery time %.1f days is %.1fx the historical mean %.1f",
			g.Key, trailing, ratio, full.Mean),
	}, true
}

// detectDelayedPattern flags a supplier whose share of Delayed orders
// exceeds the configured threshold.
func detectDelayedPattern(g Group, opts Options) (models.Anomaly, bool) {
	var delayed int
	for _, o := range g.Orders {
		if o.Status == models.StatusDelayed {
			delayed++
		}
	}
	fraction := float64(delayed) / float64(len(g.Orders))
	if fraction <= opts.DelayedThreshold {
		return models.Anomaly{}, false
	}

	last := g.Orders[len(g.Orders)-1]
	return models.Anomaly{
		Dimension: models.DimensionSupplier,
		Key:       g.Key,
		Metric:    "delayed_fraction",
		Value:     fraction,
		Expected:  models.Range{Low: 0, High: opts.DelayedThreshold},
		Severity:  ratioSeverity(fraction / opts.DelayedThreshold),
		Kind:      models.KindDelayedPattern,
		Date:      last.Date,
		Supplier:  g.Key,
		Message: fmt.Sprintf("supplier %s has %d of %d orders delayed (%.0f%%)",
			g.Key, delayed, len(g.Orders), fraction*100),
	}, true
}

// detectDemandSpikes flags order quantities above mean + k*stddev for the
// product. High side only: a small order is not a spike.
func detectDemandSpikes(g Group, opts Options) []models.Anomaly {
	stats := g.Stats.Metrics[models.MetricQuantity]
	if stats.StdDev == 0 {
		return nil
	}

	var out []models.Anomaly
	for _, o := range g.Orders {
		dev := (float64(o.OrderQuantity) - stats.Mean) / stats.StdDev
		if dev <= opts.OutlierK {
			continue
		}
		out = append(out, models.Anomaly{
			Dimension: models.DimensionProduct,
			Key:       g.Key,
			Metric:    models.MetricQuantity,
			Value:     float64(o.OrderQuantity),
			Expected:  zRange(stats, opts.OutlierK),
			Severity:  zSeverity(dev, opts.OutlierK),
			Kind:      models.KindDemandSpike,
			Date:      o.Date,
			Supplier:  o.Supplier,
			Message: fmt.Sprintf("order of %d units of %s far exceeds the typical %.0f",
				o.OrderQuantity, g.Key, stats.Mean),
		})
	}
	return out
}

// detectPriceVolatility applies the z-score rule to per-unit order value.
// Rows with zero quantity are skipped rather than divided.
func detectPriceVolatility(g Group, opts Options) []models.Anomaly {
	type priced struct {
		order models.Order
		unit  float64
	}
	pricedOrders := make([]priced, 0, len(g.Orders))
	units := make([]float64, 0, len(g.Orders))
	for _, o := range g.Orders {
		if o.OrderQuantity == 0 {
			continue
		}
		unit := o.OrderValue / float64(o.OrderQuantity)
		pricedOrders = append(pricedOrders, priced{order: o, unit: unit})
		units = append(units, unit)
	}
	if len(units) < opts.MinGroupSize {
		return nil
	}

	stats := Describe(units)
	if stats.StdDev == 0 {
		return nil
	}

	var out []models.Anomaly
	for _, p := range pricedOrders {
		dev := math.Abs(p.unit-stats.Mean) / stats.StdDev
		if dev <= opts.OutlierK {
			continue
		}
		out = append(out, models.Anomaly{
			Dimension: models.DimensionProduct,
			Key:       g.Key,
			Metric:    models.MetricUnitValue,
			Value:     p.unit,
			Expected:  zRange(stats, opts.OutlierK),
			Severity:  zSeverity(dev, opts.OutlierK),
			Kind:      models.KindPriceVolatility,
			Date:      p.order.Date,
			Supplier:  p.order.Supplier,
			Message: fmt.Sprintf("unit price %.2f for %s deviates from the typical %.2f",
				p.unit, g.Key, stats.Mean),
		})
	}
	return out
}

// detectInventoryShortage flags records whose inventory level falls
// strictly below the product's percentile floor.
func detectInventoryShortage(g Group, opts Options) []models.Anomaly {
	levels := metricValues(g.Orders, models.MetricInventory)
	floor := Percentile(levels, opts.InventoryFloorPercentile)
	if floor <= 0 {
		return nil
	}

	stats := g.Stats.Metrics[models.MetricInventory]
	var out []models.Anomaly
	for _, o := range g.Orders {
		if o.InventoryLevel >= floor {
			continue
		}
		deficit := (floor - o.InventoryLevel) / floor
		out = append(out, models.Anomaly{
			Dimension: models.DimensionProduct,
			Key:       g.Key,
			Metric:    models.MetricInventory,
			Value:     o.InventoryLevel,
			Expected:  models.Range{Low: floor, High: stats.Max},
			Severity:  deficitSeverity(deficit),
			Kind:      models.KindInventoryShortage,
			Date:      o.Date,
			Supplier:  o.Supplier,
			Message: fmt.Sprintf("inventory of %s at %.0f units is below the shortage floor %.0f",
				g.Key, o.InventoryLevel, floor),
		})
	}
	return out
}

func zRange(stats models.MetricStats, k float64) models.Range {
	return models.Range{
		Low:  stats.Mean - k*stats.StdDev,
		High: stats.Mean + k*stats.StdDev,
	}
}

// zSeverity buckets a deviation measured in standard deviations against
// the configured k: low within [k, 1.5k], medium within (1.5k, 2k],
// high beyond 2k.
func zSeverity(dev, k float64) models.Severity {
	switch {
	case dev > 2*k:
		return models.SeverityHigh
	case dev > 1.5*k:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

// ratioSeverity buckets threshold-relative rules by how far past their
// own threshold they landed.
func ratioSeverity(excess float64) models.Severity {
	switch {
	case excess > 2:
		return models.SeverityHigh
	case excess > 1.5:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

// deficitSeverity buckets inventory shortages by the fraction missing
// below the floor.
func deficitSeverity(deficit float64) models.Severity {
	switch {
	case deficit > 0.5:
		return models.SeverityHigh
	case deficit > 0.25:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}
