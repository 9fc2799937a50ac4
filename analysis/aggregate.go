package analysis

import (
	"math"
	"sort"

	"analyzer/models"
)

// Group is one partition of orders sharing a dimension value, together
// with its descriptive statistics.
type Group struct {
	Dimension models.Dimension
	Key       string
	Orders    []models.Order
	Stats     models.GroupStats
}

// Aggregate partitions orders by supplier and by product and computes
// per-metric statistics for each group. Output is sorted by group key and
// group members by date, so the result does not depend on input row order.
func Aggregate(orders []models.Order, opts Options) (suppliers, products []Group) {
	sorted := make([]models.Order, len(orders))
	copy(sorted, orders)
	sortOrders(sorted)

	suppliers = partition(sorted, models.DimensionSupplier, opts)
	products = partition(sorted, models.DimensionProduct, opts)
	return suppliers, products
}

func partition(orders []models.Order, dim models.Dimension, opts Options) []Group {
	byKey := make(map[string][]models.Order)
	for _, o := range orders {
		key := o.Supplier
		if dim == models.DimensionProduct {
			key = o.Product
		}
		byKey[key] = append(byKey[key], o)
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	groups := make([]Group, 0, len(keys))
	for _, key := range keys {
		members := byKey[key]
		groups = append(groups, Group{
			Dimension: dim,
			Key:       key,
			Orders:    members,
			Stats:     groupStats(dim, key, members, opts),
		})
	}
	return groups
}

func groupStats(dim models.Dimension, key string, orders []models.Order, opts Options) models.GroupStats {
	stats := models.GroupStats{
		Dimension:     dim,
		Key:           key,
		Count:         len(orders),
		LowConfidence: len(orders) < opts.MinGroupSize,
		Metrics:       make(map[string]models.MetricStats, 4),
	}
	stats.Metrics[models.MetricDeliveryTime] = Describe(metricValues(orders, models.MetricDeliveryTime))
	stats.Metrics[models.MetricInventory] = Describe(metricValues(orders, models.MetricInventory))
	stats.Metrics[models.MetricQuantity] = Describe(metricValues(orders, models.MetricQuantity))
	stats.Metrics[models.MetricOrderValue] = Describe(metricValues(orders, models.MetricOrderValue))
	return stats
}

func metricValues(orders []models.Order, metric string) []float64 {
	values := make([]float64, 0, len(orders))
	for _, o := range orders {
		values = append(values, metricValue(o, metric))
	}
	return values
}

func metricValue(o models.Order, metric string) float64 {
	switch metric {
	case models.MetricDeliveryTime:
		return o.DeliveryTimeDays
	case models.MetricInventory:
		return o.InventoryLevel
	case models.MetricQuantity:
		return float64(o.OrderQuantity)
	case models.MetricOrderValue:
		return o.OrderValue
	}
	return 0
}

// Describe computes mean, population standard deviation (n denominator,
// kept deliberately for the small samples this tool sees), min and max.
func Describe(values []float64) models.MetricStats {
	if len(values) == 0 {
		return models.MetricStats{}
	}

	min, max, sum := values[0], values[0], 0.0
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}

	return models.MetricStats{
		Mean:   mean,
		StdDev: math.Sqrt(sq / float64(len(values))),
		Min:    min,
		Max:    max,
	}
}

// Percentile returns the p-th percentile (p in [0,1]) of values using
// linear interpolation between closest ranks: rank = p*(n-1) over the
// sorted sample. Fixed here so outputs stay reproducible.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := p * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	if lower >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}

// sortOrders imposes a total order over orders so every downstream stage
// is independent of input row order.
func sortOrders(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Supplier != b.Supplier {
			return a.Supplier < b.Supplier
		}
		if a.Product != b.Product {
			return a.Product < b.Product
		}
		if a.OrderQuantity != b.OrderQuantity {
			return a.OrderQuantity < b.OrderQuantity
		}
		if a.OrderValue != b.OrderValue {
			return a.OrderValue < b.OrderValue
		}
		if a.DeliveryTimeDays != b.DeliveryTimeDays {
			return a.DeliveryTimeDays < b.DeliveryTimeDays
		}
		if a.InventoryLevel != b.InventoryLevel {
			return a.InventoryLevel < b.InventoryLevel
		}
		return a.Status < b.Status
	})
}
