package analysis

import (
	"sort"

	"analyzer/models"
)

// maxRiskScore caps every supplier score.
const maxRiskScore = 100.0

// Score aggregates anomalies into one bounded risk score per supplier.
// Summation is commutative, so the result is independent of anomaly
// order. Suppliers present in the input but free of anomalies score 0.
func Score(suppliers []Group, anomalies []models.Anomaly, opts Options) []models.RiskScore {
	bySupplier := make(map[string][]models.Anomaly)
	for _, g := range suppliers {
		bySupplier[g.Key] = nil
	}
	for _, a := range anomalies {
		if a.Supplier == "" {
			continue
		}
		bySupplier[a.Supplier] = append(bySupplier[a.Supplier], a)
	}

	names := make([]string, 0, len(bySupplier))
	for name := range bySupplier {
		names = append(names, name)
	}
	sort.Strings(names)

	scores := make([]models.RiskScore, 0, len(names))
	for _, name := range names {
		contributing := bySupplier[name]
		var total float64
		for _, a := range contributing {
			total += opts.SeverityWeights.Weight(a.Severity)
		}
		if total > maxRiskScore {
			total = maxRiskScore
		}
		scores = append(scores, models.RiskScore{
			Supplier:              name,
			Score:                 total,
			ContributingAnomalies: contributing,
		})
	}

	// Descending by score; supplier name breaks ties deterministically.
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Supplier < scores[j].Supplier
	})
	return scores
}

// OverallRisk is the maximum per-supplier score: one severely at-risk
// supplier must not be diluted by many healthy ones.
func OverallRisk(scores []models.RiskScore) float64 {
	var max float64
	for _, s := range scores {
		if s.Score > max {
			max = s.Score
		}
	}
	return max
}
