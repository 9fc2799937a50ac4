package analysis

import "analyzer/models"

// Run executes the full pipeline: normalize, aggregate, detect, score,
// summarize. Every invocation starts from fresh state; nothing is shared
// between runs. A non-nil error means no report was produced.
func Run(rows []models.RawRow, opts Options) (*models.Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	orders, rejections, err := Normalize(rows)
	if err != nil {
		return nil, err
	}

	suppliers, products := Aggregate(orders, opts)
	anomalies := Detect(suppliers, products, opts)
	scores := Score(suppliers, anomalies, opts)

	return BuildReport(orders, suppliers, products, anomalies, scores, rejections, len(rows)), nil
}
