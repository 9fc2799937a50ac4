package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"analyzer/analysis"
	"analyzer/config"
	"analyzer/loader"
	"analyzer/logger"
	"analyzer/models"
)

// HandleAnalyze runs the full analysis pipeline over an uploaded CSV.
// POST /api/v1/analysis
// The file arrives as the multipart field "file", or as the raw request
// body. Thresholds may be overridden per request via query parameters
// (outlier_k, min_group_size, ...).
func HandleAnalyze(c *fiber.Ctx) error {
	rows, err := readRows(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
		})
	}

	opts, err := optionsFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
		})
	}

	report, err := analysis.Run(rows, opts)
	if err != nil {
		return analysisError(c, err)
	}

	logger.L.Info("analysis complete",
		zap.Int("totalRows", report.Diagnostics.TotalRows),
		zap.Int("validRows", report.Diagnostics.ValidRows),
		zap.Int("anomalies", len(report.Anomalies)),
		zap.Float64("overallRisk", report.OverallRisk),
	)

	return c.JSON(models.AnalysisResponse{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Report:      *report,
	})
}

// readRows extracts CSV rows from the multipart upload or, failing that,
// the raw request body.
func readRows(c *fiber.Ctx) ([]models.RawRow, error) {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return loader.ReadCSV(f)
	}
	if len(c.Body()) == 0 {
		return nil, errors.New("no CSV provided: upload a multipart \"file\" or send CSV in the body")
	}
	return loader.ReadCSV(strings.NewReader(string(c.Body())))
}

// optionsFromQuery starts from the configured options and applies any
// per-request overrides. Unparseable values are an error, never silently
// coerced; range validation happens downstream in the pipeline.
func optionsFromQuery(c *fiber.Ctx) (analysis.Options, error) {
	opts := config.AppConfig.Analysis

	overrides := []struct {
		name   string
		target *float64
	}{
		{"outlier_k", &opts.OutlierK},
		{"delivery_window_fraction", &opts.DeliveryWindowFraction},
		{"degradation_ratio", &opts.DegradationRatio},
		{"delayed_threshold", &opts.DelayedThreshold},
		{"inventory_floor_percentile", &opts.InventoryFloorPercentile},
	}
	for _, o := range overrides {
		raw := c.Query(o.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid value %q for %s", raw, o.name)
		}
		*o.target = v
	}
	if raw := c.Query("min_group_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid value %q for min_group_size", raw)
		}
		opts.MinGroupSize = n
	}
	return opts, nil
}

// analysisError maps the pipeline's fatal error taxonomy onto HTTP
// statuses: bad configuration is the caller's request, unusable data is
// an unprocessable upload.
func analysisError(c *fiber.Ctx, err error) error {
	var confErr *analysis.ConfigurationError
	if errors.As(err, &confErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": confErr.Error(),
		})
	}

	var valErr *analysis.ValidationError
	if errors.As(err, &valErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"status":  "error",
			"message": valErr.Error(),
		})
	}

	logger.L.Error("analysis failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status":  "error",
		"message": "analysis failed",
	})
}
