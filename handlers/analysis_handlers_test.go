package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"analyzer/analysis"
	"analyzer/config"
	"analyzer/models"
)

const sampleCSV = `Date,Supplier,Product,Order_Quantity,Delivery_Time_Days,Inventory_Level,Order_Value,Status
2024-03-01,Acme,Widget,100,2,500,1000,Delivered
2024-03-02,Acme,Widget,100,2,500,1000,Delivered
2024-03-03,Acme,Widget,100,2,500,1000,Delivered
2024-03-04,Acme,Widget,100,20,500,1000,Delivered
`

func newTestApp() *fiber.App {
	config.AppConfig = config.Config{Analysis: analysis.DefaultOptions()}
	app := fiber.New()
	app.Post("/api/v1/analysis", HandleAnalyze)
	app.Post("/api/v1/analysis/export", HandleExportText)
	return app
}

func TestHandleAnalyzeRawBody(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/v1/analysis", strings.NewReader(sampleCSV))
	req.Header.Set("Content-Type", "text/csv")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out models.AnalysisResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, 4, out.Report.Metrics.TotalOrders)
	require.Len(t, out.Report.Anomalies, 1)
	assert.Equal(t, models.KindDeliveryDegradation, out.Report.Anomalies[0].Kind)
	assert.Equal(t, 20.0, out.Report.OverallRisk)
}

func TestHandleAnalyzeMultipart(t *testing.T) {
	app := newTestApp()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "orders.csv")
	require.NoError(t, err)
	_, err = io.WriteString(part, sampleCSV)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/v1/analysis", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestHandleAnalyzeMissingBody(t *testing.T) {
	app := newTestApp()
	req := httptest.NewRequest("POST", "/api/v1/analysis", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleAnalyzeBadConfigOverride(t *testing.T) {
	app := newTestApp()
	req := httptest.NewRequest("POST", "/api/v1/analysis?outlier_k=-1", strings.NewReader(sampleCSV))
	req.Header.Set("Content-Type", "text/csv")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleAnalyzeUnparseableOverride(t *testing.T) {
	app := newTestApp()
	req := httptest.NewRequest("POST", "/api/v1/analysis?inventory_floor_percentile=abc", strings.NewReader(sampleCSV))
	req.Header.Set("Content-Type", "text/csv")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	// Garbage must be rejected, not coerced to zero.
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleAnalyzeUnusableRows(t *testing.T) {
	app := newTestApp()
	csv := "Date,Supplier,Product,Order_Quantity,Delivery_Time_Days,Inventory_Level,Order_Value,Status\nbad,Acme,Widget,1,1,1,1,Nope\n"
	req := httptest.NewRequest("POST", "/api/v1/analysis", strings.NewReader(csv))
	req.Header.Set("Content-Type", "text/csv")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)
}

func TestHandleExportText(t *testing.T) {
	app := newTestApp()

	payload := models.InsightsRequest{
		ReportID: "r1",
		Report: models.Report{
			Metrics: models.SummaryMetrics{TotalOrders: 4},
		},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/analysis/export", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	text, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(text), "SUPPLY CHAIN ANALYSIS REPORT")
	assert.Contains(t, string(text), "- Total Records: 4")
}
