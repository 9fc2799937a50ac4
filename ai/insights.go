// Package ai turns a finished analysis report into a short executive
// narrative using the Gemini API. It consumes the report structure only;
// all numbers are computed upstream.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"analyzer/models"
)

const maxPromptAnomalies = 8

// GenerateInsights sends the report summary to Gemini and returns the
// generated narrative.
func GenerateInsights(ctx context.Context, apiKey, modelName string, report *models.Report) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create AI client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(modelName)
	resp, err := model.GenerateContent(ctx, genai.Text(BuildPrompt(report)))
	if err != nil {
		return "", fmt.Errorf("failed to generate insights: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("AI returned an empty response")
	}
	return strings.TrimSpace(fmt.Sprint(resp.Candidates[0].Content.Parts[0])), nil
}

// BuildPrompt renders the report into the executive-summary prompt.
func BuildPrompt(report *models.Report) string {
	var b strings.Builder
	m := report.Metrics

	b.WriteString("Analyze this supply chain data and provide a CONCISE, EXECUTIVE-LEVEL summary.\n\n")

	b.WriteString("**KEY METRICS:**\n")
	fmt.Fprintf(&b, "- Date Range: %s to %s\n", m.DateRange.From.Format("2006-01-02"), m.DateRange.To.Format("2006-01-02"))
	fmt.Fprintf(&b, "- Total Records: %d\n", m.TotalOrders)
	fmt.Fprintf(&b, "- Average Delivery Time: %.2f days\n", m.AvgDeliveryTime)
	fmt.Fprintf(&b, "- Minimum Inventory Level: %.0f units\n", m.MinInventory)
	fmt.Fprintf(&b, "- Delayed Orders: %d\n", m.DelayedOrders)
	fmt.Fprintf(&b, "- On-Time Delivery Rate: %.0f%%\n", m.OnTimeDeliveryRate*100)
	fmt.Fprintf(&b, "- Total Order Value: %s\n", m.TotalOrderValue.StringFixed(2))

	b.WriteString("\n**DELIVERY PERFORMANCE BY SUPPLIER:**\n")
	for _, g := range report.SupplierStats {
		delivery := g.Metrics[models.MetricDeliveryTime]
		fmt.Fprintf(&b, "- %s: mean %.2f days, max %.2f days (%d orders)\n",
			g.Key, delivery.Mean, delivery.Max, g.Count)
	}

	b.WriteString("\n**SUPPLIER RISK SCORES (0-100):**\n")
	for _, s := range report.RiskScores {
		fmt.Fprintf(&b, "- %s: %.0f\n", s.Supplier, s.Score)
	}

	b.WriteString("\n**FLAGGED ANOMALIES:**\n")
	anomalies := report.Anomalies
	if len(anomalies) > maxPromptAnomalies {
		anomalies = anomalies[:maxPromptAnomalies]
	}
	if len(anomalies) == 0 {
		b.WriteString("- none detected\n")
	}
	for _, a := range anomalies {
		fmt.Fprintf(&b, "- [%s/%s] %s\n", a.Severity, a.Kind, a.Message)
	}

	b.WriteString(`
**INSTRUCTIONS:**
Provide a brief analysis in this EXACT format (keep each section to 2-3 bullet points MAX):

**TOP 3 CRITICAL ISSUES**
- [Most urgent problem]
- [Second priority]
- [Third priority]

**KEY FINDINGS**
- [Major pattern 1]
- [Major pattern 2]

**IMMEDIATE ACTIONS**
- [Action 1]
- [Action 2]

Keep your response under 200 words total. Be specific with dates, numbers, and supplier names.
`)
	return b.String()
}
