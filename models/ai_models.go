package models

// InsightsRequest carries a previously produced report back to the
// service, for AI narrative generation or plain-text export.
type InsightsRequest struct {
	ReportID string `json:"reportId"`
	Report   Report `json:"report"`
	// Insights is optional pre-generated narrative to embed in an export.
	Insights string `json:"insights,omitempty"`
}

// InsightsResponse is the generated executive summary.
type InsightsResponse struct {
	ReportID string `json:"reportId"`
	Model    string `json:"model"`
	Insights string `json:"insights"`
}
